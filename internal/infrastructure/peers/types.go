package peers

// Wire shapes of the peer services. Field names follow each peer's
// published contract, not ours.

type tokenValidationResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type inventoryResponse struct {
	ProductID         string `json:"product_id"`
	AvailableQuantity *int   `json:"available_quantity"`
	ReservedQuantity  *int   `json:"reserved_quantity"`
}

type inventoryRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type discountResponse struct {
	ID                 int64    `json:"id"`
	ProductID          int64    `json:"product_id"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date"`
}

// DiscountRequest is the payload for creating or updating a promotion.
type DiscountRequest struct {
	ProductID          string  `json:"product_id"`
	DiscountPercentage float64 `json:"discount_percentage"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
}

type mediaItemResponse struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	FileURL     string `json:"file_url"`
	FileType    string `json:"file_type"`
	IsThumbnail bool   `json:"is_thumbnail"`
}

type reviewResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	ProductID  string `json:"produitId"`
	Comment    string `json:"commentaire"`
	Note       int    `json:"note"`
	ReviewDate string `json:"date"`
}

// Discount is the promotion view joined into product reads.
type Discount struct {
	DiscountPercentage *float64
	StartDate          string
	EndDate            string
}

// ReviewItem is a single customer review.
type ReviewItem struct {
	Comment    string
	Rating     float64
	UserID     string
	ReviewDate string
}

// Reviews is the aggregated review view for one product.
type Reviews struct {
	AverageRating float64
	TotalReviews  int
	Items         []ReviewItem
}

// UploadResult describes a stored media file.
type UploadResult struct {
	ID       string `json:"id"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
}

// MediaFile is an in-memory file handed to the media peer.
type MediaFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
