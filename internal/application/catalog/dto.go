package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/catalogue/internal/domain/catalog"
	"github.com/marketplace/catalogue/internal/infrastructure/peers"
)

// Discount is the promotion view joined into a product read. The price
// is derived locally from the base price when a percentage is present.
type Discount struct {
	DiscountPercentage *float64         `json:"discount_percentage"`
	DiscountPrice      *decimal.Decimal `json:"discount_price,omitempty"`
	StartDate          string           `json:"start_date,omitempty"`
	EndDate            string           `json:"end_date,omitempty"`
}

// ReviewItem is a single customer review.
type ReviewItem struct {
	Comment    string  `json:"comment"`
	Rating     float64 `json:"rating"`
	UserID     string  `json:"user_id"`
	ReviewDate string  `json:"review_date"`
}

// Reviews is the aggregated review summary for one product.
type Reviews struct {
	AverageRating float64      `json:"average_rating"`
	TotalReviews  int          `json:"total_reviews"`
	Items         []ReviewItem `json:"items"`
}

// ProductDetails is the full composite product view. Remote-sourced
// fields are nil when the owning peer is unavailable or has no data;
// nil never means zero.
type ProductDetails struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Category     *string               `json:"category"`
	BasePrice    decimal.Decimal       `json:"base_price"`
	Status       catalog.ProductStatus `json:"status"`
	ThumbnailURL *string               `json:"thumbnail_url"`
	MediaURLs    []string              `json:"media_urls"`
	Inventory    *int                  `json:"inventory"`
	Discount     *Discount             `json:"discount"`
	Reviews      *Reviews              `json:"reviews"`
}

// ProductMeta is the reduced-cost projection for list views.
type ProductMeta struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Category     *string               `json:"category"`
	BasePrice    decimal.Decimal       `json:"base_price"`
	Status       catalog.ProductStatus `json:"status"`
	ThumbnailURL *string               `json:"thumbnail_url"`
}

// DiscountInput is the discount portion of a product write.
type DiscountInput struct {
	DiscountPercentage float64 `json:"discount_percentage"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
}

// ProductInput carries a validated create or update intent. Status has
// already been parsed at the transport boundary.
type ProductInput struct {
	Name        string
	Description string
	CategoryID  uuid.UUID
	BasePrice   decimal.Decimal
	Status      catalog.ProductStatus
	Inventory   int
	Thumbnail   *peers.MediaFile
	MediaFiles  []peers.MediaFile
	Discount    *DiscountInput
}

// CategoryView is the outward category shape.
type CategoryView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
