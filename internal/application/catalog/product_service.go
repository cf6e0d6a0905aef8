package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/marketplace/catalogue/internal/domain/catalog"
	"github.com/marketplace/catalogue/internal/infrastructure/peers"
)

// InventoryGateway is the inventory peer surface used by the service.
type InventoryGateway interface {
	GetInventory(ctx context.Context, productID uuid.UUID) *int
	Increase(ctx context.Context, productID uuid.UUID, quantity int) bool
	Decrease(ctx context.Context, productID uuid.UUID, quantity int) bool
}

// MediaGateway is the media peer surface used by the service.
type MediaGateway interface {
	Upload(ctx context.Context, file peers.MediaFile, productID uuid.UUID, isThumbnail bool) *peers.UploadResult
	GetThumbnailURL(ctx context.Context, productID uuid.UUID) string
	GetThumbnailID(ctx context.Context, productID uuid.UUID) string
	GetMediaURLs(ctx context.Context, productID uuid.UUID) []string
	GetMediaIDs(ctx context.Context, productID uuid.UUID) []string
	Delete(ctx context.Context, mediaID string) bool
}

// PromotionsGateway is the promotions peer surface used by the service.
type PromotionsGateway interface {
	GetDiscount(ctx context.Context, productID uuid.UUID) *peers.Discount
	GetPromotionID(ctx context.Context, productID uuid.UUID) *int64
	Add(ctx context.Context, req peers.DiscountRequest) bool
	Update(ctx context.Context, id string, req peers.DiscountRequest) bool
	Remove(ctx context.Context, id string) bool
}

// ReviewsGateway is the reviews peer surface used by the service.
type ReviewsGateway interface {
	GetReviews(ctx context.Context, productID uuid.UUID) *peers.Reviews
}

// ProductService aggregates product reads across the local store and
// the peer services, and orchestrates multi-step writes against them.
type ProductService struct {
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	inventory  InventoryGateway
	media      MediaGateway
	promotions PromotionsGateway
	reviews    ReviewsGateway
	logger     *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	inventory InventoryGateway,
	media MediaGateway,
	promotions PromotionsGateway,
	reviews ReviewsGateway,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		inventory:  inventory,
		media:      media,
		promotions: promotions,
		reviews:    reviews,
		logger:     logger.Named("product_service"),
	}
}

// GetDetails assembles the full composite view for one product. A
// missing product returns nil with no peer calls. Peer failures only
// blank out their own fields; the view is always populated once the
// local row exists.
func (s *ProductService) GetDetails(ctx context.Context, productID uuid.UUID) (*ProductDetails, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	details := &ProductDetails{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    s.categoryName(ctx, product.CategoryID),
		BasePrice:   product.BasePrice,
		Status:      product.Status,
	}

	// Peer lookups are independent; issue them concurrently so total
	// latency is bounded by the slowest peer, not the sum.
	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		if url := s.media.GetThumbnailURL(ctx, productID); url != "" {
			details.ThumbnailURL = &url
		}
	}()
	go func() {
		defer wg.Done()
		details.MediaURLs = s.media.GetMediaURLs(ctx, productID)
	}()
	go func() {
		defer wg.Done()
		details.Inventory = s.inventory.GetInventory(ctx, productID)
	}()
	go func() {
		defer wg.Done()
		details.Discount = mapDiscount(s.promotions.GetDiscount(ctx, productID), product.BasePrice)
	}()
	go func() {
		defer wg.Done()
		details.Reviews = mapReviews(s.reviews.GetReviews(ctx, productID))
	}()

	wg.Wait()

	return details, nil
}

// GetMeta assembles the reduced projection: local fields plus thumbnail.
func (s *ProductService) GetMeta(ctx context.Context, productID uuid.UUID) (*ProductMeta, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	meta := &ProductMeta{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Category:    s.categoryName(ctx, product.CategoryID),
		BasePrice:   product.BasePrice,
		Status:      product.Status,
	}
	if url := s.media.GetThumbnailURL(ctx, productID); url != "" {
		meta.ThumbnailURL = &url
	}

	return meta, nil
}

// ListDetails returns the full composite view for every product matching
// the optional category and status filters. Each product runs its own
// fan-out; there is no batching across products.
func (s *ProductService) ListDetails(ctx context.Context, categoryID *uuid.UUID, status *catalog.ProductStatus) ([]ProductDetails, error) {
	products, err := s.findFiltered(ctx, categoryID, status)
	if err != nil {
		return nil, err
	}

	result := make([]ProductDetails, 0, len(products))
	for _, product := range products {
		details, err := s.GetDetails(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		if details != nil {
			result = append(result, *details)
		}
	}
	return result, nil
}

// ListMeta returns the reduced projection for every matching product.
func (s *ProductService) ListMeta(ctx context.Context, categoryID *uuid.UUID, status *catalog.ProductStatus) ([]ProductMeta, error) {
	products, err := s.findFiltered(ctx, categoryID, status)
	if err != nil {
		return nil, err
	}

	result := make([]ProductMeta, 0, len(products))
	for _, product := range products {
		meta, err := s.GetMeta(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		if meta != nil {
			result = append(result, *meta)
		}
	}
	return result, nil
}

// Create persists the product locally first, then walks the peer steps
// in order: thumbnail upload (fatal), extra media uploads (best effort),
// inventory registration (fatal), promotion registration (fatal when a
// discount is supplied). A fatal failure aborts without undoing earlier
// steps; the local row stays in place.
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*ProductDetails, error) {
	if _, err := s.categories.FindByIDActive(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(input.Name, input.Description, input.CategoryID, input.BasePrice, input.Status)
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	if input.Thumbnail != nil {
		if result := s.media.Upload(ctx, *input.Thumbnail, product.ID, true); result == nil {
			return nil, newOrchestrationError("thumbnail_upload", "failed to upload thumbnail to media service")
		}
	}

	for _, file := range input.MediaFiles {
		if result := s.media.Upload(ctx, file, product.ID, false); result == nil {
			s.logger.Warn("media file upload failed, continuing",
				zap.String("product_id", product.ID.String()),
				zap.String("filename", file.Filename))
		}
	}

	if !s.inventory.Increase(ctx, product.ID, input.Inventory) {
		return nil, newOrchestrationError("inventory_register", "failed to register product inventory")
	}

	if input.Discount != nil {
		req := peers.DiscountRequest{
			ProductID:          product.ID.String(),
			DiscountPercentage: input.Discount.DiscountPercentage,
			StartDate:          input.Discount.StartDate,
			EndDate:            input.Discount.EndDate,
		}
		if !s.promotions.Add(ctx, req) {
			return nil, newOrchestrationError("promotion_create", "failed to register product discount")
		}
	}

	return s.GetDetails(ctx, product.ID)
}

// Update runs the update orchestration: replace thumbnail and media
// via delete-then-recreate, reconcile inventory by delta, push the
// discount, then persist the local fields. A missing product returns
// nil without touching any peer.
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, input ProductInput) (*ProductDetails, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if input.Thumbnail != nil {
		if existingID := s.media.GetThumbnailID(ctx, productID); existingID != "" {
			if !s.media.Delete(ctx, existingID) {
				return nil, newOrchestrationError("thumbnail_delete", "failed to delete old thumbnail from media service")
			}
		}
		if result := s.media.Upload(ctx, *input.Thumbnail, productID, true); result == nil {
			return nil, newOrchestrationError("thumbnail_upload", "failed to upload new thumbnail to media service")
		}
	}

	if len(input.MediaFiles) > 0 {
		for _, mediaID := range s.media.GetMediaIDs(ctx, productID) {
			if !s.media.Delete(ctx, mediaID) {
				return nil, newOrchestrationError("media_delete", "failed to delete old media file from media service")
			}
		}
		for _, file := range input.MediaFiles {
			if result := s.media.Upload(ctx, file, productID, false); result == nil {
				return nil, newOrchestrationError("media_upload", "failed to upload new media file to media service")
			}
		}
	}

	current := s.inventory.GetInventory(ctx, productID)
	if current == nil {
		return nil, newOrchestrationError("inventory_read", "failed to retrieve current inventory")
	}
	switch delta := input.Inventory - *current; {
	case delta > 0:
		if !s.inventory.Increase(ctx, productID, delta) {
			return nil, newOrchestrationError("inventory_increase", "failed to increase product inventory")
		}
	case delta < 0:
		if !s.inventory.Decrease(ctx, productID, -delta) {
			return nil, newOrchestrationError("inventory_decrease", "failed to decrease product inventory")
		}
	}

	if input.Discount != nil {
		// Always an update keyed by product ID, with no add-vs-update
		// branch on whether a promotion already exists. Matches the
		// promotions peer contract for upserts by product.
		req := peers.DiscountRequest{
			ProductID:          productID.String(),
			DiscountPercentage: input.Discount.DiscountPercentage,
			StartDate:          input.Discount.StartDate,
			EndDate:            input.Discount.EndDate,
		}
		if !s.promotions.Update(ctx, productID.String(), req) {
			return nil, newOrchestrationError("promotion_update", "failed to update product discount")
		}
	}

	if err := product.Update(input.Name, input.Description, input.CategoryID, input.BasePrice, input.Status); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	return s.GetDetails(ctx, productID)
}

// Delete removes only the local product row. Peer records for
// inventory, media, promotions and reviews are left behind.
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) (bool, error) {
	exists, err := s.products.ExistsByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := s.products.DeleteByID(ctx, productID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ProductService) findFiltered(ctx context.Context, categoryID *uuid.UUID, status *catalog.ProductStatus) ([]catalog.Product, error) {
	switch {
	case categoryID != nil && status != nil:
		return s.products.FindByCategoryAndStatus(ctx, *categoryID, *status)
	case categoryID != nil:
		return s.products.FindByCategory(ctx, *categoryID)
	case status != nil:
		return s.products.FindByStatus(ctx, *status)
	default:
		return s.products.FindAll(ctx)
	}
}

func (s *ProductService) categoryName(ctx context.Context, categoryID uuid.UUID) *string {
	category, err := s.categories.FindByIDActive(ctx, categoryID)
	if err != nil {
		return nil
	}
	return &category.Name
}

func mapDiscount(d *peers.Discount, basePrice decimal.Decimal) *Discount {
	if d == nil {
		return nil
	}
	discount := &Discount{
		DiscountPercentage: d.DiscountPercentage,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
	}
	if d.DiscountPercentage != nil {
		pct := decimal.NewFromFloat(*d.DiscountPercentage)
		price := basePrice.
			Mul(decimal.NewFromInt(100).Sub(pct)).
			Div(decimal.NewFromInt(100)).
			Round(2)
		discount.DiscountPrice = &price
	}
	return discount
}

func mapReviews(r *peers.Reviews) *Reviews {
	if r == nil {
		return nil
	}
	items := make([]ReviewItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, ReviewItem{
			Comment:    item.Comment,
			Rating:     item.Rating,
			UserID:     item.UserID,
			ReviewDate: item.ReviewDate,
		})
	}
	return &Reviews{
		AverageRating: r.AverageRating,
		TotalReviews:  r.TotalReviews,
		Items:         items,
	}
}
