package peers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PromotionsClient talks to the promotions peer. The promotions contract
// is unauthenticated, so no bearer token is attached.
type PromotionsClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewPromotionsClient creates a client for the promotions peer.
func NewPromotionsClient(baseURL string, timeout time.Duration, logger *zap.Logger) *PromotionsClient {
	return &PromotionsClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("peer.promotions"),
	}
}

// GetDiscount returns the active discount for a product, or nil when the
// peer is unavailable or no promotion exists.
func (c *PromotionsClient) GetDiscount(ctx context.Context, productID uuid.UUID) *Discount {
	resp := c.getPromotion(ctx, productID)
	if resp == nil {
		return nil
	}
	return &Discount{
		DiscountPercentage: resp.DiscountPercentage,
		StartDate:          resp.StartDate,
		EndDate:            resp.EndDate,
	}
}

// GetPromotionID returns the promotion identifier for a product, or nil.
func (c *PromotionsClient) GetPromotionID(ctx context.Context, productID uuid.UUID) *int64 {
	resp := c.getPromotion(ctx, productID)
	if resp == nil {
		return nil
	}
	id := resp.ID
	return &id
}

func (c *PromotionsClient) getPromotion(ctx context.Context, productID uuid.UUID) *discountResponse {
	var resp discountResponse
	if err := getJSON(ctx, c.client, joinURL(c.baseURL, "/promotions/"+productID.String()), "", &resp); err != nil {
		c.logger.Debug("promotion lookup failed", zap.String("product_id", productID.String()), zap.Error(err))
		return nil
	}
	return &resp
}

// Add creates a promotion. Returns false on any failure.
func (c *PromotionsClient) Add(ctx context.Context, req DiscountRequest) bool {
	if err := sendJSON(ctx, c.client, http.MethodPost, joinURL(c.baseURL, "/promotions"), "", req, nil); err != nil {
		c.logger.Warn("promotion create failed", zap.String("product_id", req.ProductID), zap.Error(err))
		return false
	}
	return true
}

// Update replaces a promotion identified by promotion or product ID.
// Returns false on any failure.
func (c *PromotionsClient) Update(ctx context.Context, id string, req DiscountRequest) bool {
	if err := sendJSON(ctx, c.client, http.MethodPut, joinURL(c.baseURL, "/promotions/"+id), "", req, nil); err != nil {
		c.logger.Warn("promotion update failed", zap.String("promotion_id", id), zap.Error(err))
		return false
	}
	return true
}

// Remove deletes a promotion. Returns false on any failure.
func (c *PromotionsClient) Remove(ctx context.Context, id string) bool {
	if err := sendJSON(ctx, c.client, http.MethodDelete, joinURL(c.baseURL, "/promotions/"+id), "", nil, nil); err != nil {
		c.logger.Warn("promotion delete failed", zap.String("promotion_id", id), zap.Error(err))
		return false
	}
	return true
}
