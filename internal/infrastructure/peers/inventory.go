package peers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryClient talks to the inventory peer.
type InventoryClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewInventoryClient creates a client for the inventory peer.
func NewInventoryClient(baseURL string, timeout time.Duration, logger *zap.Logger) *InventoryClient {
	return &InventoryClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("peer.inventory"),
	}
}

// GetInventory returns the available quantity for a product, or nil when
// the peer is unavailable or has no record.
func (c *InventoryClient) GetInventory(ctx context.Context, productID uuid.UUID) *int {
	var resp inventoryResponse
	if err := getJSON(ctx, c.client, joinURL(c.baseURL, "/inventory/"+productID.String()), Token(ctx), &resp); err != nil {
		c.logger.Debug("inventory lookup failed", zap.String("product_id", productID.String()), zap.Error(err))
		return nil
	}
	return resp.AvailableQuantity
}

// Increase adds stock for a product. Returns false on any failure.
func (c *InventoryClient) Increase(ctx context.Context, productID uuid.UUID, quantity int) bool {
	req := inventoryRequest{ProductID: productID.String(), Quantity: quantity}
	if err := sendJSON(ctx, c.client, http.MethodPost, joinURL(c.baseURL, "/inventory/add"), Token(ctx), req, nil); err != nil {
		c.logger.Warn("inventory increase failed", zap.String("product_id", productID.String()), zap.Error(err))
		return false
	}
	return true
}

// Decrease removes stock for a product. Returns false on any failure.
func (c *InventoryClient) Decrease(ctx context.Context, productID uuid.UUID, quantity int) bool {
	req := inventoryRequest{ProductID: productID.String(), Quantity: quantity}
	if err := sendJSON(ctx, c.client, http.MethodPost, joinURL(c.baseURL, "/inventory/decrease"), Token(ctx), req, nil); err != nil {
		c.logger.Warn("inventory decrease failed", zap.String("product_id", productID.String()), zap.Error(err))
		return false
	}
	return true
}
