package peers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewsClient talks to the reviews peer.
type ReviewsClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewReviewsClient creates a client for the reviews peer.
func NewReviewsClient(baseURL string, timeout time.Duration, logger *zap.Logger) *ReviewsClient {
	return &ReviewsClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("peer.reviews"),
	}
}

// GetReviews returns the aggregated reviews for a product. The average
// rating and count are computed here from the raw review list. Returns
// nil when the peer is unavailable or the product has no reviews.
func (c *ReviewsClient) GetReviews(ctx context.Context, productID uuid.UUID) *Reviews {
	var raw []reviewResponse
	if err := getJSON(ctx, c.client, joinURL(c.baseURL, "/avis/"+productID.String()), Token(ctx), &raw); err != nil {
		c.logger.Debug("reviews lookup failed", zap.String("product_id", productID.String()), zap.Error(err))
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	items := make([]ReviewItem, 0, len(raw))
	sum := 0
	for _, r := range raw {
		items = append(items, ReviewItem{
			Comment:    r.Comment,
			Rating:     float64(r.Note),
			UserID:     r.UserID,
			ReviewDate: r.ReviewDate,
		})
		sum += r.Note
	}

	return &Reviews{
		AverageRating: float64(sum) / float64(len(raw)),
		TotalReviews:  len(raw),
		Items:         items,
	}
}
