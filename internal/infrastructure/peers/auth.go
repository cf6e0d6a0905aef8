package peers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// AuthClient talks to the authentication peer.
type AuthClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewAuthClient creates a client for the authentication peer.
func NewAuthClient(baseURL string, timeout time.Duration, logger *zap.Logger) *AuthClient {
	return &AuthClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("peer.auth"),
	}
}

// Validate checks a bearer token against the auth peer. It returns true
// only for a valid token with the admin role. Any transport failure or
// non-2xx response counts as invalid.
func (c *AuthClient) Validate(ctx context.Context, token string) bool {
	var resp tokenValidationResponse
	if err := getJSON(ctx, c.client, joinURL(c.baseURL, "/users/validate"), token, &resp); err != nil {
		c.logger.Warn("token validation unavailable", zap.Error(err))
		return false
	}
	return resp.Valid && resp.Role == "admin"
}
