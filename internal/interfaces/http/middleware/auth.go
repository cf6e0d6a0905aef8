package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marketplace/catalogue/internal/infrastructure/peers"
	"github.com/marketplace/catalogue/internal/interfaces/http/dto"
)

// TokenValidator checks a bearer token against the auth peer.
type TokenValidator interface {
	Validate(ctx context.Context, token string) bool
}

// AdminAuth guards mutating endpoints. It requires a bearer token that
// the auth peer confirms as a valid admin, then binds the token to the
// request context so outbound peer calls can reuse it. The binding is
// per request; tokens never cross request boundaries.
func AdminAuth(validator TokenValidator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(http.StatusUnauthorized, "Missing or malformed Authorization header"))
			return
		}

		ctx := peers.WithToken(c.Request.Context(), token)

		if !validator.Validate(ctx, token) {
			logger.Debug("token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(http.StatusUnauthorized, "Invalid or insufficient credentials"))
			return
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
