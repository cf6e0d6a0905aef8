package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marketplace/catalogue/internal/interfaces/http/dto"
)

// Pinger reports whether the local store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler serves health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	db      Pinger
	started time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db Pinger) *SystemHandler {
	return &SystemHandler{db: db, started: time.Now()}
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	status := gin.H{
		"uptime":   time.Since(h.started).String(),
		"database": "up",
	}

	if err := h.db.Ping(); err != nil {
		status["database"] = "down"
		c.JSON(http.StatusServiceUnavailable, dto.Response{
			Success: false,
			Status:  http.StatusServiceUnavailable,
			Message: "Service degraded",
			Data:    status,
		})
		return
	}

	h.OK(c, "Service healthy", status)
}
