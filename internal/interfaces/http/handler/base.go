package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	appcatalog "github.com/marketplace/catalogue/internal/application/catalog"
	"github.com/marketplace/catalogue/internal/domain/shared"
	"github.com/marketplace/catalogue/internal/interfaces/http/dto"
)

// BaseHandler provides the shared response helpers
type BaseHandler struct{}

// OK sends a 200 envelope
func (h *BaseHandler) OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(http.StatusOK, message, data))
}

// Created sends a 201 envelope
func (h *BaseHandler) Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(http.StatusCreated, message, data))
}

// BadRequest sends a 400 envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, message))
}

// NotFound sends a 404 envelope
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, message))
}

// Conflict sends a 409 envelope
func (h *BaseHandler) Conflict(c *gin.Context, message string) {
	c.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, message))
}

// HandleError maps service errors onto the envelope. Orchestration
// failures surface as 502 because an upstream peer refused a required
// step; the local state may be partially applied.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var orchErr *appcatalog.OrchestrationError
	if errors.As(err, &orchErr) {
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(http.StatusBadGateway, orchErr.Error()))
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case "NOT_FOUND":
			h.NotFound(c, domainErr.Message)
		case "ALREADY_EXISTS", "VALIDATION_CONFLICT":
			h.Conflict(c, domainErr.Message)
		case "UNAUTHORIZED":
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, domainErr.Message))
		default:
			h.BadRequest(c, domainErr.Message)
		}
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(http.StatusInternalServerError, "Internal server error"))
}
