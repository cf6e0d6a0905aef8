package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/marketplace/catalogue/internal/application/catalog"
)

// CategoryHandler serves the category CRUD endpoints
type CategoryHandler struct {
	BaseHandler
	service *appcatalog.CategoryService
	auth    gin.HandlerFunc
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service *appcatalog.CategoryService, auth gin.HandlerFunc) *CategoryHandler {
	return &CategoryHandler{service: service, auth: auth}
}

// RegisterRoutes registers the category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	{
		categories.GET("", h.List)
		categories.GET("/:id", h.Get)

		categories.POST("", h.auth, h.Create)
		categories.PUT("/:id", h.auth, h.Update)
		categories.DELETE("/:id", h.auth, h.Delete)
	}
}

type categoryInput struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// List handles GET /categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, "Categories retrieved", categories)
}

// Get handles GET /categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.service.Get(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if category == nil {
		h.NotFound(c, "Category not found")
		return
	}

	h.OK(c, "Category retrieved", category)
}

// Create handles POST /categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid category input: "+err.Error())
		return
	}

	category, err := h.service.Create(c.Request.Context(), input.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Category created", category)
}

// Update handles PUT /categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.BadRequest(c, "Invalid category input: "+err.Error())
		return
	}

	category, err := h.service.Update(c.Request.Context(), categoryID, input.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if category == nil {
		h.NotFound(c, "Category not found")
		return
	}

	h.OK(c, "Category updated", category)
}

// Delete handles DELETE /categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), categoryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !deleted {
		h.NotFound(c, "Category not found")
		return
	}

	h.OK(c, "Category deleted", nil)
}
