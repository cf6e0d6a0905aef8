package handler

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appcatalog "github.com/marketplace/catalogue/internal/application/catalog"
	"github.com/marketplace/catalogue/internal/domain/catalog"
	"github.com/marketplace/catalogue/internal/infrastructure/peers"
)

const maxMediaFiles = 10

// ProductHandler serves the product aggregation and orchestration endpoints
type ProductHandler struct {
	BaseHandler
	service *appcatalog.ProductService
	auth    gin.HandlerFunc
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *appcatalog.ProductService, auth gin.HandlerFunc) *ProductHandler {
	return &ProductHandler{service: service, auth: auth}
}

// RegisterRoutes registers the product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.ListDetails)
		products.GET("/meta", h.ListMeta)
		products.GET("/meta/:id", h.GetMeta)
		products.GET("/:id", h.GetDetails)

		products.POST("", h.auth, h.Create)
		products.PUT("/:id", h.auth, h.Update)
		products.DELETE("/:id", h.auth, h.Delete)
	}
}

// productForm is the multipart body of create and update requests.
// Discount fields travel flattened; a discount is supplied when the
// percentage field is present.
type productForm struct {
	Name               string   `form:"name" binding:"required,min=2,max=100"`
	Description        string   `form:"description" binding:"required,min=10,max=1000"`
	CategoryID         string   `form:"category_id" binding:"required,uuid"`
	BasePrice          float64  `form:"base_price" binding:"required,gte=0.01,lte=999999.99"`
	Inventory          *int     `form:"inventory" binding:"required,gte=0,lte=99999"`
	Status             string   `form:"status" binding:"required"`
	DiscountPercentage *float64 `form:"discount_percentage" binding:"omitempty,gt=0,lte=100"`
	DiscountStartDate  string   `form:"discount_start_date" binding:"required_with=DiscountPercentage"`
	DiscountEndDate    string   `form:"discount_end_date" binding:"required_with=DiscountPercentage"`
}

// GetDetails handles GET /products/:id
func (h *ProductHandler) GetDetails(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	details, err := h.service.GetDetails(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if details == nil {
		h.NotFound(c, "Product not found")
		return
	}

	h.OK(c, "Product details retrieved", details)
}

// GetMeta handles GET /products/meta/:id
func (h *ProductHandler) GetMeta(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	meta, err := h.service.GetMeta(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if meta == nil {
		h.NotFound(c, "Product not found")
		return
	}

	h.OK(c, "Product metadata retrieved", meta)
}

// ListDetails handles GET /products
func (h *ProductHandler) ListDetails(c *gin.Context) {
	categoryID, status, ok := h.parseFilters(c)
	if !ok {
		return
	}

	products, err := h.service.ListDetails(c.Request.Context(), categoryID, status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, "Products retrieved", products)
}

// ListMeta handles GET /products/meta
func (h *ProductHandler) ListMeta(c *gin.Context) {
	categoryID, status, ok := h.parseFilters(c)
	if !ok {
		return
	}

	products, err := h.service.ListMeta(c.Request.Context(), categoryID, status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.OK(c, "Product metadata retrieved", products)
}

// Create handles POST /products (multipart)
func (h *ProductHandler) Create(c *gin.Context) {
	input, ok := h.bindInput(c, true)
	if !ok {
		return
	}

	details, err := h.service.Create(c.Request.Context(), *input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, "Product created", details)
}

// Update handles PUT /products/:id (multipart)
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	input, ok := h.bindInput(c, false)
	if !ok {
		return
	}

	details, err := h.service.Update(c.Request.Context(), productID, *input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if details == nil {
		h.NotFound(c, "Product not found")
		return
	}

	h.OK(c, "Product updated", details)
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !deleted {
		h.NotFound(c, "Product not found")
		return
	}

	h.OK(c, "Product deleted", nil)
}

func (h *ProductHandler) parseFilters(c *gin.Context) (*uuid.UUID, *catalog.ProductStatus, bool) {
	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid category_id filter")
			return nil, nil, false
		}
		categoryID = &id
	}

	var status *catalog.ProductStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := catalog.ParseProductStatus(raw)
		if err != nil {
			h.BadRequest(c, "Invalid status filter")
			return nil, nil, false
		}
		status = &parsed
	}

	return categoryID, status, true
}

func (h *ProductHandler) bindInput(c *gin.Context, thumbnailRequired bool) (*appcatalog.ProductInput, bool) {
	var form productForm
	if err := c.ShouldBind(&form); err != nil {
		h.BadRequest(c, "Invalid product input: "+err.Error())
		return nil, false
	}

	status, err := catalog.ParseProductStatus(form.Status)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}

	input := &appcatalog.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		CategoryID:  uuid.MustParse(form.CategoryID),
		BasePrice:   decimal.NewFromFloat(form.BasePrice).Round(2),
		Status:      status,
		Inventory:   *form.Inventory,
	}

	if form.DiscountPercentage != nil {
		input.Discount = &appcatalog.DiscountInput{
			DiscountPercentage: *form.DiscountPercentage,
			StartDate:          form.DiscountStartDate,
			EndDate:            form.DiscountEndDate,
		}
	}

	thumbnailHeader, err := c.FormFile("thumbnail")
	if err == nil {
		thumbnail, readErr := readFormFile(thumbnailHeader)
		if readErr != nil {
			h.BadRequest(c, "Could not read thumbnail file")
			return nil, false
		}
		input.Thumbnail = thumbnail
	} else if thumbnailRequired {
		h.BadRequest(c, "Thumbnail image is required")
		return nil, false
	}

	if mf, err := c.MultipartForm(); err == nil && mf != nil {
		mediaHeaders := mf.File["media_files"]
		if len(mediaHeaders) > maxMediaFiles {
			h.BadRequest(c, "Maximum 10 media files allowed")
			return nil, false
		}
		for _, header := range mediaHeaders {
			file, readErr := readFormFile(header)
			if readErr != nil {
				h.BadRequest(c, "Could not read media file "+header.Filename)
				return nil, false
			}
			input.MediaFiles = append(input.MediaFiles, *file)
		}
	}

	return input, true
}

func readFormFile(header *multipart.FileHeader) (*peers.MediaFile, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &peers.MediaFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
