package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/catalogue/internal/domain/shared"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusAvailable  ProductStatus = "available"
	ProductStatusDeleted    ProductStatus = "deleted"
	ProductStatusOutOfStock ProductStatus = "out_of_stock"
)

// ParseProductStatus parses free-text input into a ProductStatus.
// Parsing is case-insensitive and happens once at the input boundary;
// everything downstream works with the closed set of constants.
func ParseProductStatus(s string) (ProductStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ProductStatusAvailable):
		return ProductStatusAvailable, nil
	case string(ProductStatusDeleted):
		return ProductStatusDeleted, nil
	case string(ProductStatusOutOfStock):
		return ProductStatusOutOfStock, nil
	default:
		return "", shared.NewDomainError("INVALID_STATUS",
			"Status must be 'available', 'deleted' or 'out_of_stock'")
	}
}

// Product is the locally owned catalogue entity. Inventory, media,
// discounts and reviews live in their respective peer services and are
// only ever joined into an ephemeral composite view at read time.
type Product struct {
	shared.BaseEntity
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status      ProductStatus   `gorm:"type:varchar(20);not null;default:'available'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with a generated identifier
func NewProduct(name, description string, categoryID uuid.UUID, basePrice decimal.Decimal, status ProductStatus) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
		CategoryID:  categoryID,
		BasePrice:   basePrice,
		Status:      status,
	}, nil
}

// Update replaces the locally owned product fields
func (p *Product) Update(name, description string, categoryID uuid.UUID, basePrice decimal.Decimal, status ProductStatus) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if basePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Category is required")
	}

	p.Name = name
	p.Description = description
	p.CategoryID = categoryID
	p.BasePrice = basePrice
	p.Status = status
	p.UpdatedAt = time.Now()

	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 255 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 255 characters")
	}
	return nil
}
