package catalog

import (
	"strings"
	"time"

	"github.com/marketplace/catalogue/internal/domain/shared"
)

// Category is a locally owned, soft-deletable grouping of products.
// Name uniqueness is enforced among non-deleted categories only.
type Category struct {
	shared.BaseEntity
	Name      string `gorm:"type:varchar(100);not null"`
	IsDeleted bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category with a generated identifier
func NewCategory(name string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Rename updates the category name
func (c *Category) Rename(name string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.UpdatedAt = time.Now()

	return nil
}

// MarkDeleted sets the soft-delete flag
func (c *Category) MarkDeleted() {
	c.IsDeleted = true
	c.UpdatedAt = time.Now()
}

func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
