package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error)
	FindByStatus(ctx context.Context, status ProductStatus) ([]Product, error)
	FindByCategoryAndStatus(ctx context.Context, categoryID uuid.UUID, status ProductStatus) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
