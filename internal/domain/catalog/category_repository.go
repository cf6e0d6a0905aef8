package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the persistence contract for categories.
// All lookups are scoped to non-deleted categories; soft-deleted rows
// stay in place for referential history.
type CategoryRepository interface {
	FindActive(ctx context.Context) ([]Category, error)
	FindByIDActive(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByNameActive(ctx context.Context, name string) (*Category, error)
	Save(ctx context.Context, category *Category) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
