package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    ProductStatus
		wantErr bool
	}{
		{"available", ProductStatusAvailable, false},
		{"AVAILABLE", ProductStatusAvailable, false},
		{"  Out_Of_Stock  ", ProductStatusOutOfStock, false},
		{"deleted", ProductStatusDeleted, false},
		{"disponible", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProductStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewProduct(t *testing.T) {
	categoryID := uuid.New()

	t.Run("valid product", func(t *testing.T) {
		p, err := NewProduct("Gaming Laptop", "A very fast laptop", categoryID, decimal.NewFromFloat(1299.99), ProductStatusAvailable)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.Equal(t, "Gaming Laptop", p.Name)
		assert.Equal(t, ProductStatusAvailable, p.Status)
		assert.True(t, p.BasePrice.Equal(decimal.NewFromFloat(1299.99)))
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewProduct("  ", "desc", categoryID, decimal.NewFromInt(10), ProductStatusAvailable)
		assert.Error(t, err)
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := NewProduct(strings.Repeat("x", 256), "desc", categoryID, decimal.NewFromInt(10), ProductStatusAvailable)
		assert.Error(t, err)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := NewProduct("Laptop", "desc", categoryID, decimal.NewFromInt(-1), ProductStatusAvailable)
		assert.Error(t, err)
	})

	t.Run("missing category", func(t *testing.T) {
		_, err := NewProduct("Laptop", "desc", uuid.Nil, decimal.NewFromInt(10), ProductStatusAvailable)
		assert.Error(t, err)
	})
}

func TestProduct_Update(t *testing.T) {
	p, err := NewProduct("Laptop", "desc", uuid.New(), decimal.NewFromInt(100), ProductStatusAvailable)
	require.NoError(t, err)

	newCategory := uuid.New()
	err = p.Update("Desktop", "bigger", newCategory, decimal.NewFromInt(200), ProductStatusOutOfStock)
	require.NoError(t, err)
	assert.Equal(t, "Desktop", p.Name)
	assert.Equal(t, newCategory, p.CategoryID)
	assert.Equal(t, ProductStatusOutOfStock, p.Status)

	err = p.Update("", "desc", newCategory, decimal.NewFromInt(200), ProductStatusAvailable)
	assert.Error(t, err)
}
