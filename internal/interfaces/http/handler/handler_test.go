package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcatalog "github.com/marketplace/catalogue/internal/application/catalog"
	"github.com/marketplace/catalogue/internal/domain/catalog"
	"github.com/marketplace/catalogue/internal/domain/shared"
)

// Minimal in-memory repositories for wiring real services behind the
// handlers under test.

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories []*catalog.Category
}

func (r *fakeCategoryRepo) FindActive(_ context.Context) ([]catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Category
	for _, c := range r.categories {
		if !c.IsDeleted {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) FindByIDActive(_ context.Context, id uuid.UUID) (*catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.ID == id && !c.IsDeleted {
			copy := *c
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCategoryRepo) FindByNameActive(_ context.Context, name string) (*catalog.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Name == name && !c.IsDeleted {
			copy := *c
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCategoryRepo) Save(_ context.Context, category *catalog.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.categories {
		if c.ID == category.ID {
			copy := *category
			r.categories[i] = &copy
			return nil
		}
	}
	copy := *category
	r.categories = append(r.categories, &copy)
	return nil
}

func (r *fakeCategoryRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.ID == id && !c.IsDeleted {
			c.IsDeleted = true
			return nil
		}
	}
	return shared.ErrNotFound
}

type fakeProductRepo struct {
	countByCategory int64
}

func (r *fakeProductRepo) FindByID(context.Context, uuid.UUID) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}
func (r *fakeProductRepo) FindAll(context.Context) ([]catalog.Product, error) { return nil, nil }
func (r *fakeProductRepo) FindByCategory(context.Context, uuid.UUID) ([]catalog.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) FindByStatus(context.Context, catalog.ProductStatus) ([]catalog.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) FindByCategoryAndStatus(context.Context, uuid.UUID, catalog.ProductStatus) ([]catalog.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Save(context.Context, *catalog.Product) error      { return nil }
func (r *fakeProductRepo) DeleteByID(context.Context, uuid.UUID) error       { return nil }
func (r *fakeProductRepo) ExistsByID(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}
func (r *fakeProductRepo) CountByCategory(context.Context, uuid.UUID) (int64, error) {
	return r.countByCategory, nil
}

func passthroughAuth(c *gin.Context) { c.Next() }

func setupCategoryRouter(products *fakeProductRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := appcatalog.NewCategoryService(&fakeCategoryRepo{}, products, zap.NewNop())

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewCategoryHandler(service, passthroughAuth).RegisterRoutes(api)
	return engine
}

type envelope struct {
	Success bool            `json:"success"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func postJSON(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestCategoryHandler_CreateAndGet(t *testing.T) {
	engine := setupCategoryRouter(&fakeProductRepo{})

	w := postJSON(engine, "/api/v1/categories", `{"name":"Kitchen"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.Status)

	var created struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Kitchen", created.Name)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/"+created.ID.String(), nil)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryHandler_CreateDuplicate(t *testing.T) {
	engine := setupCategoryRouter(&fakeProductRepo{})

	w := postJSON(engine, "/api/v1/categories", `{"name":"Kitchen"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(engine, "/api/v1/categories", `{"name":"Kitchen"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusConflict, env.Status)
}

func TestCategoryHandler_InvalidInput(t *testing.T) {
	engine := setupCategoryRouter(&fakeProductRepo{})

	w := postJSON(engine, "/api/v1/categories", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryHandler_DeleteReferencedConflict(t *testing.T) {
	engine := setupCategoryRouter(&fakeProductRepo{countByCategory: 2})

	w := postJSON(engine, "/api/v1/categories", `{"name":"Busy"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	env := decodeEnvelope(t, w)
	var created struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/categories/"+created.ID.String(), nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCategoryHandler_GetInvalidID(t *testing.T) {
	engine := setupCategoryRouter(&fakeProductRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/not-a-uuid", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryHandler_GetNotFound(t *testing.T) {
	engine := setupCategoryRouter(&fakeProductRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/"+uuid.NewString(), nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping() error { return s.err }

func TestSystemHandler_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewSystemHandler(stubPinger{}).RegisterRoutes(api)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSystemHandler_HealthDegraded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewSystemHandler(stubPinger{err: errors.New("down")}).RegisterRoutes(api)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)

	var status struct {
		Database string `json:"database"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &status))
	assert.Equal(t, "down", status.Database)
}
