package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marketplace/catalogue/internal/domain/catalog"
	"github.com/marketplace/catalogue/internal/domain/shared"
	"github.com/marketplace/catalogue/internal/infrastructure/peers"
)

// In-memory repositories and configurable peer stubs. Stubs record
// every call so tests can assert call counts and arguments.

type memProductRepo struct {
	mu       sync.Mutex
	products []*catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{}
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			copy := *p
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAll(_ context.Context) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProductRepo) FindByCategory(_ context.Context, categoryID uuid.UUID) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindByStatus(_ context.Context, status catalog.ProductStatus) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.products {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindByCategoryAndStatus(_ context.Context, categoryID uuid.UUID, status catalog.ProductStatus) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID && p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == product.ID {
			copy := *product
			r.products[i] = &copy
			return nil
		}
	}
	copy := *product
	r.products = append(r.products, &copy)
	return nil
}

func (r *memProductRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memProductRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProductRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

type memCategoryRepo struct {
	mu         sync.Mutex
	categories []*catalog.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{}
}

func (r *memCategoryRepo) FindActive(_ context.Context) ([]catalog.Category, error) {
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

func (r *memCategoryRepo) FindByIDActive(_ context.Context, id uuid.UUID) (*catalog.Category, error) {
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

func (r *memCategoryRepo) FindByNameActive(_ context.Context, name string) (*catalog.Category, error) {
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

func (r *memCategoryRepo) Save(_ context.Context, category *catalog.Category) error {
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

func (r *memCategoryRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
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

type inventoryCall struct {
	ProductID uuid.UUID
	Quantity  int
}

type stubInventory struct {
	mu            sync.Mutex
	delay         time.Duration
	quantity      *int
	increaseOK    bool
	decreaseOK    bool
	getCalls      int
	increaseCalls []inventoryCall
	decreaseCalls []inventoryCall
}

func newStubInventory(quantity *int) *stubInventory {
	return &stubInventory{quantity: quantity, increaseOK: true, decreaseOK: true}
}

func (s *stubInventory) GetInventory(_ context.Context, _ uuid.UUID) *int {
	time.Sleep(s.delay)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.quantity == nil {
		return nil
	}
	current := *s.quantity
	return &current
}

func (s *stubInventory) Increase(_ context.Context, productID uuid.UUID, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.increaseCalls = append(s.increaseCalls, inventoryCall{productID, quantity})
	if s.increaseOK && s.quantity != nil {
		*s.quantity += quantity
	}
	return s.increaseOK
}

func (s *stubInventory) Decrease(_ context.Context, productID uuid.UUID, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decreaseCalls = append(s.decreaseCalls, inventoryCall{productID, quantity})
	if s.decreaseOK && s.quantity != nil {
		*s.quantity -= quantity
	}
	return s.decreaseOK
}

type uploadCall struct {
	File        peers.MediaFile
	ProductID   uuid.UUID
	IsThumbnail bool
}

type stubMedia struct {
	mu           sync.Mutex
	delay        time.Duration
	thumbnailURL string
	thumbnailID  string
	mediaURLs    []string
	mediaIDs     []string
	uploadOK     bool
	failUploads  map[string]bool // filename -> force failure
	deleteOK     bool
	uploads      []uploadCall
	deletes      []string
	lookupCalls  int
}

func newStubMedia() *stubMedia {
	return &stubMedia{uploadOK: true, deleteOK: true}
}

func (s *stubMedia) Upload(_ context.Context, file peers.MediaFile, productID uuid.UUID, isThumbnail bool) *peers.UploadResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, uploadCall{file, productID, isThumbnail})
	if !s.uploadOK || s.failUploads[file.Filename] {
		return nil
	}
	return &peers.UploadResult{ID: "up-" + file.Filename, FileURL: "http://cdn/" + file.Filename}
}

func (s *stubMedia) GetThumbnailURL(_ context.Context, _ uuid.UUID) string {
	time.Sleep(s.delay)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookupCalls++
	return s.thumbnailURL
}

func (s *stubMedia) GetThumbnailID(_ context.Context, _ uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookupCalls++
	return s.thumbnailID
}

func (s *stubMedia) GetMediaURLs(_ context.Context, _ uuid.UUID) []string {
	time.Sleep(s.delay)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookupCalls++
	return s.mediaURLs
}

func (s *stubMedia) GetMediaIDs(_ context.Context, _ uuid.UUID) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookupCalls++
	return s.mediaIDs
}

func (s *stubMedia) Delete(_ context.Context, mediaID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, mediaID)
	return s.deleteOK
}

type stubPromotions struct {
	mu          sync.Mutex
	delay       time.Duration
	discount    *peers.Discount
	promotionID *int64
	addOK       bool
	updateOK    bool
	removeOK    bool
	addCalls    []peers.DiscountRequest
	updateCalls []string
	getCalls    int
}

func newStubPromotions() *stubPromotions {
	return &stubPromotions{addOK: true, updateOK: true, removeOK: true}
}

func (s *stubPromotions) GetDiscount(_ context.Context, _ uuid.UUID) *peers.Discount {
	time.Sleep(s.delay)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	return s.discount
}

func (s *stubPromotions) GetPromotionID(_ context.Context, _ uuid.UUID) *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	return s.promotionID
}

func (s *stubPromotions) Add(_ context.Context, req peers.DiscountRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addCalls = append(s.addCalls, req)
	return s.addOK
}

func (s *stubPromotions) Update(_ context.Context, id string, _ peers.DiscountRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls = append(s.updateCalls, id)
	return s.updateOK
}

func (s *stubPromotions) Remove(_ context.Context, _ string) bool {
	return s.removeOK
}

type stubReviews struct {
	mu       sync.Mutex
	delay    time.Duration
	reviews  *peers.Reviews
	getCalls int
}

func newStubReviews() *stubReviews {
	return &stubReviews{}
}

func (s *stubReviews) GetReviews(_ context.Context, _ uuid.UUID) *peers.Reviews {
	time.Sleep(s.delay)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	return s.reviews
}

func intPtr(n int) *int { return &n }

func float64Ptr(f float64) *float64 { return &f }
