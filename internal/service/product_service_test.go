package service

import (
	"context"
	"fmt"
	"testing"

	"jinstore/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProductRepo is an in-memory ProductRepository for service tests
type fakeProductRepo struct {
	products map[int64]*model.Product
	nextID   int64

	findResult  []model.Product
	findTotal   int64
	lastFilters model.ProductFilters

	newestLimit   int
	featuredLimit int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[int64]*model.Product{}, nextID: 1}
}

func (f *fakeProductRepo) Create(_ context.Context, p *model.Product) error {
	p.ID = f.nextID
	f.nextID++
	clone := *p
	f.products[p.ID] = &clone
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id int64) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductRepo) Find(_ context.Context, filters model.ProductFilters) ([]model.Product, int64, error) {
	f.lastFilters = filters
	return f.findResult, f.findTotal, nil
}

func (f *fakeProductRepo) FindNewest(_ context.Context, limit int) ([]model.Product, error) {
	f.newestLimit = limit
	return f.findResult, nil
}

func (f *fakeProductRepo) FindFeatured(_ context.Context, limit int) ([]model.Product, error) {
	f.featuredLimit = limit
	return f.findResult, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return fmt.Errorf("product not found for update: %w", pgx.ErrNoRows)
	}
	clone := *p
	f.products[p.ID] = &clone
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return fmt.Errorf("product not found for deletion: %w", pgx.ErrNoRows)
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) SetFeatured(_ context.Context, id int64, featured bool) error {
	p, ok := f.products[id]
	if !ok {
		return fmt.Errorf("product not found for is_featured update: %w", pgx.ErrNoRows)
	}
	p.IsFeatured = featured
	return nil
}

func (f *fakeProductRepo) SetOrganic(_ context.Context, id int64, organic bool) error {
	p, ok := f.products[id]
	if !ok {
		return fmt.Errorf("product not found for is_organic update: %w", pgx.ErrNoRows)
	}
	p.IsOrganic = organic
	return nil
}

func (f *fakeProductRepo) UpdateImages(_ context.Context, id int64, images []string) error {
	p, ok := f.products[id]
	if !ok {
		return fmt.Errorf("product not found for image update: %w", pgx.ErrNoRows)
	}
	p.Images = images
	return nil
}

func TestProductService_CreateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, t.TempDir())

	req := model.CreateProductRequest{Name: "Rice", Price: 50, Quantity: 10}
	product, err := svc.CreateProduct(context.Background(), 7, req, nil)

	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "Rice", product.Name)
	assert.Equal(t, 50.0, product.Price)
	assert.Equal(t, 10.0, product.Quantity)
	assert.Equal(t, 7, product.OwnerID)
	assert.False(t, product.IsFeatured) // never featured at creation
	assert.False(t, product.CreatedAt.IsZero())

	// The stored record round-trips through a fetch
	fetched, err := svc.GetProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, fetched.ID)
	assert.Equal(t, "Rice", fetched.Name)
}

func TestProductService_GetProductByID_NotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), t.TempDir())

	_, err := svc.GetProductByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_ListProducts_PaginationMath(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, t.TempDir())

	repo.findTotal = 25
	repo.findResult = make([]model.Product, 10)

	page, err := svc.ListProducts(context.Background(), model.ProductFilters{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages) // ceil(25/10)
	assert.Len(t, page.Products, 10)
}

func TestProductService_ListProducts_PageBeyondEnd(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, t.TempDir())

	repo.findTotal = 25
	repo.findResult = nil // store returns no rows past the last page

	page, err := svc.ListProducts(context.Background(), model.ProductFilters{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products) // empty slice, not an error
	assert.Equal(t, 3, page.TotalPages)
}

func TestProductService_ListProducts_InvalidPagination(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), t.TempDir())

	_, err := svc.ListProducts(context.Background(), model.ProductFilters{Page: 1, Limit: 0})
	assert.ErrorIs(t, err, ErrInvalidPagination)

	_, err = svc.ListProducts(context.Background(), model.ProductFilters{Page: -1, Limit: 10})
	assert.ErrorIs(t, err, ErrInvalidPagination)
}

func TestProductService_ListNewArrivals(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, t.TempDir())

	repo.findResult = make([]model.Product, 3)

	page, err := svc.ListNewArrivals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NewArrivalsLimit, repo.newestLimit)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.TotalPages)
}

func TestProductService_ListFeatured(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, t.TempDir())

	repo.findResult = nil

	page, err := svc.ListFeatured(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FeaturedLimit, repo.featuredLimit)
	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
}

func TestProductService_UpdateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, t.TempDir())

	created, err := svc.CreateProduct(context.Background(), 1, model.CreateProductRequest{Name: "Rice", Price: 50, Quantity: 10}, nil)
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), created.ID, model.UpdateProductRequest{
		Name: "Brown Rice", Price: 60, Quantity: 5, Category: "grains", IsOrganic: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Brown Rice", updated.Name)
	assert.Equal(t, 60.0, updated.Price)
	assert.True(t, updated.IsOrganic)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), t.TempDir())

	_, err := svc.UpdateProduct(context.Background(), 42, model.UpdateProductRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeleteProduct_IdempotentFailure(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, t.TempDir())

	created, err := svc.CreateProduct(context.Background(), 1, model.CreateProductRequest{Name: "Rice", Price: 50, Quantity: 10}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), created.ID))

	// Repeating the delete fails the same way, it never crashes
	err = svc.DeleteProduct(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	err = svc.DeleteProduct(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_SetFeatured_DoubleToggleRoundTrips(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo, t.TempDir())

	created, err := svc.CreateProduct(context.Background(), 1, model.CreateProductRequest{Name: "Rice", Price: 50, Quantity: 10}, nil)
	require.NoError(t, err)
	original := created.IsFeatured

	flipped, err := svc.SetFeatured(context.Background(), created.ID, !original)
	require.NoError(t, err)
	assert.Equal(t, !original, flipped.IsFeatured)

	restored, err := svc.SetFeatured(context.Background(), created.ID, original)
	require.NoError(t, err)
	assert.Equal(t, original, restored.IsFeatured)
}

func TestProductService_SetOrganic_NotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), t.TempDir())

	_, err := svc.SetOrganic(context.Background(), 42, true)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
