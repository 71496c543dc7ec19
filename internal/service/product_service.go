package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jinstore/internal/model"
	"jinstore/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidPagination = errors.New("page and limit must be positive")
	ErrInvalidFileFormat = errors.New("invalid file format. only .jpg, .jpeg, .png, .webp are allowed")
	ErrFileSizeExceeded  = errors.New("file size exceeds limit")
)

const (
	MaxImageSize = 5 * 1024 * 1024 // 5MB

	// Fixed window sizes for the new-arrivals and featured shortcuts
	NewArrivalsLimit = 8
	FeaturedLimit    = 8

	DefaultPageLimit = 100
)

// ProductService defines catalog operations
type ProductService interface {
	CreateProduct(ctx context.Context, ownerID int, req model.CreateProductRequest, images []*multipart.FileHeader) (*model.Product, error)
	GetProductByID(ctx context.Context, productID int64) (*model.Product, error)
	ListProducts(ctx context.Context, filters model.ProductFilters) (*model.ProductPage, error)
	ListNewArrivals(ctx context.Context) (*model.ProductPage, error)
	ListFeatured(ctx context.Context) (*model.ProductPage, error)
	UpdateProduct(ctx context.Context, productID int64, req model.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error
	SetFeatured(ctx context.Context, productID int64, featured bool) (*model.Product, error)
	SetOrganic(ctx context.Context, productID int64, organic bool) (*model.Product, error)
	ReplaceImages(ctx context.Context, productID int64, images []*multipart.FileHeader) (*model.Product, error)
}

type productService struct {
	repo       repository.ProductRepository
	uploadsDir string
}

// NewProductService creates a new ProductService
func NewProductService(repo repository.ProductRepository, uploadsDir string) ProductService {
	return &productService{repo: repo, uploadsDir: uploadsDir}
}

// CreateProduct stores a new product owned by the caller. New products are
// never featured; the flag is set later through the admin toggle.
func (s *productService) CreateProduct(ctx context.Context, ownerID int, req model.CreateProductRequest, images []*multipart.FileHeader) (*model.Product, error) {
	imagePaths, err := s.saveImageFiles(images)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		IsOrganic:   req.IsOrganic,
		IsFeatured:  false,
		Images:      imagePaths,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product in repo: %w", err)
	}
	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID int64) (*model.Product, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListProducts runs the filtered, paginated catalog query. A page past the
// last one yields an empty slice, not an error.
func (s *productService) ListProducts(ctx context.Context, filters model.ProductFilters) (*model.ProductPage, error) {
	if filters.Page <= 0 || filters.Limit <= 0 {
		return nil, ErrInvalidPagination
	}

	products, total, err := s.repo.Find(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list products from repo: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}

	totalPages := int((total + int64(filters.Limit) - 1) / int64(filters.Limit))

	return &model.ProductPage{
		Total:       total,
		CurrentPage: filters.Page,
		TotalPages:  totalPages,
		Products:    products,
	}, nil
}

// ListNewArrivals returns the most recently created products, ignoring all
// filters and pagination
func (s *productService) ListNewArrivals(ctx context.Context) (*model.ProductPage, error) {
	products, err := s.repo.FindNewest(ctx, NewArrivalsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list new arrivals from repo: %w", err)
	}
	return fixedWindowPage(products), nil
}

// ListFeatured returns the featured products, ignoring all filters and
// pagination
func (s *productService) ListFeatured(ctx context.Context) (*model.ProductPage, error) {
	products, err := s.repo.FindFeatured(ctx, FeaturedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products from repo: %w", err)
	}
	return fixedWindowPage(products), nil
}

func fixedWindowPage(products []model.Product) *model.ProductPage {
	if products == nil {
		products = []model.Product{}
	}
	return &model.ProductPage{
		Total:       int64(len(products)),
		CurrentPage: 1,
		TotalPages:  1,
		Products:    products,
	}
}

// UpdateProduct fully replaces the mutable fields of a product. Ownership is
// not re-checked: the route is admin-gated and admin override is intentional.
func (s *productService) UpdateProduct(ctx context.Context, productID int64, req model.UpdateProductRequest) (*model.Product, error) {
	existing, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for update: %w", err)
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.SKU = req.SKU
	existing.Category = req.Category
	existing.Price = req.Price
	existing.Quantity = req.Quantity
	existing.IsOrganic = req.IsOrganic
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		// A concurrent delete between the fetch and this update lands here
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product in repo: %w", err)
	}
	return existing, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID int64) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product in repo: %w", err)
	}
	return nil
}

// SetFeatured sets the featured flag; setting the current value again is a
// no-op with the same result
func (s *productService) SetFeatured(ctx context.Context, productID int64, featured bool) (*model.Product, error) {
	if err := s.repo.SetFeatured(ctx, productID, featured); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to set featured flag in repo: %w", err)
	}
	return s.GetProductByID(ctx, productID)
}

// SetOrganic sets the organic flag, same semantics as SetFeatured
func (s *productService) SetOrganic(ctx context.Context, productID int64, organic bool) (*model.Product, error) {
	if err := s.repo.SetOrganic(ctx, productID, organic); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to set organic flag in repo: %w", err)
	}
	return s.GetProductByID(ctx, productID)
}

// ReplaceImages stores the uploaded files and replaces the product's image
// list. An empty upload clears the list.
func (s *productService) ReplaceImages(ctx context.Context, productID int64, images []*multipart.FileHeader) (*model.Product, error) {
	existing, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to find product for image update: %w", err)
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	imagePaths, err := s.saveImageFiles(images)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateImages(ctx, productID, imagePaths); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product images in repo: %w", err)
	}

	existing.Images = imagePaths
	return existing, nil
}

// saveImageFiles validates and stores the uploaded images under the uploads
// directory, returning their relative paths. Filenames are regenerated so
// uploads can never collide or traverse.
func (s *productService) saveImageFiles(files []*multipart.FileHeader) ([]string, error) {
	paths := []string{}
	for _, fileHeader := range files {
		if fileHeader.Size > MaxImageSize {
			return nil, ErrFileSizeExceeded
		}
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
		if !allowedExts[ext] {
			return nil, ErrInvalidFileFormat
		}

		productImagesDir := filepath.Join(s.uploadsDir, "products")
		if err := os.MkdirAll(productImagesDir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}

		fileName := uuid.NewString() + ext
		filePath := filepath.Join(productImagesDir, fileName)

		if err := saveUploadedFile(fileHeader, filePath); err != nil {
			return nil, err
		}
		paths = append(paths, filepath.ToSlash(filePath))
	}
	return paths, nil
}

func saveUploadedFile(fileHeader *multipart.FileHeader, dstPath string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create file on server: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}
