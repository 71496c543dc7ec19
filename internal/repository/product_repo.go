package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jinstore/internal/model"

	"github.com/jackc/pgx/v5"
)

const productColumns = `id, name, description, sku, category, price, quantity, is_organic, is_featured, images, owner_id, created_at, updated_at`

// ProductRepository defines operations for catalog data
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	Find(ctx context.Context, filters model.ProductFilters) ([]model.Product, int64, error)
	FindNewest(ctx context.Context, limit int) ([]model.Product, error)
	FindFeatured(ctx context.Context, limit int) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int64) error
	SetFeatured(ctx context.Context, id int64, featured bool) error
	SetOrganic(ctx context.Context, id int64, organic bool) error
	UpdateImages(ctx context.Context, id int64, images []string) error
}

type productRepository struct {
	db DB
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(db DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product into the database
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	sql := `INSERT INTO products (name, description, sku, category, price, quantity, is_organic, is_featured, images, owner_id, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql,
		p.Name, p.Description, p.SKU, p.Category, p.Price, p.Quantity,
		p.IsOrganic, p.IsFeatured, p.Images, p.OwnerID, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindByID retrieves a product by its ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	p := &model.Product{}
	sql := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.SKU, &p.Category, &p.Price, &p.Quantity,
		&p.IsOrganic, &p.IsFeatured, &p.Images, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

// buildFilterClause translates the optional filters into a WHERE clause with
// positional arguments. Absent filters impose no constraint.
func buildFilterClause(filters model.ProductFilters) (string, []any) {
	args := []any{}
	argCount := 1
	var conditions []string

	if filters.Category != nil && *filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}
	if filters.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argCount))
		args = append(args, *filters.MinPrice)
		argCount++
	}
	if filters.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argCount))
		args = append(args, *filters.MaxPrice)
		argCount++
	}
	if filters.IsOrganic != nil {
		conditions = append(conditions, fmt.Sprintf("is_organic = $%d", argCount))
		args = append(args, *filters.IsOrganic)
		argCount++
	}
	if filters.Search != nil && *filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argCount))
		args = append(args, "%"+*filters.Search+"%")
		argCount++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args
}

// Find retrieves a page of products matching the filters plus the total
// matching count
func (r *productRepository) Find(ctx context.Context, filters model.ProductFilters) ([]model.Product, int64, error) {
	whereClause, args := buildFilterClause(filters)

	var total int64
	countQuery := "SELECT COUNT(*) FROM products" + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (filters.Page - 1) * filters.Limit
	pageQuery := fmt.Sprintf("SELECT %s FROM products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		productColumns, whereClause, len(args)+1, len(args)+2)
	pageArgs := append(args, filters.Limit, offset)

	products, err := r.queryProducts(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// FindNewest retrieves the most recently created products
func (r *productRepository) FindNewest(ctx context.Context, limit int) ([]model.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC LIMIT $1`
	return r.queryProducts(ctx, sql, limit)
}

// FindFeatured retrieves products flagged as featured
func (r *productRepository) FindFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	sql := `SELECT ` + productColumns + ` FROM products WHERE is_featured = TRUE ORDER BY created_at DESC LIMIT $1`
	return r.queryProducts(ctx, sql, limit)
}

func (r *productRepository) queryProducts(ctx context.Context, sql string, args ...any) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.SKU, &p.Category, &p.Price, &p.Quantity,
			&p.IsOrganic, &p.IsFeatured, &p.Images, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// Update replaces the mutable fields of a product
func (r *productRepository) Update(ctx context.Context, p *model.Product) error {
	sql := `UPDATE products
            SET name = $1, description = $2, sku = $3, category = $4, price = $5, quantity = $6, is_organic = $7
            WHERE id = $8 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, p.Name, p.Description, p.SKU, p.Category, p.Price, p.Quantity, p.IsOrganic, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("product not found for update: %w", pgx.ErrNoRows)
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Delete removes a product from the database
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM products WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found for deletion: %w", pgx.ErrNoRows)
	}
	return nil
}

// SetFeatured sets the featured flag on a product
func (r *productRepository) SetFeatured(ctx context.Context, id int64, featured bool) error {
	return r.setFlag(ctx, "is_featured", id, featured)
}

// SetOrganic sets the organic flag on a product
func (r *productRepository) SetOrganic(ctx context.Context, id int64, organic bool) error {
	return r.setFlag(ctx, "is_organic", id, organic)
}

func (r *productRepository) setFlag(ctx context.Context, column string, id int64, value bool) error {
	sql := fmt.Sprintf(`UPDATE products SET %s = $1 WHERE id = $2`, column)
	cmdTag, err := r.db.Exec(ctx, sql, value, id)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", column, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found for %s update: %w", column, pgx.ErrNoRows)
	}
	return nil
}

// UpdateImages replaces the product's image list
func (r *productRepository) UpdateImages(ctx context.Context, id int64, images []string) error {
	sql := `UPDATE products SET images = $1 WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, sql, images, id)
	if err != nil {
		return fmt.Errorf("failed to update product images: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("product not found for image update: %w", pgx.ErrNoRows)
	}
	return nil
}
