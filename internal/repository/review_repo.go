package repository

import (
	"context"
	"fmt"

	"jinstore/internal/model"
)

// ReviewRepository defines operations for review data
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByProduct(ctx context.Context, productID int64) ([]model.Review, error)
}

type reviewRepository struct {
	db DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a new review into the database
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	sql := `INSERT INTO reviews (product_id, user_id, rating, comment, created_at)
            VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, review.ProductID, review.UserID, review.Rating, review.Comment, review.CreatedAt).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// FindByProduct retrieves all reviews for a product, newest first
func (r *reviewRepository) FindByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	sql := `SELECT id, product_id, user_id, rating, comment, created_at
            FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, sql, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review rows: %w", err)
	}
	return reviews, nil
}
