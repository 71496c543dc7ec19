package service

import (
	"context"
	"fmt"
	"time"

	"jinstore/internal/model"
	"jinstore/internal/repository"
)

// ReviewService defines review operations
type ReviewService interface {
	PostReview(ctx context.Context, authorID int, req model.CreateReviewRequest) (*model.Review, error)
	GetProductReviews(ctx context.Context, productID int64) ([]model.Review, error)
}

type reviewService struct {
	repo repository.ReviewRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

// PostReview stores a review authored by the caller. The same author may
// review the same product more than once.
func (s *reviewService) PostReview(ctx context.Context, authorID int, req model.CreateReviewRequest) (*model.Review, error) {
	review := &model.Review{
		ProductID: req.ProductID,
		UserID:    authorID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review in repo: %w", err)
	}
	return review, nil
}

func (s *reviewService) GetProductReviews(ctx context.Context, productID int64) ([]model.Review, error) {
	reviews, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product reviews from repo: %w", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, nil
}
