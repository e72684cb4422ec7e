package service

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

// ReviewService is the entity access facade for product reviews
type ReviewService interface {
	CreateReview(ctx context.Context, input CreateReviewInput) Result
	GetReview(ctx context.Context, id int64) Result
	ListProductReviews(ctx context.Context, productID int64, page, limit int) Result
	UpdateReview(ctx context.Context, id int64, input UpdateReviewInput) Result
	DeleteReview(ctx context.Context, id int64) Result
}

// CreateReviewInput carries a validated review creation payload
type CreateReviewInput struct {
	ProductID int64
	Rating    int
	Title     string
	Comment   string
}

// UpdateReviewInput carries a partial review update
type UpdateReviewInput struct {
	Rating  *int
	Title   *string
	Comment *string
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	logger     *zap.Logger
}

// NewReviewService creates a new instance of ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, logger *zap.Logger) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, logger: logger}
}

// CreateReview creates a review; product_id must reference an existing
// product
func (s *reviewService) CreateReview(ctx context.Context, input CreateReviewInput) Result {
	now := time.Now()
	review := &domain.Review{
		ProductID: input.ProductID,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return Fail("Referenced product does not exist", CodeValidation)
		}
		s.logger.Error("Failed to create review", zap.Error(err))
		return Fail("Unable to create review", CodeStore)
	}

	return OK("Review created successfully", review)
}

// GetReview looks up a review by identifier
func (s *reviewService) GetReview(ctx context.Context, id int64) Result {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return Fail("Review not found", CodeNotFound)
		}
		s.logger.Error("Failed to get review", zap.Error(err))
		return Fail("Unable to get review", CodeStore)
	}
	return OK("Review retrieved successfully", review)
}

// ListProductReviews returns one page of a product's reviews, newest first
func (s *reviewService) ListProductReviews(ctx context.Context, productID int64, page, limit int) Result {
	reviews, total, err := s.reviewRepo.ListByProduct(ctx, productID, page, limit)
	if err != nil {
		s.logger.Error("Failed to list reviews", zap.Error(err))
		return Fail("Unable to list reviews", CodeStore)
	}
	return OK("Reviews retrieved successfully", Page{
		Items: reviews,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// UpdateReview applies only the provided fields and returns the post-update
// record
func (s *reviewService) UpdateReview(ctx context.Context, id int64, input UpdateReviewInput) Result {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return Fail("Review not found", CodeNotFound)
		}
		s.logger.Error("Failed to load review for update", zap.Error(err))
		return Fail("Unable to update review", CodeStore)
	}

	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Title != nil {
		review.Title = *input.Title
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}
	review.UpdatedAt = time.Now()

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return Fail("Review not found", CodeNotFound)
		}
		s.logger.Error("Failed to update review", zap.Error(err))
		return Fail("Unable to update review", CodeStore)
	}

	return OK("Review updated successfully", review)
}

// DeleteReview hard-deletes a review
func (s *reviewService) DeleteReview(ctx context.Context, id int64) Result {
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return Fail("Review not found", CodeNotFound)
		}
		s.logger.Error("Failed to delete review", zap.Error(err))
		return Fail("Unable to delete review", CodeStore)
	}
	return OK("Review deleted successfully", nil)
}
