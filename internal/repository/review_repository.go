package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines the interface for review data access
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	FindByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID int64, page, pageSize int) ([]*domain.Review, int, error)
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id int64) error
	AverageRating(ctx context.Context, productID int64) (float64, error)
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = "id, product_id, rating, title, comment, created_at, updated_at"

func scanReview(row interface{ Scan(...interface{}) error }) (*domain.Review, error) {
	review := &domain.Review{}
	err := row.Scan(
		&review.ID,
		&review.ProductID,
		&review.Rating,
		&review.Title,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	return review, err
}

// Create inserts a new review and fills in the generated identifier. A
// foreign key rejection on product_id maps to ErrProductNotFound.
func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (product_id, rating, title, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		review.ProductID,
		review.Rating,
		review.Title,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	).Scan(&review.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// FindByID retrieves a review by ID
func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review by ID: %w", err)
	}

	return review, nil
}

// ListByProduct retrieves reviews for a product, newest first
func (r *reviewRepository) ListByProduct(ctx context.Context, productID int64, page, pageSize int) ([]*domain.Review, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE product_id = $1`, productID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	offset := (page - 1) * pageSize

	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, productID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, total, nil
}

// Update overwrites the stored record with the given review
func (r *reviewRepository) Update(ctx context.Context, review *domain.Review) error {
	query := `UPDATE reviews SET rating = $2, title = $3, comment = $4, updated_at = $5 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, review.ID, review.Rating, review.Title, review.Comment, review.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// Delete removes a review
func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// AverageRating returns the mean rating for a product, 0 when unreviewed
func (r *reviewRepository) AverageRating(ctx context.Context, productID int64) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `SELECT AVG(rating) FROM reviews WHERE product_id = $1`, productID).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to average ratings: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
