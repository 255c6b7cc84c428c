package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
)

// RatingRepository defines persistence operations for content ratings.
type RatingRepository interface {
	// Upsert inserts the rating or, when the (user, content) pair already has
	// one, replaces its value and review in place. It returns true when a new
	// row was created.
	Upsert(ctx context.Context, rating *models.ContentRating) (bool, error)
	GetByUserAndContent(ctx context.Context, userID, contentID uint64) (*models.ContentRating, error)
	GetByID(ctx context.Context, id uint64) (*models.ContentRating, error)
	AddHelpfulVote(ctx context.Context, id uint64) error
	AddUnhelpfulVote(ctx context.Context, id uint64) error
	// AverageForContent returns the mean rating and the number of ratings.
	AverageForContent(ctx context.Context, contentID uint64) (float64, int64, error)
	Delete(ctx context.Context, userID, contentID uint64) (bool, error)
}

type ratingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a MySQL-backed rating repository.
func NewRatingRepository(db *sql.DB) RatingRepository {
	return &ratingRepository{db: db}
}

const ratingColumns = `id, user_id, content_id, rating, review, helpful_votes, unhelpful_votes, created_at, updated_at`

func scanRating(row interface{ Scan(...interface{}) error }) (*models.ContentRating, error) {
	var rating models.ContentRating
	err := row.Scan(
		&rating.ID,
		&rating.UserID,
		&rating.ContentID,
		&rating.Rating,
		&rating.Review,
		&rating.HelpfulVotes,
		&rating.UnhelpfulVotes,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *models.ContentRating) (bool, error) {
	// Re-rating keeps the accumulated helpful/unhelpful votes.
	query := `
		INSERT INTO content_ratings (user_id, content_id, rating, review, helpful_votes, unhelpful_votes, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, 0, ?, ?)
		ON DUPLICATE KEY UPDATE rating = VALUES(rating), review = VALUES(review), updated_at = VALUES(updated_at)
	`
	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		rating.UserID, rating.ContentID, rating.Rating, rating.Review, now, now)
	if err != nil {
		return false, fmt.Errorf("failed to upsert rating: %w", err)
	}

	// MySQL reports 1 affected row for an insert, 2 for an in-place update.
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected == 1, nil
}

func (r *ratingRepository) GetByUserAndContent(ctx context.Context, userID, contentID uint64) (*models.ContentRating, error) {
	query := "SELECT " + ratingColumns + " FROM content_ratings WHERE user_id = ? AND content_id = ?"

	rating, err := scanRating(r.db.QueryRowContext(ctx, query, userID, contentID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return rating, nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id uint64) (*models.ContentRating, error) {
	query := "SELECT " + ratingColumns + " FROM content_ratings WHERE id = ?"

	rating, err := scanRating(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}
	return rating, nil
}

func (r *ratingRepository) AddHelpfulVote(ctx context.Context, id uint64) error {
	query := "UPDATE content_ratings SET helpful_votes = helpful_votes + 1, updated_at = NOW() WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to add helpful vote: %w", err)
	}
	return nil
}

func (r *ratingRepository) AddUnhelpfulVote(ctx context.Context, id uint64) error {
	query := "UPDATE content_ratings SET unhelpful_votes = unhelpful_votes + 1, updated_at = NOW() WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to add unhelpful vote: %w", err)
	}
	return nil
}

func (r *ratingRepository) AverageForContent(ctx context.Context, contentID uint64) (float64, int64, error) {
	query := "SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM content_ratings WHERE content_id = ?"

	var avg float64
	var count int64
	if err := r.db.QueryRowContext(ctx, query, contentID).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to compute rating average: %w", err)
	}
	return avg, count, nil
}

func (r *ratingRepository) Delete(ctx context.Context, userID, contentID uint64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM content_ratings WHERE user_id = ? AND content_id = ?", userID, contentID)
	if err != nil {
		return false, fmt.Errorf("failed to delete rating: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}
