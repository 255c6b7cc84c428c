package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
)

// ProgressRepository defines persistence operations for user playback progress.
type ProgressRepository interface {
	GetByUserAndContent(ctx context.Context, userID, contentID uint64) (*models.UserProgress, error)
	Create(ctx context.Context, progress *models.UserProgress) error
	Update(ctx context.Context, progress *models.UserProgress) error
	// CountCompletedInSeries counts completed contents a user has in a series,
	// used for series completion summaries.
	CountCompletedInSeries(ctx context.Context, userID, seriesID uint64) (int64, error)
}

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a MySQL-backed progress repository.
func NewProgressRepository(db *sql.DB) ProgressRepository {
	return &progressRepository{db: db}
}

const progressColumns = `id, user_id, content_id, series_id, progress_seconds, total_seconds,
	progress_percentage, completed, completed_at, watch_count, last_position_seconds,
	device_type, created_at, updated_at`

func scanProgress(row interface{ Scan(...interface{}) error }) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := row.Scan(
		&progress.ID,
		&progress.UserID,
		&progress.ContentID,
		&progress.SeriesID,
		&progress.ProgressSeconds,
		&progress.TotalSeconds,
		&progress.ProgressPercentage,
		&progress.Completed,
		&progress.CompletedAt,
		&progress.WatchCount,
		&progress.LastPositionSecs,
		&progress.DeviceType,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) GetByUserAndContent(ctx context.Context, userID, contentID uint64) (*models.UserProgress, error) {
	query := "SELECT " + progressColumns + " FROM user_progress WHERE user_id = ? AND content_id = ?"

	progress, err := scanProgress(r.db.QueryRowContext(ctx, query, userID, contentID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return progress, nil
}

func (r *progressRepository) Create(ctx context.Context, progress *models.UserProgress) error {
	query := `
		INSERT INTO user_progress (user_id, content_id, series_id, progress_seconds, total_seconds,
			progress_percentage, completed, completed_at, watch_count, last_position_seconds,
			device_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		progress.UserID, progress.ContentID, progress.SeriesID,
		progress.ProgressSeconds, progress.TotalSeconds, progress.ProgressPercentage,
		progress.Completed, progress.CompletedAt, progress.WatchCount,
		progress.LastPositionSecs, progress.DeviceType, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create progress: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get progress id: %w", err)
	}
	progress.ID = uint64(id)
	progress.CreatedAt = now
	progress.UpdatedAt = now
	return nil
}

func (r *progressRepository) Update(ctx context.Context, progress *models.UserProgress) error {
	query := `
		UPDATE user_progress
		SET progress_seconds = ?, total_seconds = ?, progress_percentage = ?,
			completed = ?, completed_at = ?, watch_count = ?,
			last_position_seconds = ?, device_type = ?, updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		progress.ProgressSeconds, progress.TotalSeconds, progress.ProgressPercentage,
		progress.Completed, progress.CompletedAt, progress.WatchCount,
		progress.LastPositionSecs, progress.DeviceType, progress.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}

func (r *progressRepository) CountCompletedInSeries(ctx context.Context, userID, seriesID uint64) (int64, error) {
	query := "SELECT COUNT(*) FROM user_progress WHERE user_id = ? AND series_id = ? AND completed = TRUE"

	var count int64
	if err := r.db.QueryRowContext(ctx, query, userID, seriesID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed contents: %w", err)
	}
	return count, nil
}
