package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
)

// SeriesRepository defines persistence operations for series.
type SeriesRepository interface {
	Create(ctx context.Context, series *models.Series) error
	GetByID(ctx context.Context, id uint64) (*models.Series, error)
	IncrementViews(ctx context.Context, id uint64) error
}

type seriesRepository struct {
	db *sql.DB
}

// NewSeriesRepository creates a MySQL-backed series repository.
func NewSeriesRepository(db *sql.DB) SeriesRepository {
	return &seriesRepository{db: db}
}

const seriesColumns = `id, title, description, teacher_id, mosque_id, theme_id, lang, status,
	cover_image_url, is_featured, is_complete, content_count, total_duration_seconds,
	views_count, followers_count, published_at, created_at, updated_at`

func scanSeries(row interface{ Scan(...interface{}) error }) (*models.Series, error) {
	var series models.Series
	err := row.Scan(
		&series.ID,
		&series.Title,
		&series.Description,
		&series.TeacherID,
		&series.MosqueID,
		&series.ThemeID,
		&series.Lang,
		&series.Status,
		&series.CoverImageURL,
		&series.IsFeatured,
		&series.IsComplete,
		&series.ContentCount,
		&series.TotalDurationSeconds,
		&series.ViewsCount,
		&series.FollowersCount,
		&series.PublishedAt,
		&series.CreatedAt,
		&series.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &series, nil
}

func (r *seriesRepository) Create(ctx context.Context, series *models.Series) error {
	query := `
		INSERT INTO series (title, description, teacher_id, mosque_id, theme_id, lang, status,
			cover_image_url, is_featured, is_complete, content_count, total_duration_seconds,
			views_count, followers_count, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, 0, 0, ?, ?, ?)
	`
	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		series.Title, series.Description, series.TeacherID, series.MosqueID,
		series.ThemeID, series.Lang, series.Status, series.CoverImageURL,
		series.IsFeatured, series.IsComplete, series.PublishedAt, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create series: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get series id: %w", err)
	}
	series.ID = uint64(id)
	series.CreatedAt = now
	series.UpdatedAt = now
	return nil
}

func (r *seriesRepository) GetByID(ctx context.Context, id uint64) (*models.Series, error) {
	query := "SELECT " + seriesColumns + " FROM series WHERE id = ?"

	series, err := scanSeries(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series: %w", err)
	}
	return series, nil
}

func (r *seriesRepository) IncrementViews(ctx context.Context, id uint64) error {
	query := "UPDATE series SET views_count = views_count + 1, updated_at = NOW() WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment series views: %w", err)
	}
	return nil
}
