package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
)

// ContentRepository defines persistence operations for contents.
type ContentRepository interface {
	// Create inserts the content and applies every denormalized counter it
	// feeds (theme chain, series stats, teacher and mosque totals) in one
	// transaction. themeChain is the content's theme and its ancestors, child
	// first; empty when the content is unthemed.
	Create(ctx context.Context, content *models.Content, themeChain []uint64) error
	GetByID(ctx context.Context, id uint64) (*models.Content, error)
	ListByTeacher(ctx context.Context, teacherID uint64, limit, offset int) ([]*models.Content, error)
	ListBySeries(ctx context.Context, seriesID uint64) ([]*models.Content, error)
	Update(ctx context.Context, content *models.Content) error
	// UpdateStatus moves the content from one of fromStatuses to toStatus in a
	// single conditional UPDATE. It returns false without error when the row
	// was not in any of the expected statuses (lost race or bad precondition).
	UpdateStatus(ctx context.Context, id uint64, fromStatuses []models.ContentStatus, toStatus models.ContentStatus) (bool, error)
	// PublishStatus is UpdateStatus plus stamping published_at, which must be
	// set in the same statement as the status change.
	PublishStatus(ctx context.Context, id uint64, fromStatuses []models.ContentStatus, publishedAt time.Time) (bool, error)
	// Delete removes the row and reverses the counters Create applied, in one
	// transaction.
	Delete(ctx context.Context, content *models.Content, themeChain []uint64) error

	IncrementViews(ctx context.Context, id uint64) error
	IncrementDownloads(ctx context.Context, id uint64) error
	AdjustLikes(ctx context.Context, id uint64, delta int64) error
	AdjustFavorites(ctx context.Context, id uint64, delta int64) error
}

type contentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a MySQL-backed content repository.
func NewContentRepository(db *sql.DB) ContentRepository {
	return &contentRepository{db: db}
}

const contentColumns = `id, type, title, description, teacher_id, mosque_id, series_id, series_order,
	theme_id, lang, duration_seconds, status, published_at, thumbnail_url,
	views_count, downloads_count, likes_count, favorites_count, reports_count,
	download_enabled, download_requires_auth, created_at, updated_at`

func scanContent(row interface{ Scan(...interface{}) error }) (*models.Content, error) {
	var content models.Content
	err := row.Scan(
		&content.ID,
		&content.Type,
		&content.Title,
		&content.Description,
		&content.TeacherID,
		&content.MosqueID,
		&content.SeriesID,
		&content.SeriesOrder,
		&content.ThemeID,
		&content.Lang,
		&content.DurationSeconds,
		&content.Status,
		&content.PublishedAt,
		&content.ThumbnailURL,
		&content.ViewsCount,
		&content.DownloadsCount,
		&content.LikesCount,
		&content.FavoritesCount,
		&content.ReportsCount,
		&content.DownloadEnabled,
		&content.DownloadRequiresAuth,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepository) Create(ctx context.Context, content *models.Content, themeChain []uint64) error {
	query := `
		INSERT INTO contents (type, title, description, teacher_id, mosque_id, series_id, series_order,
			theme_id, lang, duration_seconds, status, published_at, thumbnail_url,
			views_count, downloads_count, likes_count, favorites_count, reports_count,
			download_enabled, download_requires_auth, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, 0, 0, 0, ?, ?, ?, ?)
	`
	now := time.Now()
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			content.Type, content.Title, content.Description, content.TeacherID,
			content.MosqueID, content.SeriesID, content.SeriesOrder, content.ThemeID,
			content.Lang, content.DurationSeconds, content.Status, content.PublishedAt,
			content.ThumbnailURL, content.DownloadEnabled, content.DownloadRequiresAuth,
			now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to create content: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get content id: %w", err)
		}
		content.ID = uint64(id)

		if err := adjustThemeCounts(ctx, tx, "content_count", themeChain, 1); err != nil {
			return err
		}
		return adjustOwnerStats(ctx, tx, content, 1)
	})
	if err != nil {
		return err
	}
	content.CreatedAt = now
	content.UpdatedAt = now
	return nil
}

// adjustOwnerStats applies one content's worth of denormalized counters to
// its series, teacher and mosque rows inside the caller's transaction. sign
// is +1 on create and -1 on delete.
func adjustOwnerStats(ctx context.Context, tx *sql.Tx, content *models.Content, sign int64) error {
	if content.SeriesID != nil {
		query := `
			UPDATE series
			SET content_count = GREATEST(0, CAST(content_count AS SIGNED) + ?),
				total_duration_seconds = GREATEST(0, CAST(total_duration_seconds AS SIGNED) + ?),
				updated_at = NOW()
			WHERE id = ?
		`
		if _, err := tx.ExecContext(ctx, query, sign, sign*content.DurationSeconds, *content.SeriesID); err != nil {
			return fmt.Errorf("failed to adjust series content stats: %w", err)
		}
	}

	query := "UPDATE teachers SET total_content_count = GREATEST(0, CAST(total_content_count AS SIGNED) + ?), updated_at = NOW() WHERE id = ?"
	if _, err := tx.ExecContext(ctx, query, sign, content.TeacherID); err != nil {
		return fmt.Errorf("failed to adjust teacher content count: %w", err)
	}

	if content.MosqueID != nil {
		query := "UPDATE mosques SET content_count = GREATEST(0, CAST(content_count AS SIGNED) + ?), updated_at = NOW() WHERE id = ?"
		if _, err := tx.ExecContext(ctx, query, sign, *content.MosqueID); err != nil {
			return fmt.Errorf("failed to adjust mosque content count: %w", err)
		}
	}
	return nil
}

func (r *contentRepository) GetByID(ctx context.Context, id uint64) (*models.Content, error) {
	query := "SELECT " + contentColumns + " FROM contents WHERE id = ?"

	content, err := scanContent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return content, nil
}

func (r *contentRepository) ListByTeacher(ctx context.Context, teacherID uint64, limit, offset int) ([]*models.Content, error) {
	query := "SELECT " + contentColumns + " FROM contents WHERE teacher_id = ? ORDER BY created_at DESC LIMIT ? OFFSET ?"

	rows, err := r.db.QueryContext(ctx, query, teacherID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents by teacher: %w", err)
	}
	defer rows.Close()
	return collectContents(rows)
}

func (r *contentRepository) ListBySeries(ctx context.Context, seriesID uint64) ([]*models.Content, error) {
	query := "SELECT " + contentColumns + " FROM contents WHERE series_id = ? ORDER BY series_order ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contents by series: %w", err)
	}
	defer rows.Close()
	return collectContents(rows)
}

func collectContents(rows *sql.Rows) ([]*models.Content, error) {
	var contents []*models.Content
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		contents = append(contents, content)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contents: %w", err)
	}
	return contents, nil
}

func (r *contentRepository) Update(ctx context.Context, content *models.Content) error {
	query := `
		UPDATE contents
		SET title = ?, description = ?, mosque_id = ?, series_id = ?, series_order = ?,
			lang = ?, duration_seconds = ?, thumbnail_url = ?,
			download_enabled = ?, download_requires_auth = ?, updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		content.Title, content.Description, content.MosqueID, content.SeriesID,
		content.SeriesOrder, content.Lang, content.DurationSeconds, content.ThumbnailURL,
		content.DownloadEnabled, content.DownloadRequiresAuth, content.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}
	return nil
}

func statusPlaceholders(statuses []models.ContentStatus) (string, []interface{}) {
	placeholders := make([]string, len(statuses))
	args := make([]interface{}, len(statuses))
	for i, s := range statuses {
		placeholders[i] = "?"
		args[i] = string(s)
	}
	return strings.Join(placeholders, ", "), args
}

func (r *contentRepository) UpdateStatus(ctx context.Context, id uint64, fromStatuses []models.ContentStatus, toStatus models.ContentStatus) (bool, error) {
	in, inArgs := statusPlaceholders(fromStatuses)
	query := fmt.Sprintf("UPDATE contents SET status = ?, updated_at = NOW() WHERE id = ? AND status IN (%s)", in)

	args := append([]interface{}{string(toStatus), id}, inArgs...)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update content status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *contentRepository) PublishStatus(ctx context.Context, id uint64, fromStatuses []models.ContentStatus, publishedAt time.Time) (bool, error) {
	in, inArgs := statusPlaceholders(fromStatuses)
	query := fmt.Sprintf(
		"UPDATE contents SET status = ?, published_at = ?, updated_at = NOW() WHERE id = ? AND status IN (%s)", in)

	args := append([]interface{}{string(models.ContentStatusPublished), publishedAt, id}, inArgs...)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to publish content: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *contentRepository) Delete(ctx context.Context, content *models.Content, themeChain []uint64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM contents WHERE id = ?", content.ID); err != nil {
			return fmt.Errorf("failed to delete content: %w", err)
		}
		if err := adjustThemeCounts(ctx, tx, "content_count", themeChain, -1); err != nil {
			return err
		}
		return adjustOwnerStats(ctx, tx, content, -1)
	})
}

func (r *contentRepository) IncrementViews(ctx context.Context, id uint64) error {
	return r.adjustCounter(ctx, "views_count", id, 1)
}

func (r *contentRepository) IncrementDownloads(ctx context.Context, id uint64) error {
	return r.adjustCounter(ctx, "downloads_count", id, 1)
}

func (r *contentRepository) AdjustLikes(ctx context.Context, id uint64, delta int64) error {
	return r.adjustCounter(ctx, "likes_count", id, delta)
}

func (r *contentRepository) AdjustFavorites(ctx context.Context, id uint64, delta int64) error {
	return r.adjustCounter(ctx, "favorites_count", id, delta)
}

// adjustCounter applies delta atomically in the database, clamped at zero so a
// decrement can never drive a counter negative.
func (r *contentRepository) adjustCounter(ctx context.Context, column string, id uint64, delta int64) error {
	query := fmt.Sprintf(
		"UPDATE contents SET %s = GREATEST(0, CAST(%s AS SIGNED) + ?), updated_at = NOW() WHERE id = ?",
		column, column,
	)
	if _, err := r.db.ExecContext(ctx, query, delta, id); err != nil {
		return fmt.Errorf("failed to adjust %s on content %d: %w", column, id, err)
	}
	return nil
}
