package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
)

// AssetRepository defines persistence operations for content assets.
type AssetRepository interface {
	Create(ctx context.Context, asset *models.ContentAsset) error
	GetByID(ctx context.Context, id uint64) (*models.ContentAsset, error)
	ListByContent(ctx context.Context, contentID uint64) ([]*models.ContentAsset, error)
	// UpdateProcessingStatus moves the asset between processing states with a
	// conditional UPDATE, returning false when the asset was not in
	// fromStatus.
	UpdateProcessingStatus(ctx context.Context, id uint64, fromStatus, toStatus models.ProcessingStatus, processingError *string) (bool, error)
	// CountCompletedPlayable counts completed assets whose kind satisfies the
	// publish precondition (master or a quality-tier rendition).
	CountCompletedPlayable(ctx context.Context, contentID uint64) (int64, error)
	Delete(ctx context.Context, id uint64) error
}

type assetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a MySQL-backed asset repository.
func NewAssetRepository(db *sql.DB) AssetRepository {
	return &assetRepository{db: db}
}

const assetColumns = `id, content_id, kind, url, format, file_size, duration_seconds,
	width, height, bitrate, quality_level, mime_type, language, is_default,
	processing_status, processing_error, replaces_asset_id, created_at, updated_at`

func scanAsset(row interface{ Scan(...interface{}) error }) (*models.ContentAsset, error) {
	var asset models.ContentAsset
	err := row.Scan(
		&asset.ID,
		&asset.ContentID,
		&asset.Kind,
		&asset.URL,
		&asset.Format,
		&asset.FileSize,
		&asset.DurationSeconds,
		&asset.Width,
		&asset.Height,
		&asset.Bitrate,
		&asset.QualityLevel,
		&asset.MimeType,
		&asset.Language,
		&asset.IsDefault,
		&asset.ProcessingStatus,
		&asset.ProcessingError,
		&asset.ReplacesAssetID,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) Create(ctx context.Context, asset *models.ContentAsset) error {
	query := `
		INSERT INTO content_assets (content_id, kind, url, format, file_size, duration_seconds,
			width, height, bitrate, quality_level, mime_type, language, is_default,
			processing_status, processing_error, replaces_asset_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		asset.ContentID, asset.Kind, asset.URL, asset.Format, asset.FileSize,
		asset.DurationSeconds, asset.Width, asset.Height, asset.Bitrate,
		asset.QualityLevel, asset.MimeType, asset.Language, asset.IsDefault,
		asset.ProcessingStatus, asset.ProcessingError, asset.ReplacesAssetID,
		now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get asset id: %w", err)
	}
	asset.ID = uint64(id)
	asset.CreatedAt = now
	asset.UpdatedAt = now
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id uint64) (*models.ContentAsset, error) {
	query := "SELECT " + assetColumns + " FROM content_assets WHERE id = ?"

	asset, err := scanAsset(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

func (r *assetRepository) ListByContent(ctx context.Context, contentID uint64) ([]*models.ContentAsset, error) {
	query := "SELECT " + assetColumns + " FROM content_assets WHERE content_id = ? ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*models.ContentAsset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}
	return assets, nil
}

func (r *assetRepository) UpdateProcessingStatus(ctx context.Context, id uint64, fromStatus, toStatus models.ProcessingStatus, processingError *string) (bool, error) {
	query := `
		UPDATE content_assets
		SET processing_status = ?, processing_error = ?, updated_at = NOW()
		WHERE id = ? AND processing_status = ?
	`
	result, err := r.db.ExecContext(ctx, query, toStatus, processingError, id, fromStatus)
	if err != nil {
		return false, fmt.Errorf("failed to update asset processing status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *assetRepository) CountCompletedPlayable(ctx context.Context, contentID uint64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM content_assets
		WHERE content_id = ?
		  AND processing_status = ?
		  AND kind IN (?, ?, ?, ?, ?, ?, ?)
	`
	var count int64
	err := r.db.QueryRowContext(ctx, query,
		contentID, models.ProcessingStatusCompleted,
		models.AssetKindMaster,
		models.AssetKindAudioLow, models.AssetKindAudioMedium, models.AssetKindAudioHigh,
		models.AssetKindVideoLow, models.AssetKindVideoMedium, models.AssetKindVideoHigh,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count playable assets: %w", err)
	}
	return count, nil
}

func (r *assetRepository) Delete(ctx context.Context, id uint64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM content_assets WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}
