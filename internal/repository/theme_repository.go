package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/apperrors"
)

// ThemeRepository defines persistence operations for the theme tree.
type ThemeRepository interface {
	Create(ctx context.Context, theme *models.Theme) error
	GetByID(ctx context.Context, id uint64) (*models.Theme, error)
	GetChildren(ctx context.Context, parentID uint64) ([]*models.Theme, error)
	// GetAncestorChain returns the theme and its ancestors, child first, root
	// last. The walk is bounded by maxDepth and fails on a repeated id.
	GetAncestorChain(ctx context.Context, id uint64, maxDepth int) (models.ThemePath, error)
	// ReassignContent repoints a content's theme reference and keeps the
	// subtree counters in step, all in one transaction: every theme in debit
	// loses one content, every theme in credit gains one, clamped at zero.
	// Chains must be ordered child first so row locks are always taken
	// leaf-to-root.
	ReassignContent(ctx context.Context, contentID uint64, themeID *uint64, debit, credit []uint64) error
	// ReassignSeries is ReassignContent for series and series_count.
	ReassignSeries(ctx context.Context, seriesID uint64, themeID *uint64, debit, credit []uint64) error
}

type themeRepository struct {
	db *sql.DB
}

// NewThemeRepository creates a MySQL-backed theme repository.
func NewThemeRepository(db *sql.DB) ThemeRepository {
	return &themeRepository{db: db}
}

const themeColumns = `id, name, slug, description, parent_id, display_order, icon_name, color_code,
	is_featured, is_active, content_count, series_count, created_at, updated_at`

func scanTheme(row interface{ Scan(...interface{}) error }) (*models.Theme, error) {
	var theme models.Theme
	err := row.Scan(
		&theme.ID,
		&theme.Name,
		&theme.Slug,
		&theme.Description,
		&theme.ParentID,
		&theme.DisplayOrder,
		&theme.IconName,
		&theme.ColorCode,
		&theme.IsFeatured,
		&theme.IsActive,
		&theme.ContentCount,
		&theme.SeriesCount,
		&theme.CreatedAt,
		&theme.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepository) Create(ctx context.Context, theme *models.Theme) error {
	query := `
		INSERT INTO themes (name, slug, description, parent_id, display_order, icon_name, color_code,
			is_featured, is_active, content_count, series_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?)
	`
	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		theme.Name, theme.Slug, theme.Description, theme.ParentID, theme.DisplayOrder,
		theme.IconName, theme.ColorCode, theme.IsFeatured, theme.IsActive, now, now,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return apperrors.Conflictf("theme slug %q already exists", theme.Slug)
		}
		return fmt.Errorf("failed to create theme: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get theme id: %w", err)
	}
	theme.ID = uint64(id)
	theme.CreatedAt = now
	theme.UpdatedAt = now
	return nil
}

func (r *themeRepository) GetByID(ctx context.Context, id uint64) (*models.Theme, error) {
	query := "SELECT " + themeColumns + " FROM themes WHERE id = ?"

	theme, err := scanTheme(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get theme: %w", err)
	}
	return theme, nil
}

func (r *themeRepository) GetChildren(ctx context.Context, parentID uint64) ([]*models.Theme, error) {
	query := "SELECT " + themeColumns + " FROM themes WHERE parent_id = ? ORDER BY display_order ASC, name ASC"

	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child themes: %w", err)
	}
	defer rows.Close()

	var themes []*models.Theme
	for rows.Next() {
		theme, err := scanTheme(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan theme: %w", err)
		}
		themes = append(themes, theme)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating themes: %w", err)
	}
	return themes, nil
}

func (r *themeRepository) GetAncestorChain(ctx context.Context, id uint64, maxDepth int) (models.ThemePath, error) {
	var chain models.ThemePath
	visited := make(map[uint64]bool)

	current := &id
	for current != nil {
		if visited[*current] {
			return nil, apperrors.Invariantf("cycle detected in theme ancestry at theme %d", *current)
		}
		if len(chain) >= maxDepth {
			return nil, apperrors.Invariantf("theme ancestry exceeds maximum depth %d", maxDepth)
		}
		visited[*current] = true

		theme, err := r.GetByID(ctx, *current)
		if err != nil {
			return nil, err
		}
		if theme == nil {
			if len(chain) == 0 {
				return nil, apperrors.NotFoundf("theme %d not found", id)
			}
			// Dangling parent reference: stop the walk at the last real node.
			break
		}

		chain = append(chain, theme)
		current = theme.ParentID
	}

	return chain, nil
}

func (r *themeRepository) ReassignContent(ctx context.Context, contentID uint64, themeID *uint64, debit, credit []uint64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := "UPDATE contents SET theme_id = ?, updated_at = NOW() WHERE id = ?"
		if _, err := tx.ExecContext(ctx, query, themeID, contentID); err != nil {
			return fmt.Errorf("failed to set content theme: %w", err)
		}
		if err := adjustThemeCounts(ctx, tx, "content_count", debit, -1); err != nil {
			return err
		}
		return adjustThemeCounts(ctx, tx, "content_count", credit, 1)
	})
}

func (r *themeRepository) ReassignSeries(ctx context.Context, seriesID uint64, themeID *uint64, debit, credit []uint64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := "UPDATE series SET theme_id = ?, updated_at = NOW() WHERE id = ?"
		if _, err := tx.ExecContext(ctx, query, themeID, seriesID); err != nil {
			return fmt.Errorf("failed to set series theme: %w", err)
		}
		if err := adjustThemeCounts(ctx, tx, "series_count", debit, -1); err != nil {
			return err
		}
		return adjustThemeCounts(ctx, tx, "series_count", credit, 1)
	})
}

// adjustThemeCounts applies delta to one counter column on every listed theme
// inside the caller's transaction, clamping each row at zero.
func adjustThemeCounts(ctx context.Context, tx *sql.Tx, column string, ids []uint64, delta int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		"UPDATE themes SET %s = GREATEST(0, CAST(%s AS SIGNED) + ?), updated_at = NOW() WHERE id = ?",
		column, column,
	)
	for _, themeID := range ids {
		if _, err := tx.ExecContext(ctx, query, delta, themeID); err != nil {
			return fmt.Errorf("failed to adjust %s on theme %d: %w", column, themeID, err)
		}
	}
	return nil
}
