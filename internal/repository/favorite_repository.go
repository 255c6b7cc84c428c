package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
)

// FavoriteRepository defines persistence operations for user favorites.
type FavoriteRepository interface {
	// Add inserts the favorite and bumps the content's favorites counter in
	// one transaction. It returns false when the pair already exists, in which
	// case nothing is written.
	Add(ctx context.Context, userID, contentID uint64) (bool, error)
	// Remove deletes the favorite and decrements the counter, returning false
	// when there was nothing to remove.
	Remove(ctx context.Context, userID, contentID uint64) (bool, error)
	Exists(ctx context.Context, userID, contentID uint64) (bool, error)
	ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*models.UserFavorite, error)
}

type favoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a MySQL-backed favorite repository.
func NewFavoriteRepository(db *sql.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Add(ctx context.Context, userID, contentID uint64) (bool, error) {
	created := false
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		query := "INSERT INTO user_favorites (user_id, content_id, created_at) VALUES (?, ?, ?)"
		_, err := tx.ExecContext(ctx, query, userID, contentID, time.Now())
		if err != nil {
			if isDuplicateKey(err) {
				// Already favorited; leave the counter alone.
				return nil
			}
			return fmt.Errorf("failed to insert favorite: %w", err)
		}

		counter := "UPDATE contents SET favorites_count = favorites_count + 1, updated_at = NOW() WHERE id = ?"
		if _, err := tx.ExecContext(ctx, counter, contentID); err != nil {
			return fmt.Errorf("failed to increment favorites count: %w", err)
		}
		created = true
		return nil
	})
	return created, err
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, contentID uint64) (bool, error) {
	removed := false
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			"DELETE FROM user_favorites WHERE user_id = ? AND content_id = ?", userID, contentID)
		if err != nil {
			return fmt.Errorf("failed to delete favorite: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if affected == 0 {
			return nil
		}

		counter := "UPDATE contents SET favorites_count = GREATEST(0, CAST(favorites_count AS SIGNED) - 1), updated_at = NOW() WHERE id = ?"
		if _, err := tx.ExecContext(ctx, counter, contentID); err != nil {
			return fmt.Errorf("failed to decrement favorites count: %w", err)
		}
		removed = true
		return nil
	})
	return removed, err
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, contentID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM user_favorites WHERE user_id = ? AND content_id = ?", userID, contentID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return true, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*models.UserFavorite, error) {
	query := `
		SELECT id, user_id, content_id, created_at
		FROM user_favorites
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*models.UserFavorite
	for rows.Next() {
		var fav models.UserFavorite
		if err := rows.Scan(&fav.ID, &fav.UserID, &fav.ContentID, &fav.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, &fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}
	return favorites, nil
}
