package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// FollowRepository defines the follow/unfollow relations between users and
// teachers, mosques, and series. Every add/remove keeps the target's
// followers_count in step inside one transaction, and duplicate follows are
// idempotent no-ops.
type FollowRepository interface {
	FollowTeacher(ctx context.Context, userID, teacherID uint64) (bool, error)
	UnfollowTeacher(ctx context.Context, userID, teacherID uint64) (bool, error)
	FollowMosque(ctx context.Context, userID, mosqueID uint64) (bool, error)
	UnfollowMosque(ctx context.Context, userID, mosqueID uint64) (bool, error)
	SubscribeSeries(ctx context.Context, userID, seriesID uint64, notify bool) (bool, error)
	UnsubscribeSeries(ctx context.Context, userID, seriesID uint64) (bool, error)
}

type followRepository struct {
	db *sql.DB
}

// NewFollowRepository creates a MySQL-backed follow repository.
func NewFollowRepository(db *sql.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) FollowTeacher(ctx context.Context, userID, teacherID uint64) (bool, error) {
	insert := "INSERT INTO teacher_followers (user_id, teacher_id, created_at) VALUES (?, ?, ?)"
	counter := "UPDATE teachers SET followers_count = followers_count + 1, updated_at = NOW() WHERE id = ?"
	return r.follow(ctx, insert, counter, userID, teacherID, nil)
}

func (r *followRepository) UnfollowTeacher(ctx context.Context, userID, teacherID uint64) (bool, error) {
	del := "DELETE FROM teacher_followers WHERE user_id = ? AND teacher_id = ?"
	counter := "UPDATE teachers SET followers_count = GREATEST(0, CAST(followers_count AS SIGNED) - 1), updated_at = NOW() WHERE id = ?"
	return r.unfollow(ctx, del, counter, userID, teacherID)
}

func (r *followRepository) FollowMosque(ctx context.Context, userID, mosqueID uint64) (bool, error) {
	insert := "INSERT INTO mosque_followers (user_id, mosque_id, created_at) VALUES (?, ?, ?)"
	counter := "UPDATE mosques SET followers_count = followers_count + 1, updated_at = NOW() WHERE id = ?"
	return r.follow(ctx, insert, counter, userID, mosqueID, nil)
}

func (r *followRepository) UnfollowMosque(ctx context.Context, userID, mosqueID uint64) (bool, error) {
	del := "DELETE FROM mosque_followers WHERE user_id = ? AND mosque_id = ?"
	counter := "UPDATE mosques SET followers_count = GREATEST(0, CAST(followers_count AS SIGNED) - 1), updated_at = NOW() WHERE id = ?"
	return r.unfollow(ctx, del, counter, userID, mosqueID)
}

func (r *followRepository) SubscribeSeries(ctx context.Context, userID, seriesID uint64, notify bool) (bool, error) {
	insert := "INSERT INTO series_subscriptions (user_id, series_id, notify_on_new_content, created_at) VALUES (?, ?, ?, ?)"
	counter := "UPDATE series SET followers_count = followers_count + 1, updated_at = NOW() WHERE id = ?"
	return r.follow(ctx, insert, counter, userID, seriesID, &notify)
}

func (r *followRepository) UnsubscribeSeries(ctx context.Context, userID, seriesID uint64) (bool, error) {
	del := "DELETE FROM series_subscriptions WHERE user_id = ? AND series_id = ?"
	counter := "UPDATE series SET followers_count = GREATEST(0, CAST(followers_count AS SIGNED) - 1), updated_at = NOW() WHERE id = ?"
	return r.unfollow(ctx, del, counter, userID, seriesID)
}

func (r *followRepository) follow(ctx context.Context, insert, counter string, userID, targetID uint64, notify *bool) (bool, error) {
	created := false
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		if notify != nil {
			_, err = tx.ExecContext(ctx, insert, userID, targetID, *notify, time.Now())
		} else {
			_, err = tx.ExecContext(ctx, insert, userID, targetID, time.Now())
		}
		if err != nil {
			if isDuplicateKey(err) {
				return nil
			}
			return fmt.Errorf("failed to insert follow: %w", err)
		}

		if _, err := tx.ExecContext(ctx, counter, targetID); err != nil {
			return fmt.Errorf("failed to increment followers count: %w", err)
		}
		created = true
		return nil
	})
	return created, err
}

func (r *followRepository) unfollow(ctx context.Context, del, counter string, userID, targetID uint64) (bool, error) {
	removed := false
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, del, userID, targetID)
		if err != nil {
			return fmt.Errorf("failed to delete follow: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if affected == 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, counter, targetID); err != nil {
			return fmt.Errorf("failed to decrement followers count: %w", err)
		}
		removed = true
		return nil
	})
	return removed, err
}
