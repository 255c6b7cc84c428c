package models

import "time"

// UserFavorite marks a content as favorited by a user. The (user, content)
// pair is unique; duplicate inserts are treated as idempotent no-ops.
type UserFavorite struct {
	ID        uint64    `db:"id"`
	UserID    uint64    `db:"user_id"`
	ContentID uint64    `db:"content_id"`
	CreatedAt time.Time `db:"created_at"`
}

// ContentRating is a 1-5 star rating with an optional review. One row per
// (user, content); re-rating replaces the value in place.
type ContentRating struct {
	ID             uint64    `db:"id"`
	UserID         uint64    `db:"user_id"`
	ContentID      uint64    `db:"content_id"`
	Rating         int32     `db:"rating"`
	Review         *string   `db:"review"`
	HelpfulVotes   int32     `db:"helpful_votes"`
	UnhelpfulVotes int32     `db:"unhelpful_votes"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// IsPositive reports whether the rating is 4 stars or more.
func (r *ContentRating) IsPositive() bool {
	return r.Rating >= 4
}

// HelpfulnessRatio returns helpful/(helpful+unhelpful), or 0 with no votes.
func (r *ContentRating) HelpfulnessRatio() float64 {
	total := r.HelpfulVotes + r.UnhelpfulVotes
	if total == 0 {
		return 0
	}
	return float64(r.HelpfulVotes) / float64(total)
}

// IsHighlyRated reports whether the rating is positive and at least 70% of
// voters found the review helpful.
func (r *ContentRating) IsHighlyRated() bool {
	return r.IsPositive() && r.HelpfulnessRatio() >= 0.7
}

// UserProgress tracks how far a user has gotten through a content. One row per
// (user, content). Completed latches: once true it is never reset by a
// progress update.
type UserProgress struct {
	ID                 uint64     `db:"id"`
	UserID             uint64     `db:"user_id"`
	ContentID          uint64     `db:"content_id"`
	SeriesID           *uint64    `db:"series_id"`
	ProgressSeconds    int64      `db:"progress_seconds"`
	TotalSeconds       int64      `db:"total_seconds"`
	ProgressPercentage float64    `db:"progress_percentage"`
	Completed          bool       `db:"completed"`
	CompletedAt        *time.Time `db:"completed_at"`
	WatchCount         int32      `db:"watch_count"`
	LastPositionSecs   int64      `db:"last_position_seconds"`
	DeviceType         *string    `db:"device_type"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// IsStarted reports whether any progress has been recorded.
func (p *UserProgress) IsStarted() bool {
	return p.ProgressSeconds > 0
}

// IsHalfway reports whether at least half of the content has been consumed.
func (p *UserProgress) IsHalfway() bool {
	return p.ProgressPercentage >= 50.0
}

// IsNearlyComplete reports whether at least 80% has been consumed.
func (p *UserProgress) IsNearlyComplete() bool {
	return p.ProgressPercentage >= 80.0
}

// TeacherFollower links a user following a teacher; (user, teacher) is unique.
type TeacherFollower struct {
	ID        uint64    `db:"id"`
	UserID    uint64    `db:"user_id"`
	TeacherID uint64    `db:"teacher_id"`
	CreatedAt time.Time `db:"created_at"`
}

// MosqueFollower links a user following a mosque; (user, mosque) is unique.
type MosqueFollower struct {
	ID        uint64    `db:"id"`
	UserID    uint64    `db:"user_id"`
	MosqueID  uint64    `db:"mosque_id"`
	CreatedAt time.Time `db:"created_at"`
}

// SeriesSubscription links a user following a series; (user, series) is unique.
type SeriesSubscription struct {
	ID                   uint64    `db:"id"`
	UserID               uint64    `db:"user_id"`
	SeriesID             uint64    `db:"series_id"`
	NotifyOnNewContent   bool      `db:"notify_on_new_content"`
	CreatedAt            time.Time `db:"created_at"`
}
