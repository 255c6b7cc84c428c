package models

import "time"

// SeriesStatus is the publication status of a series. Series skip the
// APPROVED/FLAGGED stages of the content machine.
type SeriesStatus string

const (
	SeriesStatusDraft         SeriesStatus = "DRAFT"
	SeriesStatusPendingReview SeriesStatus = "PENDING_REVIEW"
	SeriesStatusPublished     SeriesStatus = "PUBLISHED"
	SeriesStatusArchived      SeriesStatus = "ARCHIVED"
	SeriesStatusPrivate       SeriesStatus = "PRIVATE"
)

// Series is an ordered collection of contents by one teacher.
type Series struct {
	ID                   uint64       `db:"id"`
	Title                string       `db:"title"`
	Description          string       `db:"description"`
	TeacherID            uint64       `db:"teacher_id"`
	MosqueID             *uint64      `db:"mosque_id"`
	ThemeID              *uint64      `db:"theme_id"`
	Lang                 string       `db:"lang"`
	Status               SeriesStatus `db:"status"`
	CoverImageURL        *string      `db:"cover_image_url"`
	IsFeatured           bool         `db:"is_featured"`
	IsComplete           bool         `db:"is_complete"`
	ContentCount         int32        `db:"content_count"`
	TotalDurationSeconds int64        `db:"total_duration_seconds"`
	ViewsCount           int64        `db:"views_count"`
	FollowersCount       int64        `db:"followers_count"`
	PublishedAt          *time.Time   `db:"published_at"`
	CreatedAt            time.Time    `db:"created_at"`
	UpdatedAt            time.Time    `db:"updated_at"`
}

// IsPublished reports whether the series is visible to the public.
func (s *Series) IsPublished() bool {
	return s.Status == SeriesStatusPublished && s.PublishedAt != nil
}
