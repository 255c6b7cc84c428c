package models

import "time"

// ContentType identifies the media type of a content.
type ContentType string

const (
	ContentTypeAudio ContentType = "AUDIO"
	ContentTypeVideo ContentType = "VIDEO"
	ContentTypeText  ContentType = "TEXT"
	ContentTypePDF   ContentType = "PDF"
	ContentTypeEbook ContentType = "EBOOK"
)

// IsValid reports whether the content type is one of the known types.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeAudio, ContentTypeVideo, ContentTypeText, ContentTypePDF, ContentTypeEbook:
		return true
	}
	return false
}

// ContentStatus is the publication/moderation status of a content.
type ContentStatus string

const (
	ContentStatusDraft         ContentStatus = "DRAFT"
	ContentStatusPendingReview ContentStatus = "PENDING_REVIEW"
	ContentStatusApproved      ContentStatus = "APPROVED"
	ContentStatusPublished     ContentStatus = "PUBLISHED"
	ContentStatusRejected      ContentStatus = "REJECTED"
	ContentStatusArchived      ContentStatus = "ARCHIVED"
	ContentStatusFlagged       ContentStatus = "FLAGGED"
	ContentStatusPrivate       ContentStatus = "PRIVATE"
)

// IsTerminal reports whether no further lifecycle transition is defined from
// this status. ARCHIVED is the only terminal content status; REJECTED keeps the
// owner resubmission path open via PRIVATE.
func (s ContentStatus) IsTerminal() bool {
	return s == ContentStatusArchived
}

// Content represents a piece of educational media (audio, video, text, PDF).
type Content struct {
	ID              uint64        `db:"id"`
	Type            ContentType   `db:"type"`
	Title           string        `db:"title"`
	Description     string        `db:"description"`
	TeacherID       uint64        `db:"teacher_id"`
	MosqueID        *uint64       `db:"mosque_id"`
	SeriesID        *uint64       `db:"series_id"`
	SeriesOrder     *int32        `db:"series_order"`
	ThemeID         *uint64       `db:"theme_id"`
	Lang            string        `db:"lang"`
	DurationSeconds int64         `db:"duration_seconds"`
	Status          ContentStatus `db:"status"`
	PublishedAt     *time.Time    `db:"published_at"`
	ThumbnailURL    *string       `db:"thumbnail_url"`

	ViewsCount     int64 `db:"views_count"`
	DownloadsCount int64 `db:"downloads_count"`
	LikesCount     int64 `db:"likes_count"`
	FavoritesCount int64 `db:"favorites_count"`
	ReportsCount   int64 `db:"reports_count"`

	DownloadEnabled      bool `db:"download_enabled"`
	DownloadRequiresAuth bool `db:"download_requires_auth"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsPublished reports whether the content is visible to the public.
// Both conditions must hold: PUBLISHED status and a stamped publication time.
func (c *Content) IsPublished() bool {
	return c.Status == ContentStatusPublished && c.PublishedAt != nil
}

// CanBeDownloaded reports whether download links may be served for the content.
func (c *Content) CanBeDownloaded() bool {
	return c.DownloadEnabled && c.IsPublished()
}

// RequiresAuth reports whether downloading requires an authenticated user.
func (c *Content) RequiresAuth() bool {
	return c.DownloadRequiresAuth
}

// IsVideo reports whether the content is a video.
func (c *Content) IsVideo() bool { return c.Type == ContentTypeVideo }

// IsAudio reports whether the content is an audio recording.
func (c *Content) IsAudio() bool { return c.Type == ContentTypeAudio }

// IsDocument reports whether the content is a PDF or ebook.
func (c *Content) IsDocument() bool {
	return c.Type == ContentTypePDF || c.Type == ContentTypeEbook
}
