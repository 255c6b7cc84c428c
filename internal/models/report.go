package models

import "time"

// ReportReason is the reporter-selected reason for a content report.
type ReportReason string

const (
	ReportReasonInappropriate    ReportReason = "INAPPROPRIATE_CONTENT"
	ReportReasonCopyright        ReportReason = "COPYRIGHT_VIOLATION"
	ReportReasonMisinformation   ReportReason = "MISINFORMATION"
	ReportReasonHateSpeech       ReportReason = "HATE_SPEECH"
	ReportReasonSpam             ReportReason = "SPAM"
	ReportReasonViolence         ReportReason = "VIOLENCE"
	ReportReasonHarassment       ReportReason = "HARASSMENT"
	ReportReasonFakeContent      ReportReason = "FAKE_CONTENT"
	ReportReasonTechnicalIssue   ReportReason = "TECHNICAL_ISSUE"
	ReportReasonDuplicateContent ReportReason = "DUPLICATE_CONTENT"
	ReportReasonWrongCategory    ReportReason = "WRONG_CATEGORY"
	ReportReasonPoorQuality      ReportReason = "POOR_QUALITY"
	ReportReasonOther            ReportReason = "OTHER"
)

// IsValid reports whether the reason is one of the known reasons.
func (r ReportReason) IsValid() bool {
	switch r {
	case ReportReasonInappropriate, ReportReasonCopyright, ReportReasonMisinformation,
		ReportReasonHateSpeech, ReportReasonSpam, ReportReasonViolence,
		ReportReasonHarassment, ReportReasonFakeContent, ReportReasonTechnicalIssue,
		ReportReasonDuplicateContent, ReportReasonWrongCategory, ReportReasonPoorQuality,
		ReportReasonOther:
		return true
	}
	return false
}

// ReportStatus is the adjudication state of a content report.
type ReportStatus string

const (
	ReportStatusPending     ReportStatus = "PENDING"
	ReportStatusUnderReview ReportStatus = "UNDER_REVIEW"
	ReportStatusResolved    ReportStatus = "RESOLVED"
	ReportStatusRejected    ReportStatus = "REJECTED"
	ReportStatusEscalated   ReportStatus = "ESCALATED"
)

// IsTerminal reports whether the report can no longer transition. ESCALATED is
// not terminal; it must be re-opened for review.
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusResolved || s == ReportStatusRejected
}

// IsOpen reports whether the report still counts toward the auto-flag
// threshold.
func (s ReportStatus) IsOpen() bool {
	return s == ReportStatusPending || s == ReportStatusUnderReview
}

// ContentReport is a user (or anonymous) report against a content. Many
// reports may exist per content.
type ContentReport struct {
	ID              uint64       `db:"id"`
	ContentID       uint64       `db:"content_id"`
	UserID          *uint64      `db:"user_id"`
	Reason          ReportReason `db:"reason"`
	Note            *string      `db:"note"`
	Status          ReportStatus `db:"status"`
	ReporterEmail   *string      `db:"reporter_email"`
	ReporterName    *string      `db:"reporter_name"`
	ReviewedByID    *uint64      `db:"reviewed_by_user_id"`
	ReviewedAt      *time.Time   `db:"reviewed_at"`
	ReviewNotes     *string      `db:"review_notes"`
	ModeratorAction *string      `db:"moderator_action"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
}
