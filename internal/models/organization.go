package models

import "time"

// TeacherStatus is the verification state of a teacher profile.
type TeacherStatus string

const (
	TeacherStatusPending   TeacherStatus = "PENDING"
	TeacherStatusVerified  TeacherStatus = "VERIFIED"
	TeacherStatusSuspended TeacherStatus = "SUSPENDED"
	TeacherStatusRejected  TeacherStatus = "REJECTED"
	TeacherStatusInactive  TeacherStatus = "INACTIVE"
)

// Teacher is a content-contributing teacher profile.
type Teacher struct {
	ID                uint64        `db:"id"`
	UserID            *uint64       `db:"user_id"`
	DisplayName       string        `db:"display_name"`
	Bio               string        `db:"bio"`
	Verified          bool          `db:"verified"`
	Status            TeacherStatus `db:"status"`
	ProfileImageURL   *string       `db:"profile_image_url"`
	FollowersCount    int64         `db:"followers_count"`
	TotalContentCount int64         `db:"total_content_count"`
	TotalViews        int64         `db:"total_views"`
	AverageRating     *float64      `db:"average_rating"`
	CreatedAt         time.Time     `db:"created_at"`
	UpdatedAt         time.Time     `db:"updated_at"`
}

// IsActive reports whether the teacher account is verified and in good
// standing.
func (t *Teacher) IsActive() bool {
	return t.Status == TeacherStatusVerified && t.Verified
}

// CanPublishContent reports whether the teacher may publish content.
func (t *Teacher) CanPublishContent() bool {
	return t.IsActive()
}

// MosqueStatus is the standing of a mosque profile.
type MosqueStatus string

const (
	MosqueStatusActive    MosqueStatus = "ACTIVE"
	MosqueStatusInactive  MosqueStatus = "INACTIVE"
	MosqueStatusSuspended MosqueStatus = "SUSPENDED"
	MosqueStatusPending   MosqueStatus = "PENDING"
)

// Mosque is a mosque profile that can host contents and receive donations.
type Mosque struct {
	ID             uint64       `db:"id"`
	Name           string       `db:"name"`
	Description    string       `db:"description"`
	City           string       `db:"city"`
	Country        string       `db:"country"`
	Verified       bool         `db:"verified"`
	Status         MosqueStatus `db:"status"`
	FollowersCount int64        `db:"followers_count"`
	ContentCount   int64        `db:"content_count"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

// IsActive reports whether the mosque profile is active.
func (m *Mosque) IsActive() bool {
	return m.Status == MosqueStatusActive
}
