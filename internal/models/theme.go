package models

import "time"

// Theme is a node in the content categorization tree. ParentID is a weak
// reference: deleting a theme never cascades to its parent. The contentCount
// and seriesCount columns hold subtree sums, maintained incrementally by the
// theme service on every attach/detach.
type Theme struct {
	ID           uint64    `db:"id"`
	Name         string    `db:"name"`
	Slug         string    `db:"slug"`
	Description  string    `db:"description"`
	ParentID     *uint64   `db:"parent_id"`
	DisplayOrder int32     `db:"display_order"`
	IconName     *string   `db:"icon_name"`
	ColorCode    *string   `db:"color_code"`
	IsFeatured   bool      `db:"is_featured"`
	IsActive     bool      `db:"is_active"`
	ContentCount int64     `db:"content_count"`
	SeriesCount  int64     `db:"series_count"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// IsRoot reports whether the theme has no parent.
func (t *Theme) IsRoot() bool {
	return t.ParentID == nil
}

// ThemePath is the chain from a theme up to its root, first element the theme
// itself, last element the root.
type ThemePath []*Theme

// Level returns the depth of the starting theme; roots are level 0.
func (p ThemePath) Level() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// FullPath renders the chain top-down, e.g. "Fiqh > Marriage".
func (p ThemePath) FullPath() string {
	if len(p) == 0 {
		return ""
	}
	path := ""
	for i := len(p) - 1; i >= 0; i-- {
		if path != "" {
			path += " > "
		}
		path += p[i].Name
	}
	return path
}
