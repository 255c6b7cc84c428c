package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
)

// TeacherRepository defines persistence operations for teacher profiles.
type TeacherRepository interface {
	GetByID(ctx context.Context, id uint64) (*models.Teacher, error)
	AddViews(ctx context.Context, id uint64, delta int64) error
	SetAverageRating(ctx context.Context, id uint64, average float64) error
}

type teacherRepository struct {
	db *sql.DB
}

// NewTeacherRepository creates a MySQL-backed teacher repository.
func NewTeacherRepository(db *sql.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) GetByID(ctx context.Context, id uint64) (*models.Teacher, error) {
	query := `
		SELECT id, user_id, display_name, bio, verified, status, profile_image_url,
			followers_count, total_content_count, total_views, average_rating, created_at, updated_at
		FROM teachers WHERE id = ?
	`
	var teacher models.Teacher
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&teacher.ID,
		&teacher.UserID,
		&teacher.DisplayName,
		&teacher.Bio,
		&teacher.Verified,
		&teacher.Status,
		&teacher.ProfileImageURL,
		&teacher.FollowersCount,
		&teacher.TotalContentCount,
		&teacher.TotalViews,
		&teacher.AverageRating,
		&teacher.CreatedAt,
		&teacher.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	return &teacher, nil
}

func (r *teacherRepository) AddViews(ctx context.Context, id uint64, delta int64) error {
	query := "UPDATE teachers SET total_views = total_views + ?, updated_at = NOW() WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, delta, id); err != nil {
		return fmt.Errorf("failed to add teacher views: %w", err)
	}
	return nil
}

func (r *teacherRepository) SetAverageRating(ctx context.Context, id uint64, average float64) error {
	query := "UPDATE teachers SET average_rating = ?, updated_at = NOW() WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, query, average, id); err != nil {
		return fmt.Errorf("failed to set teacher average rating: %w", err)
	}
	return nil
}

// MosqueRepository defines persistence operations for mosque profiles.
type MosqueRepository interface {
	GetByID(ctx context.Context, id uint64) (*models.Mosque, error)
}

type mosqueRepository struct {
	db *sql.DB
}

// NewMosqueRepository creates a MySQL-backed mosque repository.
func NewMosqueRepository(db *sql.DB) MosqueRepository {
	return &mosqueRepository{db: db}
}

func (r *mosqueRepository) GetByID(ctx context.Context, id uint64) (*models.Mosque, error) {
	query := `
		SELECT id, name, description, city, country, verified, status,
			followers_count, content_count, created_at, updated_at
		FROM mosques WHERE id = ?
	`
	var mosque models.Mosque
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&mosque.ID,
		&mosque.Name,
		&mosque.Description,
		&mosque.City,
		&mosque.Country,
		&mosque.Verified,
		&mosque.Status,
		&mosque.FollowersCount,
		&mosque.ContentCount,
		&mosque.CreatedAt,
		&mosque.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mosque: %w", err)
	}
	return &mosque, nil
}
