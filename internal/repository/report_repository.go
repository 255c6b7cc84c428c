package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
)

// ReportRepository defines persistence operations for content reports.
type ReportRepository interface {
	// Create inserts the report and bumps the content's reports_count in one
	// transaction.
	Create(ctx context.Context, report *models.ContentReport) error
	GetByID(ctx context.Context, id uint64) (*models.ContentReport, error)
	ListByContent(ctx context.Context, contentID uint64) ([]*models.ContentReport, error)
	// CountOpenByContent counts PENDING and UNDER_REVIEW reports for a
	// content, the quantity the auto-flag threshold is compared against.
	CountOpenByContent(ctx context.Context, contentID uint64) (int64, error)
	// UpdateStatus moves the report between statuses with a conditional
	// UPDATE, returning false when the report was not in any of fromStatuses.
	UpdateStatus(ctx context.Context, id uint64, fromStatuses []models.ReportStatus, toStatus models.ReportStatus) (bool, error)
	// Resolve stamps the reviewer fields along with the terminal status.
	Resolve(ctx context.Context, id uint64, fromStatuses []models.ReportStatus, toStatus models.ReportStatus, reviewerID uint64, notes, action *string) (bool, error)
}

type reportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a MySQL-backed report repository.
func NewReportRepository(db *sql.DB) ReportRepository {
	return &reportRepository{db: db}
}

const reportColumns = `id, content_id, user_id, reason, note, status, reporter_email, reporter_name,
	reviewed_by_user_id, reviewed_at, review_notes, moderator_action, created_at, updated_at`

func scanReport(row interface{ Scan(...interface{}) error }) (*models.ContentReport, error) {
	var report models.ContentReport
	err := row.Scan(
		&report.ID,
		&report.ContentID,
		&report.UserID,
		&report.Reason,
		&report.Note,
		&report.Status,
		&report.ReporterEmail,
		&report.ReporterName,
		&report.ReviewedByID,
		&report.ReviewedAt,
		&report.ReviewNotes,
		&report.ModeratorAction,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) Create(ctx context.Context, report *models.ContentReport) error {
	query := `
		INSERT INTO content_reports (content_id, user_id, reason, note, status,
			reporter_email, reporter_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query,
			report.ContentID, report.UserID, report.Reason, report.Note,
			report.Status, report.ReporterEmail, report.ReporterName, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to create report: %w", err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get report id: %w", err)
		}
		report.ID = uint64(id)

		bump := "UPDATE contents SET reports_count = reports_count + 1, updated_at = NOW() WHERE id = ?"
		if _, err := tx.ExecContext(ctx, bump, report.ContentID); err != nil {
			return fmt.Errorf("failed to count report on content %d: %w", report.ContentID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	report.CreatedAt = now
	report.UpdatedAt = now
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uint64) (*models.ContentReport, error) {
	query := "SELECT " + reportColumns + " FROM content_reports WHERE id = ?"

	report, err := scanReport(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return report, nil
}

func (r *reportRepository) ListByContent(ctx context.Context, contentID uint64) ([]*models.ContentReport, error) {
	query := "SELECT " + reportColumns + " FROM content_reports WHERE content_id = ? ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.ContentReport
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}
	return reports, nil
}

func (r *reportRepository) CountOpenByContent(ctx context.Context, contentID uint64) (int64, error) {
	query := "SELECT COUNT(*) FROM content_reports WHERE content_id = ? AND status IN (?, ?)"

	var count int64
	err := r.db.QueryRowContext(ctx, query, contentID,
		models.ReportStatusPending, models.ReportStatusUnderReview).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count open reports: %w", err)
	}
	return count, nil
}

func reportStatusPlaceholders(statuses []models.ReportStatus) (string, []interface{}) {
	placeholders := make([]string, len(statuses))
	args := make([]interface{}, len(statuses))
	for i, s := range statuses {
		placeholders[i] = "?"
		args[i] = string(s)
	}
	return strings.Join(placeholders, ", "), args
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id uint64, fromStatuses []models.ReportStatus, toStatus models.ReportStatus) (bool, error) {
	in, inArgs := reportStatusPlaceholders(fromStatuses)
	query := fmt.Sprintf("UPDATE content_reports SET status = ?, updated_at = NOW() WHERE id = ? AND status IN (%s)", in)

	args := append([]interface{}{string(toStatus), id}, inArgs...)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update report status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}

func (r *reportRepository) Resolve(ctx context.Context, id uint64, fromStatuses []models.ReportStatus, toStatus models.ReportStatus, reviewerID uint64, notes, action *string) (bool, error) {
	in, inArgs := reportStatusPlaceholders(fromStatuses)
	query := fmt.Sprintf(`
		UPDATE content_reports
		SET status = ?, reviewed_by_user_id = ?, reviewed_at = ?, review_notes = ?, moderator_action = ?, updated_at = NOW()
		WHERE id = ? AND status IN (%s)
	`, in)

	args := append([]interface{}{string(toStatus), reviewerID, time.Now(), notes, action, id}, inArgs...)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to resolve report: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}
