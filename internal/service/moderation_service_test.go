package service

import (
	"context"
	"testing"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/apperrors"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/helpers"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/logger"
)

const testFlagThreshold = 3

func newModerationServiceForTest(reportRepo *mockReportRepository, contentRepo *mockContentRepository, contents ContentService) ModerationService {
	if contents == nil {
		contents = newContentServiceForTest(contentServiceMocks{contentRepo: contentRepo})
	}
	return NewModerationService(reportRepo, contentRepo, contents,
		helpers.NewCustomValidator(), testFlagThreshold, logger.NewLogger("test"))
}

// countingReportCreate emulates the report insert, which bumps the content's
// reports_count in the same transaction.
func countingReportCreate(content *models.Content, nextID uint64) func(ctx context.Context, report *models.ContentReport) error {
	return func(ctx context.Context, report *models.ContentReport) error {
		report.ID = nextID
		content.ReportsCount++
		return nil
	}
}

func TestModerationService_FileReport(t *testing.T) {
	ctx := context.Background()
	userID := uint64(7)
	now := time.Now()

	t.Run("CreatesPendingAndCounts", func(t *testing.T) {
		content := &models.Content{ID: 10, Status: models.ContentStatusPublished, PublishedAt: &now}
		contentRepo := statefulContent(content)
		reportRepo := &mockReportRepository{
			createFunc: countingReportCreate(content, 1),
			countOpenByContentFunc: func(ctx context.Context, contentID uint64) (int64, error) {
				return 1, nil
			},
		}
		svc := newModerationServiceForTest(reportRepo, contentRepo, nil)

		report, err := svc.FileReport(ctx, FileReportInput{
			ContentID: 10, UserID: &userID, Reason: models.ReportReasonSpam,
		})
		if err != nil {
			t.Fatalf("FileReport failed: %v", err)
		}
		if report.Status != models.ReportStatusPending {
			t.Errorf("expected PENDING, got %s", report.Status)
		}
		if content.ReportsCount != 1 {
			t.Errorf("expected reports count bumped, got %d", content.ReportsCount)
		}
		if content.Status != models.ContentStatusPublished {
			t.Errorf("expected content untouched below threshold, got %s", content.Status)
		}
	})

	t.Run("AutoFlagsAtThreshold", func(t *testing.T) {
		content := &models.Content{ID: 10, Status: models.ContentStatusPublished, PublishedAt: &now}
		contentRepo := statefulContent(content)
		reportRepo := &mockReportRepository{
			createFunc: countingReportCreate(content, 3),
			countOpenByContentFunc: func(ctx context.Context, contentID uint64) (int64, error) {
				return testFlagThreshold, nil
			},
		}
		svc := newModerationServiceForTest(reportRepo, contentRepo, nil)

		if _, err := svc.FileReport(ctx, FileReportInput{
			ContentID: 10, UserID: &userID, Reason: models.ReportReasonMisinformation,
		}); err != nil {
			t.Fatalf("FileReport failed: %v", err)
		}
		if content.Status != models.ContentStatusFlagged {
			t.Errorf("expected content auto-flagged, got %s", content.Status)
		}
	})

	t.Run("AlreadyFlaggedIsBenign", func(t *testing.T) {
		content := &models.Content{ID: 10, Status: models.ContentStatusFlagged, PublishedAt: &now}
		contentRepo := statefulContent(content)
		reportRepo := &mockReportRepository{
			createFunc: countingReportCreate(content, 4),
			countOpenByContentFunc: func(ctx context.Context, contentID uint64) (int64, error) {
				return testFlagThreshold + 1, nil
			},
		}
		svc := newModerationServiceForTest(reportRepo, contentRepo, nil)

		if _, err := svc.FileReport(ctx, FileReportInput{
			ContentID: 10, UserID: &userID, Reason: models.ReportReasonSpam,
		}); err != nil {
			t.Fatalf("expected report on flagged content to succeed, got %v", err)
		}
	})

	t.Run("DraftIsNeverAutoFlagged", func(t *testing.T) {
		content := &models.Content{ID: 10, Status: models.ContentStatusDraft}
		contentRepo := statefulContent(content)
		reportRepo := &mockReportRepository{
			createFunc: countingReportCreate(content, 5),
			// Count must not even be consulted for unpublished content.
		}
		svc := newModerationServiceForTest(reportRepo, contentRepo, nil)

		if _, err := svc.FileReport(ctx, FileReportInput{
			ContentID: 10, UserID: &userID, Reason: models.ReportReasonSpam,
		}); err != nil {
			t.Fatalf("FileReport failed: %v", err)
		}
		if content.Status != models.ContentStatusDraft {
			t.Errorf("expected draft untouched, got %s", content.Status)
		}
	})

	t.Run("AnonymousNeedsEmail", func(t *testing.T) {
		svc := newModerationServiceForTest(&mockReportRepository{}, &mockContentRepository{}, nil)

		_, err := svc.FileReport(ctx, FileReportInput{
			ContentID: 10, Reason: models.ReportReasonSpam,
		})
		if !apperrors.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("UnknownReason", func(t *testing.T) {
		svc := newModerationServiceForTest(&mockReportRepository{}, &mockContentRepository{}, nil)

		_, err := svc.FileReport(ctx, FileReportInput{
			ContentID: 10, UserID: &userID, Reason: models.ReportReason("RUDE"),
		})
		if !apperrors.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

// statefulReport wires a report mock whose status follows conditional updates.
func statefulReport(report *models.ContentReport) *mockReportRepository {
	applies := func(from []models.ReportStatus) bool {
		for _, candidate := range from {
			if report.Status == candidate {
				return true
			}
		}
		return false
	}
	return &mockReportRepository{
		getByIDFunc: func(ctx context.Context, id uint64) (*models.ContentReport, error) {
			copied := *report
			return &copied, nil
		},
		updateStatusFunc: func(ctx context.Context, id uint64, from []models.ReportStatus, to models.ReportStatus) (bool, error) {
			if !applies(from) {
				return false, nil
			}
			report.Status = to
			return true, nil
		},
		resolveFunc: func(ctx context.Context, id uint64, from []models.ReportStatus, to models.ReportStatus, reviewerID uint64, notes, action *string) (bool, error) {
			if !applies(from) {
				return false, nil
			}
			now := time.Now()
			report.Status = to
			report.ReviewedByID = &reviewerID
			report.ReviewedAt = &now
			report.ReviewNotes = notes
			report.ModeratorAction = action
			return true, nil
		},
	}
}

func TestModerationService_ReviewWorkflow(t *testing.T) {
	ctx := context.Background()

	t.Run("PendingToResolved", func(t *testing.T) {
		report := &models.ContentReport{ID: 1, ContentID: 10, Status: models.ReportStatusPending}
		svc := newModerationServiceForTest(statefulReport(report), &mockContentRepository{}, nil)

		if err := svc.StartReview(ctx, 1); err != nil {
			t.Fatalf("StartReview failed: %v", err)
		}
		if report.Status != models.ReportStatusUnderReview {
			t.Fatalf("expected UNDER_REVIEW, got %s", report.Status)
		}

		notes := "confirmed spam"
		action := "content removed"
		if err := svc.Resolve(ctx, 1, 42, &notes, &action); err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if report.Status != models.ReportStatusResolved {
			t.Errorf("expected RESOLVED, got %s", report.Status)
		}
		if report.ReviewedByID == nil || *report.ReviewedByID != 42 {
			t.Errorf("expected reviewer stamped, got %v", report.ReviewedByID)
		}
		if report.ModeratorAction == nil || *report.ModeratorAction != action {
			t.Errorf("expected moderator action recorded, got %v", report.ModeratorAction)
		}
	})

	t.Run("DoubleReviewIsPrecondition", func(t *testing.T) {
		report := &models.ContentReport{ID: 1, ContentID: 10, Status: models.ReportStatusUnderReview}
		svc := newModerationServiceForTest(statefulReport(report), &mockContentRepository{}, nil)

		if err := svc.StartReview(ctx, 1); !apperrors.IsPrecondition(err) {
			t.Fatalf("expected precondition error, got %v", err)
		}
	})

	t.Run("ClosedReportStaysClosed", func(t *testing.T) {
		report := &models.ContentReport{ID: 1, ContentID: 10, Status: models.ReportStatusRejected}
		svc := newModerationServiceForTest(statefulReport(report), &mockContentRepository{}, nil)

		err := svc.Resolve(ctx, 1, 42, nil, nil)
		if !apperrors.IsPrecondition(err) {
			t.Fatalf("expected precondition error, got %v", err)
		}
	})

	t.Run("EscalateAndReopen", func(t *testing.T) {
		report := &models.ContentReport{ID: 1, ContentID: 10, Status: models.ReportStatusUnderReview}
		svc := newModerationServiceForTest(statefulReport(report), &mockContentRepository{}, nil)

		if err := svc.Escalate(ctx, 1); err != nil {
			t.Fatalf("Escalate failed: %v", err)
		}
		if report.Status != models.ReportStatusEscalated {
			t.Fatalf("expected ESCALATED, got %s", report.Status)
		}

		if err := svc.RejectReport(ctx, 1, 42, nil); err != nil {
			t.Fatalf("RejectReport from ESCALATED failed: %v", err)
		}
		if report.Status != models.ReportStatusRejected {
			t.Errorf("expected REJECTED, got %s", report.Status)
		}
	})

	t.Run("ReopenOnlyFromEscalated", func(t *testing.T) {
		report := &models.ContentReport{ID: 1, ContentID: 10, Status: models.ReportStatusEscalated}
		svc := newModerationServiceForTest(statefulReport(report), &mockContentRepository{}, nil)

		if err := svc.Reopen(ctx, 1); err != nil {
			t.Fatalf("Reopen failed: %v", err)
		}
		if report.Status != models.ReportStatusUnderReview {
			t.Fatalf("expected UNDER_REVIEW, got %s", report.Status)
		}

		if err := svc.Reopen(ctx, 1); !apperrors.IsPrecondition(err) {
			t.Fatalf("expected precondition error on second reopen, got %v", err)
		}
	})

	t.Run("LostRaceIsConflict", func(t *testing.T) {
		reportRepo := &mockReportRepository{
			getByIDFunc: func(ctx context.Context, id uint64) (*models.ContentReport, error) {
				return &models.ContentReport{ID: id, ContentID: 10, Status: models.ReportStatusPending}, nil
			},
			updateStatusFunc: func(ctx context.Context, id uint64, from []models.ReportStatus, to models.ReportStatus) (bool, error) {
				return false, nil
			},
		}
		svc := newModerationServiceForTest(reportRepo, &mockContentRepository{}, nil)

		if err := svc.StartReview(ctx, 1); !apperrors.IsConflict(err) {
			t.Fatalf("expected conflict error, got %v", err)
		}
	})
}
