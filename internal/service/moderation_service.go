package service

import (
	"context"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
	"github.com/alassaneba1/JangQuranAkSunna/internal/repository"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/apperrors"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/helpers"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/logger"
)

// ModerationService runs the report workflow. Filing a report may auto-flag
// the content: when the number of open reports reaches the configured
// threshold and the content is published, it is moved to FLAGGED. That is the
// only transition the system triggers on its own.
type ModerationService interface {
	FileReport(ctx context.Context, input FileReportInput) (*models.ContentReport, error)
	GetReport(ctx context.Context, id uint64) (*models.ContentReport, error)
	ListReports(ctx context.Context, contentID uint64) ([]*models.ContentReport, error)

	StartReview(ctx context.Context, id uint64) error
	Resolve(ctx context.Context, id, reviewerID uint64, notes, moderatorAction *string) error
	RejectReport(ctx context.Context, id, reviewerID uint64, notes *string) error
	Escalate(ctx context.Context, id uint64) error
	// Reopen is the only path out of ESCALATED, back to review.
	Reopen(ctx context.Context, id uint64) error
}

// FileReportInput carries a new report. UserID is nil for anonymous reports,
// which must then carry a reporter email.
type FileReportInput struct {
	ContentID     uint64              `validate:"required,gt=0"`
	UserID        *uint64             `validate:"omitempty,gt=0"`
	Reason        models.ReportReason `validate:"required"`
	Note          *string             `validate:"omitempty,max=2000"`
	ReporterEmail *string             `validate:"omitempty,email"`
	ReporterName  *string             `validate:"omitempty,max=120"`
}

type moderationService struct {
	reportRepo  repository.ReportRepository
	contentRepo repository.ContentRepository
	contents    ContentService
	validator   *helpers.CustomValidator
	// flagThreshold is the open-report count at which a published content is
	// flagged automatically. Configured, never hardcoded.
	flagThreshold int64
	log           *logger.Logger
}

// NewModerationService creates a moderation service with the given auto-flag
// threshold.
func NewModerationService(
	reportRepo repository.ReportRepository,
	contentRepo repository.ContentRepository,
	contents ContentService,
	validator *helpers.CustomValidator,
	flagThreshold int64,
	log *logger.Logger,
) ModerationService {
	return &moderationService{
		reportRepo:    reportRepo,
		contentRepo:   contentRepo,
		contents:      contents,
		validator:     validator,
		flagThreshold: flagThreshold,
		log:           log,
	}
}

func (s *moderationService) FileReport(ctx context.Context, input FileReportInput) (*models.ContentReport, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, apperrors.Validationf("invalid report: %v", err)
	}
	if !input.Reason.IsValid() {
		return nil, apperrors.Validationf("unknown report reason %q", input.Reason)
	}
	if input.UserID == nil && input.ReporterEmail == nil {
		return nil, apperrors.Validationf("anonymous reports require a reporter email")
	}

	content, err := s.contentRepo.GetByID(ctx, input.ContentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, apperrors.NotFoundf("content %d not found", input.ContentID)
	}

	report := &models.ContentReport{
		ContentID:     input.ContentID,
		UserID:        input.UserID,
		Reason:        input.Reason,
		Note:          input.Note,
		Status:        models.ReportStatusPending,
		ReporterEmail: input.ReporterEmail,
		ReporterName:  input.ReporterName,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.log.WithContentID(input.ContentID).WithField("report_id", report.ID).WithField("reason", report.Reason).Info("report filed")

	if err := s.maybeAutoFlag(ctx, content); err != nil {
		return nil, err
	}
	return report, nil
}

// maybeAutoFlag flags the content once the open-report count reaches the
// threshold. A concurrent flag (moderator or another report) losing us the
// conditional update is not an error.
func (s *moderationService) maybeAutoFlag(ctx context.Context, content *models.Content) error {
	if content.Status != models.ContentStatusPublished {
		return nil
	}

	open, err := s.reportRepo.CountOpenByContent(ctx, content.ID)
	if err != nil {
		return err
	}
	if open < s.flagThreshold {
		return nil
	}

	if err := s.contents.Flag(ctx, content.ID); err != nil {
		if apperrors.IsConflict(err) || apperrors.IsPrecondition(err) {
			return nil
		}
		return err
	}

	s.log.WithContentID(content.ID).WithField("open_reports", open).Warn("content auto-flagged")
	return nil
}

func (s *moderationService) GetReport(ctx context.Context, id uint64) (*models.ContentReport, error) {
	return s.getReport(ctx, id)
}

func (s *moderationService) ListReports(ctx context.Context, contentID uint64) ([]*models.ContentReport, error) {
	return s.reportRepo.ListByContent(ctx, contentID)
}

func (s *moderationService) StartReview(ctx context.Context, id uint64) error {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return err
	}
	if report.Status != models.ReportStatusPending {
		return apperrors.Preconditionf("cannot start review of report %d in status %s", id, report.Status)
	}

	ok, err := s.reportRepo.UpdateStatus(ctx, id,
		[]models.ReportStatus{models.ReportStatusPending}, models.ReportStatusUnderReview)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflictf("report %d status changed concurrently", id)
	}
	return nil
}

func (s *moderationService) Resolve(ctx context.Context, id, reviewerID uint64, notes, moderatorAction *string) error {
	return s.close(ctx, id, reviewerID, models.ReportStatusResolved, notes, moderatorAction)
}

func (s *moderationService) RejectReport(ctx context.Context, id, reviewerID uint64, notes *string) error {
	return s.close(ctx, id, reviewerID, models.ReportStatusRejected, notes, nil)
}

// close moves a report into a terminal status with the reviewer stamped.
func (s *moderationService) close(ctx context.Context, id, reviewerID uint64, to models.ReportStatus, notes, action *string) error {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return err
	}
	if report.Status.IsTerminal() {
		return apperrors.Preconditionf("report %d is already closed as %s", id, report.Status)
	}

	from := []models.ReportStatus{
		models.ReportStatusPending,
		models.ReportStatusUnderReview,
		models.ReportStatusEscalated,
	}
	ok, err := s.reportRepo.Resolve(ctx, id, from, to, reviewerID, notes, action)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflictf("report %d status changed concurrently", id)
	}

	s.log.WithField("report_id", id).WithField("user_id", reviewerID).WithField("to_status", to).Info("report closed")
	return nil
}

func (s *moderationService) Escalate(ctx context.Context, id uint64) error {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return err
	}
	if report.Status != models.ReportStatusUnderReview {
		return apperrors.Preconditionf("cannot escalate report %d in status %s", id, report.Status)
	}

	ok, err := s.reportRepo.UpdateStatus(ctx, id,
		[]models.ReportStatus{models.ReportStatusUnderReview}, models.ReportStatusEscalated)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflictf("report %d status changed concurrently", id)
	}
	return nil
}

func (s *moderationService) Reopen(ctx context.Context, id uint64) error {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return err
	}
	if report.Status != models.ReportStatusEscalated {
		return apperrors.Preconditionf("cannot reopen report %d in status %s", id, report.Status)
	}

	ok, err := s.reportRepo.UpdateStatus(ctx, id,
		[]models.ReportStatus{models.ReportStatusEscalated}, models.ReportStatusUnderReview)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflictf("report %d status changed concurrently", id)
	}
	return nil
}

func (s *moderationService) getReport(ctx context.Context, id uint64) (*models.ContentReport, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, apperrors.NotFoundf("report %d not found", id)
	}
	return report, nil
}
