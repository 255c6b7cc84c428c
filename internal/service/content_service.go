package service

import (
	"context"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
	"github.com/alassaneba1/JangQuranAkSunna/internal/repository"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/apperrors"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/helpers"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/logger"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/metrics"
)

// ContentService drives the content lifecycle state machine and the asset
// processing sub-machine. Every transition is applied with a conditional
// UPDATE keyed on the expected current status, so two concurrent transitions
// can never both win.
type ContentService interface {
	CreateContent(ctx context.Context, input CreateContentInput) (*models.Content, error)
	GetContent(ctx context.Context, id uint64) (*models.Content, error)
	DeleteContent(ctx context.Context, id uint64) error

	Submit(ctx context.Context, id uint64) error
	Approve(ctx context.Context, id uint64) error
	Reject(ctx context.Context, id uint64) error
	// Publish requires an eligible teacher and at least one completed playable
	// asset, and stamps published_at.
	Publish(ctx context.Context, id uint64) error
	Archive(ctx context.Context, id uint64) error
	Flag(ctx context.Context, id uint64) error
	// ClearFlag returns a flagged content to PUBLISHED keeping its original
	// published_at.
	ClearFlag(ctx context.Context, id uint64) error
	MakePrivate(ctx context.Context, id uint64) error
	ResumeDraft(ctx context.Context, id uint64) error

	RecordView(ctx context.Context, id uint64) error
	RecordDownload(ctx context.Context, id uint64, authenticated bool) error
	Like(ctx context.Context, id uint64) error
	Unlike(ctx context.Context, id uint64) error

	AddAsset(ctx context.Context, input AddAssetInput) (*models.ContentAsset, error)
	StartProcessing(ctx context.Context, assetID uint64) error
	CompleteProcessing(ctx context.Context, assetID uint64) error
	FailProcessing(ctx context.Context, assetID uint64, reason string) error
	CancelProcessing(ctx context.Context, assetID uint64) error
	// ReplaceAsset creates a fresh PENDING asset superseding a failed or
	// cancelled one; terminal assets are never retried in place.
	ReplaceAsset(ctx context.Context, assetID uint64, url, format string, fileSize int64) (*models.ContentAsset, error)
}

// CreateContentInput carries the fields for a new content. Lang defaults to
// "fr" and downloads default to enabled.
type CreateContentInput struct {
	Type            models.ContentType `validate:"required"`
	Title           string             `validate:"required,min=2,max=200"`
	Description     string             `validate:"max=5000"`
	TeacherID       uint64             `validate:"required,gt=0"`
	MosqueID        *uint64            `validate:"omitempty,gt=0"`
	SeriesID        *uint64            `validate:"omitempty,gt=0"`
	SeriesOrder     *int32             `validate:"omitempty,gte=0"`
	ThemeID         *uint64            `validate:"omitempty,gt=0"`
	Lang            string             `validate:"omitempty,lang_code"`
	DurationSeconds int64              `validate:"gte=0"`
	ThumbnailURL    *string            `validate:"omitempty,url"`
	DownloadEnabled *bool
	RequiresAuth    bool
}

// AddAssetInput carries the fields for a new content asset.
type AddAssetInput struct {
	ContentID       uint64           `validate:"required,gt=0"`
	Kind            models.AssetKind `validate:"required"`
	URL             string           `validate:"required,url"`
	Format          string           `validate:"required,max=20"`
	FileSize        int64            `validate:"gte=0"`
	DurationSeconds int64            `validate:"gte=0"`
	Width           *int32           `validate:"omitempty,gt=0"`
	Height          *int32           `validate:"omitempty,gt=0"`
	Bitrate         *int32           `validate:"omitempty,gt=0"`
	QualityLevel    *string
	MimeType        *string
	Language        *string `validate:"omitempty,lang_code"`
	IsDefault       bool
}

type contentService struct {
	contentRepo repository.ContentRepository
	assetRepo   repository.AssetRepository
	seriesRepo  repository.SeriesRepository
	teacherRepo repository.TeacherRepository
	mosqueRepo  repository.MosqueRepository
	themes      ThemeService
	validator   *helpers.CustomValidator
	metrics     *metrics.Metrics
	log         *logger.Logger
}

// NewContentService creates a content service. metrics may be nil.
func NewContentService(
	contentRepo repository.ContentRepository,
	assetRepo repository.AssetRepository,
	seriesRepo repository.SeriesRepository,
	teacherRepo repository.TeacherRepository,
	mosqueRepo repository.MosqueRepository,
	themes ThemeService,
	validator *helpers.CustomValidator,
	m *metrics.Metrics,
	log *logger.Logger,
) ContentService {
	return &contentService{
		contentRepo: contentRepo,
		assetRepo:   assetRepo,
		seriesRepo:  seriesRepo,
		teacherRepo: teacherRepo,
		mosqueRepo:  mosqueRepo,
		themes:      themes,
		validator:   validator,
		metrics:     m,
		log:         log,
	}
}

func (s *contentService) CreateContent(ctx context.Context, input CreateContentInput) (*models.Content, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, apperrors.Validationf("invalid content: %v", err)
	}
	if !input.Type.IsValid() {
		return nil, apperrors.Validationf("unknown content type %q", input.Type)
	}

	teacher, err := s.teacherRepo.GetByID(ctx, input.TeacherID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, apperrors.NotFoundf("teacher %d not found", input.TeacherID)
	}

	if input.MosqueID != nil {
		mosque, err := s.mosqueRepo.GetByID(ctx, *input.MosqueID)
		if err != nil {
			return nil, err
		}
		if mosque == nil {
			return nil, apperrors.NotFoundf("mosque %d not found", *input.MosqueID)
		}
	}

	if input.SeriesID != nil {
		series, err := s.seriesRepo.GetByID(ctx, *input.SeriesID)
		if err != nil {
			return nil, err
		}
		if series == nil {
			return nil, apperrors.NotFoundf("series %d not found", *input.SeriesID)
		}
	}

	var themeChain []uint64
	if input.ThemeID != nil {
		chain, err := s.themes.GetPath(ctx, *input.ThemeID)
		if err != nil {
			return nil, err
		}
		themeChain = chainIDs(chain)
	}

	lang := input.Lang
	if lang == "" {
		lang = "fr"
	}
	downloadEnabled := true
	if input.DownloadEnabled != nil {
		downloadEnabled = *input.DownloadEnabled
	}

	content := &models.Content{
		Type:                 input.Type,
		Title:                input.Title,
		Description:          input.Description,
		TeacherID:            input.TeacherID,
		MosqueID:             input.MosqueID,
		SeriesID:             input.SeriesID,
		SeriesOrder:          input.SeriesOrder,
		ThemeID:              input.ThemeID,
		Lang:                 lang,
		DurationSeconds:      input.DurationSeconds,
		Status:               models.ContentStatusDraft,
		ThumbnailURL:         input.ThumbnailURL,
		DownloadEnabled:      downloadEnabled,
		DownloadRequiresAuth: input.RequiresAuth,
	}
	// The row and every counter it feeds land in one transaction.
	if err := s.contentRepo.Create(ctx, content, themeChain); err != nil {
		return nil, err
	}

	s.log.WithContentID(content.ID).WithField("type", content.Type).Info("content created")
	return content, nil
}

func (s *contentService) GetContent(ctx context.Context, id uint64) (*models.Content, error) {
	return s.getContent(ctx, id)
}

func (s *contentService) DeleteContent(ctx context.Context, id uint64) error {
	content, err := s.getContent(ctx, id)
	if err != nil {
		return err
	}

	var themeChain []uint64
	if content.ThemeID != nil {
		chain, err := s.themes.GetPath(ctx, *content.ThemeID)
		if err != nil && !apperrors.IsNotFound(err) {
			return err
		}
		themeChain = chainIDs(chain)
	}

	if err := s.contentRepo.Delete(ctx, content, themeChain); err != nil {
		return err
	}
	s.log.WithContentID(id).Info("content deleted")
	return nil
}

func (s *contentService) Submit(ctx context.Context, id uint64) error {
	return s.transition(ctx, id,
		[]models.ContentStatus{models.ContentStatusDraft},
		models.ContentStatusPendingReview)
}

func (s *contentService) Approve(ctx context.Context, id uint64) error {
	return s.transition(ctx, id,
		[]models.ContentStatus{models.ContentStatusPendingReview},
		models.ContentStatusApproved)
}

func (s *contentService) Reject(ctx context.Context, id uint64) error {
	return s.transition(ctx, id,
		[]models.ContentStatus{models.ContentStatusPendingReview},
		models.ContentStatusRejected)
}

func (s *contentService) Publish(ctx context.Context, id uint64) error {
	content, err := s.getContent(ctx, id)
	if err != nil {
		return err
	}
	if content.Status != models.ContentStatusApproved {
		return apperrors.Preconditionf("cannot publish content %d from status %s", id, content.Status)
	}

	teacher, err := s.teacherRepo.GetByID(ctx, content.TeacherID)
	if err != nil {
		return err
	}
	if teacher == nil {
		return apperrors.NotFoundf("teacher %d not found", content.TeacherID)
	}
	if !teacher.CanPublishContent() {
		return apperrors.Preconditionf("teacher %d is not eligible to publish", teacher.ID)
	}

	playable, err := s.assetRepo.CountCompletedPlayable(ctx, id)
	if err != nil {
		return err
	}
	if playable == 0 {
		return apperrors.Preconditionf("content %d has no completed playable asset", id)
	}

	ok, err := s.contentRepo.PublishStatus(ctx, id,
		[]models.ContentStatus{models.ContentStatusApproved}, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflictf("content %d status changed concurrently", id)
	}

	s.recordTransition(models.ContentStatusPublished)
	s.log.WithContentID(id).Info("content published")
	return nil
}

func (s *contentService) Archive(ctx context.Context, id uint64) error {
	return s.transition(ctx, id,
		[]models.ContentStatus{models.ContentStatusPublished, models.ContentStatusRejected},
		models.ContentStatusArchived)
}

func (s *contentService) Flag(ctx context.Context, id uint64) error {
	return s.transition(ctx, id,
		[]models.ContentStatus{models.ContentStatusPublished},
		models.ContentStatusFlagged)
}

func (s *contentService) ClearFlag(ctx context.Context, id uint64) error {
	return s.transition(ctx, id,
		[]models.ContentStatus{models.ContentStatusFlagged},
		models.ContentStatusPublished)
}

func (s *contentService) MakePrivate(ctx context.Context, id uint64) error {
	return s.transition(ctx, id, nonTerminalStatuses(), models.ContentStatusPrivate)
}

func (s *contentService) ResumeDraft(ctx context.Context, id uint64) error {
	return s.transition(ctx, id,
		[]models.ContentStatus{models.ContentStatusPrivate},
		models.ContentStatusDraft)
}

func nonTerminalStatuses() []models.ContentStatus {
	return []models.ContentStatus{
		models.ContentStatusDraft,
		models.ContentStatusPendingReview,
		models.ContentStatusApproved,
		models.ContentStatusPublished,
		models.ContentStatusRejected,
		models.ContentStatusFlagged,
		models.ContentStatusPrivate,
	}
}

func (s *contentService) transition(ctx context.Context, id uint64, from []models.ContentStatus, to models.ContentStatus) error {
	content, err := s.getContent(ctx, id)
	if err != nil {
		return err
	}
	if !statusIn(content.Status, from) {
		return apperrors.Preconditionf("cannot transition content %d from %s to %s", id, content.Status, to)
	}

	ok, err := s.contentRepo.UpdateStatus(ctx, id, from, to)
	if err != nil {
		return err
	}
	if !ok {
		// Someone else moved the content between our read and the UPDATE.
		return apperrors.Conflictf("content %d status changed concurrently", id)
	}

	s.recordTransition(to)
	s.log.WithContentID(id).WithField("to_status", to).Info("content status changed")
	return nil
}

func statusIn(status models.ContentStatus, set []models.ContentStatus) bool {
	for _, candidate := range set {
		if status == candidate {
			return true
		}
	}
	return false
}

func (s *contentService) recordTransition(to models.ContentStatus) {
	if s.metrics != nil {
		s.metrics.StatusTransitions.WithLabelValues(string(to)).Inc()
	}
}

func (s *contentService) RecordView(ctx context.Context, id uint64) error {
	content, err := s.getContent(ctx, id)
	if err != nil {
		return err
	}

	if err := s.contentRepo.IncrementViews(ctx, id); err != nil {
		return err
	}
	if err := s.teacherRepo.AddViews(ctx, content.TeacherID, 1); err != nil {
		return err
	}
	if content.SeriesID != nil {
		if err := s.seriesRepo.IncrementViews(ctx, *content.SeriesID); err != nil {
			return err
		}
	}
	return nil
}

func (s *contentService) RecordDownload(ctx context.Context, id uint64, authenticated bool) error {
	content, err := s.getContent(ctx, id)
	if err != nil {
		return err
	}
	if !content.CanBeDownloaded() {
		return apperrors.Preconditionf("content %d is not downloadable", id)
	}
	if content.RequiresAuth() && !authenticated {
		return apperrors.Preconditionf("content %d requires an authenticated download", id)
	}
	return s.contentRepo.IncrementDownloads(ctx, id)
}

func (s *contentService) Like(ctx context.Context, id uint64) error {
	if _, err := s.getContent(ctx, id); err != nil {
		return err
	}
	return s.contentRepo.AdjustLikes(ctx, id, 1)
}

func (s *contentService) Unlike(ctx context.Context, id uint64) error {
	if _, err := s.getContent(ctx, id); err != nil {
		return err
	}
	return s.contentRepo.AdjustLikes(ctx, id, -1)
}

func (s *contentService) AddAsset(ctx context.Context, input AddAssetInput) (*models.ContentAsset, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, apperrors.Validationf("invalid asset: %v", err)
	}
	if _, err := s.getContent(ctx, input.ContentID); err != nil {
		return nil, err
	}

	asset := &models.ContentAsset{
		ContentID:        input.ContentID,
		Kind:             input.Kind,
		URL:              input.URL,
		Format:           input.Format,
		FileSize:         input.FileSize,
		DurationSeconds:  input.DurationSeconds,
		Width:            input.Width,
		Height:           input.Height,
		Bitrate:          input.Bitrate,
		QualityLevel:     input.QualityLevel,
		MimeType:         input.MimeType,
		Language:         input.Language,
		IsDefault:        input.IsDefault,
		ProcessingStatus: models.ProcessingStatusPending,
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	s.log.WithContentID(input.ContentID).WithField("asset_id", asset.ID).WithField("kind", asset.Kind).Info("asset added")
	return asset, nil
}

func (s *contentService) StartProcessing(ctx context.Context, assetID uint64) error {
	return s.assetTransition(ctx, assetID,
		[]models.ProcessingStatus{models.ProcessingStatusPending},
		models.ProcessingStatusProcessing, nil)
}

func (s *contentService) CompleteProcessing(ctx context.Context, assetID uint64) error {
	return s.assetTransition(ctx, assetID,
		[]models.ProcessingStatus{models.ProcessingStatusProcessing},
		models.ProcessingStatusCompleted, nil)
}

func (s *contentService) FailProcessing(ctx context.Context, assetID uint64, reason string) error {
	return s.assetTransition(ctx, assetID,
		[]models.ProcessingStatus{models.ProcessingStatusProcessing},
		models.ProcessingStatusFailed, &reason)
}

func (s *contentService) CancelProcessing(ctx context.Context, assetID uint64) error {
	return s.assetTransition(ctx, assetID,
		[]models.ProcessingStatus{models.ProcessingStatusPending, models.ProcessingStatusProcessing},
		models.ProcessingStatusCancelled, nil)
}

func (s *contentService) assetTransition(ctx context.Context, assetID uint64, from []models.ProcessingStatus, to models.ProcessingStatus, reason *string) error {
	asset, err := s.getAsset(ctx, assetID)
	if err != nil {
		return err
	}

	allowed := false
	for _, candidate := range from {
		if asset.ProcessingStatus == candidate {
			allowed = true
			break
		}
	}
	if !allowed {
		return apperrors.Preconditionf("cannot transition asset %d from %s to %s", assetID, asset.ProcessingStatus, to)
	}

	ok, err := s.assetRepo.UpdateProcessingStatus(ctx, assetID, asset.ProcessingStatus, to, reason)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflictf("asset %d processing status changed concurrently", assetID)
	}

	s.log.WithField("asset_id", assetID).WithField("to_status", to).Info("asset processing status changed")
	return nil
}

func (s *contentService) ReplaceAsset(ctx context.Context, assetID uint64, url, format string, fileSize int64) (*models.ContentAsset, error) {
	old, err := s.getAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if old.ProcessingStatus != models.ProcessingStatusFailed && old.ProcessingStatus != models.ProcessingStatusCancelled {
		return nil, apperrors.Preconditionf("asset %d is %s; only failed or cancelled assets can be replaced", assetID, old.ProcessingStatus)
	}

	replacement := &models.ContentAsset{
		ContentID:        old.ContentID,
		Kind:             old.Kind,
		URL:              url,
		Format:           format,
		FileSize:         fileSize,
		QualityLevel:     old.QualityLevel,
		Language:         old.Language,
		IsDefault:        old.IsDefault,
		ProcessingStatus: models.ProcessingStatusPending,
		ReplacesAssetID:  &old.ID,
	}
	if err := s.assetRepo.Create(ctx, replacement); err != nil {
		return nil, err
	}

	s.log.WithField("asset_id", replacement.ID).WithField("replaces", old.ID).Info("asset replaced")
	return replacement, nil
}

func (s *contentService) getContent(ctx context.Context, id uint64) (*models.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, apperrors.NotFoundf("content %d not found", id)
	}
	return content, nil
}

func (s *contentService) getAsset(ctx context.Context, id uint64) (*models.ContentAsset, error) {
	asset, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apperrors.NotFoundf("asset %d not found", id)
	}
	return asset, nil
}
