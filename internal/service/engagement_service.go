package service

import (
	"context"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
	"github.com/alassaneba1/JangQuranAkSunna/internal/repository"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/apperrors"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/logger"
)

// A content counts as completed once 90% has been consumed or less than 30
// seconds remain.
const (
	completionPercentThreshold   = 90.0
	completionRemainingThreshold = 30
)

// EngagementService aggregates per-user engagement: favorites, ratings,
// playback progress, and follow relations. Favorites and follows are
// idempotent; ratings are one row per (user, content); progress completion
// latches and is never reset by later updates.
type EngagementService interface {
	FavoriteContent(ctx context.Context, userID, contentID uint64) error
	UnfavoriteContent(ctx context.Context, userID, contentID uint64) error
	IsFavorite(ctx context.Context, userID, contentID uint64) (bool, error)

	RateContent(ctx context.Context, userID, contentID uint64, rating int32, review *string) (*models.ContentRating, error)
	VoteHelpful(ctx context.Context, ratingID uint64) error
	VoteUnhelpful(ctx context.Context, ratingID uint64) error
	GetRatingSummary(ctx context.Context, contentID uint64) (average float64, count int64, err error)

	UpdateProgress(ctx context.Context, userID, contentID uint64, currentSeconds, totalSeconds int64, deviceType *string) (*models.UserProgress, error)
	MarkCompleted(ctx context.Context, userID, contentID uint64) (*models.UserProgress, error)
	// RecordRewatch bumps the watch counter on an explicit re-entry; progress
	// updates alone never touch it.
	RecordRewatch(ctx context.Context, userID, contentID uint64) error

	FollowTeacher(ctx context.Context, userID, teacherID uint64) error
	UnfollowTeacher(ctx context.Context, userID, teacherID uint64) error
	FollowMosque(ctx context.Context, userID, mosqueID uint64) error
	UnfollowMosque(ctx context.Context, userID, mosqueID uint64) error
	SubscribeSeries(ctx context.Context, userID, seriesID uint64, notify bool) error
	UnsubscribeSeries(ctx context.Context, userID, seriesID uint64) error
}

type engagementService struct {
	favoriteRepo repository.FavoriteRepository
	ratingRepo   repository.RatingRepository
	progressRepo repository.ProgressRepository
	followRepo   repository.FollowRepository
	contentRepo  repository.ContentRepository
	teacherRepo  repository.TeacherRepository
	mosqueRepo   repository.MosqueRepository
	seriesRepo   repository.SeriesRepository
	log          *logger.Logger
}

// NewEngagementService creates an engagement service.
func NewEngagementService(
	favoriteRepo repository.FavoriteRepository,
	ratingRepo repository.RatingRepository,
	progressRepo repository.ProgressRepository,
	followRepo repository.FollowRepository,
	contentRepo repository.ContentRepository,
	teacherRepo repository.TeacherRepository,
	mosqueRepo repository.MosqueRepository,
	seriesRepo repository.SeriesRepository,
	log *logger.Logger,
) EngagementService {
	return &engagementService{
		favoriteRepo: favoriteRepo,
		ratingRepo:   ratingRepo,
		progressRepo: progressRepo,
		followRepo:   followRepo,
		contentRepo:  contentRepo,
		teacherRepo:  teacherRepo,
		mosqueRepo:   mosqueRepo,
		seriesRepo:   seriesRepo,
		log:          log,
	}
}

func (s *engagementService) FavoriteContent(ctx context.Context, userID, contentID uint64) error {
	if err := s.requireContent(ctx, contentID); err != nil {
		return err
	}

	created, err := s.favoriteRepo.Add(ctx, userID, contentID)
	if err != nil {
		return err
	}
	if created {
		s.log.WithUserID(userID).WithField("content_id", contentID).Debug("content favorited")
	}
	return nil
}

func (s *engagementService) UnfavoriteContent(ctx context.Context, userID, contentID uint64) error {
	_, err := s.favoriteRepo.Remove(ctx, userID, contentID)
	return err
}

func (s *engagementService) IsFavorite(ctx context.Context, userID, contentID uint64) (bool, error) {
	return s.favoriteRepo.Exists(ctx, userID, contentID)
}

func (s *engagementService) RateContent(ctx context.Context, userID, contentID uint64, rating int32, review *string) (*models.ContentRating, error) {
	if rating < 1 || rating > 5 {
		return nil, apperrors.Validationf("rating must be between 1 and 5, got %d", rating)
	}
	if err := s.requireContent(ctx, contentID); err != nil {
		return nil, err
	}

	row := &models.ContentRating{
		UserID:    userID,
		ContentID: contentID,
		Rating:    rating,
		Review:    review,
	}
	created, err := s.ratingRepo.Upsert(ctx, row)
	if err != nil {
		return nil, err
	}

	stored, err := s.ratingRepo.GetByUserAndContent(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, apperrors.NotFoundf("rating for content %d by user %d not found after upsert", contentID, userID)
	}

	if created {
		s.log.WithUserID(userID).WithField("content_id", contentID).WithField("rating", rating).Debug("content rated")
	} else {
		s.log.WithUserID(userID).WithField("content_id", contentID).WithField("rating", rating).Debug("content re-rated")
	}
	return stored, nil
}

func (s *engagementService) VoteHelpful(ctx context.Context, ratingID uint64) error {
	if err := s.requireRating(ctx, ratingID); err != nil {
		return err
	}
	return s.ratingRepo.AddHelpfulVote(ctx, ratingID)
}

func (s *engagementService) VoteUnhelpful(ctx context.Context, ratingID uint64) error {
	if err := s.requireRating(ctx, ratingID); err != nil {
		return err
	}
	return s.ratingRepo.AddUnhelpfulVote(ctx, ratingID)
}

func (s *engagementService) GetRatingSummary(ctx context.Context, contentID uint64) (float64, int64, error) {
	return s.ratingRepo.AverageForContent(ctx, contentID)
}

func (s *engagementService) UpdateProgress(ctx context.Context, userID, contentID uint64, currentSeconds, totalSeconds int64, deviceType *string) (*models.UserProgress, error) {
	if totalSeconds <= 0 {
		return nil, apperrors.Validationf("total duration must be positive, got %d", totalSeconds)
	}
	if currentSeconds < 0 {
		currentSeconds = 0
	}
	if currentSeconds > totalSeconds {
		currentSeconds = totalSeconds
	}

	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, apperrors.NotFoundf("content %d not found", contentID)
	}

	progress, err := s.progressRepo.GetByUserAndContent(ctx, userID, contentID)
	if err != nil {
		return nil, err
	}

	percentage := float64(currentSeconds) / float64(totalSeconds) * 100
	reached := percentage >= completionPercentThreshold ||
		totalSeconds-currentSeconds <= completionRemainingThreshold

	if progress == nil {
		progress = &models.UserProgress{
			UserID:     userID,
			ContentID:  contentID,
			SeriesID:   content.SeriesID,
			WatchCount: 1,
		}
		applyProgress(progress, currentSeconds, totalSeconds, percentage, reached, deviceType)
		if err := s.progressRepo.Create(ctx, progress); err != nil {
			return nil, err
		}
		return progress, nil
	}

	applyProgress(progress, currentSeconds, totalSeconds, percentage, reached, deviceType)
	if err := s.progressRepo.Update(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// applyProgress writes the new position into the row. Completed only ever goes
// from false to true, and completed_at is stamped on that first transition.
func applyProgress(progress *models.UserProgress, current, total int64, percentage float64, reached bool, deviceType *string) {
	progress.ProgressSeconds = current
	progress.TotalSeconds = total
	progress.ProgressPercentage = percentage
	progress.LastPositionSecs = current
	if deviceType != nil {
		progress.DeviceType = deviceType
	}
	if reached && !progress.Completed {
		progress.Completed = true
		now := time.Now()
		progress.CompletedAt = &now
	}
}

func (s *engagementService) MarkCompleted(ctx context.Context, userID, contentID uint64) (*models.UserProgress, error) {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, apperrors.NotFoundf("content %d not found", contentID)
	}

	total := content.DurationSeconds
	if total <= 0 {
		total = 1
	}
	return s.UpdateProgress(ctx, userID, contentID, total, total, nil)
}

func (s *engagementService) RecordRewatch(ctx context.Context, userID, contentID uint64) error {
	progress, err := s.progressRepo.GetByUserAndContent(ctx, userID, contentID)
	if err != nil {
		return err
	}
	if progress == nil {
		return apperrors.NotFoundf("no progress for content %d by user %d", contentID, userID)
	}

	progress.WatchCount++
	progress.ProgressSeconds = 0
	progress.ProgressPercentage = 0
	progress.LastPositionSecs = 0
	return s.progressRepo.Update(ctx, progress)
}

func (s *engagementService) FollowTeacher(ctx context.Context, userID, teacherID uint64) error {
	teacher, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return err
	}
	if teacher == nil {
		return apperrors.NotFoundf("teacher %d not found", teacherID)
	}

	_, err = s.followRepo.FollowTeacher(ctx, userID, teacherID)
	return err
}

func (s *engagementService) UnfollowTeacher(ctx context.Context, userID, teacherID uint64) error {
	_, err := s.followRepo.UnfollowTeacher(ctx, userID, teacherID)
	return err
}

func (s *engagementService) FollowMosque(ctx context.Context, userID, mosqueID uint64) error {
	mosque, err := s.mosqueRepo.GetByID(ctx, mosqueID)
	if err != nil {
		return err
	}
	if mosque == nil {
		return apperrors.NotFoundf("mosque %d not found", mosqueID)
	}

	_, err = s.followRepo.FollowMosque(ctx, userID, mosqueID)
	return err
}

func (s *engagementService) UnfollowMosque(ctx context.Context, userID, mosqueID uint64) error {
	_, err := s.followRepo.UnfollowMosque(ctx, userID, mosqueID)
	return err
}

func (s *engagementService) SubscribeSeries(ctx context.Context, userID, seriesID uint64, notify bool) error {
	series, err := s.seriesRepo.GetByID(ctx, seriesID)
	if err != nil {
		return err
	}
	if series == nil {
		return apperrors.NotFoundf("series %d not found", seriesID)
	}

	_, err = s.followRepo.SubscribeSeries(ctx, userID, seriesID, notify)
	return err
}

func (s *engagementService) UnsubscribeSeries(ctx context.Context, userID, seriesID uint64) error {
	_, err := s.followRepo.UnsubscribeSeries(ctx, userID, seriesID)
	return err
}

func (s *engagementService) requireContent(ctx context.Context, contentID uint64) error {
	content, err := s.contentRepo.GetByID(ctx, contentID)
	if err != nil {
		return err
	}
	if content == nil {
		return apperrors.NotFoundf("content %d not found", contentID)
	}
	return nil
}

func (s *engagementService) requireRating(ctx context.Context, ratingID uint64) error {
	rating, err := s.ratingRepo.GetByID(ctx, ratingID)
	if err != nil {
		return err
	}
	if rating == nil {
		return apperrors.NotFoundf("rating %d not found", ratingID)
	}
	return nil
}
