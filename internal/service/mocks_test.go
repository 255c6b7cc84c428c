package service

import (
	"context"
	"errors"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
)

// Mock repositories

type mockContentRepository struct {
	createFunc             func(ctx context.Context, content *models.Content, themeChain []uint64) error
	getByIDFunc            func(ctx context.Context, id uint64) (*models.Content, error)
	listByTeacherFunc      func(ctx context.Context, teacherID uint64, limit, offset int) ([]*models.Content, error)
	listBySeriesFunc       func(ctx context.Context, seriesID uint64) ([]*models.Content, error)
	updateFunc             func(ctx context.Context, content *models.Content) error
	updateStatusFunc       func(ctx context.Context, id uint64, from []models.ContentStatus, to models.ContentStatus) (bool, error)
	publishStatusFunc      func(ctx context.Context, id uint64, from []models.ContentStatus, publishedAt time.Time) (bool, error)
	deleteFunc             func(ctx context.Context, content *models.Content, themeChain []uint64) error
	incrementViewsFunc     func(ctx context.Context, id uint64) error
	incrementDownloadsFunc func(ctx context.Context, id uint64) error
	adjustLikesFunc        func(ctx context.Context, id uint64, delta int64) error
	adjustFavoritesFunc    func(ctx context.Context, id uint64, delta int64) error
}

func (m *mockContentRepository) Create(ctx context.Context, content *models.Content, themeChain []uint64) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, content, themeChain)
	}
	return errors.New("not implemented")
}

func (m *mockContentRepository) GetByID(ctx context.Context, id uint64) (*models.Content, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockContentRepository) ListByTeacher(ctx context.Context, teacherID uint64, limit, offset int) ([]*models.Content, error) {
	if m.listByTeacherFunc != nil {
		return m.listByTeacherFunc(ctx, teacherID, limit, offset)
	}
	return nil, errors.New("not implemented")
}

func (m *mockContentRepository) ListBySeries(ctx context.Context, seriesID uint64) ([]*models.Content, error) {
	if m.listBySeriesFunc != nil {
		return m.listBySeriesFunc(ctx, seriesID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockContentRepository) Update(ctx context.Context, content *models.Content) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, content)
	}
	return errors.New("not implemented")
}

func (m *mockContentRepository) UpdateStatus(ctx context.Context, id uint64, from []models.ContentStatus, to models.ContentStatus) (bool, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, from, to)
	}
	return false, errors.New("not implemented")
}

func (m *mockContentRepository) PublishStatus(ctx context.Context, id uint64, from []models.ContentStatus, publishedAt time.Time) (bool, error) {
	if m.publishStatusFunc != nil {
		return m.publishStatusFunc(ctx, id, from, publishedAt)
	}
	return false, errors.New("not implemented")
}

func (m *mockContentRepository) Delete(ctx context.Context, content *models.Content, themeChain []uint64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, content, themeChain)
	}
	return errors.New("not implemented")
}

func (m *mockContentRepository) IncrementViews(ctx context.Context, id uint64) error {
	if m.incrementViewsFunc != nil {
		return m.incrementViewsFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockContentRepository) IncrementDownloads(ctx context.Context, id uint64) error {
	if m.incrementDownloadsFunc != nil {
		return m.incrementDownloadsFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockContentRepository) AdjustLikes(ctx context.Context, id uint64, delta int64) error {
	if m.adjustLikesFunc != nil {
		return m.adjustLikesFunc(ctx, id, delta)
	}
	return errors.New("not implemented")
}

func (m *mockContentRepository) AdjustFavorites(ctx context.Context, id uint64, delta int64) error {
	if m.adjustFavoritesFunc != nil {
		return m.adjustFavoritesFunc(ctx, id, delta)
	}
	return errors.New("not implemented")
}

type mockAssetRepository struct {
	createFunc                 func(ctx context.Context, asset *models.ContentAsset) error
	getByIDFunc                func(ctx context.Context, id uint64) (*models.ContentAsset, error)
	listByContentFunc          func(ctx context.Context, contentID uint64) ([]*models.ContentAsset, error)
	updateProcessingStatusFunc func(ctx context.Context, id uint64, from, to models.ProcessingStatus, processingError *string) (bool, error)
	countCompletedPlayableFunc func(ctx context.Context, contentID uint64) (int64, error)
	deleteFunc                 func(ctx context.Context, id uint64) error
}

func (m *mockAssetRepository) Create(ctx context.Context, asset *models.ContentAsset) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, asset)
	}
	return errors.New("not implemented")
}

func (m *mockAssetRepository) GetByID(ctx context.Context, id uint64) (*models.ContentAsset, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAssetRepository) ListByContent(ctx context.Context, contentID uint64) ([]*models.ContentAsset, error) {
	if m.listByContentFunc != nil {
		return m.listByContentFunc(ctx, contentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAssetRepository) UpdateProcessingStatus(ctx context.Context, id uint64, from, to models.ProcessingStatus, processingError *string) (bool, error) {
	if m.updateProcessingStatusFunc != nil {
		return m.updateProcessingStatusFunc(ctx, id, from, to, processingError)
	}
	return false, errors.New("not implemented")
}

func (m *mockAssetRepository) CountCompletedPlayable(ctx context.Context, contentID uint64) (int64, error) {
	if m.countCompletedPlayableFunc != nil {
		return m.countCompletedPlayableFunc(ctx, contentID)
	}
	return 0, errors.New("not implemented")
}

func (m *mockAssetRepository) Delete(ctx context.Context, id uint64) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

type mockThemeRepository struct {
	createFunc              func(ctx context.Context, theme *models.Theme) error
	getByIDFunc             func(ctx context.Context, id uint64) (*models.Theme, error)
	getChildrenFunc         func(ctx context.Context, parentID uint64) ([]*models.Theme, error)
	getAncestorChainFunc    func(ctx context.Context, id uint64, maxDepth int) (models.ThemePath, error)
	reassignContentFunc     func(ctx context.Context, contentID uint64, themeID *uint64, debit, credit []uint64) error
	reassignSeriesFunc      func(ctx context.Context, seriesID uint64, themeID *uint64, debit, credit []uint64) error
}

func (m *mockThemeRepository) Create(ctx context.Context, theme *models.Theme) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, theme)
	}
	return errors.New("not implemented")
}

func (m *mockThemeRepository) GetByID(ctx context.Context, id uint64) (*models.Theme, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockThemeRepository) GetChildren(ctx context.Context, parentID uint64) ([]*models.Theme, error) {
	if m.getChildrenFunc != nil {
		return m.getChildrenFunc(ctx, parentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockThemeRepository) GetAncestorChain(ctx context.Context, id uint64, maxDepth int) (models.ThemePath, error) {
	if m.getAncestorChainFunc != nil {
		return m.getAncestorChainFunc(ctx, id, maxDepth)
	}
	return nil, errors.New("not implemented")
}

func (m *mockThemeRepository) ReassignContent(ctx context.Context, contentID uint64, themeID *uint64, debit, credit []uint64) error {
	if m.reassignContentFunc != nil {
		return m.reassignContentFunc(ctx, contentID, themeID, debit, credit)
	}
	return errors.New("not implemented")
}

func (m *mockThemeRepository) ReassignSeries(ctx context.Context, seriesID uint64, themeID *uint64, debit, credit []uint64) error {
	if m.reassignSeriesFunc != nil {
		return m.reassignSeriesFunc(ctx, seriesID, themeID, debit, credit)
	}
	return errors.New("not implemented")
}

type mockSeriesRepository struct {
	createFunc         func(ctx context.Context, series *models.Series) error
	getByIDFunc        func(ctx context.Context, id uint64) (*models.Series, error)
	incrementViewsFunc func(ctx context.Context, id uint64) error
}

func (m *mockSeriesRepository) Create(ctx context.Context, series *models.Series) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, series)
	}
	return errors.New("not implemented")
}

func (m *mockSeriesRepository) GetByID(ctx context.Context, id uint64) (*models.Series, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSeriesRepository) IncrementViews(ctx context.Context, id uint64) error {
	if m.incrementViewsFunc != nil {
		return m.incrementViewsFunc(ctx, id)
	}
	return errors.New("not implemented")
}

type mockTeacherRepository struct {
	getByIDFunc          func(ctx context.Context, id uint64) (*models.Teacher, error)
	addViewsFunc         func(ctx context.Context, id uint64, delta int64) error
	setAverageRatingFunc func(ctx context.Context, id uint64, average float64) error
}

func (m *mockTeacherRepository) GetByID(ctx context.Context, id uint64) (*models.Teacher, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTeacherRepository) AddViews(ctx context.Context, id uint64, delta int64) error {
	if m.addViewsFunc != nil {
		return m.addViewsFunc(ctx, id, delta)
	}
	return errors.New("not implemented")
}

func (m *mockTeacherRepository) SetAverageRating(ctx context.Context, id uint64, average float64) error {
	if m.setAverageRatingFunc != nil {
		return m.setAverageRatingFunc(ctx, id, average)
	}
	return errors.New("not implemented")
}

type mockMosqueRepository struct {
	getByIDFunc func(ctx context.Context, id uint64) (*models.Mosque, error)
}

func (m *mockMosqueRepository) GetByID(ctx context.Context, id uint64) (*models.Mosque, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

type mockFavoriteRepository struct {
	addFunc        func(ctx context.Context, userID, contentID uint64) (bool, error)
	removeFunc     func(ctx context.Context, userID, contentID uint64) (bool, error)
	existsFunc     func(ctx context.Context, userID, contentID uint64) (bool, error)
	listByUserFunc func(ctx context.Context, userID uint64, limit, offset int) ([]*models.UserFavorite, error)
}

func (m *mockFavoriteRepository) Add(ctx context.Context, userID, contentID uint64) (bool, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, userID, contentID)
	}
	return false, errors.New("not implemented")
}

func (m *mockFavoriteRepository) Remove(ctx context.Context, userID, contentID uint64) (bool, error) {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, userID, contentID)
	}
	return false, errors.New("not implemented")
}

func (m *mockFavoriteRepository) Exists(ctx context.Context, userID, contentID uint64) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, userID, contentID)
	}
	return false, errors.New("not implemented")
}

func (m *mockFavoriteRepository) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]*models.UserFavorite, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID, limit, offset)
	}
	return nil, errors.New("not implemented")
}

type mockRatingRepository struct {
	upsertFunc              func(ctx context.Context, rating *models.ContentRating) (bool, error)
	getByUserAndContentFunc func(ctx context.Context, userID, contentID uint64) (*models.ContentRating, error)
	getByIDFunc             func(ctx context.Context, id uint64) (*models.ContentRating, error)
	addHelpfulVoteFunc      func(ctx context.Context, id uint64) error
	addUnhelpfulVoteFunc    func(ctx context.Context, id uint64) error
	averageForContentFunc   func(ctx context.Context, contentID uint64) (float64, int64, error)
	deleteFunc              func(ctx context.Context, userID, contentID uint64) (bool, error)
}

func (m *mockRatingRepository) Upsert(ctx context.Context, rating *models.ContentRating) (bool, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, rating)
	}
	return false, errors.New("not implemented")
}

func (m *mockRatingRepository) GetByUserAndContent(ctx context.Context, userID, contentID uint64) (*models.ContentRating, error) {
	if m.getByUserAndContentFunc != nil {
		return m.getByUserAndContentFunc(ctx, userID, contentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRatingRepository) GetByID(ctx context.Context, id uint64) (*models.ContentRating, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRatingRepository) AddHelpfulVote(ctx context.Context, id uint64) error {
	if m.addHelpfulVoteFunc != nil {
		return m.addHelpfulVoteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockRatingRepository) AddUnhelpfulVote(ctx context.Context, id uint64) error {
	if m.addUnhelpfulVoteFunc != nil {
		return m.addUnhelpfulVoteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockRatingRepository) AverageForContent(ctx context.Context, contentID uint64) (float64, int64, error) {
	if m.averageForContentFunc != nil {
		return m.averageForContentFunc(ctx, contentID)
	}
	return 0, 0, errors.New("not implemented")
}

func (m *mockRatingRepository) Delete(ctx context.Context, userID, contentID uint64) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, contentID)
	}
	return false, errors.New("not implemented")
}

type mockProgressRepository struct {
	getByUserAndContentFunc    func(ctx context.Context, userID, contentID uint64) (*models.UserProgress, error)
	createFunc                 func(ctx context.Context, progress *models.UserProgress) error
	updateFunc                 func(ctx context.Context, progress *models.UserProgress) error
	countCompletedInSeriesFunc func(ctx context.Context, userID, seriesID uint64) (int64, error)
}

func (m *mockProgressRepository) GetByUserAndContent(ctx context.Context, userID, contentID uint64) (*models.UserProgress, error) {
	if m.getByUserAndContentFunc != nil {
		return m.getByUserAndContentFunc(ctx, userID, contentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockProgressRepository) Create(ctx context.Context, progress *models.UserProgress) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, progress)
	}
	return errors.New("not implemented")
}

func (m *mockProgressRepository) Update(ctx context.Context, progress *models.UserProgress) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, progress)
	}
	return errors.New("not implemented")
}

func (m *mockProgressRepository) CountCompletedInSeries(ctx context.Context, userID, seriesID uint64) (int64, error) {
	if m.countCompletedInSeriesFunc != nil {
		return m.countCompletedInSeriesFunc(ctx, userID, seriesID)
	}
	return 0, errors.New("not implemented")
}

type mockFollowRepository struct {
	followTeacherFunc     func(ctx context.Context, userID, teacherID uint64) (bool, error)
	unfollowTeacherFunc   func(ctx context.Context, userID, teacherID uint64) (bool, error)
	followMosqueFunc      func(ctx context.Context, userID, mosqueID uint64) (bool, error)
	unfollowMosqueFunc    func(ctx context.Context, userID, mosqueID uint64) (bool, error)
	subscribeSeriesFunc   func(ctx context.Context, userID, seriesID uint64, notify bool) (bool, error)
	unsubscribeSeriesFunc func(ctx context.Context, userID, seriesID uint64) (bool, error)
}

func (m *mockFollowRepository) FollowTeacher(ctx context.Context, userID, teacherID uint64) (bool, error) {
	if m.followTeacherFunc != nil {
		return m.followTeacherFunc(ctx, userID, teacherID)
	}
	return false, errors.New("not implemented")
}

func (m *mockFollowRepository) UnfollowTeacher(ctx context.Context, userID, teacherID uint64) (bool, error) {
	if m.unfollowTeacherFunc != nil {
		return m.unfollowTeacherFunc(ctx, userID, teacherID)
	}
	return false, errors.New("not implemented")
}

func (m *mockFollowRepository) FollowMosque(ctx context.Context, userID, mosqueID uint64) (bool, error) {
	if m.followMosqueFunc != nil {
		return m.followMosqueFunc(ctx, userID, mosqueID)
	}
	return false, errors.New("not implemented")
}

func (m *mockFollowRepository) UnfollowMosque(ctx context.Context, userID, mosqueID uint64) (bool, error) {
	if m.unfollowMosqueFunc != nil {
		return m.unfollowMosqueFunc(ctx, userID, mosqueID)
	}
	return false, errors.New("not implemented")
}

func (m *mockFollowRepository) SubscribeSeries(ctx context.Context, userID, seriesID uint64, notify bool) (bool, error) {
	if m.subscribeSeriesFunc != nil {
		return m.subscribeSeriesFunc(ctx, userID, seriesID, notify)
	}
	return false, errors.New("not implemented")
}

func (m *mockFollowRepository) UnsubscribeSeries(ctx context.Context, userID, seriesID uint64) (bool, error) {
	if m.unsubscribeSeriesFunc != nil {
		return m.unsubscribeSeriesFunc(ctx, userID, seriesID)
	}
	return false, errors.New("not implemented")
}

type mockReportRepository struct {
	createFunc             func(ctx context.Context, report *models.ContentReport) error
	getByIDFunc            func(ctx context.Context, id uint64) (*models.ContentReport, error)
	listByContentFunc      func(ctx context.Context, contentID uint64) ([]*models.ContentReport, error)
	countOpenByContentFunc func(ctx context.Context, contentID uint64) (int64, error)
	updateStatusFunc       func(ctx context.Context, id uint64, from []models.ReportStatus, to models.ReportStatus) (bool, error)
	resolveFunc            func(ctx context.Context, id uint64, from []models.ReportStatus, to models.ReportStatus, reviewerID uint64, notes, action *string) (bool, error)
}

func (m *mockReportRepository) Create(ctx context.Context, report *models.ContentReport) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, report)
	}
	return errors.New("not implemented")
}

func (m *mockReportRepository) GetByID(ctx context.Context, id uint64) (*models.ContentReport, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReportRepository) ListByContent(ctx context.Context, contentID uint64) ([]*models.ContentReport, error) {
	if m.listByContentFunc != nil {
		return m.listByContentFunc(ctx, contentID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReportRepository) CountOpenByContent(ctx context.Context, contentID uint64) (int64, error) {
	if m.countOpenByContentFunc != nil {
		return m.countOpenByContentFunc(ctx, contentID)
	}
	return 0, errors.New("not implemented")
}

func (m *mockReportRepository) UpdateStatus(ctx context.Context, id uint64, from []models.ReportStatus, to models.ReportStatus) (bool, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, from, to)
	}
	return false, errors.New("not implemented")
}

func (m *mockReportRepository) Resolve(ctx context.Context, id uint64, from []models.ReportStatus, to models.ReportStatus, reviewerID uint64, notes, action *string) (bool, error) {
	if m.resolveFunc != nil {
		return m.resolveFunc(ctx, id, from, to, reviewerID, notes, action)
	}
	return false, errors.New("not implemented")
}

type mockDonationRepository struct {
	createFunc             func(ctx context.Context, donation *models.Donation) error
	getByIDFunc            func(ctx context.Context, id uint64) (*models.Donation, error)
	getByReceiptNoFunc     func(ctx context.Context, receiptNo string) (*models.Donation, error)
	markProcessingFunc     func(ctx context.Context, id uint64, paymentIntentID *string) (bool, error)
	completeFunc           func(ctx context.Context, id uint64, platformFee, paymentFee, netAmount int64, transactionID *string, processedAt time.Time) (bool, error)
	failFunc               func(ctx context.Context, id uint64, reason string, failedAt time.Time) (bool, error)
	cancelFunc             func(ctx context.Context, id uint64) (bool, error)
	refundFunc             func(ctx context.Context, id uint64, reason string, refundedAt time.Time) (bool, error)
	disputeFunc            func(ctx context.Context, id uint64) (bool, error)
	markReceiptSentFunc    func(ctx context.Context, id uint64, sentAt time.Time) (bool, error)
	markThankYouSentFunc   func(ctx context.Context, id uint64, sentAt time.Time) (bool, error)
	listNeedingReceiptFunc func(ctx context.Context, limit int) ([]*models.Donation, error)
}

func (m *mockDonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, donation)
	}
	return errors.New("not implemented")
}

func (m *mockDonationRepository) GetByID(ctx context.Context, id uint64) (*models.Donation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDonationRepository) GetByReceiptNo(ctx context.Context, receiptNo string) (*models.Donation, error) {
	if m.getByReceiptNoFunc != nil {
		return m.getByReceiptNoFunc(ctx, receiptNo)
	}
	return nil, errors.New("not implemented")
}

func (m *mockDonationRepository) MarkProcessing(ctx context.Context, id uint64, paymentIntentID *string) (bool, error) {
	if m.markProcessingFunc != nil {
		return m.markProcessingFunc(ctx, id, paymentIntentID)
	}
	return false, errors.New("not implemented")
}

func (m *mockDonationRepository) Complete(ctx context.Context, id uint64, platformFee, paymentFee, netAmount int64, transactionID *string, processedAt time.Time) (bool, error) {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, id, platformFee, paymentFee, netAmount, transactionID, processedAt)
	}
	return false, errors.New("not implemented")
}

func (m *mockDonationRepository) Fail(ctx context.Context, id uint64, reason string, failedAt time.Time) (bool, error) {
	if m.failFunc != nil {
		return m.failFunc(ctx, id, reason, failedAt)
	}
	return false, errors.New("not implemented")
}

func (m *mockDonationRepository) Cancel(ctx context.Context, id uint64) (bool, error) {
	if m.cancelFunc != nil {
		return m.cancelFunc(ctx, id)
	}
	return false, errors.New("not implemented")
}

func (m *mockDonationRepository) Refund(ctx context.Context, id uint64, reason string, refundedAt time.Time) (bool, error) {
	if m.refundFunc != nil {
		return m.refundFunc(ctx, id, reason, refundedAt)
	}
	return false, errors.New("not implemented")
}

func (m *mockDonationRepository) Dispute(ctx context.Context, id uint64) (bool, error) {
	if m.disputeFunc != nil {
		return m.disputeFunc(ctx, id)
	}
	return false, errors.New("not implemented")
}

func (m *mockDonationRepository) MarkReceiptSent(ctx context.Context, id uint64, sentAt time.Time) (bool, error) {
	if m.markReceiptSentFunc != nil {
		return m.markReceiptSentFunc(ctx, id, sentAt)
	}
	return false, errors.New("not implemented")
}

func (m *mockDonationRepository) MarkThankYouSent(ctx context.Context, id uint64, sentAt time.Time) (bool, error) {
	if m.markThankYouSentFunc != nil {
		return m.markThankYouSentFunc(ctx, id, sentAt)
	}
	return false, errors.New("not implemented")
}

func (m *mockDonationRepository) ListNeedingReceipt(ctx context.Context, limit int) ([]*models.Donation, error) {
	if m.listNeedingReceiptFunc != nil {
		return m.listNeedingReceiptFunc(ctx, limit)
	}
	return nil, errors.New("not implemented")
}

// Mock payment collaborators

type mockPaymentProvider struct {
	createIntentFunc func(ctx context.Context, donationID uint64, amount int64, currency string) (string, error)
	refundFunc       func(ctx context.Context, transactionID string, amount int64) error
}

func (m *mockPaymentProvider) CreateIntent(ctx context.Context, donationID uint64, amount int64, currency string) (string, error) {
	if m.createIntentFunc != nil {
		return m.createIntentFunc(ctx, donationID, amount, currency)
	}
	return "", errors.New("not implemented")
}

func (m *mockPaymentProvider) Refund(ctx context.Context, transactionID string, amount int64) error {
	if m.refundFunc != nil {
		return m.refundFunc(ctx, transactionID, amount)
	}
	return errors.New("not implemented")
}

type mockReceiptDispatcher struct {
	sendReceiptFunc  func(ctx context.Context, donationID uint64, receiptNo, email string) error
	sendThankYouFunc func(ctx context.Context, donationID uint64, email string) error
}

func (m *mockReceiptDispatcher) SendReceipt(ctx context.Context, donationID uint64, receiptNo, email string) error {
	if m.sendReceiptFunc != nil {
		return m.sendReceiptFunc(ctx, donationID, receiptNo, email)
	}
	return errors.New("not implemented")
}

func (m *mockReceiptDispatcher) SendThankYou(ctx context.Context, donationID uint64, email string) error {
	if m.sendThankYouFunc != nil {
		return m.sendThankYouFunc(ctx, donationID, email)
	}
	return errors.New("not implemented")
}
