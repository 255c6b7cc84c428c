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

// DonationService settles donations. Gateway callbacks may arrive twice or
// race each other; every settlement path goes through a conditional UPDATE so
// a donation settles exactly once.
type DonationService interface {
	CreateDonation(ctx context.Context, input CreateDonationInput) (*models.Donation, error)
	GetDonation(ctx context.Context, id uint64) (*models.Donation, error)

	// BeginProcessing registers the payment with the gateway and moves the
	// donation to PROCESSING.
	BeginProcessing(ctx context.Context, id uint64) error
	// Complete settles the donation: the platform fee is computed from the
	// configured basis points, the payment fee comes from the gateway, and
	// net = amount - platformFee - paymentFee must not be negative.
	Complete(ctx context.Context, id uint64, paymentFee int64, transactionID *string) error
	Fail(ctx context.Context, id uint64, reason string) error
	Cancel(ctx context.Context, id uint64) error
	Refund(ctx context.Context, id uint64, reason string) error
	Dispute(ctx context.Context, id uint64) error

	// SendReceipt dispatches the receipt and stamps receipt_sent_at, exactly
	// once per donation.
	SendReceipt(ctx context.Context, id uint64) error
	SendThankYou(ctx context.Context, id uint64) error
}

// CreateDonationInput carries the fields for a new donation. Amount is in
// minor units; currency defaults to XOF.
type CreateDonationInput struct {
	UserID            *uint64              `validate:"omitempty,gt=0"`
	Amount            int64                `validate:"required,gt=0"`
	Currency          string               `validate:"omitempty,currency_code"`
	PaymentMethod     models.PaymentMethod `validate:"required"`
	Type              models.DonationType  `validate:"required"`
	TargetContentID   *uint64              `validate:"omitempty,gt=0"`
	TargetTeacherID   *uint64              `validate:"omitempty,gt=0"`
	TargetMosqueID    *uint64              `validate:"omitempty,gt=0"`
	DonorName         *string              `validate:"omitempty,max=120"`
	DonorEmail        *string              `validate:"omitempty,email"`
	DonorPhone        *string              `validate:"omitempty,phone_intl"`
	IsAnonymous       bool
	DedicationMessage *string `validate:"omitempty,max=1000"`
}

type donationService struct {
	donationRepo repository.DonationRepository
	provider     PaymentProvider
	dispatcher   ReceiptDispatcher
	validator    *helpers.CustomValidator
	ids          *helpers.IDGenerator
	// platformFeeBasisPoints is the platform's cut in basis points of the
	// gross amount (e.g. 250 = 2.5%).
	platformFeeBasisPoints int64
	metrics                *metrics.Metrics
	log                    *logger.Logger
}

// NewDonationService creates a donation service. metrics may be nil.
func NewDonationService(
	donationRepo repository.DonationRepository,
	provider PaymentProvider,
	dispatcher ReceiptDispatcher,
	validator *helpers.CustomValidator,
	ids *helpers.IDGenerator,
	platformFeeBasisPoints int64,
	m *metrics.Metrics,
	log *logger.Logger,
) DonationService {
	return &donationService{
		donationRepo:           donationRepo,
		provider:               provider,
		dispatcher:             dispatcher,
		validator:              validator,
		ids:                    ids,
		platformFeeBasisPoints: platformFeeBasisPoints,
		metrics:                m,
		log:                    log,
	}
}

func (s *donationService) CreateDonation(ctx context.Context, input CreateDonationInput) (*models.Donation, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, apperrors.Validationf("invalid donation: %v", err)
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperrors.Validationf("unknown payment method %q", input.PaymentMethod)
	}
	if !input.Type.IsValid() {
		return nil, apperrors.Validationf("unknown donation type %q", input.Type)
	}
	if err := validateTarget(input); err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "XOF"
	}

	donation := &models.Donation{
		UserID:            input.UserID,
		Amount:            input.Amount,
		Currency:          currency,
		PaymentMethod:     input.PaymentMethod,
		Status:            models.DonationStatusPending,
		ReceiptNo:         s.ids.GenerateReceiptNo(),
		DonorName:         input.DonorName,
		DonorEmail:        input.DonorEmail,
		DonorPhone:        input.DonorPhone,
		IsAnonymous:       input.IsAnonymous,
		DedicationMessage: input.DedicationMessage,
		Type:              input.Type,
		TargetContentID:   input.TargetContentID,
		TargetTeacherID:   input.TargetTeacherID,
		TargetMosqueID:    input.TargetMosqueID,
	}
	if err := s.donationRepo.Create(ctx, donation); err != nil {
		return nil, err
	}

	s.log.WithDonationID(donation.ID).WithField("amount", helpers.FormatAmount(donation.Amount, currency)).Info("donation created")
	return donation, nil
}

// validateTarget checks that an earmarked donation names its target and
// nothing else.
func validateTarget(input CreateDonationInput) error {
	switch input.Type {
	case models.DonationTypeContent:
		if input.TargetContentID == nil {
			return apperrors.Validationf("content donations require a target content")
		}
	case models.DonationTypeTeacher:
		if input.TargetTeacherID == nil {
			return apperrors.Validationf("teacher donations require a target teacher")
		}
	case models.DonationTypeMosque:
		if input.TargetMosqueID == nil {
			return apperrors.Validationf("mosque donations require a target mosque")
		}
	}
	return nil
}

func (s *donationService) GetDonation(ctx context.Context, id uint64) (*models.Donation, error) {
	return s.getDonation(ctx, id)
}

func (s *donationService) BeginProcessing(ctx context.Context, id uint64) error {
	donation, err := s.getDonation(ctx, id)
	if err != nil {
		return err
	}
	if donation.Status != models.DonationStatusPending {
		return apperrors.Preconditionf("cannot process donation %d in status %s", id, donation.Status)
	}

	intentID, err := s.provider.CreateIntent(ctx, id, donation.Amount, donation.Currency)
	if err != nil {
		return err
	}

	ok, err := s.donationRepo.MarkProcessing(ctx, id, &intentID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflictf("donation %d status changed concurrently", id)
	}
	return nil
}

func (s *donationService) Complete(ctx context.Context, id uint64, paymentFee int64, transactionID *string) error {
	donation, err := s.getDonation(ctx, id)
	if err != nil {
		return err
	}
	if donation.Status != models.DonationStatusProcessing {
		return apperrors.Preconditionf("cannot complete donation %d in status %s", id, donation.Status)
	}
	if paymentFee < 0 {
		return apperrors.Validationf("payment fee must not be negative, got %d", paymentFee)
	}

	platformFee := donation.Amount * s.platformFeeBasisPoints / 10000
	netAmount := donation.Amount - platformFee - paymentFee
	if netAmount < 0 {
		return apperrors.Invariantf("fees %d exceed donation amount %d", platformFee+paymentFee, donation.Amount)
	}

	ok, err := s.donationRepo.Complete(ctx, id, platformFee, paymentFee, netAmount, transactionID, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflictf("donation %d status changed concurrently", id)
	}

	s.recordSettlement(models.DonationStatusCompleted)
	s.log.WithDonationID(id).
		WithField("net_amount", helpers.FormatAmount(netAmount, donation.Currency)).
		Info("donation completed")
	return nil
}

func (s *donationService) Fail(ctx context.Context, id uint64, reason string) error {
	donation, err := s.getDonation(ctx, id)
	if err != nil {
		return err
	}
	if donation.Status != models.DonationStatusProcessing {
		return apperrors.Preconditionf("cannot fail donation %d in status %s", id, donation.Status)
	}

	ok, err := s.donationRepo.Fail(ctx, id, reason, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflictf("donation %d status changed concurrently", id)
	}

	s.recordSettlement(models.DonationStatusFailed)
	s.log.WithDonationID(id).WithField("reason", reason).Warn("donation failed")
	return nil
}

func (s *donationService) Cancel(ctx context.Context, id uint64) error {
	donation, err := s.getDonation(ctx, id)
	if err != nil {
		return err
	}
	if !donation.IsInFlight() {
		return apperrors.Preconditionf("cannot cancel donation %d in status %s", id, donation.Status)
	}

	ok, err := s.donationRepo.Cancel(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflictf("donation %d status changed concurrently", id)
	}

	s.recordSettlement(models.DonationStatusCancelled)
	return nil
}

func (s *donationService) Refund(ctx context.Context, id uint64, reason string) error {
	donation, err := s.getDonation(ctx, id)
	if err != nil {
		return err
	}
	if donation.Status != models.DonationStatusCompleted && donation.Status != models.DonationStatusDisputed {
		return apperrors.Preconditionf("cannot refund donation %d in status %s", id, donation.Status)
	}
	if donation.TransactionID == nil {
		return apperrors.Preconditionf("donation %d has no transaction to refund", id)
	}

	if err := s.provider.Refund(ctx, *donation.TransactionID, donation.Amount); err != nil {
		return err
	}

	ok, err := s.donationRepo.Refund(ctx, id, reason, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflictf("donation %d status changed concurrently", id)
	}

	s.recordSettlement(models.DonationStatusRefunded)
	s.log.WithDonationID(id).WithField("reason", reason).Info("donation refunded")
	return nil
}

func (s *donationService) Dispute(ctx context.Context, id uint64) error {
	donation, err := s.getDonation(ctx, id)
	if err != nil {
		return err
	}
	if donation.Status != models.DonationStatusCompleted {
		return apperrors.Preconditionf("cannot dispute donation %d in status %s", id, donation.Status)
	}

	ok, err := s.donationRepo.Dispute(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Conflictf("donation %d status changed concurrently", id)
	}

	s.recordSettlement(models.DonationStatusDisputed)
	return nil
}

func (s *donationService) SendReceipt(ctx context.Context, id uint64) error {
	donation, err := s.getDonation(ctx, id)
	if err != nil {
		return err
	}
	if !donation.NeedsReceipt() {
		return apperrors.Preconditionf("donation %d does not need a receipt", id)
	}
	if donation.DonorEmail == nil {
		return apperrors.Preconditionf("donation %d has no donor email", id)
	}

	if err := s.dispatcher.SendReceipt(ctx, id, donation.ReceiptNo, *donation.DonorEmail); err != nil {
		return err
	}

	ok, err := s.donationRepo.MarkReceiptSent(ctx, id, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Preconditionf("receipt for donation %d was already sent", id)
	}
	return nil
}

func (s *donationService) SendThankYou(ctx context.Context, id uint64) error {
	donation, err := s.getDonation(ctx, id)
	if err != nil {
		return err
	}
	if donation.IsAnonymous {
		return apperrors.Preconditionf("donation %d is anonymous", id)
	}
	if !donation.NeedsThankYou() {
		return apperrors.Preconditionf("donation %d does not need a thank-you", id)
	}
	if donation.DonorEmail == nil {
		return apperrors.Preconditionf("donation %d has no donor email", id)
	}

	if err := s.dispatcher.SendThankYou(ctx, id, *donation.DonorEmail); err != nil {
		return err
	}

	ok, err := s.donationRepo.MarkThankYouSent(ctx, id, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.Preconditionf("thank-you for donation %d was already sent", id)
	}
	return nil
}

func (s *donationService) recordSettlement(status models.DonationStatus) {
	if s.metrics != nil {
		s.metrics.DonationsSettled.WithLabelValues(string(status)).Inc()
	}
}

func (s *donationService) getDonation(ctx context.Context, id uint64) (*models.Donation, error) {
	donation, err := s.donationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, apperrors.NotFoundf("donation %d not found", id)
	}
	return donation, nil
}
