package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
)

// DonationRepository defines persistence operations for donations. All state
// transitions are conditional UPDATEs keyed on the current status so that a
// gateway callback arriving twice, or two callbacks racing, settles the
// donation exactly once.
type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	GetByID(ctx context.Context, id uint64) (*models.Donation, error)
	GetByReceiptNo(ctx context.Context, receiptNo string) (*models.Donation, error)
	MarkProcessing(ctx context.Context, id uint64, paymentIntentID *string) (bool, error)
	// Complete settles the donation: fees, net amount, transaction id and
	// processed_at are all stamped in the same statement as the status change.
	Complete(ctx context.Context, id uint64, platformFee, paymentFee, netAmount int64, transactionID *string, processedAt time.Time) (bool, error)
	Fail(ctx context.Context, id uint64, reason string, failedAt time.Time) (bool, error)
	Cancel(ctx context.Context, id uint64) (bool, error)
	Refund(ctx context.Context, id uint64, reason string, refundedAt time.Time) (bool, error)
	Dispute(ctx context.Context, id uint64) (bool, error)
	// MarkReceiptSent stamps receipt_sent_at once; a second call returns
	// false.
	MarkReceiptSent(ctx context.Context, id uint64, sentAt time.Time) (bool, error)
	MarkThankYouSent(ctx context.Context, id uint64, sentAt time.Time) (bool, error)
	// ListNeedingReceipt returns completed donations with no receipt sent yet.
	ListNeedingReceipt(ctx context.Context, limit int) ([]*models.Donation, error)
}

type donationRepository struct {
	db *sql.DB
}

// NewDonationRepository creates a MySQL-backed donation repository.
func NewDonationRepository(db *sql.DB) DonationRepository {
	return &donationRepository{db: db}
}

const donationColumns = `id, user_id, amount, currency, payment_method, status,
	payment_intent_id, transaction_id, receipt_no, donor_name, donor_email, donor_phone,
	is_anonymous, dedication_message, type, target_content_id, target_teacher_id, target_mosque_id,
	platform_fee, payment_fee, net_amount, processed_at, failed_at, failure_reason,
	refunded_at, refund_reason, receipt_sent_at, thank_you_sent_at, created_at, updated_at`

func scanDonation(row interface{ Scan(...interface{}) error }) (*models.Donation, error) {
	var donation models.Donation
	err := row.Scan(
		&donation.ID,
		&donation.UserID,
		&donation.Amount,
		&donation.Currency,
		&donation.PaymentMethod,
		&donation.Status,
		&donation.PaymentIntentID,
		&donation.TransactionID,
		&donation.ReceiptNo,
		&donation.DonorName,
		&donation.DonorEmail,
		&donation.DonorPhone,
		&donation.IsAnonymous,
		&donation.DedicationMessage,
		&donation.Type,
		&donation.TargetContentID,
		&donation.TargetTeacherID,
		&donation.TargetMosqueID,
		&donation.PlatformFee,
		&donation.PaymentFee,
		&donation.NetAmount,
		&donation.ProcessedAt,
		&donation.FailedAt,
		&donation.FailureReason,
		&donation.RefundedAt,
		&donation.RefundReason,
		&donation.ReceiptSentAt,
		&donation.ThankYouSentAt,
		&donation.CreatedAt,
		&donation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) Create(ctx context.Context, donation *models.Donation) error {
	query := `
		INSERT INTO donations (user_id, amount, currency, payment_method, status,
			payment_intent_id, transaction_id, receipt_no, donor_name, donor_email, donor_phone,
			is_anonymous, dedication_message, type, target_content_id, target_teacher_id, target_mosque_id,
			platform_fee, payment_fee, net_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 0, 0, ?, ?)
	`
	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		donation.UserID, donation.Amount, donation.Currency, donation.PaymentMethod,
		donation.Status, donation.PaymentIntentID, donation.TransactionID, donation.ReceiptNo,
		donation.DonorName, donation.DonorEmail, donation.DonorPhone, donation.IsAnonymous,
		donation.DedicationMessage, donation.Type, donation.TargetContentID,
		donation.TargetTeacherID, donation.TargetMosqueID, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get donation id: %w", err)
	}
	donation.ID = uint64(id)
	donation.CreatedAt = now
	donation.UpdatedAt = now
	return nil
}

func (r *donationRepository) GetByID(ctx context.Context, id uint64) (*models.Donation, error) {
	query := "SELECT " + donationColumns + " FROM donations WHERE id = ?"

	donation, err := scanDonation(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}
	return donation, nil
}

func (r *donationRepository) GetByReceiptNo(ctx context.Context, receiptNo string) (*models.Donation, error) {
	query := "SELECT " + donationColumns + " FROM donations WHERE receipt_no = ?"

	donation, err := scanDonation(r.db.QueryRowContext(ctx, query, receiptNo))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get donation by receipt: %w", err)
	}
	return donation, nil
}

func (r *donationRepository) MarkProcessing(ctx context.Context, id uint64, paymentIntentID *string) (bool, error) {
	query := `
		UPDATE donations
		SET status = ?, payment_intent_id = COALESCE(?, payment_intent_id), updated_at = NOW()
		WHERE id = ? AND status = ?
	`
	return r.transition(ctx, query,
		models.DonationStatusProcessing, paymentIntentID, id, models.DonationStatusPending)
}

func (r *donationRepository) Complete(ctx context.Context, id uint64, platformFee, paymentFee, netAmount int64, transactionID *string, processedAt time.Time) (bool, error) {
	query := `
		UPDATE donations
		SET status = ?, platform_fee = ?, payment_fee = ?, net_amount = ?,
			transaction_id = COALESCE(?, transaction_id), processed_at = ?, updated_at = NOW()
		WHERE id = ? AND status = ?
	`
	return r.transition(ctx, query,
		models.DonationStatusCompleted, platformFee, paymentFee, netAmount,
		transactionID, processedAt, id, models.DonationStatusProcessing)
}

func (r *donationRepository) Fail(ctx context.Context, id uint64, reason string, failedAt time.Time) (bool, error) {
	query := `
		UPDATE donations
		SET status = ?, failure_reason = ?, failed_at = ?, updated_at = NOW()
		WHERE id = ? AND status = ?
	`
	return r.transition(ctx, query,
		models.DonationStatusFailed, reason, failedAt, id,
		models.DonationStatusProcessing)
}

func (r *donationRepository) Cancel(ctx context.Context, id uint64) (bool, error) {
	query := "UPDATE donations SET status = ?, updated_at = NOW() WHERE id = ? AND status IN (?, ?)"
	return r.transition(ctx, query,
		models.DonationStatusCancelled, id,
		models.DonationStatusPending, models.DonationStatusProcessing)
}

func (r *donationRepository) Refund(ctx context.Context, id uint64, reason string, refundedAt time.Time) (bool, error) {
	query := `
		UPDATE donations
		SET status = ?, refund_reason = ?, refunded_at = ?, updated_at = NOW()
		WHERE id = ? AND status IN (?, ?)
	`
	return r.transition(ctx, query,
		models.DonationStatusRefunded, reason, refundedAt, id,
		models.DonationStatusCompleted, models.DonationStatusDisputed)
}

func (r *donationRepository) Dispute(ctx context.Context, id uint64) (bool, error) {
	query := "UPDATE donations SET status = ?, updated_at = NOW() WHERE id = ? AND status = ?"
	return r.transition(ctx, query,
		models.DonationStatusDisputed, id, models.DonationStatusCompleted)
}

func (r *donationRepository) MarkReceiptSent(ctx context.Context, id uint64, sentAt time.Time) (bool, error) {
	query := "UPDATE donations SET receipt_sent_at = ?, updated_at = NOW() WHERE id = ? AND receipt_sent_at IS NULL"
	return r.transition(ctx, query, sentAt, id)
}

func (r *donationRepository) MarkThankYouSent(ctx context.Context, id uint64, sentAt time.Time) (bool, error) {
	query := "UPDATE donations SET thank_you_sent_at = ?, updated_at = NOW() WHERE id = ? AND thank_you_sent_at IS NULL"
	return r.transition(ctx, query, sentAt, id)
}

func (r *donationRepository) ListNeedingReceipt(ctx context.Context, limit int) ([]*models.Donation, error) {
	query := "SELECT " + donationColumns + " FROM donations WHERE status = ? AND receipt_sent_at IS NULL ORDER BY processed_at ASC LIMIT ?"

	rows, err := r.db.QueryContext(ctx, query, models.DonationStatusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations needing receipt: %w", err)
	}
	defer rows.Close()

	var donations []*models.Donation
	for rows.Next() {
		donation, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan donation: %w", err)
		}
		donations = append(donations, donation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating donations: %w", err)
	}
	return donations, nil
}

func (r *donationRepository) transition(ctx context.Context, query string, args ...interface{}) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update donation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected > 0, nil
}
