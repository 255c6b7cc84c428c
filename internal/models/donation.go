package models

import "time"

// PaymentMethod is how a donation is paid.
type PaymentMethod string

const (
	PaymentMethodOrangeMoney  PaymentMethod = "ORANGE_MONEY"
	PaymentMethodWave         PaymentMethod = "WAVE"
	PaymentMethodStripe       PaymentMethod = "STRIPE"
	PaymentMethodPayPal       PaymentMethod = "PAYPAL"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCash         PaymentMethod = "CASH"
)

// IsValid reports whether the payment method is supported.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodOrangeMoney, PaymentMethodWave, PaymentMethodStripe,
		PaymentMethodPayPal, PaymentMethodBankTransfer, PaymentMethodCash:
		return true
	}
	return false
}

// DonationStatus is the settlement state of a donation.
type DonationStatus string

const (
	DonationStatusPending    DonationStatus = "PENDING"
	DonationStatusProcessing DonationStatus = "PROCESSING"
	DonationStatusCompleted  DonationStatus = "COMPLETED"
	DonationStatusFailed     DonationStatus = "FAILED"
	DonationStatusCancelled  DonationStatus = "CANCELLED"
	DonationStatusRefunded   DonationStatus = "REFUNDED"
	DonationStatusDisputed   DonationStatus = "DISPUTED"
)

// DonationType is what the donation is earmarked for.
type DonationType string

const (
	DonationTypeGeneral        DonationType = "GENERAL"
	DonationTypeContent        DonationType = "CONTENT"
	DonationTypeTeacher        DonationType = "TEACHER"
	DonationTypeMosque         DonationType = "MOSQUE"
	DonationTypeInfrastructure DonationType = "INFRASTRUCTURE"
	DonationTypeMaintenance    DonationType = "MAINTENANCE"
	DonationTypeDevelopment    DonationType = "DEVELOPMENT"
	DonationTypeSpecialProject DonationType = "SPECIAL_PROJECT"
)

// IsValid reports whether the donation type is known.
func (t DonationType) IsValid() bool {
	switch t {
	case DonationTypeGeneral, DonationTypeContent, DonationTypeTeacher,
		DonationTypeMosque, DonationTypeInfrastructure, DonationTypeMaintenance,
		DonationTypeDevelopment, DonationTypeSpecialProject:
		return true
	}
	return false
}

// Donation is a monetary donation. All monetary fields are fixed-point minor
// units of Currency (XOF has none, so amounts are whole francs).
type Donation struct {
	ID                uint64         `db:"id"`
	UserID            *uint64        `db:"user_id"`
	Amount            int64          `db:"amount"`
	Currency          string         `db:"currency"`
	PaymentMethod     PaymentMethod  `db:"payment_method"`
	Status            DonationStatus `db:"status"`
	PaymentIntentID   *string        `db:"payment_intent_id"`
	TransactionID     *string        `db:"transaction_id"`
	ReceiptNo         string         `db:"receipt_no"`
	DonorName         *string        `db:"donor_name"`
	DonorEmail        *string        `db:"donor_email"`
	DonorPhone        *string        `db:"donor_phone"`
	IsAnonymous       bool           `db:"is_anonymous"`
	DedicationMessage *string        `db:"dedication_message"`
	Type              DonationType   `db:"type"`
	TargetContentID   *uint64        `db:"target_content_id"`
	TargetTeacherID   *uint64        `db:"target_teacher_id"`
	TargetMosqueID    *uint64        `db:"target_mosque_id"`
	PlatformFee       int64          `db:"platform_fee"`
	PaymentFee        int64          `db:"payment_fee"`
	NetAmount         int64          `db:"net_amount"`
	ProcessedAt       *time.Time     `db:"processed_at"`
	FailedAt          *time.Time     `db:"failed_at"`
	FailureReason     *string        `db:"failure_reason"`
	RefundedAt        *time.Time     `db:"refunded_at"`
	RefundReason      *string        `db:"refund_reason"`
	ReceiptSentAt     *time.Time     `db:"receipt_sent_at"`
	ThankYouSentAt    *time.Time     `db:"thank_you_sent_at"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// IsCompleted reports whether the payment settled successfully.
func (d *Donation) IsCompleted() bool {
	return d.Status == DonationStatusCompleted
}

// IsInFlight reports whether the payment is still pending or processing.
func (d *Donation) IsInFlight() bool {
	return d.Status == DonationStatusPending || d.Status == DonationStatusProcessing
}

// NeedsReceipt reports whether a receipt still has to be dispatched.
func (d *Donation) NeedsReceipt() bool {
	return d.IsCompleted() && d.ReceiptSentAt == nil
}

// NeedsThankYou reports whether a thank-you message still has to be
// dispatched.
func (d *Donation) NeedsThankYou() bool {
	return d.IsCompleted() && d.ThankYouSentAt == nil
}
