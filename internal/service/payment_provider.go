package service

import "context"

// ChargeResult is what a payment provider reports for a settled charge. Fees
// are in minor units of the donation currency.
type ChargeResult struct {
	TransactionID string
	PaymentFee    int64
}

// PaymentProvider abstracts the payment gateway (Orange Money, Wave, Stripe).
// Implementations live outside this module; the service only depends on the
// settlement semantics.
type PaymentProvider interface {
	// CreateIntent registers the payment with the gateway and returns its
	// intent identifier.
	CreateIntent(ctx context.Context, donationID uint64, amount int64, currency string) (intentID string, err error)
	// Refund reverses a settled charge by transaction id.
	Refund(ctx context.Context, transactionID string, amount int64) error
}

// ReceiptDispatcher delivers receipts and thank-you messages to donors.
type ReceiptDispatcher interface {
	SendReceipt(ctx context.Context, donationID uint64, receiptNo string, email string) error
	SendThankYou(ctx context.Context, donationID uint64, email string) error
}
