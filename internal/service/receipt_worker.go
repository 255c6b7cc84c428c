package service

import (
	"context"
	"time"

	"github.com/alassaneba1/JangQuranAkSunna/internal/repository"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/apperrors"
	"github.com/alassaneba1/JangQuranAkSunna/pkg/logger"
)

// ReceiptWorker periodically dispatches receipts for completed donations that
// never got one, e.g. because the dispatcher was down at settlement time. The
// conditional receipt stamp makes a retry safe even when two workers overlap.
type ReceiptWorker struct {
	donations    DonationService
	donationRepo repository.DonationRepository
	interval     time.Duration
	batchSize    int
	log          *logger.Logger
}

// NewReceiptWorker creates a receipt backfill worker.
func NewReceiptWorker(
	donations DonationService,
	donationRepo repository.DonationRepository,
	interval time.Duration,
	batchSize int,
	log *logger.Logger,
) *ReceiptWorker {
	return &ReceiptWorker{
		donations:    donations,
		donationRepo: donationRepo,
		interval:     interval,
		batchSize:    batchSize,
		log:          log,
	}
}

// Run loops until the context is cancelled.
func (w *ReceiptWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ReceiptWorker) sweep(ctx context.Context) {
	donations, err := w.donationRepo.ListNeedingReceipt(ctx, w.batchSize)
	if err != nil {
		w.log.WithField("error", err).Error("failed to list donations needing receipt")
		return
	}

	for _, donation := range donations {
		if donation.DonorEmail == nil {
			continue
		}
		if err := w.donations.SendReceipt(ctx, donation.ID); err != nil {
			// Another worker may have sent it between the list and the send.
			if apperrors.IsPrecondition(err) {
				continue
			}
			w.log.WithDonationID(donation.ID).WithField("error", err).Warn("receipt dispatch failed")
		}
	}
}
