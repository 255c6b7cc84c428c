package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDonationRepository_Transitions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDonationRepository(db)
	ctx := context.Background()

	t.Run("MarkProcessingFromPending", func(t *testing.T) {
		intent := "intent-42"
		mock.ExpectExec("UPDATE donations").
			WithArgs("PROCESSING", &intent, uint64(1), "PENDING").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.MarkProcessing(ctx, 1, &intent)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("MarkProcessingLosesRace", func(t *testing.T) {
		mock.ExpectExec("UPDATE donations").
			WithArgs("PROCESSING", nil, uint64(1), "PENDING").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.MarkProcessing(ctx, 1, nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("CompleteStampsEverythingAtOnce", func(t *testing.T) {
		txn := "wave-txn-77"
		processedAt := time.Now()
		mock.ExpectExec("UPDATE donations").
			WithArgs("COMPLETED", int64(250), int64(100), int64(9650), &txn, processedAt,
				uint64(1), "PROCESSING").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Complete(ctx, 1, 250, 100, 9650, &txn, processedAt)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("CompleteTwiceAffectsNothing", func(t *testing.T) {
		processedAt := time.Now()
		mock.ExpectExec("UPDATE donations").
			WithArgs("COMPLETED", int64(250), int64(100), int64(9650), nil, processedAt,
				uint64(1), "PROCESSING").
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Complete(ctx, 1, 250, 100, 9650, nil, processedAt)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("RefundOnlyFromCompletedOrDisputed", func(t *testing.T) {
		refundedAt := time.Now()
		mock.ExpectExec("UPDATE donations").
			WithArgs("REFUNDED", "chargeback", refundedAt, uint64(1), "COMPLETED", "DISPUTED").
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Refund(ctx, 1, "chargeback", refundedAt)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepository_ReceiptStamps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDonationRepository(db)
	ctx := context.Background()

	t.Run("FirstStampWins", func(t *testing.T) {
		sentAt := time.Now()
		mock.ExpectExec("UPDATE donations SET receipt_sent_at").
			WithArgs(sentAt, uint64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.MarkReceiptSent(ctx, 1, sentAt)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("SecondStampIsRejectedByWhereClause", func(t *testing.T) {
		sentAt := time.Now()
		mock.ExpectExec("UPDATE donations SET receipt_sent_at").
			WithArgs(sentAt, uint64(1)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.MarkReceiptSent(ctx, 1, sentAt)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDonationRepository(db)
	ctx := context.Background()

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM donations WHERE id = ?").
			WithArgs(uint64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		donation, err := repo.GetByID(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, donation)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
