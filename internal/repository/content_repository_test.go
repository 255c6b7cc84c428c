package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alassaneba1/JangQuranAkSunna/internal/models"
)

func TestContentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContentRepository(db)
	ctx := context.Background()

	seriesID := uint64(4)
	mosqueID := uint64(6)

	t.Run("RowAndCountersShareOneTx", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO contents").
			WillReturnResult(sqlmock.NewResult(7, 1))
		mock.ExpectExec("UPDATE themes SET content_count = GREATEST").
			WithArgs(int64(1), uint64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE themes SET content_count = GREATEST").
			WithArgs(int64(1), uint64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE series").
			WithArgs(int64(1), int64(600), seriesID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE teachers SET total_content_count = GREATEST").
			WithArgs(int64(1), uint64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE mosques SET content_count = GREATEST").
			WithArgs(int64(1), mosqueID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		content := &models.Content{
			Type: models.ContentTypeAudio, Title: "Tafsir Sourate Al-Fatiha",
			TeacherID: 3, MosqueID: &mosqueID, SeriesID: &seriesID,
			DurationSeconds: 600, Status: models.ContentStatusDraft, Lang: "wo",
		}
		err := repo.Create(ctx, content, []uint64{2, 1})
		require.NoError(t, err)
		assert.Equal(t, uint64(7), content.ID)
	})

	t.Run("UnthemedStandaloneTouchesOnlyTeacher", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO contents").
			WillReturnResult(sqlmock.NewResult(8, 1))
		mock.ExpectExec("UPDATE teachers SET total_content_count = GREATEST").
			WithArgs(int64(1), uint64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		content := &models.Content{
			Type: models.ContentTypeAudio, Title: "Khutba",
			TeacherID: 3, Status: models.ContentStatusDraft, Lang: "wo",
		}
		err := repo.Create(ctx, content, nil)
		require.NoError(t, err)
	})

	t.Run("CounterFailureRollsBackTheInsert", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO contents").
			WillReturnResult(sqlmock.NewResult(9, 1))
		mock.ExpectExec("UPDATE themes SET content_count = GREATEST").
			WithArgs(int64(1), uint64(2)).
			WillReturnError(errors.New("lock wait timeout"))
		mock.ExpectRollback()

		content := &models.Content{
			Type: models.ContentTypeAudio, Title: "Tafsir",
			TeacherID: 3, Status: models.ContentStatusDraft, Lang: "wo",
		}
		err := repo.Create(ctx, content, []uint64{2, 1})
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContentRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContentRepository(db)
	ctx := context.Background()

	seriesID := uint64(4)
	mosqueID := uint64(6)

	t.Run("ReversesEveryCounterInOneTx", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM contents").
			WithArgs(uint64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE themes SET content_count = GREATEST").
			WithArgs(int64(-1), uint64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE themes SET content_count = GREATEST").
			WithArgs(int64(-1), uint64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE series").
			WithArgs(int64(-1), int64(-600), seriesID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE teachers SET total_content_count = GREATEST").
			WithArgs(int64(-1), uint64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE mosques SET content_count = GREATEST").
			WithArgs(int64(-1), mosqueID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		content := &models.Content{
			ID: 10, TeacherID: 3, MosqueID: &mosqueID, SeriesID: &seriesID,
			DurationSeconds: 600,
		}
		err := repo.Delete(ctx, content, []uint64{2, 1})
		require.NoError(t, err)
	})

	t.Run("CounterFailureRollsBackTheDelete", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM contents").
			WithArgs(uint64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE themes SET content_count = GREATEST").
			WithArgs(int64(-1), uint64(2)).
			WillReturnError(errors.New("lock wait timeout"))
		mock.ExpectRollback()

		content := &models.Content{ID: 10, TeacherID: 3}
		err := repo.Delete(ctx, content, []uint64{2, 1})
		assert.Error(t, err)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
