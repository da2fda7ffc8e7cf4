package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go_vocab_quiz/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newRecord(finished time.Time, misses ...string) *model.QuizSessionRecord {
	id := uuid.New()
	rec := &model.QuizSessionRecord{
		SessionID:     id,
		Mode:          model.ModeGenerated,
		WordCount:     5,
		QuestionCount: 5,
		Answered:      5,
		Score:         5 - len(misses),
		StartedAt:     finished.Add(-time.Minute),
		FinishedAt:    finished,
	}
	for i, w := range misses {
		rec.Misses = append(rec.Misses, model.SessionMiss{
			SessionID:       id,
			PageID:          "page-" + w,
			Word:            w,
			NewMultiplicity: i + 2,
			Flushed:         true,
		})
	}
	return rec
}

func Test_gormSessionRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormSessionRepository()

	rec := newRecord(time.Now().UTC(), "apple", "pear")
	require.NoError(t, repo.Create(ctx, db, rec))

	got, err := repo.FindByID(ctx, db, rec.SessionID)
	require.NoError(t, err)
	assert.Equal(t, rec.SessionID, got.SessionID)
	assert.Equal(t, 3, got.Score)
	require.Len(t, got.Misses, 2)
	assert.ElementsMatch(t, []string{"apple", "pear"}, []string{got.Misses[0].Word, got.Misses[1].Word})
}

func Test_gormSessionRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSessionRepository()

	got, err := repo.FindByID(context.Background(), db, uuid.New())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_gormSessionRepository_CreateInTransaction(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormSessionRepository()
	rec := newRecord(time.Now().UTC(), "apple")

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := repo.Create(ctx, tx, rec); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = repo.FindByID(ctx, db, rec.SessionID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_gormSessionRepository_ListRecent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormSessionRepository()

	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	oldest := newRecord(base)
	middle := newRecord(base.Add(time.Hour), "apple")
	newest := newRecord(base.Add(2*time.Hour), "pear", "plum")
	for _, r := range []*model.QuizSessionRecord{middle, oldest, newest} {
		require.NoError(t, repo.Create(ctx, db, r))
	}

	tests := []struct {
		name    string
		limit   int
		wantIDs []uuid.UUID
	}{
		{"正常系: 全件", 0, []uuid.UUID{newest.SessionID, middle.SessionID, oldest.SessionID}},
		{"正常系: 件数を制限", 2, []uuid.UUID{newest.SessionID, middle.SessionID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ListRecent(ctx, db, tt.limit)
			require.NoError(t, err)
			var ids []uuid.UUID
			for _, r := range got {
				ids = append(ids, r.SessionID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Len(t, got[0].Misses, 2)
			assert.Equal(t, "pear", got[0].Misses[0].Word)
		})
	}
}
