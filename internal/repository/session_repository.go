//go:generate mockery --name SessionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go_vocab_quiz/internal/model"
)

// SessionRepository stores finished quiz sessions.
type SessionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, rec *model.QuizSessionRecord) error // tx may be a transaction
	FindByID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (*model.QuizSessionRecord, error)
	ListRecent(ctx context.Context, db *gorm.DB, limit int) ([]*model.QuizSessionRecord, error)
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

// Create inserts the session and its misses in one statement tree.
func (r *gormSessionRepository) Create(ctx context.Context, tx *gorm.DB, rec *model.QuizSessionRecord) error {
	if err := tx.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("gormSessionRepository.Create: %w", model.ErrConflict)
		}
		return fmt.Errorf("gormSessionRepository.Create: %w", err)
	}
	return nil
}

func (r *gormSessionRepository) FindByID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (*model.QuizSessionRecord, error) {
	var rec model.QuizSessionRecord
	result := db.WithContext(ctx).Preload("Misses").Where("session_id = ?", sessionID).First(&rec)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormSessionRepository.FindByID: %w", result.Error)
	}
	return &rec, nil
}

// ListRecent returns the newest sessions first.
func (r *gormSessionRepository) ListRecent(ctx context.Context, db *gorm.DB, limit int) ([]*model.QuizSessionRecord, error) {
	var recs []*model.QuizSessionRecord
	q := db.WithContext(ctx).
		Preload("Misses", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("finished_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("gormSessionRepository.ListRecent: %w", err)
	}
	return recs, nil
}
