// internal/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// QuizSessionRecord is a finished quiz session kept in the local history
// database.
type QuizSessionRecord struct {
	SessionID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"session_id"`
	Mode           QuizMode  `gorm:"type:varchar(20);not null" json:"mode"`
	WordCount      int       `gorm:"not null" json:"word_count"`
	QuestionCount  int       `gorm:"not null" json:"question_count"`
	Answered       int       `gorm:"not null" json:"answered"`
	Score          int       `gorm:"not null" json:"score"`
	FlushSucceeded int       `gorm:"not null;default:0" json:"flush_succeeded"`
	FlushFailed    int       `gorm:"not null;default:0" json:"flush_failed"`
	StartedAt      time.Time `gorm:"not null" json:"started_at"`
	FinishedAt     time.Time `gorm:"not null;index" json:"finished_at"`
	CreatedAt      time.Time `json:"-"`

	Misses []SessionMiss `gorm:"foreignKey:SessionID;references:SessionID" json:"misses,omitempty"`
}

func (QuizSessionRecord) TableName() string {
	return "quiz_sessions"
}

// SessionMiss is one word answered incorrectly during a session.
type SessionMiss struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	SessionID       uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	PageID          string    `gorm:"not null" json:"page_id"`
	Word            string    `gorm:"not null" json:"word"`
	NewMultiplicity int       `gorm:"not null" json:"new_multiplicity"`
	Flushed         bool      `gorm:"not null;default:false" json:"flushed"`
}

func (SessionMiss) TableName() string {
	return "quiz_session_misses"
}
