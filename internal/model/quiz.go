// internal/model/quiz.go
package model

import "github.com/google/uuid"

// QuizMode selects how questions are produced.
type QuizMode string

const (
	// ModeGenerated asks the language model for questions.
	ModeGenerated QuizMode = "generated"
	// ModeMeaning shows the meaning and expects the word.
	ModeMeaning QuizMode = "meaning"
)

// QAPair is one question with its expected answer. PageID is empty when the
// pair could not be attributed to a sampled word.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"-"`
	PageID   string `json:"-"`
}

// PendingUpdate is a multiplicity write queued until the session ends.
type PendingUpdate struct {
	PageID          string
	Word            string
	NewMultiplicity int
	Decrease        bool
}

// FlushResult aggregates the outcome of writing pending updates.
type FlushResult struct {
	Succeeded int `json:"success_count"`
	Failed    int `json:"fail_count"`
}

// StartSessionRequest starts a quiz session.
type StartSessionRequest struct {
	Words       int      `json:"words" validate:"required,min=1,max=20"`
	RecentWords int      `json:"recent_words" validate:"min=0,max=20"`
	RecentDays  int      `json:"recent_days" validate:"min=0,max=365"`
	Mode        QuizMode `json:"mode" validate:"omitempty,oneof=generated meaning"`
}

// SubmitAnswerRequest is one answer to the current question.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"max=200"`
}

// SessionView is what a caller sees of a running session.
type SessionView struct {
	SessionID uuid.UUID `json:"session_id"`
	Mode      QuizMode  `json:"mode"`
	Words     []string  `json:"words"`
	Total     int       `json:"total"`
	Current   int       `json:"current"`
	Score     int       `json:"score"`
	Question  *QAPair   `json:"question,omitempty"`
}

// AnswerResult reports how one answer was graded.
type AnswerResult struct {
	Correct       bool    `json:"correct"`
	CorrectAnswer string  `json:"correct_answer"`
	Score         int     `json:"score"`
	Answered      int     `json:"answered"`
	Total         int     `json:"total"`
	Next          *QAPair `json:"next,omitempty"`
	Done          bool    `json:"done"`
}

// SessionSummary is returned when a session is finished.
type SessionSummary struct {
	SessionID uuid.UUID   `json:"session_id"`
	Score     int         `json:"score"`
	Answered  int         `json:"answered"`
	Total     int         `json:"total"`
	Percent   float64     `json:"percent"`
	Missed    []string    `json:"missed"`
	Flush     FlushResult `json:"flush"`
}
