//go:generate mockery --name QuizService --output ./mocks --outpkg mocks --case=underscore --structname MockQuizService
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go_vocab_quiz/internal/config"
	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/prompt"
	"go_vocab_quiz/internal/repository"
	"go_vocab_quiz/internal/sampler"
	"go_vocab_quiz/internal/wordtable"
)

// QuizService runs one quiz session at a time against the loaded word table.
// Every method except Table and Summary returns model.ErrBusy while another
// call is still running.
type QuizService interface {
	LoadTable(ctx context.Context) (*model.WordTable, error)
	Table() *model.WordTable
	Summary() (*model.TableSummary, error)
	StartSession(ctx context.Context, req *model.StartSessionRequest) (*model.SessionView, error)
	SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer string) (*model.AnswerResult, error)
	FinishSession(ctx context.Context, sessionID uuid.UUID) (*model.SessionSummary, error)
	History(ctx context.Context, limit int) ([]*model.QuizSessionRecord, error)
}

type quizSession struct {
	id        uuid.UUID
	mode      model.QuizMode
	sample    *model.WordTable
	pairs     []model.QAPair
	current   int
	score     int
	startedAt time.Time

	// pending keeps queue order; queued maps a page id to its slot and base
	// holds the multiplicity the word had when it was first queued.
	pending []model.PendingUpdate
	queued  map[string]int
	base    map[string]int
	missed  []string
}

type quizService struct {
	db          *gorm.DB
	wordRepo    repository.WordRepository
	sessionRepo repository.SessionRepository
	generator   Generator
	mastery     *MasteryUpdater
	sampler     *sampler.Sampler
	cfg         *config.Config
	now         func() time.Time

	busy sync.Mutex

	stateMu  sync.RWMutex
	table    *model.WordTable
	loadedAt time.Time
	session  *quizSession
}

func NewQuizService(
	db *gorm.DB,
	wordRepo repository.WordRepository,
	sessionRepo repository.SessionRepository,
	generator Generator,
	smp *sampler.Sampler,
	cfg *config.Config,
) QuizService {
	if smp == nil {
		smp = sampler.New(nil)
	}
	return &quizService{
		db:          db,
		wordRepo:    wordRepo,
		sessionRepo: sessionRepo,
		generator:   generator,
		mastery:     NewMasteryUpdater(wordRepo),
		sampler:     smp,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (s *quizService) enter(ctx context.Context, op string) bool {
	if s.busy.TryLock() {
		return true
	}
	middleware.GetLogger(ctx).Warn("Rejected call while another operation is running", "operation", op)
	return false
}

// LoadTable fetches every page of the store and replaces the in-memory table.
// On failure the previous table is kept.
func (s *quizService) LoadTable(ctx context.Context) (*model.WordTable, error) {
	if !s.enter(ctx, "LoadTable") {
		return nil, model.ErrBusy
	}
	defer s.busy.Unlock()
	return s.loadTable(ctx)
}

func (s *quizService) loadTable(ctx context.Context) (*model.WordTable, error) {
	logger := middleware.GetLogger(ctx)

	pages, err := s.wordRepo.FetchAll(ctx)
	if err != nil {
		logger.Error("Failed to fetch pages from the document store", "error", err)
		return nil, fmt.Errorf("quizService.LoadTable: %w", err)
	}
	if len(pages) == 0 {
		logger.Warn("Document store returned no pages")
		return nil, model.ErrEmptyDatabase
	}

	table, err := wordtable.Build(pages, model.DefaultColumns)
	if err != nil {
		logger.Error("Failed to build word table", "error", err, "pages", len(pages))
		return nil, fmt.Errorf("quizService.LoadTable: %w", err)
	}

	s.stateMu.Lock()
	s.table = table
	s.loadedAt = s.now()
	s.stateMu.Unlock()

	logger.Info("Word table loaded", "size", table.Len())
	return table, nil
}

func (s *quizService) Table() *model.WordTable {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.table
}

func (s *quizService) Summary() (*model.TableSummary, error) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.table == nil {
		return nil, model.ErrTableNotLoaded
	}
	return &model.TableSummary{
		Size:     s.table.Len(),
		Columns:  append([]string(nil), s.table.Columns...),
		LoadedAt: s.loadedAt,
	}, nil
}

// StartSession samples words and prepares the questions. An unfinished
// session is finished first so its pending updates are not lost.
func (s *quizService) StartSession(ctx context.Context, req *model.StartSessionRequest) (*model.SessionView, error) {
	if !s.enter(ctx, "StartSession") {
		return nil, model.ErrBusy
	}
	defer s.busy.Unlock()
	logger := middleware.GetLogger(ctx)

	if prev := s.currentSession(); prev != nil {
		logger.Warn("Finishing abandoned session before starting a new one", "session_id", prev.id)
		s.finish(ctx, prev)
	}

	if s.Table() == nil {
		if _, err := s.loadTable(ctx); err != nil {
			return nil, err
		}
	}

	mode := req.Mode
	if mode == "" {
		mode = model.QuizMode(s.cfg.Quiz.Mode)
	}
	if mode != model.ModeGenerated && mode != model.ModeMeaning {
		return nil, model.NewAppError("INVALID_MODE", "unknown quiz mode", "mode", model.ErrInvalidInput)
	}

	s.stateMu.RLock()
	sample := s.sampler.Sample(s.table, sampler.Options{
		Full:       req.Words,
		Recent:     req.RecentWords,
		RecentDays: req.RecentDays,
	})
	s.stateMu.RUnlock()
	if sample.Len() == 0 {
		return nil, model.ErrEmptyDatabase
	}

	var pairs []model.QAPair
	switch mode {
	case model.ModeMeaning:
		pairs = prompt.MeaningPairs(sample)
	default:
		text := prompt.Format(sample)
		response, err := s.generator.Generate(ctx, text)
		if err != nil {
			logger.Error("Failed to generate questions", "error", err)
			return nil, fmt.Errorf("quizService.StartSession: %w", err)
		}
		pairs = attribute(prompt.Parse(ctx, response), sample)
	}
	if len(pairs) == 0 {
		logger.Warn("No questions produced", "mode", mode, "words", sample.Len())
		return nil, model.ErrNoQuestions
	}

	sess := &quizSession{
		id:        uuid.New(),
		mode:      mode,
		sample:    sample,
		pairs:     pairs,
		startedAt: s.now(),
		queued:    map[string]int{},
		base:      map[string]int{},
	}
	s.stateMu.Lock()
	s.session = sess
	s.stateMu.Unlock()

	logger.Info("Quiz session started", "session_id", sess.id, "mode", mode, "words", sample.Len(), "questions", len(pairs))
	return sess.view(), nil
}

// attribute links each pair to the sampled word it asks for. Pairs whose
// answer matches no sampled word keep an empty PageID.
func attribute(pairs []model.QAPair, sample *model.WordTable) []model.QAPair {
	for i := range pairs {
		for _, e := range sample.Entries {
			if strings.EqualFold(strings.TrimSpace(pairs[i].Answer), strings.TrimSpace(e.Word)) {
				pairs[i].PageID = e.PageID
				break
			}
		}
	}
	return pairs
}

func (s *quizService) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, answer string) (*model.AnswerResult, error) {
	if !s.enter(ctx, "SubmitAnswer") {
		return nil, model.ErrBusy
	}
	defer s.busy.Unlock()
	logger := middleware.GetLogger(ctx).With("session_id", sessionID)

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.current >= len(sess.pairs) {
		return nil, model.NewAppError("SESSION_COMPLETE", "all questions have been answered", "", model.ErrConflict)
	}

	pair := sess.pairs[sess.current]
	correct := isCorrect(answer, pair.Answer)
	if correct {
		sess.score++
	}
	s.recordOutcome(ctx, sess, pair, correct)
	sess.current++

	res := &model.AnswerResult{
		Correct:       correct,
		CorrectAnswer: pair.Answer,
		Score:         sess.score,
		Answered:      sess.current,
		Total:         len(sess.pairs),
		Done:          sess.current >= len(sess.pairs),
	}
	if !res.Done {
		next := sess.pairs[sess.current]
		res.Next = &next
	}
	logger.Debug("Answer graded", "question", sess.current, "correct", correct)
	return res, nil
}

func isCorrect(given, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(expected))
}

// recordOutcome queues store writes for the word behind pair. A miss raises
// the stored value once per session. With decrease_on_correct a word that is
// answered correctly and never missed is lowered once.
func (s *quizService) recordOutcome(ctx context.Context, sess *quizSession, pair model.QAPair, correct bool) {
	if pair.PageID == "" {
		if !correct {
			middleware.GetLogger(ctx).Warn("Missed question matches no sampled word, nothing to update", "answer", pair.Answer)
		}
		return
	}
	entry, ok := sess.sample.Find(pair.PageID)
	if !ok {
		return
	}
	slot, queued := sess.queued[pair.PageID]

	switch {
	case !correct && !queued:
		sess.queued[pair.PageID] = len(sess.pending)
		sess.base[pair.PageID] = entry.Multiplicity
		sess.pending = append(sess.pending, model.PendingUpdate{
			PageID:          entry.PageID,
			Word:            entry.Word,
			NewMultiplicity: entry.Multiplicity,
		})
		sess.missed = append(sess.missed, entry.Word)
		s.adjustWeight(entry, entry.Multiplicity+1)

	case !correct && sess.pending[slot].Decrease:
		// an earlier correct answer lowered this word; the miss wins
		orig := sess.base[pair.PageID]
		sess.pending[slot] = model.PendingUpdate{
			PageID:          entry.PageID,
			Word:            entry.Word,
			NewMultiplicity: orig,
		}
		sess.missed = append(sess.missed, entry.Word)
		s.adjustWeight(entry, orig+1)

	case correct && !queued && s.cfg.Quiz.DecreaseOnCorrect:
		sess.queued[pair.PageID] = len(sess.pending)
		sess.base[pair.PageID] = entry.Multiplicity
		sess.pending = append(sess.pending, model.PendingUpdate{
			PageID:          entry.PageID,
			Word:            entry.Word,
			NewMultiplicity: max(entry.Multiplicity-2, 0),
			Decrease:        true,
		})
		s.adjustWeight(entry, max(entry.Multiplicity-1, 1))
	}
}

// adjustWeight sets the in-memory multiplicity of a sampled entry and of the
// matching row in the loaded table.
func (s *quizService) adjustWeight(entry *model.WordEntry, m int) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	entry.Multiplicity = m
	if row, ok := s.table.Find(entry.PageID); ok {
		row.Multiplicity = m
	}
}

// FinishSession writes pending updates one by one, records the session and
// forgets it. It may be called before every question is answered.
func (s *quizService) FinishSession(ctx context.Context, sessionID uuid.UUID) (*model.SessionSummary, error) {
	if !s.enter(ctx, "FinishSession") {
		return nil, model.ErrBusy
	}
	defer s.busy.Unlock()

	sess, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, sess), nil
}

func (s *quizService) finish(ctx context.Context, sess *quizSession) *model.SessionSummary {
	logger := middleware.GetLogger(ctx).With("session_id", sess.id)

	var flush model.FlushResult
	flushed := make(map[string]bool, len(sess.pending))
	for _, u := range sess.pending {
		if s.mastery.Update(ctx, u.PageID, u.NewMultiplicity, u.Decrease) {
			flush.Succeeded++
			flushed[u.PageID] = true
		} else {
			flush.Failed++
		}
	}

	s.stateMu.Lock()
	if s.session == sess {
		s.session = nil
	}
	s.stateMu.Unlock()

	summary := &model.SessionSummary{
		SessionID: sess.id,
		Score:     sess.score,
		Answered:  sess.current,
		Total:     len(sess.pairs),
		Percent:   percent(sess.score, len(sess.pairs)),
		Missed:    append([]string{}, sess.missed...),
		Flush:     flush,
	}

	rec := &model.QuizSessionRecord{
		SessionID:      sess.id,
		Mode:           sess.mode,
		WordCount:      sess.sample.Len(),
		QuestionCount:  len(sess.pairs),
		Answered:       sess.current,
		Score:          sess.score,
		FlushSucceeded: flush.Succeeded,
		FlushFailed:    flush.Failed,
		StartedAt:      sess.startedAt,
		FinishedAt:     s.now(),
	}
	for _, u := range sess.pending {
		if u.Decrease {
			continue
		}
		rec.Misses = append(rec.Misses, model.SessionMiss{
			SessionID:       sess.id,
			PageID:          u.PageID,
			Word:            u.Word,
			NewMultiplicity: u.NewMultiplicity,
			Flushed:         flushed[u.PageID],
		})
	}
	if s.db != nil && s.sessionRepo != nil {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.sessionRepo.Create(ctx, tx, rec)
		})
		if err != nil {
			logger.Error("Failed to save session history", "error", err)
		}
	}

	logger.Info("Quiz session finished",
		"score", summary.Score,
		"answered", summary.Answered,
		"total", summary.Total,
		"percent", summary.Percent,
		"success_count", flush.Succeeded,
		"fail_count", flush.Failed,
	)
	return summary
}

func percent(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

func (s *quizService) History(ctx context.Context, limit int) ([]*model.QuizSessionRecord, error) {
	if !s.enter(ctx, "History") {
		return nil, model.ErrBusy
	}
	defer s.busy.Unlock()

	if s.db == nil || s.sessionRepo == nil {
		return []*model.QuizSessionRecord{}, nil
	}
	recs, err := s.sessionRepo.ListRecent(ctx, s.db, limit)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to list session history", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "failed to read session history", "", err)
	}
	return recs, nil
}

func (s *quizService) currentSession() *quizSession {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.session
}

func (s *quizService) lookup(sessionID uuid.UUID) (*quizSession, error) {
	sess := s.currentSession()
	if sess == nil || sess.id != sessionID {
		return nil, fmt.Errorf("session %s: %w", sessionID, model.ErrNotFound)
	}
	return sess, nil
}

func (q *quizSession) view() *model.SessionView {
	words := make([]string, 0, q.sample.Len())
	for _, e := range q.sample.Entries {
		words = append(words, e.Word)
	}
	v := &model.SessionView{
		SessionID: q.id,
		Mode:      q.mode,
		Words:     words,
		Total:     len(q.pairs),
		Current:   q.current,
		Score:     q.score,
	}
	if q.current < len(q.pairs) {
		next := q.pairs[q.current]
		v.Question = &next
	}
	return v
}
