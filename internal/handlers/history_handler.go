// internal/handlers/history_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/service"
	"go_vocab_quiz/internal/webutil"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

type HistoryHandler struct {
	service service.QuizService
	logger  *slog.Logger
}

func NewHistoryHandler(s service.QuizService, logger *slog.Logger) *HistoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryHandler{
		service: s,
		logger:  logger,
	}
}

// GetHistory lists finished sessions, newest first.
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetHistory"))

	limit := defaultHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxHistoryLimit {
			appErr := model.NewAppError("INVALID_QUERY_PARAM", "limit must be between 1 and 200.", "limit", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
		limit = n
	}

	recs, err := h.service.History(r.Context(), limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if recs == nil {
		recs = []*model.QuizSessionRecord{}
	}
	logger.Info("History listed", slog.Int("count", len(recs)))
	webutil.RespondWithJSON(w, http.StatusOK, recs, logger)
}
