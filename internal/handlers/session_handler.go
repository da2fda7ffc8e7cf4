// internal/handlers/session_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/service"
	"go_vocab_quiz/internal/webutil"
)

type SessionHandler struct {
	service service.QuizService
	logger  *slog.Logger
}

func NewSessionHandler(s service.QuizService, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		service: s,
		logger:  logger,
	}
}

// StartSession samples words and returns the first question.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "StartSession"))

	var req model.StartSessionRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "The request body is not valid JSON.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.Validate(req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.service.StartSession(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Session started", slog.String("session_id", view.SessionID.String()), slog.Int("questions", view.Total))
	webutil.RespondWithJSON(w, http.StatusCreated, view, logger)
}

// SubmitAnswer grades the answer to the current question.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "SubmitAnswer"))

	sessionID, ok := h.sessionID(w, r, logger)
	if !ok {
		return
	}

	var req model.SubmitAnswerRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "The request body is not valid JSON.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if err := webutil.Validate(req); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	res, err := h.service.SubmitAnswer(r.Context(), sessionID, req.Answer)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, res, logger)
}

// FinishSession writes pending updates and returns the final score.
func (h *SessionHandler) FinishSession(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "FinishSession"))

	sessionID, ok := h.sessionID(w, r, logger)
	if !ok {
		return
	}

	summary, err := h.service.FinishSession(r.Context(), sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Session finished",
		slog.Int("score", summary.Score),
		slog.Int("success_count", summary.Flush.Succeeded),
		slog.Int("fail_count", summary.Flush.Failed),
	)
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, middleware.SessionParam)
	id, err := uuid.Parse(idStr)
	if err != nil {
		logger.Warn("Invalid session ID format in URL", slog.String("session_id_str", idStr), slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_URL_PARAM", "session_id is not a valid UUID.", "session_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return id, true
}
