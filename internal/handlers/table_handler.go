// internal/handlers/table_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_vocab_quiz/internal/service"
	"go_vocab_quiz/internal/webutil"
)

type TableHandler struct {
	service service.QuizService
	logger  *slog.Logger
}

func NewTableHandler(s service.QuizService, logger *slog.Logger) *TableHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableHandler{
		service: s,
		logger:  logger,
	}
}

// ReloadTable reads the whole document store again.
func (h *TableHandler) ReloadTable(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "ReloadTable"))

	if _, err := h.service.LoadTable(r.Context()); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	summary, err := h.service.Summary()
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Word table reloaded", slog.Int("size", summary.Size))
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}

// GetTable describes the loaded table.
func (h *TableHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetTable"))

	summary, err := h.service.Summary()
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}
