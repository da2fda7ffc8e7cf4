// internal/handlers/router.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"go_vocab_quiz/internal/config"
	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/service"
)

// NewRouter wires the quiz API. db is only used by the health check and may
// be nil.
func NewRouter(svc service.QuizService, db *gorm.DB, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	tableHandler := NewTableHandler(svc, logger)
	sessionHandler := NewSessionHandler(svc, logger)
	historyHandler := NewHistoryHandler(svc, logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
		Debug:            false,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	// question generation waits on the language model
	r.Use(chimiddleware.Timeout(cfg.Gemini.Timeout + 15*time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/table", func(r chi.Router) {
			r.Get("/", tableHandler.GetTable)
			r.Post("/reload", tableHandler.ReloadTable)
		})
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.StartSession)
			r.Route("/{"+middleware.SessionParam+"}", func(r chi.Router) {
				r.Use(middleware.SessionLogger)
				r.Post("/answers", sessionHandler.SubmitAnswer)
				r.Post("/finish", sessionHandler.FinishSession)
			})
		})
		r.Get("/history", historyHandler.GetHistory)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if db != nil {
			sqlDB, err := db.DB()
			if err != nil {
				logger.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
				http.Error(w, "Health check failed", http.StatusInternalServerError)
				return
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				logger.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
				http.Error(w, "Health check failed", http.StatusInternalServerError)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
