package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"gorm.io/gorm"

	"go_vocab_quiz/internal/config"
	"go_vocab_quiz/internal/logging"
	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/repository"
	"go_vocab_quiz/internal/sampler"
	"go_vocab_quiz/internal/service"
)

// app is the wired process: config, logger, history database and the quiz
// service on top of the Notion and Gemini clients.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *gorm.DB
	svc      service.QuizService
	closeLog func() error
}

func newApp(opts *rootOptions, logOut io.Writer) (*app, error) {
	cfg, err := config.LoadConfig(opts.configDir)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log, os.Getenv("APP_ENV"), logOut)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	logger.Info("Application starting...", slog.String("version", config.AppVersion))

	if cfg.Notion.APIKey == "" || cfg.Notion.DatabaseID == "" {
		closeLog()
		return nil, errors.New("notion credentials missing: set NOTION_API_KEY and NOTION_DATABASE_ID")
	}

	db, err := repository.NewDB(cfg.Database.URL, logger)
	if err != nil {
		closeLog()
		return nil, err
	}

	notion := repository.NewNotionClient(cfg.Notion, http.DefaultClient)
	wordRepo := repository.NewNotionWordRepository(notion, cfg.Notion.DatabaseID, cfg.Notion.PageSize, cfg.Notion.MultiplicityField)
	sessionRepo := repository.NewGormSessionRepository()

	var generator service.Generator
	if cfg.Gemini.APIKey != "" {
		gemini, err := service.NewGeminiGenerator(context.Background(), cfg.Gemini, nil)
		if err != nil {
			closeLog()
			return nil, err
		}
		generator = gemini
	} else {
		logger.Warn("GEMINI_API_KEY is not set, only meaning mode is available")
		generator = missingGenerator{}
	}

	svc := service.NewQuizService(db, wordRepo, sessionRepo, generator, sampler.New(nil), cfg)

	return &app{cfg: cfg, logger: logger, db: db, svc: svc, closeLog: closeLog}, nil
}

// context returns ctx carrying the application logger.
func (a *app) context(ctx context.Context) context.Context {
	return middleware.WithLogger(ctx, a.logger)
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.logger.Error("Error closing database connection", slog.Any("error", err))
		} else {
			a.logger.Info("Database connection closed.")
		}
	}
	if a.closeLog != nil {
		a.closeLog()
	}
}

// missingGenerator stands in when no Gemini key is configured.
type missingGenerator struct{}

func (missingGenerator) Generate(context.Context, string) (string, error) {
	return "", model.NewAppError("GEMINI_NOT_CONFIGURED", "GEMINI_API_KEY is not set; use meaning mode.", "mode", model.ErrInvalidInput)
}
