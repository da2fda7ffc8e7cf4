package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"go_vocab_quiz/internal/config"
	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
)

// GeminiGenerator calls the Gemini generateContent endpoint through the genai SDK.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator builds a generator from cfg. A zero Timeout leaves
// requests bounded only by the caller's context.
func NewGeminiGenerator(ctx context.Context, cfg config.GeminiConfig, httpClient *http.Client) (*GeminiGenerator, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultGeminiBaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = config.DefaultGeminiModel
	}

	opts := genai.HTTPOptions{BaseURL: baseURL}
	if cfg.Timeout > 0 {
		timeout := cfg.Timeout
		opts.Timeout = &timeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: opts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: modelName}, nil
}

// Generate sends prompt as a single user turn and returns the text of the
// first candidate.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	const op = "generate content"
	logger := middleware.GetLogger(ctx).With("model", g.model)

	fail := func(status int, err error) error {
		return &model.ExternalCallError{Service: "gemini", Op: op, StatusCode: status, Err: err}
	}

	logger.Debug("Sending prompt to Gemini", "prompt_bytes", len(prompt))
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			logger.Error("Gemini returned an error status", "status", apiErr.Code, "message", apiErr.Message)
			return "", fail(apiErr.Code, errors.New(apiErr.Message))
		}
		logger.Error("Gemini request failed", "error", err)
		return "", fail(0, err)
	}
	if len(resp.Candidates) == 0 {
		return "", fail(http.StatusOK, errors.New("no candidates returned"))
	}

	text := resp.Text()
	logger.Debug("Received Gemini response", "response_bytes", len(text), "finish_reason", string(resp.Candidates[0].FinishReason))
	return text, nil
}
