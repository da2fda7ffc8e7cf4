package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_quiz/internal/config"
	"go_vocab_quiz/internal/model"
)

type capturedRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
}

func newTestGemini(t *testing.T, h http.HandlerFunc) *GeminiGenerator {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	gen, err := NewGeminiGenerator(context.Background(), config.GeminiConfig{
		APIKey:  "gm-key",
		BaseURL: srv.URL,
		Model:   "gemini-2.0-flash",
		Timeout: 5 * time.Second,
	}, srv.Client())
	require.NoError(t, err)
	return gen
}

func Test_GeminiGenerator_Generate(t *testing.T) {
	var got capturedRequest
	gen := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "gm-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "Q: a red fruit;A:apple\n"}, {"text": "Q: a yellow fruit;A:banana"}]},
				"finishReason": "STOP"
			}]
		}`)
	})

	text, err := gen.Generate(context.Background(), "prompt body")
	require.NoError(t, err)
	assert.Equal(t, "Q: a red fruit;A:apple\nQ: a yellow fruit;A:banana", text)

	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Equal(t, "prompt body", got.Contents[0].Parts[0].Text)
}

func Test_GeminiGenerator_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "異常系: エラー JSON の message を使う",
			status:     http.StatusBadRequest,
			body:       `{"error":{"code":400,"message":"API key not valid.","status":"INVALID_ARGUMENT"}}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "API key not valid.",
		},
		{
			name:       "異常系: JSON でないエラー本文",
			status:     http.StatusServiceUnavailable,
			body:       "overloaded",
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "overloaded",
		},
		{
			name:       "異常系: candidates が空",
			status:     http.StatusOK,
			body:       `{"candidates":[]}`,
			wantStatus: http.StatusOK,
			wantMsg:    "no candidates",
		},
		{
			name:       "異常系: 壊れた JSON",
			status:     http.StatusOK,
			body:       `{"candidates":`,
			wantStatus: 0,
			wantMsg:    "unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := gen.Generate(context.Background(), "p")
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrExternalCall)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var callErr *model.ExternalCallError
			require.ErrorAs(t, err, &callErr)
			assert.Equal(t, "gemini", callErr.Service)
			assert.Equal(t, tt.wantStatus, callErr.StatusCode)
		})
	}
}

func Test_GeminiGenerator_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	gen, err := NewGeminiGenerator(context.Background(), config.GeminiConfig{APIKey: "k", BaseURL: url}, nil)
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrExternalCall)

	var callErr *model.ExternalCallError
	require.ErrorAs(t, err, &callErr)
	assert.Zero(t, callErr.StatusCode)
}

func Test_NewGeminiGenerator_Defaults(t *testing.T) {
	gen, err := NewGeminiGenerator(context.Background(), config.GeminiConfig{APIKey: "k", Timeout: time.Second}, nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultGeminiModel, gen.model)
	assert.NotNil(t, gen.client)
}
