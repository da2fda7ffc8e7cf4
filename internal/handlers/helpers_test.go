// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_quiz/internal/config"
	"go_vocab_quiz/internal/handlers"
	"go_vocab_quiz/internal/model"
	"go_vocab_quiz/internal/service/mocks"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// httpRequestDetails is what sendRequest needs to build a request.
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    any
	Headers map[string]string
}

func newTestServer(t *testing.T) (*httptest.Server, *mocks.MockQuizService) {
	t.Helper()
	svc := mocks.NewMockQuizService(t)
	cfg := &config.Config{
		Gemini: config.GeminiConfig{Timeout: 5 * time.Second},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Content-Type"},
		},
	}
	srv := httptest.NewServer(handlers.NewRouter(svc, nil, cfg, testLogger))
	t.Cleanup(srv.Close)
	return srv, svc
}

// sendRequest sends the request and checks the status code.
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectedCode int) []byte {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	assert.Equal(t, expectedCode, resp.StatusCode, "Status code mismatch")

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	return respBodyBytes
}

// verifyErrorResponse checks the error code and, when given, the field.
func verifyErrorResponse(t *testing.T, bodyBytes []byte, wantCode, wantField string) {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &errResp), "body: %s", string(bodyBytes))
	assert.Equal(t, wantCode, errResp.Error.Code)
	if wantField != "" {
		assert.Equal(t, wantField, errResp.Error.Field)
	}
}
