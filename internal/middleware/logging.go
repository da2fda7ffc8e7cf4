package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey is the context key of the request scoped logger.
type logCtxKey struct{}

// sensitiveHeaders are masked in debug logs. Keys are lower case.
var sensitiveHeaders = map[string]bool{
	"authorization":  true,
	"cookie":         true,
	"set-cookie":     true,
	"x-api-key":      true,
	"x-goog-api-key": true,
}

// redactedFields are JSON keys whose values are hidden in debug body logs.
// The answer of a question must not end up in the log before it is asked.
var redactedFields = map[string]bool{
	"correct_answer": true,
}

// SessionParam is the URL parameter naming a quiz session.
const SessionParam = "session_id"

// responseLogger records the status code and body written by a handler.
type responseLogger struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func newResponseLogger(w http.ResponseWriter) *responseLogger {
	return &responseLogger{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
		body:           new(bytes.Buffer),
	}
}

func (rl *responseLogger) WriteHeader(statusCode int) {
	rl.statusCode = statusCode
	rl.ResponseWriter.WriteHeader(statusCode)
}

func (rl *responseLogger) Write(b []byte) (int, error) {
	rl.body.Write(b)
	return rl.ResponseWriter.Write(b)
}

// LoggingMiddleware puts a request scoped logger into the context and logs
// the start and the end of every request. The completion line carries the
// matched chi route pattern and the session id when the route has one.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(WithLogger(r.Context(), requestLogger))

			requestLogger.Info("Request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			var reqBodyBytes []byte
			if logger.Enabled(r.Context(), slog.LevelDebug) && r.Body != nil {
				reqBodyBytes, _ = io.ReadAll(r.Body)
				r.Body = io.NopCloser(bytes.NewBuffer(reqBodyBytes))
			}

			rl := newResponseLogger(w)
			next.ServeHTTP(rl, r)

			latency := time.Since(startTime)
			statusCode := rl.statusCode

			logLevel := slog.LevelInfo
			if statusCode >= 500 {
				logLevel = slog.LevelError
			} else if statusCode >= 400 {
				logLevel = slog.LevelWarn
			}

			attrs := []any{
				"status", statusCode,
				"latency_ms", float64(latency.Nanoseconds())/1e6,
				"bytes_out", rl.body.Len(),
			}
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					attrs = append(attrs, "route", pattern)
				}
				if sessionID := rctx.URLParam(SessionParam); sessionID != "" {
					attrs = append(attrs, SessionParam, sessionID)
				}
			}
			requestLogger.Log(r.Context(), logLevel, "Request completed", attrs...)

			if logger.Enabled(r.Context(), slog.LevelDebug) {
				requestLogger.Debug("Request detail",
					"headers", formatHeaders(r.Header),
					"body", redactBody(reqBodyBytes),
				)
				requestLogger.Debug("Response detail",
					"status", statusCode,
					"headers", formatHeaders(rl.Header()),
					"body", redactBody(rl.body.Bytes()),
				)
			}
		})
	}
}

// SessionLogger adds the session_id URL parameter to the request scoped
// logger. Mount it on routes that have {session_id} in their pattern.
func SessionLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessionID := chi.URLParam(r, SessionParam); sessionID != "" {
			logger := GetLogger(r.Context()).With(SessionParam, sessionID)
			r = r.WithContext(WithLogger(r.Context(), logger))
		}
		next.ServeHTTP(w, r)
	})
}

// WithLogger returns a copy of ctx carrying logger. The terminal quiz uses it
// to give service code the same logger the HTTP path would.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// GetLogger returns the logger stored in ctx, or slog.Default().
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			result[key] = "[SENSITIVE]"
		} else {
			result[key] = strings.Join(values, ", ")
		}
	}
	return result
}

// redactBody returns body with the values of redactedFields replaced. Bodies
// that are not JSON, or hold none of those keys, come back unchanged.
func redactBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return string(body)
	}
	if !redact(doc) {
		return string(body)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return string(body)
	}
	return string(out)
}

func redact(v any) bool {
	changed := false
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if redactedFields[k] {
				t[k] = "[REDACTED]"
				changed = true
				continue
			}
			if redact(child) {
				changed = true
			}
		}
	case []any:
		for _, child := range t {
			if redact(child) {
				changed = true
			}
		}
	}
	return changed
}
