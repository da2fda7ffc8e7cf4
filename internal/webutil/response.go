// internal/webutil/response.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go_vocab_quiz/internal/model"
)

// HandleError writes the JSON error response for err. AppErrors are shown as
// they are; known sentinels get a fixed message; anything else is a 500.
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	statusCode := MapErrorToStatusCode(err)

	var appErr *model.AppError
	var detail model.ErrorDetail
	switch {
	case errors.As(err, &appErr):
		detail = appErr.Detail()
	default:
		detail = sentinelDetail(err)
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.Any("error", err), slog.Int("status", statusCode))
	} else {
		logger.Warn("Request rejected", slog.Any("error", err), slog.Int("status", statusCode))
	}

	RespondWithJSON(w, statusCode, model.APIErrorResponse{Error: detail}, logger)
}

func sentinelDetail(err error) model.ErrorDetail {
	var (
		callErr *model.ExternalCallError
		kindErr *model.UnsupportedPropertyKindError
		timeErr *model.MissingRequiredTimestampError
		dupErr  *model.DuplicatePageIDError
	)
	switch {
	case errors.Is(err, model.ErrExternalCall):
		if errors.As(err, &callErr) {
			return model.ErrorDetail{Code: "UPSTREAM_ERROR", Message: "The " + callErr.Service + " request failed."}
		}
		return model.ErrorDetail{Code: "UPSTREAM_ERROR", Message: "An upstream request failed."}
	case errors.As(err, &kindErr):
		return model.ErrorDetail{
			Code:    "UNSUPPORTED_PROPERTY_KIND",
			Message: fmt.Sprintf("Property %q has unsupported kind %q.", kindErr.Property, kindErr.Kind),
			Field:   kindErr.Property,
		}
	case errors.As(err, &timeErr):
		return model.ErrorDetail{
			Code:    "MISSING_CREATED_TIME",
			Message: fmt.Sprintf("Page %s has no usable created_time.", timeErr.PageID),
			Field:   model.ColumnCreatedTime,
		}
	case errors.As(err, &dupErr):
		return model.ErrorDetail{
			Code:    "DUPLICATE_PAGE_ID",
			Message: fmt.Sprintf("Page %s appears more than once in the database.", dupErr.PageID),
		}
	case errors.Is(err, model.ErrBusy):
		return model.ErrorDetail{Code: "BUSY", Message: "Another operation is still running. Try again when it has finished."}
	case errors.Is(err, model.ErrNotFound):
		return model.ErrorDetail{Code: "NOT_FOUND", Message: "The requested resource was not found."}
	case errors.Is(err, model.ErrInvalidInput):
		return model.ErrorDetail{Code: "INVALID_INPUT", Message: "The request is invalid."}
	case errors.Is(err, model.ErrEmptyDatabase):
		return model.ErrorDetail{Code: "EMPTY_DATABASE", Message: "Database is empty!"}
	case errors.Is(err, model.ErrNoQuestions):
		return model.ErrorDetail{Code: "NO_QUESTIONS", Message: "The language model returned no usable questions."}
	case errors.Is(err, model.ErrTableNotLoaded):
		return model.ErrorDetail{Code: "TABLE_NOT_LOADED", Message: "The word table has not been loaded yet."}
	default:
		return model.ErrorDetail{Code: "INTERNAL_SERVER_ERROR", Message: "An internal server error occurred."}
	}
}

// MapErrorToStatusCode maps application errors to HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrExternalCall):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrBusy), errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrTableNotLoaded):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrEmptyDatabase), errors.Is(err, model.ErrNoQuestions),
		errors.Is(err, model.ErrDuplicatePageID), errors.Is(err, model.ErrMissingRequiredTimestamp),
		errors.Is(err, model.ErrUnsupportedPropertyKind):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithJSON writes payload as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, code int, payload any, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		if logger != nil {
			logger.Error("Error marshaling JSON response", slog.Any("error", err))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":"INTERNAL_SERVER_ERROR","message":"Failed to build the response."}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
