package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go_vocab_quiz/internal/model"
)

const maxBodyBytes = 1 << 20

// DecodeJSONBody decodes the request body into dst. Unknown fields and
// trailing data are rejected.
func DecodeJSONBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return model.ErrInvalidInput
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode body: %v: %w", err, model.ErrInvalidInput)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode body: unexpected data after JSON object: %w", model.ErrInvalidInput)
	}
	return nil
}
