package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_vocab_quiz/internal/model"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func Test_MapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"異常系: busy は 409", model.ErrBusy, http.StatusConflict},
		{"異常系: ラップされた not found は 404", fmt.Errorf("session x: %w", model.ErrNotFound), http.StatusNotFound},
		{"異常系: AppError の invalid input は 400", model.NewAppError("VALIDATION_ERROR", "bad", "words", model.ErrInvalidInput), http.StatusBadRequest},
		{"異常系: 空のデータベースは 422", model.ErrEmptyDatabase, http.StatusUnprocessableEntity},
		{"異常系: 問題なしは 422", model.ErrNoQuestions, http.StatusUnprocessableEntity},
		{"異常系: 外部呼び出しは 502", &model.ExternalCallError{Service: "gemini", Op: "generate content", Err: errors.New("x")}, http.StatusBadGateway},
		{"異常系: Notion の 404 は外部呼び出しとして 502", &model.ExternalCallError{Service: "notion", Op: "update page", StatusCode: 404, Err: fmt.Errorf("object_not_found: %w", model.ErrNotFound)}, http.StatusBadGateway},
		{"異常系: 未対応のプロパティ種別は 422", fmt.Errorf("page p1: %w", &model.UnsupportedPropertyKindError{Property: "Tags", Kind: "multi_select"}), http.StatusUnprocessableEntity},
		{"異常系: created_time なしは 422", &model.MissingRequiredTimestampError{PageID: "p1"}, http.StatusUnprocessableEntity},
		{"異常系: ページ ID の重複は 422", &model.DuplicatePageIDError{PageID: "p1"}, http.StatusUnprocessableEntity},
		{"異常系: テーブル未ロードは 404", model.ErrTableNotLoaded, http.StatusNotFound},
		{"異常系: 不明なエラーは 500", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func Test_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{"異常系: AppError は detail をそのまま返す", model.NewAppError("VALIDATION_ERROR", "Answer is required.", "answer", model.ErrInvalidInput), http.StatusBadRequest, "VALIDATION_ERROR", "answer"},
		{"異常系: busy sentinel", fmt.Errorf("wrap: %w", model.ErrBusy), http.StatusConflict, "BUSY", ""},
		{"異常系: upstream エラー", &model.ExternalCallError{Service: "notion", Op: "query database", StatusCode: 500, Err: errors.New("x")}, http.StatusBadGateway, "UPSTREAM_ERROR", ""},
		{"異常系: Notion の 404 は UPSTREAM_ERROR", &model.ExternalCallError{Service: "notion", Op: "update page", StatusCode: 404, Err: fmt.Errorf("object_not_found: %w", model.ErrNotFound)}, http.StatusBadGateway, "UPSTREAM_ERROR", ""},
		{"異常系: 未対応のプロパティ種別", fmt.Errorf("page p1: %w", &model.UnsupportedPropertyKindError{Property: "Tags", Kind: "multi_select"}), http.StatusUnprocessableEntity, "UNSUPPORTED_PROPERTY_KIND", "Tags"},
		{"異常系: created_time がないページ", &model.MissingRequiredTimestampError{PageID: "p1", Err: errors.New("bad date")}, http.StatusUnprocessableEntity, "MISSING_CREATED_TIME", "created_time"},
		{"異常系: ページ ID の重複", &model.DuplicatePageIDError{PageID: "p1"}, http.StatusUnprocessableEntity, "DUPLICATE_PAGE_ID", ""},
		{"異常系: 内部の詳細は隠す", errors.New("secret stack"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			HandleError(rr, discard, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var body model.APIErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantField, body.Error.Field)
			assert.NotContains(t, rr.Body.String(), "secret stack")
		})
	}
}

func Test_HandleError_NamesPageAndProperty(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg []string
	}{
		{"異常系: プロパティ名と種別", &model.UnsupportedPropertyKindError{Property: "Tags", Kind: "multi_select"}, []string{"Tags", "multi_select"}},
		{"異常系: ページ ID", &model.MissingRequiredTimestampError{PageID: "page-7"}, []string{"page-7"}},
		{"異常系: 重複したページ ID", &model.DuplicatePageIDError{PageID: "page-9"}, []string{"page-9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			HandleError(rr, discard, tt.err)

			var body model.APIErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			for _, want := range tt.wantMsg {
				assert.Contains(t, body.Error.Message, want)
			}
		})
	}
}

func Test_DecodeJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"正常系: 正しい JSON", `{"answer":"apple"}`, false},
		{"異常系: 未知のフィールド", `{"answer":"apple","extra":1}`, true},
		{"異常系: 壊れた JSON", `{"answer":`, true},
		{"異常系: 後続データあり", `{"answer":"apple"}{"answer":"pear"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var req model.SubmitAnswerRequest
			err := DecodeJSONBody(r, &req)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "apple", req.Answer)
		})
	}
}

func Test_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       model.StartSessionRequest
		wantField string
		wantMsg   string
	}{
		{"正常系: 有効なリクエスト", model.StartSessionRequest{Words: 5}, "", ""},
		{"異常系: words がない", model.StartSessionRequest{}, "words", "Number of words is required."},
		{"異常系: words が多すぎる", model.StartSessionRequest{Words: 21}, "words", "Number of words must be at most 20."},
		{"異常系: recent_days が負", model.StartSessionRequest{Words: 1, RecentDays: -1}, "recent_days", "Recent window (days) must be at least 0."},
		{"異常系: 不正な mode", model.StartSessionRequest{Words: 1, Mode: "spelling"}, "mode", "Quiz mode must be one of [generated meaning]."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var appErr *model.AppError
			require.ErrorAs(t, err, &appErr)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}
