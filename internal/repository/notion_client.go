// internal/repository/notion_client.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jomei/notionapi"

	"go_vocab_quiz/internal/config"
	"go_vocab_quiz/internal/model"
)

// QueryResponse is one page of database results.
type QueryResponse struct {
	Results    []model.RawPage
	HasMore    bool
	NextCursor string
}

// NotionClient wraps the two notionapi calls the quiz needs and turns their
// failures into model.ExternalCallError.
type NotionClient struct {
	api *notionapi.Client
}

// NewNotionClient builds a client from cfg. A BaseURL other than the public
// API host redirects every request there.
func NewNotionClient(cfg config.NotionConfig, httpClient *http.Client) *NotionClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if base := strings.TrimRight(cfg.BaseURL, "/"); base != "" && base != config.DefaultNotionBaseURL {
		if u, err := url.Parse(base); err == nil && u.Host != "" {
			redirected := *httpClient
			redirected.Transport = &baseURLTransport{base: u, next: httpClient.Transport}
			httpClient = &redirected
		}
	}
	version := cfg.Version
	if version == "" {
		version = config.DefaultNotionVersion
	}
	return &NotionClient{
		api: notionapi.NewClient(
			notionapi.Token(cfg.APIKey),
			notionapi.WithHTTPClient(httpClient),
			notionapi.WithVersion(version),
		),
	}
}

// QueryDatabase fetches one page of rows starting at cursor.
func (c *NotionClient) QueryDatabase(ctx context.Context, databaseID, cursor string, pageSize int) (*QueryResponse, error) {
	resp, err := c.api.Database.Query(ctx, notionapi.DatabaseID(databaseID), &notionapi.DatabaseQueryRequest{
		StartCursor: notionapi.Cursor(cursor),
		PageSize:    pageSize,
	})
	if err != nil {
		return nil, callError("query database", err)
	}

	out := &QueryResponse{
		Results:    make([]model.RawPage, 0, len(resp.Results)),
		HasMore:    resp.HasMore,
		NextCursor: string(resp.NextCursor),
	}
	for _, p := range resp.Results {
		out.Results = append(out.Results, model.RawPage{ID: string(p.ID), Properties: p.Properties})
	}
	return out, nil
}

// UpdatePageNumber sets one numeric property of a page.
func (c *NotionClient) UpdatePageNumber(ctx context.Context, pageID, field string, value int) error {
	_, err := c.api.Page.Update(ctx, notionapi.PageID(pageID), &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{
			field: &notionapi.NumberProperty{Type: "number", Number: float64(value)},
		},
	})
	if err != nil {
		return callError("update page", err)
	}
	return nil
}

// callError keeps the Notion status and error code. A 404 also matches
// model.ErrNotFound.
func callError(op string, err error) error {
	callErr := &model.ExternalCallError{Service: "notion", Op: op, Err: err}

	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		callErr.StatusCode = apiErr.Status
		callErr.Err = fmt.Errorf("%s: %w", apiErr.Code, err)
		if apiErr.Status == http.StatusNotFound {
			callErr.Err = fmt.Errorf("%s: %w: %w", apiErr.Code, err, model.ErrNotFound)
		}
	}
	return callErr
}

// baseURLTransport sends requests to another scheme and host, keeping the
// path. Used for a proxy or a local stand-in of the Notion API.
type baseURLTransport struct {
	base *url.URL
	next http.RoundTripper
}

func (t *baseURLTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.next
	if next == nil {
		next = http.DefaultTransport
	}
	r := req.Clone(req.Context())
	r.URL.Scheme = t.base.Scheme
	r.URL.Host = t.base.Host
	r.Host = t.base.Host
	return next.RoundTrip(r)
}
