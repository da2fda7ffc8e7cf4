//go:generate mockery --name WordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_vocab_quiz/internal/middleware"
	"go_vocab_quiz/internal/model"
)

// WordRepository is the document store holding the vocabulary.
type WordRepository interface {
	FetchAll(ctx context.Context) ([]model.RawPage, error)
	UpdateMultiplicity(ctx context.Context, pageID string, value int) error
}

// notionAPI is the part of NotionClient the repository uses.
type notionAPI interface {
	QueryDatabase(ctx context.Context, databaseID, cursor string, pageSize int) (*QueryResponse, error)
	UpdatePageNumber(ctx context.Context, pageID, field string, value int) error
}

type notionWordRepository struct {
	client            notionAPI
	databaseID        string
	pageSize          int
	multiplicityField string
}

func NewNotionWordRepository(client *NotionClient, databaseID string, pageSize int, multiplicityField string) WordRepository {
	if multiplicityField == "" {
		multiplicityField = model.ColumnMultiplicity
	}
	return &notionWordRepository{
		client:            client,
		databaseID:        databaseID,
		pageSize:          pageSize,
		multiplicityField: multiplicityField,
	}
}

// FetchAll reads the whole database page by page until has_more is false or
// no cursor is returned.
func (r *notionWordRepository) FetchAll(ctx context.Context) ([]model.RawPage, error) {
	logger := middleware.GetLogger(ctx).With("database_id", r.databaseID)

	var pages []model.RawPage
	cursor := ""
	for batch := 1; ; batch++ {
		resp, err := r.client.QueryDatabase(ctx, r.databaseID, cursor, r.pageSize)
		if err != nil {
			logger.Error("Error querying Notion database", "error", err, "batch", batch)
			return nil, fmt.Errorf("notionWordRepository.FetchAll: %w", err)
		}
		pages = append(pages, resp.Results...)
		logger.Debug("Fetched database page", "batch", batch, "rows", len(resp.Results), "has_more", resp.HasMore)

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}
	r.normalize(pages)
	return pages, nil
}

// normalize renames a custom multiplicity column to the canonical name so the
// table builder sees one schema.
func (r *notionWordRepository) normalize(pages []model.RawPage) {
	if r.multiplicityField == "" || r.multiplicityField == model.ColumnMultiplicity {
		return
	}
	for i := range pages {
		if p, ok := pages[i].Properties[r.multiplicityField]; ok {
			pages[i].Properties[model.ColumnMultiplicity] = p
			delete(pages[i].Properties, r.multiplicityField)
		}
	}
}

func (r *notionWordRepository) UpdateMultiplicity(ctx context.Context, pageID string, value int) error {
	if err := r.client.UpdatePageNumber(ctx, pageID, r.multiplicityField, value); err != nil {
		return fmt.Errorf("notionWordRepository.UpdateMultiplicity: %w", err)
	}
	return nil
}
