package wordtable

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jomei/notionapi"

	"go_vocab_quiz/internal/model"
)

// Build assembles a WordTable from raw pages. Requested fields missing from a
// page become empty text; a field of an unsupported kind or a page without a
// created_time aborts the build.
func Build(pages []model.RawPage, fields []string) (*model.WordTable, error) {
	columns := make([]string, 0, len(fields)+2)
	columns = append(columns, model.ColumnPageID)
	columns = append(columns, fields...)
	columns = append(columns, model.ColumnCreatedTime)

	table := model.NewWordTable(columns)
	seen := make(map[string]struct{}, len(pages))

	for _, page := range pages {
		if _, dup := seen[page.ID]; dup {
			return nil, &model.DuplicatePageIDError{PageID: page.ID}
		}
		seen[page.ID] = struct{}{}

		entry, err := buildEntry(page, fields)
		if err != nil {
			return nil, err
		}
		table.Entries = append(table.Entries, entry)
	}
	return table, nil
}

func buildEntry(page model.RawPage, fields []string) (model.WordEntry, error) {
	entry := model.WordEntry{PageID: page.ID, Multiplicity: 1}

	for _, name := range fields {
		prop, ok := page.Properties[name]
		if !ok {
			setField(&entry, name, model.PropertyValue{Kind: model.KindRichText})
			continue
		}
		v, err := Decode(name, prop)
		if err != nil {
			return model.WordEntry{}, fmt.Errorf("page %s: %w", page.ID, err)
		}
		setField(&entry, name, v)
	}

	created, err := CreatedTime(page)
	if err != nil {
		return model.WordEntry{}, err
	}
	entry.CreatedTime = created
	return entry, nil
}

func setField(entry *model.WordEntry, name string, v model.PropertyValue) {
	switch name {
	case model.ColumnWord:
		entry.Word = v.Text
	case model.ColumnMeaning:
		entry.Meaning = v.Text
	case model.ColumnMultiplicity:
		// an absent column keeps the default weight
		if v.Kind == model.KindNumber {
			entry.Multiplicity = v.Number
		}
	default:
		if entry.Fields == nil {
			entry.Fields = make(map[string]model.PropertyValue)
		}
		entry.Fields[name] = v
	}
}

// CreatedTime reads the well-known created_time property of a page. A date
// property, Notion's own created_time property and a text column holding a
// date are accepted.
func CreatedTime(page model.RawPage) (time.Time, error) {
	missing := &model.MissingRequiredTimestampError{PageID: page.ID}

	switch p := page.Properties[model.ColumnCreatedTime].(type) {
	case *notionapi.CreatedTimeProperty:
		if p.CreatedTime.IsZero() {
			return time.Time{}, missing
		}
		return p.CreatedTime, nil
	case *notionapi.DateProperty:
		if p.Date == nil || p.Date.Start == nil {
			return time.Time{}, missing
		}
		return time.Time(*p.Date.Start), nil
	case *notionapi.RichTextProperty:
		return parseDateText(page.ID, decodeRichText(p.RichText))
	case *notionapi.TitleProperty:
		return parseDateText(page.ID, decodeTitle(p.Title))
	default:
		return time.Time{}, missing
	}
}

func parseDateText(pageID, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, &model.MissingRequiredTimestampError{PageID: pageID}
	}
	t, err := dateparse.ParseIn(raw, time.Local)
	if err != nil {
		return time.Time{}, &model.MissingRequiredTimestampError{PageID: pageID, Err: err}
	}
	return t, nil
}
