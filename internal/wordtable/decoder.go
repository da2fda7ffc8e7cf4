// Package wordtable turns raw Notion pages into the in-memory word table.
package wordtable

import (
	"math"
	"strings"

	"github.com/jomei/notionapi"

	"go_vocab_quiz/internal/model"
)

// rich text run types that carry content
const (
	runText     = "text"
	runEquation = "equation"
)

// Decode converts one property into a scalar value. name is only used for
// error reporting.
func Decode(name string, p notionapi.Property) (model.PropertyValue, error) {
	switch p := p.(type) {
	case *notionapi.TitleProperty:
		return model.PropertyValue{Kind: model.KindTitle, Text: decodeTitle(p.Title)}, nil
	case *notionapi.RichTextProperty:
		return model.PropertyValue{Kind: model.KindRichText, Text: decodeRichText(p.RichText)}, nil
	case *notionapi.NumberProperty:
		return model.PropertyValue{Kind: model.KindNumber, Number: decodeNumber(p.Number)}, nil
	case nil:
		return model.PropertyValue{}, &model.UnsupportedPropertyKindError{Property: name, Kind: "null"}
	default:
		return model.PropertyValue{}, &model.UnsupportedPropertyKindError{Property: name, Kind: string(p.GetType())}
	}
}

func decodeTitle(runs []notionapi.RichText) string {
	if len(runs) == 0 || runs[0].Text == nil {
		return ""
	}
	return runs[0].Text.Content
}

// decodeRichText joins text and equation runs with a single space. Mentions
// and other run types are left out.
func decodeRichText(runs []notionapi.RichText) string {
	parts := make([]string, 0, len(runs))
	for _, r := range runs {
		switch string(r.Type) {
		case runText:
			if r.Text != nil {
				parts = append(parts, r.Text.Content)
			}
		case runEquation:
			if r.Equation != nil {
				parts = append(parts, r.Equation.Expression)
			}
		}
	}
	return strings.Join(parts, " ")
}

// decodeNumber returns the sampling weight for a stored multiplicity. A word
// never practised (null, read as 0) weighs 1.
func decodeNumber(v float64) int {
	n := int(math.Floor(v)) + 1
	if n < 1 {
		return 1
	}
	return n
}
