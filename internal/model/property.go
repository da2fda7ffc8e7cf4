// internal/model/property.go
package model

import (
	"strconv"

	"github.com/jomei/notionapi"
)

// PropertyKind is the closed set of Notion property kinds the word table
// understands.
type PropertyKind int

const (
	KindUnsupported PropertyKind = iota
	KindTitle                    // short text
	KindRichText                 // rich text
	KindNumber                   // numeric
)

func (k PropertyKind) String() string {
	switch k {
	case KindTitle:
		return "title"
	case KindRichText:
		return "rich_text"
	case KindNumber:
		return "number"
	default:
		return "unsupported"
	}
}

// RawPage is one row of the Notion database. Properties keep the typed
// notionapi variants (*notionapi.TitleProperty, *notionapi.NumberProperty, ...).
type RawPage struct {
	ID         string
	Properties notionapi.Properties
}

// PropertyValue is a decoded scalar. Text is set for text kinds, Number for
// numeric ones.
type PropertyValue struct {
	Kind   PropertyKind
	Text   string
	Number int
}

func (v PropertyValue) String() string {
	if v.Kind == KindNumber {
		return strconv.Itoa(v.Number)
	}
	return v.Text
}
