// internal/model/word.go
package model

import "time"

// Well-known column names of the vocabulary database.
const (
	ColumnPageID       = "page_id"
	ColumnWord         = "Word"
	ColumnMeaning      = "Meaning"
	ColumnMultiplicity = "Multiplicity"
	ColumnCreatedTime  = "created_time"
)

// DefaultColumns are the fields requested from every page on load.
var DefaultColumns = []string{ColumnWord, ColumnMeaning, ColumnMultiplicity}

// SampleColumns is the projection returned by the sampler.
var SampleColumns = []string{ColumnPageID, ColumnWord, ColumnMeaning, ColumnMultiplicity}

// WordEntry is one vocabulary item.
type WordEntry struct {
	PageID       string    `json:"page_id"`
	Word         string    `json:"word"`
	Meaning      string    `json:"meaning"`
	Multiplicity int       `json:"multiplicity"` // inverse mastery, always >= 1
	CreatedTime  time.Time `json:"created_time,omitempty"`

	// Fields holds requested columns other than the well-known ones.
	Fields map[string]PropertyValue `json:"-"`
}

// WordTable is the in-memory word list. It is rebuilt on every load.
type WordTable struct {
	Columns []string
	Entries []WordEntry
}

func NewWordTable(columns []string) *WordTable {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &WordTable{Columns: cols, Entries: []WordEntry{}}
}

func (t *WordTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

// Find returns the entry with the given page id.
func (t *WordTable) Find(pageID string) (*WordEntry, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Entries {
		if t.Entries[i].PageID == pageID {
			return &t.Entries[i], true
		}
	}
	return nil, false
}

// TableSummary is the API view of the loaded table.
type TableSummary struct {
	Size     int       `json:"size"`
	Columns  []string  `json:"columns"`
	LoadedAt time.Time `json:"loaded_at"`
}
