package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"go_vocab_quiz/internal/model"
)

func testTable() *model.WordTable {
	table := model.NewWordTable([]string{"page_id", "Word", "Meaning", "Multiplicity", "Note", "created_time"})
	table.Entries = append(table.Entries,
		model.WordEntry{
			PageID: "p1", Word: "apple", Meaning: "사과", Multiplicity: 3,
			CreatedTime: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			Fields:      map[string]model.PropertyValue{"Note": {Kind: model.KindRichText, Text: "fruit"}},
		},
		model.WordEntry{PageID: "p2", Word: "pear", Meaning: "배", Multiplicity: 1},
	)
	return table
}

func Test_WriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"page_id", "Word", "Meaning", "Multiplicity", "Note", "created_time"}, rows[0])
	assert.Equal(t, []string{"p1", "apple", "사과", "3", "fruit", "2025-04-01T00:00:00Z"}, rows[1])
	// GetRows trims trailing empty cells
	assert.Equal(t, []string{"p2", "pear", "배", "1"}, rows[2])
}

func Test_SaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.xlsx")
	require.NoError(t, SaveXLSX(path, testTable()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetName}, f.GetSheetList())
}

func Test_WriteXLSX_EmptyAndNil(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, model.NewWordTable(model.SampleColumns)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	err = WriteXLSX(&bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, model.ErrTableNotLoaded)
}
