// Package export writes the word table to a spreadsheet.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"go_vocab_quiz/internal/model"
)

// SheetName is the name of the worksheet holding the words.
const SheetName = "Words"

// WriteXLSX writes table as a single worksheet with one header row followed
// by one row per entry, in table order.
func WriteXLSX(w io.Writer, table *model.WordTable) error {
	f, err := build(table)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	return nil
}

// SaveXLSX writes table to path.
func SaveXLSX(path string, table *model.WordTable) error {
	f, err := build(table)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export.SaveXLSX: %w", err)
	}
	return nil
}

func build(table *model.WordTable) (*excelize.File, error) {
	if table == nil {
		return nil, fmt.Errorf("export: %w", model.ErrTableNotLoaded)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: rename sheet: %w", err)
	}

	header := make([]any, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("export: write header: %w", err)
	}

	for i, e := range table.Entries {
		row := make([]any, len(table.Columns))
		for j, c := range table.Columns {
			row[j] = cellValue(e, c)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("export: row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("export: write row %d: %w", i+2, err)
		}
	}

	if len(table.Columns) > 0 {
		if err := styleHeader(f, len(table.Columns)); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func styleHeader(f *excelize.File, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	return f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func cellValue(e model.WordEntry, column string) any {
	switch column {
	case model.ColumnPageID:
		return e.PageID
	case model.ColumnWord:
		return e.Word
	case model.ColumnMeaning:
		return e.Meaning
	case model.ColumnMultiplicity:
		return e.Multiplicity
	case model.ColumnCreatedTime:
		if e.CreatedTime.IsZero() {
			return ""
		}
		return e.CreatedTime.Format(time.RFC3339)
	default:
		if v, ok := e.Fields[column]; ok {
			return v.String()
		}
		return ""
	}
}
