package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// sheetWriter пишет строки на лист книги последовательно
type sheetWriter struct {
	file  *excelize.File
	sheet string
	row   int
}

// newSheet создает лист; первый лист книги переименовывается из Sheet1
func newSheet(file *excelize.File, name string, first bool) (*sheetWriter, error) {
	if len(name) > 31 {
		name = name[:31]
	}

	if first {
		if err := file.SetSheetName("Sheet1", name); err != nil {
			return nil, fmt.Errorf("rename sheet %s: %w", name, err)
		}
	} else if _, err := file.NewSheet(name); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", name, err)
	}

	return &sheetWriter{file: file, sheet: name, row: 1}, nil
}

func (w *sheetWriter) header(columns []string) error {
	if err := w.write(toRow(columns)); err != nil {
		return err
	}

	style, err := w.file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(w.sheet, "A1", end, style)
}

func (w *sheetWriter) write(values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, w.row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(w.sheet, cell, v); err != nil {
			return err
		}
	}
	w.row++
	return nil
}

func toRow(columns []string) []interface{} {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	return row
}
