package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/model"
	"github.com/mosier/radflow/internal/service"
)

// XLSXSource reads a worksheet from a modern Excel workbook. An empty Sheet
// selects the first worksheet.
type XLSXSource struct {
	Path  string
	Sheet string
}

// ReadTable implements service.RecordSource.
func (s *XLSXSource) ReadTable(ctx context.Context) (service.Table, error) {
	if err := ctx.Err(); err != nil {
		return service.Table{}, err
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return service.Table{}, fmt.Errorf("failed to open workbook %s: %w", s.Path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheet, err := pickSheet(f.GetSheetList(), s.Sheet)
	if err != nil {
		return service.Table{}, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return service.Table{}, fmt.Errorf("failed to read worksheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return service.Table{}, fmt.Errorf("worksheet %s: %w", sheet, common.ErrEmptyTable)
	}

	table := service.Table{Headers: rows[0]}
	for _, row := range rows[1:] {
		cells := make([]model.RawValue, len(row))
		for i, cell := range row {
			if strings.TrimSpace(cell) == "" {
				cells[i] = model.Empty()
				continue
			}
			cells[i] = model.Text(cell)
		}
		table.Rows = append(table.Rows, cells)
	}

	return table, nil
}

// pickSheet selects the named worksheet, or the first one when name is empty.
// Matching is case-insensitive to tolerate hand-renamed tabs.
func pickSheet(sheets []string, name string) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no worksheets: %w", common.ErrWorksheetNotFound)
	}
	if name == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if strings.EqualFold(s, name) {
			return s, nil
		}
	}
	return "", fmt.Errorf("worksheet %q: %w", name, common.ErrWorksheetNotFound)
}
