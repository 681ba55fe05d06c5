package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/extrame/xls"

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/model"
	"github.com/mosier/radflow/internal/service"
)

// XLSSource reads a worksheet from a legacy BIFF (.xls) workbook. An empty
// Sheet selects the first worksheet.
type XLSSource struct {
	Path  string
	Sheet string
}

// ReadTable implements service.RecordSource.
func (s *XLSSource) ReadTable(ctx context.Context) (service.Table, error) {
	if err := ctx.Err(); err != nil {
		return service.Table{}, err
	}

	workbook, err := xls.Open(s.Path, "utf-8")
	if err != nil {
		return service.Table{}, fmt.Errorf("failed to open workbook %s: %w", s.Path, err)
	}
	if workbook.NumSheets() == 0 {
		return service.Table{}, fmt.Errorf("workbook has no worksheets: %w", common.ErrWorksheetNotFound)
	}

	sheet := workbook.GetSheet(0)
	if s.Sheet != "" {
		sheet = nil
		for i := 0; i < workbook.NumSheets(); i++ {
			if ws := workbook.GetSheet(i); ws != nil && strings.EqualFold(ws.Name, s.Sheet) {
				sheet = ws
				break
			}
		}
		if sheet == nil {
			return service.Table{}, fmt.Errorf("worksheet %q: %w", s.Sheet, common.ErrWorksheetNotFound)
		}
	}
	if sheet == nil {
		return service.Table{}, fmt.Errorf("workbook has no worksheets: %w", common.ErrWorksheetNotFound)
	}

	var table service.Table
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}

		var cells []string
		for c := 0; c <= row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}

		if table.Headers == nil {
			table.Headers = cells
			continue
		}

		values := make([]model.RawValue, len(cells))
		for j, cell := range cells {
			if strings.TrimSpace(cell) == "" {
				values[j] = model.Empty()
				continue
			}
			values[j] = model.Text(cell)
		}
		table.Rows = append(table.Rows, values)
	}

	if table.Headers == nil {
		return service.Table{}, fmt.Errorf("worksheet %s: %w", sheet.Name, common.ErrEmptyTable)
	}

	return table, nil
}
