package roster

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/model"
)

// XLSXSource loads the roster from an Excel workbook. An empty Sheet selects
// the first worksheet.
type XLSXSource struct {
	Path  string
	Sheet string
}

// Load implements service.RosterSource.
func (s *XLSXSource) Load(ctx context.Context) ([]model.RosterEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, common.NewRosterLoadError(s.Path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.NewRosterLoadError(s.Path, fmt.Errorf("workbook has no worksheets"))
	}

	sheet := sheets[0]
	if s.Sheet != "" {
		sheet = ""
		for _, name := range sheets {
			if strings.EqualFold(name, s.Sheet) {
				sheet = name
				break
			}
		}
		if sheet == "" {
			return nil, common.NewRosterLoadError(s.Path, fmt.Errorf("worksheet %q not found", s.Sheet))
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, common.NewRosterLoadError(s.Path, err)
	}
	if len(rows) == 0 {
		return nil, common.NewRosterLoadError(s.Path, fmt.Errorf("worksheet %s is empty", sheet))
	}

	entries, err := entriesFromRows(rows[0], rows[1:])
	if err != nil {
		return nil, common.NewRosterLoadError(s.Path, err)
	}
	return entries, nil
}
