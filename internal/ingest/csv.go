package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/model"
	"github.com/mosier/radflow/internal/service"
)

// CSVSource reads a comma-separated export of the productivity report.
type CSVSource struct {
	Path string
}

// ReadTable implements service.RecordSource.
func (s *CSVSource) ReadTable(ctx context.Context) (service.Table, error) {
	if err := ctx.Err(); err != nil {
		return service.Table{}, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return service.Table{}, fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	rows, err := reader.ReadAll()
	if err != nil {
		return service.Table{}, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}
	if len(rows) == 0 {
		return service.Table{}, fmt.Errorf("%s: %w", s.Path, common.ErrEmptyTable)
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
