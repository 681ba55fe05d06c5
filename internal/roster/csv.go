package roster

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/model"
)

// CSVSource loads the roster from a comma-separated reference file.
type CSVSource struct {
	Path string
}

// Load implements service.RosterSource.
func (s *CSVSource) Load(ctx context.Context) ([]model.RosterEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, common.NewRosterLoadError(s.Path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	entries, err := parseCSV(f)
	if err != nil {
		return nil, common.NewRosterLoadError(s.Path, err)
	}
	return entries, nil
}

func parseCSV(r io.Reader) ([]model.RosterEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reference file is empty")
	}

	return entriesFromRows(rows[0], rows[1:])
}
