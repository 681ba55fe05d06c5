package roster

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/mosier/radflow/internal/common"
	"github.com/mosier/radflow/internal/model"
)

// SQLiteSource loads the roster from a SQLite reference database. The table
// must expose person_name, employment_type, and primary_subspecialty columns.
// The database is opened read-only: the roster is reference data and is never
// mutated by the pipeline.
type SQLiteSource struct {
	Path  string
	Table string
}

// Load implements service.RosterSource.
func (s *SQLiteSource) Load(ctx context.Context) ([]model.RosterEntry, error) {
	table := s.Table
	if table == "" {
		table = "roster"
	}
	if !validTableName(table) {
		return nil, common.NewRosterLoadError(s.Path, fmt.Errorf("invalid table name %q", table))
	}

	db, err := sql.Open("sqlite3", "file:"+s.Path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, common.NewRosterLoadError(s.Path, fmt.Errorf("failed to open database: %w", err))
	}
	defer func() {
		_ = db.Close()
	}()

	db.SetMaxOpenConns(1) // SQLite doesn't benefit from multiple connections

	if err := db.PingContext(ctx); err != nil {
		return nil, common.NewRosterLoadError(s.Path, fmt.Errorf("failed to ping database: %w", err))
	}

	query := fmt.Sprintf(
		"SELECT person_name, COALESCE(employment_type, ''), COALESCE(primary_subspecialty, '') FROM %s",
		table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, common.NewRosterLoadError(s.Path, fmt.Errorf("failed to query %s: %w", table, err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []model.RosterEntry
	for rows.Next() {
		var e model.RosterEntry
		if err := rows.Scan(&e.Name, &e.EmploymentType, &e.Subspecialty); err != nil {
			return nil, common.NewRosterLoadError(s.Path, fmt.Errorf("failed to scan row: %w", err))
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewRosterLoadError(s.Path, err)
	}

	return entries, nil
}

// validTableName rejects anything that cannot be safely interpolated into the
// query.
func validTableName(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return name != ""
}
