package store

import (
	"context"
	"fmt"
)

// ReadAll returns every stored row in insertion order, rebuilt into the
// positional ragged shape the sheet uses: trailing empty columns dropped,
// never fewer than the three mandatory cells.
func (s *Store) ReadAll(ctx context.Context) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, name, event, location, distance, early_reason, late_reason, absent_reason
		FROM attendance
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query attendance: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		row := make([]string, 8)
		if err := rows.Scan(&row[0], &row[1], &row[2], &row[3], &row[4], &row[5], &row[6], &row[7]); err != nil {
			return nil, fmt.Errorf("scan attendance row: %w", err)
		}
		for len(row) > 3 && row[len(row)-1] == "" {
			row = row[:len(row)-1]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance rows: %w", err)
	}

	// Return empty slice instead of nil
	if out == nil {
		out = [][]string{}
	}
	return out, nil
}
