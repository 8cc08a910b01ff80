package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/calmworks/breathcheck/pkg/types"
)

const toolEntryColumns = `id, tool_name, data_json, created_at`

func scanToolEntry(row rowScanner) (*types.ToolEntry, error) {
	var (
		e         types.ToolEntry
		createdAt string
	)
	if err := row.Scan(&e.ID, &e.ToolName, &e.Data, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateToolEntry appends a saved tool result.
func (s *Store) CreateToolEntry(toolName, dataJSON string) (*types.ToolEntry, error) {
	now := s.now()
	res, err := s.db.Exec(
		`INSERT INTO tool_entries (tool_name, data_json, created_at) VALUES (?, ?, ?)`,
		toolName, dataJSON, formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting tool entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading tool entry id: %w", err)
	}
	return &types.ToolEntry{ID: id, ToolName: toolName, Data: dataJSON, CreatedAt: now}, nil
}

// UpdateToolEntry replaces the data blob of an existing entry. Returns
// ErrNotFound when the id does not exist; updating a missing entry is a
// caller bug, not an ordinary absence.
func (s *Store) UpdateToolEntry(id int64, dataJSON string) (*types.ToolEntry, error) {
	res, err := s.db.Exec(
		`UPDATE tool_entries SET data_json = ? WHERE id = ?`,
		dataJSON, id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating tool entry %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking tool entry update: %w", err)
	}
	if n == 0 {
		return nil, types.ErrNotFound
	}

	row := s.db.QueryRow(
		`SELECT `+toolEntryColumns+` FROM tool_entries WHERE id = ?`,
		id,
	)
	e, err := scanToolEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting tool entry %d: %w", id, err)
	}
	return e, nil
}

// ListToolEntries returns every saved tool result, oldest first.
func (s *Store) ListToolEntries() ([]*types.ToolEntry, error) {
	rows, err := s.db.Query(
		`SELECT ` + toolEntryColumns + ` FROM tool_entries ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tool entries: %w", err)
	}
	defer rows.Close()

	var list []*types.ToolEntry
	for rows.Next() {
		e, err := scanToolEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tool entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
