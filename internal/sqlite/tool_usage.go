package sqlite

import (
	"fmt"

	"github.com/calmworks/breathcheck/pkg/types"
)

const toolUsageColumns = `id, tool_name, used_at, metadata_json`

func scanToolUsage(row rowScanner) (*types.ToolUsage, error) {
	var (
		u      types.ToolUsage
		usedAt string
	)
	if err := row.Scan(&u.ID, &u.ToolName, &usedAt, &u.Metadata); err != nil {
		return nil, err
	}
	var err error
	if u.UsedAt, err = parseTime(usedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateToolUsage appends one usage event. The table is append-only; usage
// history is never edited.
func (s *Store) CreateToolUsage(toolName, metadataJSON string) (*types.ToolUsage, error) {
	now := s.now()
	res, err := s.db.Exec(
		`INSERT INTO tool_usage (tool_name, used_at, metadata_json) VALUES (?, ?, ?)`,
		toolName, formatTime(now), metadataJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting tool usage: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading tool usage id: %w", err)
	}
	return &types.ToolUsage{ID: id, ToolName: toolName, Metadata: metadataJSON, UsedAt: now}, nil
}

// ListToolUsage returns every usage event, oldest first.
func (s *Store) ListToolUsage() ([]*types.ToolUsage, error) {
	rows, err := s.db.Query(
		`SELECT ` + toolUsageColumns + ` FROM tool_usage ORDER BY used_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tool usage: %w", err)
	}
	defer rows.Close()

	var list []*types.ToolUsage
	for rows.Next() {
		u, err := scanToolUsage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tool usage: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
