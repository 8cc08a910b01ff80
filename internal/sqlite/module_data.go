package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/calmworks/breathcheck/pkg/types"
)

const moduleDataColumns = `id, module_id, data_json, created_at, updated_at`

func scanModuleData(row rowScanner) (*types.ModuleData, error) {
	var (
		d         types.ModuleData
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&d.ID, &d.ModuleID, &d.Data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetModuleData returns the saved blob for a module, or nil when the module
// has no saved data.
func (s *Store) GetModuleData(moduleID string) (*types.ModuleData, error) {
	row := s.db.QueryRow(
		`SELECT `+moduleDataColumns+` FROM user_module_data WHERE module_id = ?`,
		moduleID,
	)
	d, err := scanModuleData(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting module data for %s: %w", moduleID, err)
	}
	return d, nil
}

// ListModuleData returns all saved module blobs ordered by module id.
func (s *Store) ListModuleData() ([]*types.ModuleData, error) {
	rows, err := s.db.Query(
		`SELECT ` + moduleDataColumns + ` FROM user_module_data ORDER BY module_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing module data: %w", err)
	}
	defer rows.Close()

	var list []*types.ModuleData
	for rows.Next() {
		d, err := scanModuleData(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning module data: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// SaveModuleData stores the full blob for a module, replacing any previous
// value. Merging partial updates into the blob is the service's job.
func (s *Store) SaveModuleData(moduleID, dataJSON string) (*types.ModuleData, error) {
	existing, err := s.GetModuleData(moduleID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if existing == nil {
		_, err := s.db.Exec(
			`INSERT INTO user_module_data (module_id, data_json, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			moduleID, dataJSON, formatTime(now), formatTime(now),
		)
		if err != nil {
			return nil, fmt.Errorf("inserting module data for %s: %w", moduleID, err)
		}
		return s.GetModuleData(moduleID)
	}

	_, err = s.db.Exec(
		`UPDATE user_module_data SET data_json = ?, updated_at = ? WHERE id = ?`,
		dataJSON, formatTime(now), existing.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating module data for %s: %w", moduleID, err)
	}
	return s.GetModuleData(moduleID)
}
