package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/calmworks/breathcheck/pkg/types"
)

const moduleProgressColumns = `id, module_id, status, progress_percent, completed_at`

// scanModuleProgress hydrates one module_progress row. completed_at is
// nullable and stays nil for modules never completed.
func scanModuleProgress(row rowScanner) (*types.ModuleProgress, error) {
	var (
		p           types.ModuleProgress
		completedAt sql.NullString
	)
	if err := row.Scan(&p.ID, &p.ModuleID, &p.Status, &p.ProgressPercent, &completedAt); err != nil {
		return nil, err
	}
	if completedAt.Valid && completedAt.String != "" {
		t, err := parseTime(completedAt.String)
		if err != nil {
			return nil, err
		}
		p.CompletedAt = &t
	}
	return &p, nil
}

// GetModuleProgress returns the progress row for a module, or nil when the
// module has never been touched.
func (s *Store) GetModuleProgress(moduleID string) (*types.ModuleProgress, error) {
	row := s.db.QueryRow(
		`SELECT `+moduleProgressColumns+` FROM module_progress WHERE module_id = ?`,
		moduleID,
	)
	p, err := scanModuleProgress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting progress for %s: %w", moduleID, err)
	}
	return p, nil
}

// ListModuleProgress returns all progress rows ordered by module id.
func (s *Store) ListModuleProgress() ([]*types.ModuleProgress, error) {
	rows, err := s.db.Query(
		`SELECT ` + moduleProgressColumns + ` FROM module_progress ORDER BY module_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing module progress: %w", err)
	}
	defer rows.Close()

	var list []*types.ModuleProgress
	for rows.Next() {
		p, err := scanModuleProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning module progress: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpsertModuleProgress creates or updates the progress row for a module.
// completed_at is written only when non-nil; an upsert never clears a
// completion date that was already recorded.
func (s *Store) UpsertModuleProgress(moduleID, status string, progressPercent int, completedAt *time.Time) (*types.ModuleProgress, error) {
	existing, err := s.GetModuleProgress(moduleID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		var completed any
		if completedAt != nil {
			completed = formatTime(*completedAt)
		}
		_, err := s.db.Exec(
			`INSERT INTO module_progress (module_id, status, progress_percent, completed_at) VALUES (?, ?, ?, ?)`,
			moduleID, status, progressPercent, completed,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting progress for %s: %w", moduleID, err)
		}
		return s.GetModuleProgress(moduleID)
	}

	if completedAt != nil {
		_, err = s.db.Exec(
			`UPDATE module_progress SET status = ?, progress_percent = ?, completed_at = ? WHERE id = ?`,
			status, progressPercent, formatTime(*completedAt), existing.ID,
		)
	} else {
		_, err = s.db.Exec(
			`UPDATE module_progress SET status = ?, progress_percent = ? WHERE id = ?`,
			status, progressPercent, existing.ID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("updating progress for %s: %w", moduleID, err)
	}
	return s.GetModuleProgress(moduleID)
}
