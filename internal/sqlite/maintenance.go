package sqlite

import (
	"fmt"
)

// DeleteAllData clears every table in one transaction. Either the whole
// wipe lands or none of it does.
func (s *Store) DeleteAllData() error {
	tables := []string{
		"daily_logs",
		"module_progress",
		"insight_cache",
		"user_module_data",
		"tool_entries",
		"tool_usage",
		"user_settings",
		"support_contacts",
		"support_resources",
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning wipe transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range tables {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing wipe: %w", err)
	}

	s.log.Info("deleted all local data")
	return nil
}

// ResetProgress clears module progress and saved module data, leaving
// check-ins, tools, insights, settings, and support entries untouched.
func (s *Store) ResetProgress() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning reset transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"module_progress", "user_module_data"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reset: %w", err)
	}

	s.log.Info("reset module progress and learning data")
	return nil
}
