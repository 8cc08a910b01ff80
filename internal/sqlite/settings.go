package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/calmworks/breathcheck/pkg/types"
)

const settingsColumns = `id, reminder_time, theme_mode, comfort_mode, ai_enabled, onboarding_completed`

func scanSettings(row rowScanner) (*types.UserSettings, error) {
	var u types.UserSettings
	if err := row.Scan(&u.ID, &u.ReminderTime, &u.ThemeMode, &u.ComfortMode, &u.AIEnabled, &u.OnboardingCompleted); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserSettings returns the settings row, or nil when none has been
// written yet. The table holds one row; the lowest id wins if more exist.
func (s *Store) GetUserSettings() (*types.UserSettings, error) {
	row := s.db.QueryRow(
		`SELECT ` + settingsColumns + ` FROM user_settings ORDER BY id ASC LIMIT 1`,
	)
	u, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting user settings: %w", err)
	}
	return u, nil
}

// SaveUserSettings writes the settings row, updating the existing one or
// inserting the first.
func (s *Store) SaveUserSettings(settings *types.UserSettings) (*types.UserSettings, error) {
	existing, err := s.GetUserSettings()
	if err != nil {
		return nil, err
	}

	if existing == nil {
		res, err := s.db.Exec(
			`INSERT INTO user_settings (reminder_time, theme_mode, comfort_mode, ai_enabled, onboarding_completed) VALUES (?, ?, ?, ?, ?)`,
			settings.ReminderTime, settings.ThemeMode, settings.ComfortMode, settings.AIEnabled, settings.OnboardingCompleted,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting user settings: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading user settings id: %w", err)
		}
		saved := *settings
		saved.ID = id
		return &saved, nil
	}

	_, err = s.db.Exec(
		`UPDATE user_settings SET reminder_time = ?, theme_mode = ?, comfort_mode = ?, ai_enabled = ?, onboarding_completed = ? WHERE id = ?`,
		settings.ReminderTime, settings.ThemeMode, settings.ComfortMode, settings.AIEnabled, settings.OnboardingCompleted, existing.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating user settings: %w", err)
	}
	saved := *settings
	saved.ID = existing.ID
	return &saved, nil
}
