package service

import (
	"fmt"
	"log/slog"

	"github.com/calmworks/breathcheck/internal/sqlite"
	"github.com/calmworks/breathcheck/pkg/types"
)

// Settings manages the singleton preferences row.
type Settings struct {
	store *sqlite.Store
	log   *slog.Logger
}

// NewSettings returns a Settings service over store.
func NewSettings(store *sqlite.Store, logger *slog.Logger) *Settings {
	if logger == nil {
		logger = slog.Default()
	}
	return &Settings{store: store, log: logger}
}

// Current returns the settings row, creating it with defaults on first
// access so callers never see a missing row.
func (s *Settings) Current() (*types.UserSettings, error) {
	row, err := s.store.GetUserSettings()
	if err != nil {
		return nil, err
	}
	if row != nil {
		return row, nil
	}
	defaults := types.DefaultSettings()
	saved, err := s.store.SaveUserSettings(&defaults)
	if err != nil {
		return nil, fmt.Errorf("creating default settings: %w", err)
	}
	return saved, nil
}

// Update loads the current settings, applies the mutation, and persists the
// result. The row ID is preserved so the singleton is updated in place.
func (s *Settings) Update(apply func(*types.UserSettings)) (*types.UserSettings, error) {
	current, err := s.Current()
	if err != nil {
		return nil, err
	}
	next := *current
	apply(&next)
	next.ID = current.ID
	saved, err := s.store.SaveUserSettings(&next)
	if err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	s.log.Info("updated settings")
	return saved, nil
}
