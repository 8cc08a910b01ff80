package sqlite

import (
	"fmt"

	"github.com/calmworks/breathcheck/pkg/types"
)

// ExportBundle is one ascending snapshot of every table. Encrypted fields
// still hold their at-rest values; the caller decrypts before writing
// anything user-facing.
type ExportBundle struct {
	DailyLogs        []*types.DailyLog
	ModuleProgress   []*types.ModuleProgress
	ModuleData       []*types.ModuleData
	ToolEntries      []*types.ToolEntry
	ToolUsage        []*types.ToolUsage
	Settings         []*types.UserSettings
	Insights         []*types.Insight
	SupportContacts  []*types.SupportContact
	SupportResources []*types.SupportResource
}

// ExportData collects every table for export. Lists come back oldest
// first so the files read chronologically.
func (s *Store) ExportData() (*ExportBundle, error) {
	bundle := &ExportBundle{}
	var err error

	if bundle.DailyLogs, err = s.ListAllDailyLogs(); err != nil {
		return nil, err
	}
	if bundle.ModuleProgress, err = s.ListModuleProgress(); err != nil {
		return nil, err
	}
	if bundle.ModuleData, err = s.ListModuleData(); err != nil {
		return nil, err
	}
	if bundle.ToolEntries, err = s.ListToolEntries(); err != nil {
		return nil, err
	}
	if bundle.ToolUsage, err = s.ListToolUsage(); err != nil {
		return nil, err
	}
	if bundle.Settings, err = s.listAllUserSettings(); err != nil {
		return nil, err
	}
	if bundle.Insights, err = s.ListAllInsights(); err != nil {
		return nil, err
	}
	if bundle.SupportContacts, err = s.ListAllSupportContacts(); err != nil {
		return nil, err
	}
	if bundle.SupportResources, err = s.ListAllSupportResources(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// listAllUserSettings returns every settings row by id. The table should
// hold one row, but exports dump whatever is there.
func (s *Store) listAllUserSettings() ([]*types.UserSettings, error) {
	rows, err := s.db.Query(
		`SELECT ` + settingsColumns + ` FROM user_settings ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing user settings: %w", err)
	}
	defer rows.Close()

	var list []*types.UserSettings
	for rows.Next() {
		u, err := scanSettings(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user settings: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}
