package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmworks/breathcheck/pkg/types"
)

// seedEverything writes one row into each table.
func seedEverything(t *testing.T, s *Store) {
	t.Helper()
	_, err := s.CreateDailyLog(date(2026, 8, 10), 5, 4, 3, "note", date(2026, 8, 10))
	require.NoError(t, err)
	_, err = s.UpsertModuleProgress("module_1", "UNLOCKED", 10, nil)
	require.NoError(t, err)
	_, err = s.SaveModuleData("module_1", `{"k":"v"}`)
	require.NoError(t, err)
	_, err = s.CreateToolEntry(types.ToolThoughtLog, `{}`)
	require.NoError(t, err)
	_, err = s.CreateToolUsage(types.ToolBreathCheck, "")
	require.NoError(t, err)
	_, err = s.CreateInsight("summary", `{}`)
	require.NoError(t, err)
	defaults := types.DefaultSettings()
	_, err = s.SaveUserSettings(&defaults)
	require.NoError(t, err)
	_, err = s.CreateSupportContact("Alex", "", "")
	require.NoError(t, err)
	_, err = s.CreateSupportResource("Crisis line", "988", "")
	require.NoError(t, err)
}

func TestDeleteAllDataClearsEveryTable(t *testing.T) {
	s := setupStore(t)
	seedEverything(t, s)

	require.NoError(t, s.DeleteAllData())

	logs, err := s.ListAllDailyLogs()
	require.NoError(t, err)
	assert.Empty(t, logs)

	progress, err := s.ListModuleProgress()
	require.NoError(t, err)
	assert.Empty(t, progress)

	entries, err := s.ListToolEntries()
	require.NoError(t, err)
	assert.Empty(t, entries)

	settings, err := s.GetUserSettings()
	require.NoError(t, err)
	assert.Nil(t, settings)

	contacts, err := s.ListSupportContacts()
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestResetProgressKeepsTrackingData(t *testing.T) {
	s := setupStore(t)
	seedEverything(t, s)

	require.NoError(t, s.ResetProgress())

	progress, err := s.ListModuleProgress()
	require.NoError(t, err)
	assert.Empty(t, progress)

	data, err := s.ListModuleData()
	require.NoError(t, err)
	assert.Empty(t, data)

	// Everything outside the learning program survives.
	logs, err := s.ListAllDailyLogs()
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	usage, err := s.ListToolUsage()
	require.NoError(t, err)
	assert.Len(t, usage, 1)

	insight, err := s.LatestInsight()
	require.NoError(t, err)
	assert.NotNil(t, insight)
}
