package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmworks/breathcheck/pkg/types"
)

func TestGetUserSettingsMissing(t *testing.T) {
	s := setupStore(t)

	u, err := s.GetUserSettings()
	require.NoError(t, err)
	assert.Nil(t, u, "defaults are the service's job, not the store's")
}

func TestSaveUserSettingsSingleton(t *testing.T) {
	s := setupStore(t)

	defaults := types.DefaultSettings()
	first, err := s.SaveUserSettings(&defaults)
	require.NoError(t, err)
	assert.Equal(t, "Morning", first.ReminderTime)
	assert.True(t, first.AIEnabled)

	changed := *first
	changed.ThemeMode = "dark"
	changed.ComfortMode = true
	second, err := s.SaveUserSettings(&changed)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "saves update the single row")

	got, err := s.GetUserSettings()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "dark", got.ThemeMode)
	assert.True(t, got.ComfortMode)
	assert.False(t, got.OnboardingCompleted)
}
