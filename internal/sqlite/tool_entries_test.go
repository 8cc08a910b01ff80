package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmworks/breathcheck/pkg/types"
)

func TestCreateAndListToolEntries(t *testing.T) {
	s := setupStore(t)
	fixClock(s,
		time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC),
	)

	first, err := s.CreateToolEntry(types.ToolBreathCheck, `{"cycles":5}`)
	require.NoError(t, err)
	_, err = s.CreateToolEntry(types.ToolThoughtLog, `{"situation":"call"}`)
	require.NoError(t, err)

	list, err := s.ListToolEntries()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID, "oldest first")
	assert.Equal(t, types.ToolBreathCheck, list[0].ToolName)
	assert.Equal(t, types.ToolThoughtLog, list[1].ToolName)
}

func TestUpdateToolEntry(t *testing.T) {
	s := setupStore(t)

	entry, err := s.CreateToolEntry(types.ToolThoughtLog, `{"thought":"before"}`)
	require.NoError(t, err)

	updated, err := s.UpdateToolEntry(entry.ID, `{"thought":"after"}`)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, updated.ID)
	assert.Equal(t, `{"thought":"after"}`, updated.Data)
	assert.Equal(t, entry.CreatedAt, updated.CreatedAt)
}

func TestUpdateToolEntryMissing(t *testing.T) {
	s := setupStore(t)

	_, err := s.UpdateToolEntry(42, `{}`)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
