// Unit tests for module progress upserts and the completed_at rule.
package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertModuleProgressCreates(t *testing.T) {
	s := setupStore(t)

	p, err := s.UpsertModuleProgress("module_1", "UNLOCKED", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "module_1", p.ModuleID)
	assert.Equal(t, "UNLOCKED", p.Status)
	assert.Equal(t, 0, p.ProgressPercent)
	assert.Nil(t, p.CompletedAt)
}

func TestUpsertModuleProgressKeepsCompletedAt(t *testing.T) {
	s := setupStore(t)
	done := time.Date(2026, 8, 5, 12, 0, 0, 0, time.UTC)

	_, err := s.UpsertModuleProgress("module_2", "COMPLETE", 100, &done)
	require.NoError(t, err)

	// A later upsert without a completion date must not clear the one
	// already recorded.
	p, err := s.UpsertModuleProgress("module_2", "COMPLETE", 100, nil)
	require.NoError(t, err)
	require.NotNil(t, p.CompletedAt)
	assert.Equal(t, done, *p.CompletedAt)
}

func TestUpsertModuleProgressUpdatesInPlace(t *testing.T) {
	s := setupStore(t)

	first, err := s.UpsertModuleProgress("module_3", "UNLOCKED", 20, nil)
	require.NoError(t, err)

	second, err := s.UpsertModuleProgress("module_3", "UNLOCKED", 60, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 60, second.ProgressPercent)

	list, err := s.ListModuleProgress()
	require.NoError(t, err)
	assert.Len(t, list, 1, "upserts never duplicate a module row")
}

func TestGetModuleProgressMissing(t *testing.T) {
	s := setupStore(t)

	p, err := s.GetModuleProgress("module_9")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestListModuleProgressOrderedByModuleID(t *testing.T) {
	s := setupStore(t)

	for _, id := range []string{"module_3", "module_1", "module_2"} {
		_, err := s.UpsertModuleProgress(id, "LOCKED", 0, nil)
		require.NoError(t, err)
	}

	list, err := s.ListModuleProgress()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "module_1", list[0].ModuleID)
	assert.Equal(t, "module_2", list[1].ModuleID)
	assert.Equal(t, "module_3", list[2].ModuleID)
}
