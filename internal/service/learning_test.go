package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmworks/breathcheck/pkg/types"
)

func newTestLearning(t *testing.T) *Learning {
	t.Helper()
	return NewLearning(newTestStore(t), testLogger())
}

func TestUpdateProgressRejectsUnknownModule(t *testing.T) {
	learning := newTestLearning(t)
	_, err := learning.UpdateProgress("module_99", types.StatusUnlocked, 10)
	assert.ErrorIs(t, err, types.ErrUnknownModule)
}

func TestUpdateProgressRejectsUnknownStatus(t *testing.T) {
	learning := newTestLearning(t)
	_, err := learning.UpdateProgress("module_1", "DONEISH", 10)
	assert.ErrorIs(t, err, types.ErrInvalidStatus)
}

func TestUpdateProgressNormalizesLegacyStatuses(t *testing.T) {
	learning := newTestLearning(t)
	cases := []struct {
		in   string
		want string
	}{
		{"completed", types.StatusComplete},
		{"in_progress", types.StatusUnlocked},
		{" unlocked ", types.StatusUnlocked},
	}
	for _, tc := range cases {
		entry, err := learning.UpdateProgress("module_1", tc.in, 50)
		require.NoError(t, err)
		assert.Equal(t, tc.want, entry.Status)
	}
}

func TestUpdateProgressClampsPercent(t *testing.T) {
	learning := newTestLearning(t)

	entry, err := learning.UpdateProgress("module_1", types.StatusUnlocked, -5)
	require.NoError(t, err)
	assert.Zero(t, entry.ProgressPercent)

	entry, err = learning.UpdateProgress("module_1", types.StatusUnlocked, 150)
	require.NoError(t, err)
	assert.Equal(t, 100, entry.ProgressPercent)
}

func TestUpdateProgressStampsCompletionOnce(t *testing.T) {
	learning := newTestLearning(t)
	first := day(2026, time.March, 5)
	learning.now = func() time.Time { return first }

	entry, err := learning.UpdateProgress("module_1", types.StatusComplete, 100)
	require.NoError(t, err)
	require.NotNil(t, entry.CompletedAt)
	assert.Equal(t, first, *entry.CompletedAt)

	// Completing again later keeps the original timestamp.
	learning.now = func() time.Time { return day(2026, time.March, 9) }
	entry, err = learning.UpdateProgress("module_1", types.StatusComplete, 100)
	require.NoError(t, err)
	require.NotNil(t, entry.CompletedAt)
	assert.Equal(t, first, *entry.CompletedAt)

	// So does moving the module back to UNLOCKED.
	entry, err = learning.UpdateProgress("module_1", types.StatusUnlocked, 40)
	require.NoError(t, err)
	require.NotNil(t, entry.CompletedAt)
	assert.Equal(t, first, *entry.CompletedAt)
}

func TestRepairUnlocksSeedsMissingRows(t *testing.T) {
	learning := newTestLearning(t)
	ids := []string{"module_1", "module_2", "module_3"}

	require.NoError(t, learning.RepairUnlocks(ids))

	rows, err := learning.ListProgress()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	byModule := map[string]string{}
	for _, row := range rows {
		byModule[row.ModuleID] = row.Status
		assert.Zero(t, row.ProgressPercent)
	}
	assert.Equal(t, types.StatusUnlocked, byModule["module_1"])
	assert.Equal(t, types.StatusLocked, byModule["module_2"])
	assert.Equal(t, types.StatusLocked, byModule["module_3"])
}

func TestRepairUnlocksPromotesAfterCompletedPredecessor(t *testing.T) {
	learning := newTestLearning(t)
	ids := []string{"module_1", "module_2", "module_3"}
	_, err := learning.UpdateProgress("module_1", types.StatusComplete, 100)
	require.NoError(t, err)

	require.NoError(t, learning.RepairUnlocks(ids))

	second, err := learning.Progress("module_2")
	require.NoError(t, err)
	assert.Equal(t, types.StatusUnlocked, second.Status)

	// module_3's predecessor was not complete before this pass, so it
	// stays locked until the next repair after module_2 completes.
	third, err := learning.Progress("module_3")
	require.NoError(t, err)
	assert.Equal(t, types.StatusLocked, third.Status)
}

func TestRepairUnlocksDemotesOrphanedUnlock(t *testing.T) {
	learning := newTestLearning(t)
	ids := []string{"module_1", "module_2"}
	_, err := learning.UpdateProgress("module_1", types.StatusUnlocked, 30)
	require.NoError(t, err)
	_, err = learning.UpdateProgress("module_2", types.StatusUnlocked, 100)
	require.NoError(t, err)

	require.NoError(t, learning.RepairUnlocks(ids))

	second, err := learning.Progress("module_2")
	require.NoError(t, err)
	assert.Equal(t, types.StatusLocked, second.Status)
	assert.Equal(t, 99, second.ProgressPercent, "demotion caps percent below finished")
}

func TestRepairUnlocksKeepsFirstModuleOpen(t *testing.T) {
	learning := newTestLearning(t)
	_, err := learning.UpdateProgress("module_1", types.StatusLocked, 20)
	require.NoError(t, err)

	require.NoError(t, learning.RepairUnlocks(types.ModuleIDs()))

	first, err := learning.Progress("module_1")
	require.NoError(t, err)
	assert.Equal(t, types.StatusUnlocked, first.Status)
	assert.Equal(t, 20, first.ProgressPercent, "repair keeps recorded percent")
}

func TestRepairUnlocksLeavesCompleteRowsAlone(t *testing.T) {
	learning := newTestLearning(t)
	ids := []string{"module_1", "module_2", "module_3"}
	// A dirty chain: module_2 complete although module_1 is not.
	_, err := learning.UpdateProgress("module_1", types.StatusUnlocked, 10)
	require.NoError(t, err)
	_, err = learning.UpdateProgress("module_2", types.StatusComplete, 100)
	require.NoError(t, err)
	_, err = learning.UpdateProgress("module_3", types.StatusUnlocked, 5)
	require.NoError(t, err)

	require.NoError(t, learning.RepairUnlocks(ids))

	second, err := learning.Progress("module_2")
	require.NoError(t, err)
	assert.Equal(t, types.StatusComplete, second.Status, "completed work is never taken away")

	third, err := learning.Progress("module_3")
	require.NoError(t, err)
	assert.Equal(t, types.StatusUnlocked, third.Status, "predecessor complete, unlock stands")
}

func TestRepairUnlocksIsIdempotent(t *testing.T) {
	learning := newTestLearning(t)
	ids := types.ModuleIDs()
	_, err := learning.UpdateProgress("module_1", types.StatusComplete, 100)
	require.NoError(t, err)

	require.NoError(t, learning.RepairUnlocks(ids))
	after, err := learning.ListProgress()
	require.NoError(t, err)

	require.NoError(t, learning.RepairUnlocks(ids))
	again, err := learning.ListProgress()
	require.NoError(t, err)

	require.Equal(t, len(after), len(again))
	for i := range after {
		assert.Equal(t, after[i].Status, again[i].Status)
		assert.Equal(t, after[i].ProgressPercent, again[i].ProgressPercent)
	}
}
