package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmworks/breathcheck/pkg/types"
)

func newTestTools(t *testing.T) *Tools {
	t.Helper()
	return NewTools(newTestStore(t), newTestCipher(t), testLogger())
}

func TestCreateEntryRoundTrip(t *testing.T) {
	store := newTestStore(t)
	tools := NewTools(store, newTestCipher(t), testLogger())

	entry, err := tools.CreateEntry(types.ToolThoughtLog, types.Payload{"situation": "team meeting"})
	require.NoError(t, err)

	payload, err := types.ParsePayload(entry.Data)
	require.NoError(t, err)
	assert.Equal(t, "team meeting", payload.String("situation"))

	raw, err := store.ListToolEntries()
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.True(t, strings.HasPrefix(raw[0].Data, "enc:"), "stored worksheet should be encrypted")
}

func TestUpdateEntryReplacesWholePayload(t *testing.T) {
	tools := newTestTools(t)
	entry, err := tools.CreateEntry(types.ToolThoughtLog, types.Payload{"a": float64(1), "b": float64(2)})
	require.NoError(t, err)

	updated, err := tools.UpdateEntry(entry.ID, types.Payload{"a": float64(9)})
	require.NoError(t, err)

	payload, err := types.ParsePayload(updated.Data)
	require.NoError(t, err)
	assert.Equal(t, 9, payload.Int("a"))
	_, hasB := payload["b"]
	assert.False(t, hasB, "worksheet updates replace, they do not merge")
}

func TestUpdateEntryMissing(t *testing.T) {
	tools := newTestTools(t)
	_, err := tools.UpdateEntry(404, types.Payload{"a": float64(1)})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestEntriesOldestFirstDecrypted(t *testing.T) {
	tools := newTestTools(t)
	_, err := tools.CreateEntry(types.ToolThoughtLog, types.Payload{"n": float64(1)})
	require.NoError(t, err)
	_, err = tools.CreateEntry("grounding", types.Payload{"n": float64(2)})
	require.NoError(t, err)

	entries, err := tools.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, types.ToolThoughtLog, entries[0].ToolName)
	assert.Equal(t, "grounding", entries[1].ToolName)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Data, "enc:"), "listed entries are decrypted")
	}
}

func TestRecordUsageRoundTrip(t *testing.T) {
	store := newTestStore(t)
	tools := NewTools(store, newTestCipher(t), testLogger())

	row, err := tools.RecordUsage(types.ToolBreathCheck, types.Payload{"cycles": float64(4)})
	require.NoError(t, err)
	payload, err := types.ParsePayload(row.Metadata)
	require.NoError(t, err)
	assert.Equal(t, 4, payload.Int("cycles"))

	raw, err := store.ListToolUsage()
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.True(t, strings.HasPrefix(raw[0].Metadata, "enc:"))

	sessions, err := tools.Usage()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, types.ToolBreathCheck, sessions[0].ToolName)
}

func TestRecordUsageEmptyMetadata(t *testing.T) {
	tools := newTestTools(t)
	row, err := tools.RecordUsage(types.ToolBreathCheck, types.Payload{})
	require.NoError(t, err)

	payload, err := types.ParsePayload(row.Metadata)
	require.NoError(t, err)
	assert.Empty(t, payload)
}
