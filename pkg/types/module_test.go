package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"canonical locked", "LOCKED", StatusLocked},
		{"canonical unlocked", "UNLOCKED", StatusUnlocked},
		{"canonical complete", "COMPLETE", StatusComplete},
		{"lowercase folded", "complete", StatusComplete},
		{"legacy completed", "COMPLETED", StatusComplete},
		{"legacy in_progress", "IN_PROGRESS", StatusUnlocked},
		{"empty degrades to locked", "", StatusLocked},
		{"unknown degrades to locked", "FINISHED", StatusLocked},
		{"whitespace trimmed", "  unlocked ", StatusUnlocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.input))
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"canonical accepted", "UNLOCKED", StatusUnlocked, nil},
		{"lowercase accepted", "locked", StatusLocked, nil},
		{"legacy completed folded", "completed", StatusComplete, nil},
		{"legacy in_progress folded", "in_progress", StatusUnlocked, nil},
		{"unknown rejected", "FINISHED", "", ErrInvalidStatus},
		{"empty rejected", "", "", ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModuleCatalog(t *testing.T) {
	modules := Modules()
	require.Len(t, modules, 6)
	assert.Equal(t, "module_1", modules[0].ID)
	assert.Equal(t, "Understanding Anxiety", modules[0].Title)
	assert.Equal(t, "module_6", modules[5].ID)

	ids := ModuleIDs()
	require.Len(t, ids, 6)
	for i, m := range modules {
		assert.Equal(t, m.ID, ids[i])
		assert.True(t, KnownModule(m.ID))
	}
	assert.False(t, KnownModule("module_7"))

	// Catalog copies are independent of the backing array.
	modules[0].Title = "changed"
	assert.Equal(t, "Understanding Anxiety", Modules()[0].Title)
}

func TestModuleProgressComplete(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		progress ModuleProgress
		want     bool
	}{
		{"complete", ModuleProgress{Status: StatusComplete, CompletedAt: &now}, true},
		{"legacy completed", ModuleProgress{Status: "completed"}, true},
		{"unlocked", ModuleProgress{Status: StatusUnlocked}, false},
		{"empty", ModuleProgress{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.progress.Complete())
		})
	}
}
