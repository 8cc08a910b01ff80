package service

import (
	"fmt"
	"log/slog"

	"github.com/calmworks/breathcheck/internal/secure"
	"github.com/calmworks/breathcheck/internal/sqlite"
	"github.com/calmworks/breathcheck/pkg/types"
)

// ModuleData manages the per-module workbook payloads. Payloads are stored
// as one encrypted JSON object per module; updates merge at the top level
// rather than replacing the whole object, so a module can save one exercise
// without clobbering another.
type ModuleData struct {
	store  *sqlite.Store
	cipher *secure.Cipher
	log    *slog.Logger
}

// NewModuleData returns a ModuleData service over store.
func NewModuleData(store *sqlite.Store, cipher *secure.Cipher, logger *slog.Logger) *ModuleData {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModuleData{store: store, cipher: cipher, log: logger}
}

// Data returns the decoded payload for a module, or nil when the module has
// no saved data yet.
func (m *ModuleData) Data(moduleID string) (types.Payload, error) {
	row, err := m.store.GetModuleData(moduleID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	payload, err := decodePayload(m.cipher, row.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding data for module %s: %w", moduleID, err)
	}
	return payload, nil
}

// Payloads returns the decoded payloads of every module that has saved data,
// keyed by module ID.
func (m *ModuleData) Payloads() (map[string]types.Payload, error) {
	rows, err := m.store.ListModuleData()
	if err != nil {
		return nil, err
	}
	out := make(map[string]types.Payload, len(rows))
	for _, row := range rows {
		payload, err := decodePayload(m.cipher, row.Data)
		if err != nil {
			return nil, fmt.Errorf("decoding data for module %s: %w", row.ModuleID, err)
		}
		out[row.ModuleID] = payload
	}
	return out, nil
}

// Update merges patch into the module's payload and persists the result.
// Existing keys are overwritten, other keys survive. Returns the merged
// payload.
func (m *ModuleData) Update(moduleID string, patch types.Payload) (types.Payload, error) {
	current, err := m.Data(moduleID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = types.Payload{}
	}
	current.Merge(patch)
	encoded, err := encodePayload(m.cipher, current)
	if err != nil {
		return nil, fmt.Errorf("encoding data for module %s: %w", moduleID, err)
	}
	if _, err := m.store.SaveModuleData(moduleID, encoded); err != nil {
		return nil, fmt.Errorf("saving data for module %s: %w", moduleID, err)
	}
	m.log.Info("saved module data", "module", moduleID)
	return current, nil
}
