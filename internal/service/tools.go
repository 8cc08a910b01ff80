package service

import (
	"fmt"
	"log/slog"

	"github.com/calmworks/breathcheck/internal/secure"
	"github.com/calmworks/breathcheck/internal/sqlite"
	"github.com/calmworks/breathcheck/pkg/types"
)

// Tools manages saved tool worksheets and the append-only session record.
// Worksheet data and session metadata are encrypted JSON objects at rest.
type Tools struct {
	store  *sqlite.Store
	cipher *secure.Cipher
	log    *slog.Logger
}

// NewTools returns a Tools service over store.
func NewTools(store *sqlite.Store, cipher *secure.Cipher, logger *slog.Logger) *Tools {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tools{store: store, cipher: cipher, log: logger}
}

// CreateEntry saves a new tool worksheet and returns it with the data
// decrypted.
func (t *Tools) CreateEntry(toolName string, data types.Payload) (*types.ToolEntry, error) {
	encoded, err := encodePayload(t.cipher, data)
	if err != nil {
		return nil, fmt.Errorf("encoding %s entry: %w", toolName, err)
	}
	entry, err := t.store.CreateToolEntry(toolName, encoded)
	if err != nil {
		return nil, fmt.Errorf("saving %s entry: %w", toolName, err)
	}
	t.log.Info("saved tool entry", "tool", toolName)
	return t.decryptEntry(entry), nil
}

// UpdateEntry replaces an existing worksheet's data wholesale. Returns
// types.ErrNotFound when no entry has the given ID.
func (t *Tools) UpdateEntry(id int64, data types.Payload) (*types.ToolEntry, error) {
	encoded, err := encodePayload(t.cipher, data)
	if err != nil {
		return nil, fmt.Errorf("encoding entry %d: %w", id, err)
	}
	entry, err := t.store.UpdateToolEntry(id, encoded)
	if err != nil {
		return nil, err
	}
	return t.decryptEntry(entry), nil
}

// Entries returns every saved worksheet oldest first, decrypted.
func (t *Tools) Entries() ([]*types.ToolEntry, error) {
	rows, err := t.store.ListToolEntries()
	if err != nil {
		return nil, err
	}
	out := make([]*types.ToolEntry, len(rows))
	for i, row := range rows {
		out[i] = t.decryptEntry(row)
	}
	return out, nil
}

// RecordUsage appends one tool session with its metadata. Usage rows are
// never updated; engagement metrics count them by date.
func (t *Tools) RecordUsage(toolName string, metadata types.Payload) (*types.ToolUsage, error) {
	encoded, err := encodePayload(t.cipher, metadata)
	if err != nil {
		return nil, fmt.Errorf("encoding %s session: %w", toolName, err)
	}
	row, err := t.store.CreateToolUsage(toolName, encoded)
	if err != nil {
		return nil, fmt.Errorf("recording %s session: %w", toolName, err)
	}
	t.log.Info("recorded tool session", "tool", toolName)
	return t.decryptUsage(row), nil
}

// Usage returns every recorded session oldest first, decrypted.
func (t *Tools) Usage() ([]*types.ToolUsage, error) {
	rows, err := t.store.ListToolUsage()
	if err != nil {
		return nil, err
	}
	out := make([]*types.ToolUsage, len(rows))
	for i, row := range rows {
		out[i] = t.decryptUsage(row)
	}
	return out, nil
}

func (t *Tools) decryptEntry(entry *types.ToolEntry) *types.ToolEntry {
	out := *entry
	out.Data = t.cipher.Decrypt(entry.Data)
	return &out
}

func (t *Tools) decryptUsage(row *types.ToolUsage) *types.ToolUsage {
	out := *row
	out.Metadata = t.cipher.Decrypt(row.Metadata)
	return &out
}
