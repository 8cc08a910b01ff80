package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/calmworks/breathcheck/internal/ai"
	"github.com/calmworks/breathcheck/internal/export"
	"github.com/calmworks/breathcheck/internal/secure"
	"github.com/calmworks/breathcheck/internal/sqlite"
	"github.com/calmworks/breathcheck/pkg/types"
)

// Maintenance handles the destructive account operations and full-data
// export behind the settings screen.
type Maintenance struct {
	store  *sqlite.Store
	cipher *secure.Cipher
	vault  *secure.Vault
	gen    ai.Generator
	log    *slog.Logger
}

// NewMaintenance returns a Maintenance service over its collaborators.
func NewMaintenance(store *sqlite.Store, cipher *secure.Cipher, vault *secure.Vault,
	gen ai.Generator, logger *slog.Logger) *Maintenance {
	if logger == nil {
		logger = slog.Default()
	}
	return &Maintenance{store: store, cipher: cipher, vault: vault, gen: gen, log: logger}
}

// DeleteAllData wipes every table in one transaction. Keychain entries
// survive; use DeleteAccount to remove those too.
func (m *Maintenance) DeleteAllData() error {
	return m.store.DeleteAllData()
}

// ResetProgress clears module progress and saved module data, leaving
// check-ins, tool history, and settings intact.
func (m *Maintenance) ResetProgress() error {
	return m.store.ResetProgress()
}

// DeleteAccount wipes the database and removes the encryption key and
// master password from the keychain.
func (m *Maintenance) DeleteAccount() error {
	if err := m.store.DeleteAllData(); err != nil {
		return err
	}
	m.cipher.DeleteKey()
	m.vault.DeleteMasterPassword()
	m.log.Info("deleted account data and master password")
	return nil
}

// EncryptionStatus reports whether field encryption is active along with the
// user-facing status line.
func (m *Maintenance) EncryptionStatus() (bool, string) {
	return m.cipher.Status()
}

// CheckAPIKey asks the generation backend to validate the configured key
// and returns the result with its user-facing message.
func (m *Maintenance) CheckAPIKey(ctx context.Context) (bool, string) {
	return m.gen.ValidateKey(ctx)
}

// ExportAll decrypts every record and writes it in the requested format:
// "json" produces a single document, "csv" one file per table. Returns the
// written paths. Unknown formats, including the spreadsheet format older
// builds offered, yield types.ErrUnsupportedFormat.
func (m *Maintenance) ExportAll(format, path string) ([]string, error) {
	bundle, err := m.store.ExportData()
	if err != nil {
		return nil, err
	}
	doc, err := m.buildDocument(bundle)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "json":
		written, err := export.WriteJSON(doc, path)
		if err != nil {
			return nil, err
		}
		m.log.Info("exported data", "format", "json", "path", written)
		return []string{written}, nil
	case "csv":
		paths, err := export.WriteCSV(doc, path)
		if err != nil {
			return nil, err
		}
		m.log.Info("exported data", "format", "csv", "files", len(paths))
		return paths, nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, format)
	}
}

// buildDocument converts the raw bundle into decrypted export rows. A stored
// payload that fails to decode aborts the export rather than silently
// writing a gap.
func (m *Maintenance) buildDocument(bundle *sqlite.ExportBundle) (*export.Document, error) {
	doc := &export.Document{
		DailyLogs:        make([]export.DailyLogRow, 0, len(bundle.DailyLogs)),
		ModuleProgress:   make([]export.ModuleProgressRow, 0, len(bundle.ModuleProgress)),
		ModuleData:       make([]export.ModuleDataRow, 0, len(bundle.ModuleData)),
		ToolEntries:      make([]export.ToolEntryRow, 0, len(bundle.ToolEntries)),
		ToolUsage:        make([]export.ToolUsageRow, 0, len(bundle.ToolUsage)),
		UserSettings:     make([]export.UserSettingsRow, 0, len(bundle.Settings)),
		Insights:         make([]export.InsightRow, 0, len(bundle.Insights)),
		SupportContacts:  make([]export.SupportContactRow, 0, len(bundle.SupportContacts)),
		SupportResources: make([]export.SupportResourceRow, 0, len(bundle.SupportResources)),
	}
	for _, entry := range bundle.DailyLogs {
		doc.DailyLogs = append(doc.DailyLogs, export.DailyLogRow{
			ID:        entry.ID,
			Date:      formatDate(entry.Date),
			EntryTime: formatInstant(entry.EntryTime),
			Mood:      entry.Mood,
			Anxiety:   entry.Anxiety,
			Stress:    entry.Stress,
			Trigger:   m.cipher.Decrypt(entry.Trigger),
			CreatedAt: formatInstant(entry.CreatedAt),
			UpdatedAt: formatInstant(entry.UpdatedAt),
		})
	}
	for _, entry := range bundle.ModuleProgress {
		completedAt := ""
		if entry.CompletedAt != nil {
			completedAt = formatInstant(*entry.CompletedAt)
		}
		doc.ModuleProgress = append(doc.ModuleProgress, export.ModuleProgressRow{
			ID:              entry.ID,
			ModuleID:        entry.ModuleID,
			Status:          entry.Status,
			ProgressPercent: entry.ProgressPercent,
			CompletedAt:     completedAt,
		})
	}
	for _, entry := range bundle.ModuleData {
		payload, err := decodePayload(m.cipher, entry.Data)
		if err != nil {
			return nil, fmt.Errorf("decoding data for module %s: %w", entry.ModuleID, err)
		}
		doc.ModuleData = append(doc.ModuleData, export.ModuleDataRow{
			ID:        entry.ID,
			ModuleID:  entry.ModuleID,
			Data:      payload,
			CreatedAt: formatInstant(entry.CreatedAt),
			UpdatedAt: formatInstant(entry.UpdatedAt),
		})
	}
	for _, entry := range bundle.ToolEntries {
		payload, err := decodePayload(m.cipher, entry.Data)
		if err != nil {
			return nil, fmt.Errorf("decoding entry %d: %w", entry.ID, err)
		}
		doc.ToolEntries = append(doc.ToolEntries, export.ToolEntryRow{
			ID:        entry.ID,
			ToolName:  entry.ToolName,
			Data:      payload,
			CreatedAt: formatInstant(entry.CreatedAt),
		})
	}
	for _, entry := range bundle.ToolUsage {
		payload, err := decodePayload(m.cipher, entry.Metadata)
		if err != nil {
			return nil, fmt.Errorf("decoding session %d: %w", entry.ID, err)
		}
		doc.ToolUsage = append(doc.ToolUsage, export.ToolUsageRow{
			ID:       entry.ID,
			ToolName: entry.ToolName,
			UsedAt:   formatInstant(entry.UsedAt),
			Metadata: payload,
		})
	}
	for _, entry := range bundle.Settings {
		doc.UserSettings = append(doc.UserSettings, export.UserSettingsRow{
			ID:                  entry.ID,
			ReminderTime:        entry.ReminderTime,
			ThemeMode:           entry.ThemeMode,
			ComfortMode:         entry.ComfortMode,
			AIEnabled:           entry.AIEnabled,
			OnboardingCompleted: entry.OnboardingCompleted,
		})
	}
	for _, entry := range bundle.Insights {
		doc.Insights = append(doc.Insights, export.InsightRow{
			ID:          entry.ID,
			GeneratedAt: formatInstant(entry.GeneratedAt),
			SummaryText: m.cipher.Decrypt(entry.Summary),
			RawData:     m.cipher.Decrypt(entry.Raw),
		})
	}
	for _, entry := range bundle.SupportContacts {
		doc.SupportContacts = append(doc.SupportContacts, export.SupportContactRow{
			ID:        entry.ID,
			Name:      entry.Name,
			Phone:     entry.Phone,
			Note:      entry.Note,
			CreatedAt: formatInstant(entry.CreatedAt),
		})
	}
	for _, entry := range bundle.SupportResources {
		doc.SupportResources = append(doc.SupportResources, export.SupportResourceRow{
			ID:        entry.ID,
			Title:     entry.Title,
			Contact:   entry.Contact,
			Note:      entry.Note,
			CreatedAt: formatInstant(entry.CreatedAt),
		})
	}
	return doc, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(types.DateLayout)
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
