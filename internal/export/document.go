// Package export renders a decrypted data snapshot to JSON or CSV files.
// The row shapes are a compatibility contract: field names match the
// datasets users exported before, so downstream spreadsheets keep working.
package export

import (
	"strconv"

	"github.com/calmworks/breathcheck/pkg/types"
)

// Document is the full export payload. Table order here is the order the
// JSON document and the CSV bundle are written in.
type Document struct {
	DailyLogs        []DailyLogRow        `json:"daily_logs"`
	ModuleProgress   []ModuleProgressRow  `json:"module_progress"`
	ModuleData       []ModuleDataRow      `json:"module_data"`
	ToolEntries      []ToolEntryRow       `json:"tool_entries"`
	ToolUsage        []ToolUsageRow       `json:"tool_usage"`
	UserSettings     []UserSettingsRow    `json:"user_settings"`
	Insights         []InsightRow         `json:"insights"`
	SupportContacts  []SupportContactRow  `json:"support_contacts"`
	SupportResources []SupportResourceRow `json:"support_resources"`
}

// DailyLogRow is one decrypted check-in.
type DailyLogRow struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	EntryTime string `json:"entry_time"`
	Mood      int    `json:"mood"`
	Anxiety   int    `json:"anxiety"`
	Stress    int    `json:"stress"`
	Trigger   string `json:"trigger"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ModuleProgressRow is one module progress record. CompletedAt is empty
// for modules never completed.
type ModuleProgressRow struct {
	ID              int64  `json:"id"`
	ModuleID        string `json:"module_id"`
	Status          string `json:"status"`
	ProgressPercent int    `json:"progress_percent"`
	CompletedAt     string `json:"completed_at"`
}

// ModuleDataRow is one decrypted module workbook blob.
type ModuleDataRow struct {
	ID        int64         `json:"id"`
	ModuleID  string        `json:"module_id"`
	Data      types.Payload `json:"data"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

// ToolEntryRow is one decrypted saved tool result.
type ToolEntryRow struct {
	ID        int64         `json:"id"`
	ToolName  string        `json:"tool_name"`
	Data      types.Payload `json:"data"`
	CreatedAt string        `json:"created_at"`
}

// ToolUsageRow is one decrypted tool session.
type ToolUsageRow struct {
	ID       int64         `json:"id"`
	ToolName string        `json:"tool_name"`
	UsedAt   string        `json:"used_at"`
	Metadata types.Payload `json:"metadata"`
}

// UserSettingsRow mirrors the settings table.
type UserSettingsRow struct {
	ID                  int64  `json:"id"`
	ReminderTime        string `json:"reminder_time"`
	ThemeMode           string `json:"theme_mode"`
	ComfortMode         bool   `json:"comfort_mode"`
	AIEnabled           bool   `json:"ai_enabled"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
}

// InsightRow is one decrypted cached insight.
type InsightRow struct {
	ID          int64  `json:"id"`
	GeneratedAt string `json:"generated_at"`
	SummaryText string `json:"summary_text"`
	RawData     string `json:"raw_data"`
}

// SupportContactRow is one support contact.
type SupportContactRow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
}

// SupportResourceRow is one professional help resource.
type SupportResourceRow struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Contact   string `json:"contact"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
}

// table is one named CSV sheet: headers plus stringified record rows.
type table struct {
	name    string
	headers []string
	records [][]string
}

// tables flattens the document into CSV sheets in document order.
func (d *Document) tables() []table {
	logs := table{
		name:    "daily_logs",
		headers: []string{"id", "date", "entry_time", "mood", "anxiety", "stress", "trigger", "created_at", "updated_at"},
	}
	for _, r := range d.DailyLogs {
		logs.records = append(logs.records, []string{
			formatID(r.ID), r.Date, r.EntryTime, strconv.Itoa(r.Mood), strconv.Itoa(r.Anxiety),
			strconv.Itoa(r.Stress), r.Trigger, r.CreatedAt, r.UpdatedAt,
		})
	}

	progress := table{
		name:    "module_progress",
		headers: []string{"id", "module_id", "status", "progress_percent", "completed_at"},
	}
	for _, r := range d.ModuleProgress {
		progress.records = append(progress.records, []string{
			formatID(r.ID), r.ModuleID, r.Status, strconv.Itoa(r.ProgressPercent), r.CompletedAt,
		})
	}

	moduleData := table{
		name:    "module_data",
		headers: []string{"id", "module_id", "data", "created_at", "updated_at"},
	}
	for _, r := range d.ModuleData {
		moduleData.records = append(moduleData.records, []string{
			formatID(r.ID), r.ModuleID, formatPayload(r.Data), r.CreatedAt, r.UpdatedAt,
		})
	}

	entries := table{
		name:    "tool_entries",
		headers: []string{"id", "tool_name", "data", "created_at"},
	}
	for _, r := range d.ToolEntries {
		entries.records = append(entries.records, []string{
			formatID(r.ID), r.ToolName, formatPayload(r.Data), r.CreatedAt,
		})
	}

	usage := table{
		name:    "tool_usage",
		headers: []string{"id", "tool_name", "used_at", "metadata"},
	}
	for _, r := range d.ToolUsage {
		usage.records = append(usage.records, []string{
			formatID(r.ID), r.ToolName, r.UsedAt, formatPayload(r.Metadata),
		})
	}

	settings := table{
		name:    "user_settings",
		headers: []string{"id", "reminder_time", "theme_mode", "comfort_mode", "ai_enabled", "onboarding_completed"},
	}
	for _, r := range d.UserSettings {
		settings.records = append(settings.records, []string{
			formatID(r.ID), r.ReminderTime, r.ThemeMode, strconv.FormatBool(r.ComfortMode),
			strconv.FormatBool(r.AIEnabled), strconv.FormatBool(r.OnboardingCompleted),
		})
	}

	insights := table{
		name:    "insights",
		headers: []string{"id", "generated_at", "summary_text", "raw_data"},
	}
	for _, r := range d.Insights {
		insights.records = append(insights.records, []string{
			formatID(r.ID), r.GeneratedAt, r.SummaryText, r.RawData,
		})
	}

	contacts := table{
		name:    "support_contacts",
		headers: []string{"id", "name", "phone", "note", "created_at"},
	}
	for _, r := range d.SupportContacts {
		contacts.records = append(contacts.records, []string{
			formatID(r.ID), r.Name, r.Phone, r.Note, r.CreatedAt,
		})
	}

	resources := table{
		name:    "support_resources",
		headers: []string{"id", "title", "contact", "note", "created_at"},
	}
	for _, r := range d.SupportResources {
		resources.records = append(resources.records, []string{
			formatID(r.ID), r.Title, r.Contact, r.Note, r.CreatedAt,
		})
	}

	return []table{logs, progress, moduleData, entries, usage, settings, insights, contacts, resources}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// formatPayload renders a nested payload into one CSV cell. Nil payloads
// become empty cells, not the literal "null".
func formatPayload(p types.Payload) string {
	if p == nil {
		return ""
	}
	encoded, err := p.Encode()
	if err != nil {
		return ""
	}
	return encoded
}
