package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL. Statements use IF NOT EXISTS because initSchema runs on every
// startup against databases of any prior vintage. "trigger" is a reserved
// word in SQLite and stays quoted everywhere it appears.
const (
	createDailyLogs = `CREATE TABLE IF NOT EXISTS daily_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    date TEXT NOT NULL UNIQUE,
    mood INTEGER NOT NULL,
    anxiety INTEGER NOT NULL,
    stress INTEGER NOT NULL DEFAULT 0,
    "trigger" TEXT NOT NULL DEFAULT '',
    entry_time TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createModuleProgress = `CREATE TABLE IF NOT EXISTS module_progress (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    module_id TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'LOCKED',
    progress_percent INTEGER NOT NULL DEFAULT 0,
    completed_at TEXT
);`

	createUserModuleData = `CREATE TABLE IF NOT EXISTS user_module_data (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    module_id TEXT NOT NULL UNIQUE,
    data_json TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createToolEntries = `CREATE TABLE IF NOT EXISTS tool_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tool_name TEXT NOT NULL,
    data_json TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	createToolUsage = `CREATE TABLE IF NOT EXISTS tool_usage (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    tool_name TEXT NOT NULL,
    used_at TEXT NOT NULL,
    metadata_json TEXT NOT NULL DEFAULT ''
);`

	createInsightCache = `CREATE TABLE IF NOT EXISTS insight_cache (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    generated_at TEXT NOT NULL,
    summary_text TEXT NOT NULL DEFAULT '',
    raw_data TEXT NOT NULL DEFAULT ''
);`

	createUserSettings = `CREATE TABLE IF NOT EXISTS user_settings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    reminder_time TEXT NOT NULL DEFAULT 'Morning',
    theme_mode TEXT NOT NULL DEFAULT 'light',
    comfort_mode INTEGER NOT NULL DEFAULT 0,
    ai_enabled INTEGER NOT NULL DEFAULT 1,
    onboarding_completed INTEGER NOT NULL DEFAULT 0
);`

	createSupportContacts = `CREATE TABLE IF NOT EXISTS support_contacts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	createSupportResources = `CREATE TABLE IF NOT EXISTS support_resources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    contact TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`
)

// Index DDL for the hot lookups.
const (
	idxDailyLogsDate      = `CREATE INDEX IF NOT EXISTS idx_daily_logs_date ON daily_logs(date);`
	idxModuleProgressMod  = `CREATE INDEX IF NOT EXISTS idx_module_progress_module ON module_progress(module_id);`
	idxToolEntriesName    = `CREATE INDEX IF NOT EXISTS idx_tool_entries_name ON tool_entries(tool_name, created_at);`
	idxToolUsageName      = `CREATE INDEX IF NOT EXISTS idx_tool_usage_name ON tool_usage(tool_name, used_at);`
	idxInsightsGenerated  = `CREATE INDEX IF NOT EXISTS idx_insight_cache_generated ON insight_cache(generated_at);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createDailyLogs,
	createModuleProgress,
	createUserModuleData,
	createToolEntries,
	createToolUsage,
	createInsightCache,
	createUserSettings,
	createSupportContacts,
	createSupportResources,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxDailyLogsDate,
	idxModuleProgressMod,
	idxToolEntriesName,
	idxToolUsageName,
	idxInsightsGenerated,
}

// initSchema creates missing tables and indexes, then runs the column
// migrations. Runs on every Open; every step is idempotent.
func (s *Store) initSchema() error {
	for _, ddl := range schemaDDL {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := s.db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	if err := migrateDailyLogs(s.db); err != nil {
		return fmt.Errorf("migrating daily_logs: %w", err)
	}
	if err := migrateModuleProgress(s.db); err != nil {
		return fmt.Errorf("migrating module_progress: %w", err)
	}
	return nil
}

// tableColumns returns the column names of a table via PRAGMA table_info.
func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("reading table info for %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name       string
			ctype      string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scanning table info for %s: %w", table, err)
		}
		columns[name] = true
	}
	return columns, rows.Err()
}

// migrateDailyLogs adds the stress and entry_time columns to databases that
// predate them. Existing rows get stress 0 and entry_time copied from
// created_at so orderings stay stable.
func migrateDailyLogs(db *sql.DB) error {
	columns, err := tableColumns(db, "daily_logs")
	if err != nil {
		return err
	}

	if !columns["stress"] {
		if _, err := db.Exec(`ALTER TABLE daily_logs ADD COLUMN stress INTEGER DEFAULT 0`); err != nil {
			return fmt.Errorf("adding stress column: %w", err)
		}
	}
	if _, err := db.Exec(`UPDATE daily_logs SET stress = 0 WHERE stress IS NULL`); err != nil {
		return fmt.Errorf("backfilling stress: %w", err)
	}

	if !columns["entry_time"] {
		if _, err := db.Exec(`ALTER TABLE daily_logs ADD COLUMN entry_time TEXT`); err != nil {
			return fmt.Errorf("adding entry_time column: %w", err)
		}
	}
	if _, err := db.Exec(`UPDATE daily_logs SET entry_time = created_at WHERE entry_time IS NULL OR entry_time = ''`); err != nil {
		return fmt.Errorf("backfilling entry_time: %w", err)
	}
	return nil
}

// migrateModuleProgress adds the completed_at column to databases that
// predate it. No backfill: completion dates for old rows are unknown.
func migrateModuleProgress(db *sql.DB) error {
	columns, err := tableColumns(db, "module_progress")
	if err != nil {
		return err
	}
	if !columns["completed_at"] {
		if _, err := db.Exec(`ALTER TABLE module_progress ADD COLUMN completed_at TEXT`); err != nil {
			return fmt.Errorf("adding completed_at column: %w", err)
		}
	}
	return nil
}
