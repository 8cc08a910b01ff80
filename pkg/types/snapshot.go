package types

// Snapshot is the decrypted state bundle assembled for insight generation.
// Its JSON encoding is both the AI prompt payload and the raw data cached
// alongside each generated summary, so the field tags are a wire contract.
type Snapshot struct {
	RecentLogs     []SnapshotLog        `json:"recent_logs"`
	WeeklyAverages *SnapshotAverages    `json:"weekly_averages"`
	ModuleData     map[string]Payload   `json:"module_data"`
	ToolEntries    []SnapshotToolEntry  `json:"tool_entries"`
	ThoughtLogs    []SnapshotThoughtLog `json:"thought_logs"`
	ToolUsage      []SnapshotToolUsage  `json:"tool_usage"`
	ModuleProgress []SnapshotProgress   `json:"module_progress"`
}

// SnapshotLog is one daily log in snapshot form.
type SnapshotLog struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Mood    int    `json:"mood"`
	Anxiety int    `json:"anxiety"`
	Stress  int    `json:"stress"`
	Trigger string `json:"trigger"`
}

// SnapshotAverages carries weekly averages in snapshot form.
type SnapshotAverages struct {
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	MoodAvg    float64 `json:"mood_avg"`
	AnxietyAvg float64 `json:"anxiety_avg"`
	StressAvg  float64 `json:"stress_avg"`
}

// SnapshotToolEntry is one saved tool worksheet in snapshot form.
type SnapshotToolEntry struct {
	ToolName  string  `json:"tool_name"`
	CreatedAt string  `json:"created_at"`
	Data      Payload `json:"data"`
}

// SnapshotThoughtLog is the thought-log subset of tool entries.
type SnapshotThoughtLog struct {
	CreatedAt string  `json:"created_at"`
	Data      Payload `json:"data"`
}

// SnapshotToolUsage is one tool session in snapshot form.
type SnapshotToolUsage struct {
	ToolName string  `json:"tool_name"`
	UsedAt   string  `json:"used_at"`
	Metadata Payload `json:"metadata"`
}

// SnapshotProgress is one module progress row in snapshot form.
type SnapshotProgress struct {
	ModuleID        string `json:"module_id"`
	Status          string `json:"status"`
	ProgressPercent int    `json:"progress_percent"`
}
