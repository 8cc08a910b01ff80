package types

import "time"

// Tool names recognized by the progress and feedback surfaces.
const (
	ToolBreathCheck = "breathcheck_tool"
	ToolThoughtLog  = "thought_log"
)

// ToolEntry is one saved tool worksheet, for example a completed thought log.
// The data blob is an encrypted JSON object at rest.
type ToolEntry struct {
	ID        int64
	ToolName  string
	Data      string
	CreatedAt time.Time
}

// ToolUsage is one append-only record of a tool session. Usage rows are never
// updated or deleted; engagement metrics count them by date.
type ToolUsage struct {
	ID       int64
	ToolName string
	Metadata string // encrypted JSON object at rest
	UsedAt   time.Time
}
