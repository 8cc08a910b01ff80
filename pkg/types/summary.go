package types

import "time"

// WeeklyAverages holds arithmetic means over a run of daily logs. The range
// is taken from the logs themselves; callers pre-filter to the window they
// care about.
type WeeklyAverages struct {
	StartDate  time.Time
	EndDate    time.Time
	MoodAvg    float64
	AnxietyAvg float64
	StressAvg  float64
}

// ProgramCompletion summarizes module completion across the program.
type ProgramCompletion struct {
	CompletedModules int
	TotalModules     int
	Percent          int // floor of completed/total
}

// ToolUsageSummary counts tool activity for the progress surface.
type ToolUsageSummary struct {
	BreathCheckSessions int
	ThoughtLogEntries   int
}

// EngagementSummary reports activity inside a trailing window plus the
// current streak. ActiveDays is bounded by the window; StreakDays is computed
// over the full history and may exceed it.
type EngagementSummary struct {
	StartDate  time.Time
	EndDate    time.Time
	ActiveDays int
	StreakDays int
}

// Milestone is one achievement on the progress screen. Module milestones
// follow the completion chain and can be locked; bonus milestones are never
// locked.
type Milestone struct {
	Title       string
	Description string
	Achieved    bool
	Locked      bool
	CompletedAt *time.Time
}
