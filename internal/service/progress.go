package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/calmworks/breathcheck/internal/analytics"
	"github.com/calmworks/breathcheck/internal/sqlite"
	"github.com/calmworks/breathcheck/pkg/types"
)

// Thresholds for the fixed bonus milestones.
const (
	engagementWindowDays = 7
	weeklyActiveTarget   = 4
	streakTarget         = 3
)

// Progress computes the read-only progress surface: program completion,
// tool counters, engagement, and the milestone list. It reads counters and
// dates only, so nothing here needs the cipher.
type Progress struct {
	store *sqlite.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewProgress returns a Progress service over store.
func NewProgress(store *sqlite.Store, logger *slog.Logger) *Progress {
	if logger == nil {
		logger = slog.Default()
	}
	return &Progress{store: store, log: logger, now: utcNow}
}

// Completion summarizes how much of the program identified by moduleIDs is
// finished. Percent is the integer floor of completed over total.
func (p *Progress) Completion(moduleIDs []string) (*types.ProgramCompletion, error) {
	rows, err := p.store.ListModuleProgress()
	if err != nil {
		return nil, err
	}
	inProgram := make(map[string]bool, len(moduleIDs))
	for _, id := range moduleIDs {
		inProgram[id] = true
	}
	completed := 0
	for _, row := range rows {
		if inProgram[row.ModuleID] && row.Complete() {
			completed++
		}
	}
	total := len(moduleIDs)
	percent := 0
	if total > 0 {
		percent = completed * 100 / total
	}
	return &types.ProgramCompletion{
		CompletedModules: completed,
		TotalModules:     total,
		Percent:          percent,
	}, nil
}

// ToolCounts tallies breathing sessions and saved thought logs.
func (p *Progress) ToolCounts() (*types.ToolUsageSummary, error) {
	usage, err := p.store.ListToolUsage()
	if err != nil {
		return nil, err
	}
	entries, err := p.store.ListToolEntries()
	if err != nil {
		return nil, err
	}
	summary := &types.ToolUsageSummary{}
	for _, row := range usage {
		if row.ToolName == types.ToolBreathCheck {
			summary.BreathCheckSessions++
		}
	}
	for _, entry := range entries {
		if entry.ToolName == types.ToolThoughtLog {
			summary.ThoughtLogEntries++
		}
	}
	return summary, nil
}

// Engagement reports activity over a trailing window of the given number of
// days, today inclusive. A day is active when any tool session, worksheet,
// module data update, or check-in happened on it. ActiveDays counts only the
// window; StreakDays walks the full activity history backward from today.
func (p *Progress) Engagement(days int) (*types.EngagementSummary, error) {
	if days <= 0 {
		days = engagementWindowDays
	}
	end := types.Day(p.now())
	start := end.AddDate(0, 0, -(days - 1))

	active, err := p.activityDates()
	if err != nil {
		return nil, err
	}
	activeDays := 0
	for day := range active {
		if !day.Before(start) && !day.After(end) {
			activeDays++
		}
	}
	return &types.EngagementSummary{
		StartDate:  start,
		EndDate:    end,
		ActiveDays: activeDays,
		StreakDays: analytics.StreakFromDates(active, end),
	}, nil
}

// Milestones builds the achievement list: one chained milestone per program
// module in order, then the fixed bonus milestones. A module milestone is
// locked while its predecessor is unachieved; bonus milestones are never
// locked.
func (p *Progress) Milestones(moduleIDs []string) ([]types.Milestone, error) {
	completion, err := p.Completion(moduleIDs)
	if err != nil {
		return nil, err
	}
	counts, err := p.ToolCounts()
	if err != nil {
		return nil, err
	}
	engagement, err := p.Engagement(engagementWindowDays)
	if err != nil {
		return nil, err
	}
	rows, err := p.store.ListModuleProgress()
	if err != nil {
		return nil, err
	}
	byModule := make(map[string]*types.ModuleProgress, len(rows))
	for _, row := range rows {
		byModule[row.ModuleID] = row
	}

	milestones := make([]types.Milestone, 0, len(moduleIDs)+5)
	prevAchieved := true
	for i, id := range moduleIDs {
		row := byModule[id]
		achieved := row != nil && row.Complete()
		var completedAt *time.Time
		if achieved {
			completedAt = row.CompletedAt
		}
		milestones = append(milestones, types.Milestone{
			Title:       fmt.Sprintf("Module %d completed", i+1),
			Description: fmt.Sprintf("Complete Module %d.", i+1),
			Achieved:    achieved,
			Locked:      !prevAchieved && !achieved,
			CompletedAt: completedAt,
		})
		prevAchieved = achieved
	}

	milestones = append(milestones,
		types.Milestone{
			Title:       "Relaxation starter",
			Description: "Use the BreathCheck tool once.",
			Achieved:    counts.BreathCheckSessions >= 1,
		},
		types.Milestone{
			Title:       "Thought log starter",
			Description: "Save your first thought log.",
			Achieved:    counts.ThoughtLogEntries >= 1,
		},
		types.Milestone{
			Title:       "Weekly engagement",
			Description: fmt.Sprintf("Engage with BreathCheck on %d days this week.", weeklyActiveTarget),
			Achieved:    engagement.ActiveDays >= weeklyActiveTarget,
		},
		types.Milestone{
			Title:       "Building streak",
			Description: fmt.Sprintf("Reach a %d-day engagement streak.", streakTarget),
			Achieved:    engagement.StreakDays >= streakTarget,
		},
		types.Milestone{
			Title:       "Program complete",
			Description: fmt.Sprintf("Complete all %d modules.", completion.TotalModules),
			Achieved:    completion.CompletedModules == completion.TotalModules && completion.TotalModules > 0,
		},
	)
	return milestones, nil
}

// activityDates unions the calendar days of every kind of activity.
func (p *Progress) activityDates() (map[time.Time]bool, error) {
	active := make(map[time.Time]bool)
	usage, err := p.store.ListToolUsage()
	if err != nil {
		return nil, err
	}
	for _, row := range usage {
		active[types.Day(row.UsedAt)] = true
	}
	entries, err := p.store.ListToolEntries()
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		active[types.Day(entry.CreatedAt)] = true
	}
	moduleData, err := p.store.ListModuleData()
	if err != nil {
		return nil, err
	}
	for _, row := range moduleData {
		active[types.Day(row.UpdatedAt)] = true
	}
	logs, err := p.store.ListAllDailyLogs()
	if err != nil {
		return nil, err
	}
	for _, log := range logs {
		active[types.Day(log.Date)] = true
	}
	return active, nil
}
