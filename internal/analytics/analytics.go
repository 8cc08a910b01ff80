// Package analytics provides pure computations over tracking data. Functions
// here do no I/O; callers pass in the logs or dates they already loaded and
// an explicit reference day where the calendar matters.
package analytics

import (
	"time"

	"github.com/calmworks/breathcheck/pkg/types"
)

// WeeklyAverages computes arithmetic means of mood, anxiety, and stress over
// logs. Returns nil when logs is empty. The range is taken from the first and
// last log; callers filter to the window they want before calling, so the
// same function serves the 7-day tracking view and the full-history insight
// snapshot.
func WeeklyAverages(logs []types.DailyLog) *types.WeeklyAverages {
	if len(logs) == 0 {
		return nil
	}
	var mood, anxiety, stress float64
	for _, log := range logs {
		mood += float64(log.Mood)
		anxiety += float64(log.Anxiety)
		stress += float64(log.Stress)
	}
	n := float64(len(logs))
	return &types.WeeklyAverages{
		StartDate:  types.Day(logs[0].Date),
		EndDate:    types.Day(logs[len(logs)-1].Date),
		MoodAvg:    mood / n,
		AnxietyAvg: anxiety / n,
		StressAvg:  stress / n,
	}
}

// CurrentStreak counts the consecutive days with a log, ending at today and
// walking backward. A day without a log stops the count; no log today means
// a streak of zero.
func CurrentStreak(logs []types.DailyLog, today time.Time) int {
	if len(logs) == 0 {
		return 0
	}
	dates := make(map[time.Time]bool, len(logs))
	for _, log := range logs {
		dates[types.Day(log.Date)] = true
	}
	return StreakFromDates(dates, today)
}

// StreakFromDates counts the consecutive days present in dates, ending at
// today and walking backward. Keys must be normalized with types.Day.
func StreakFromDates(dates map[time.Time]bool, today time.Time) int {
	streak := 0
	current := types.Day(today)
	for dates[current] {
		streak++
		current = current.AddDate(0, 0, -1)
	}
	return streak
}
