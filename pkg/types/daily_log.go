package types

import "time"

// Score bounds for mood, anxiety, and stress check-in values.
const (
	MinScore = 0
	MaxScore = 10
)

// DateLayout is the storage format for calendar dates.
const DateLayout = "2006-01-02"

// DailyLog is one day's check-in. At most one log exists per calendar date;
// saving again for the same date overwrites the scores and trigger note.
type DailyLog struct {
	ID        int64
	Date      time.Time // calendar day, midnight UTC
	Mood      int
	Anxiety   int
	Stress    int
	Trigger   string // free-text note, encrypted at rest
	EntryTime time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidScore reports whether n is a usable check-in score.
func ValidScore(n int) bool {
	return n >= MinScore && n <= MaxScore
}

// Validate checks the log's scores. Returns ErrScoreOutOfRange on the first
// value outside [MinScore, MaxScore].
func (l *DailyLog) Validate() error {
	for _, n := range []int{l.Mood, l.Anxiety, l.Stress} {
		if !ValidScore(n) {
			return ErrScoreOutOfRange
		}
	}
	return nil
}

// Day truncates t to its calendar day at midnight UTC. Logs and engagement
// computations compare dates through this normalization so that map lookups
// and equality behave.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
