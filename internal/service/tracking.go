package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/calmworks/breathcheck/internal/analytics"
	"github.com/calmworks/breathcheck/internal/secure"
	"github.com/calmworks/breathcheck/internal/sqlite"
	"github.com/calmworks/breathcheck/pkg/types"
)

// Query windows for the tracking dashboard.
const (
	defaultRecentLogs = 10
	weeklyWindowDays  = 7
	streakLookback    = 30
)

// Tracking manages daily check-ins. Trigger notes are encrypted before they
// reach the store and decrypted on the way out.
type Tracking struct {
	store  *sqlite.Store
	cipher *secure.Cipher
	log    *slog.Logger
	now    func() time.Time
}

// NewTracking returns a Tracking service over store.
func NewTracking(store *sqlite.Store, cipher *secure.Cipher, logger *slog.Logger) *Tracking {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracking{store: store, cipher: cipher, log: logger, now: utcNow}
}

// LogDay saves the check-in for date, overwriting an existing entry for the
// same calendar day. Scores must be within [types.MinScore, types.MaxScore].
// Returns the saved log with the trigger decrypted and whether a new row was
// created.
func (t *Tracking) LogDay(date time.Time, mood, anxiety, stress int, trigger string) (*types.DailyLog, bool, error) {
	probe := types.DailyLog{Mood: mood, Anxiety: anxiety, Stress: stress}
	if err := probe.Validate(); err != nil {
		return nil, false, err
	}
	entry, created, err := t.store.UpsertDailyLogByDate(
		types.Day(date), mood, anxiety, stress, t.cipher.Encrypt(trigger), t.now(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("saving daily log: %w", err)
	}
	t.log.Info("saved daily log", "date", entry.Date.Format(types.DateLayout), "created", created)
	return decryptLog(t.cipher, entry), created, nil
}

// Day returns the check-in for a calendar date, or nil when none exists.
func (t *Tracking) Day(date time.Time) (*types.DailyLog, error) {
	entry, err := t.store.GetDailyLogByDate(types.Day(date))
	if err != nil {
		return nil, err
	}
	return decryptLog(t.cipher, entry), nil
}

// Recent returns up to limit check-ins, newest first. A non-positive limit
// uses the dashboard default.
func (t *Tracking) Recent(limit int) ([]*types.DailyLog, error) {
	if limit <= 0 {
		limit = defaultRecentLogs
	}
	logs, err := t.store.ListRecentDailyLogs(limit)
	if err != nil {
		return nil, err
	}
	return decryptLogs(t.cipher, logs), nil
}

// WeeklyAverages computes score averages over the trailing seven days,
// today inclusive. Returns nil when the window holds no logs.
func (t *Tracking) WeeklyAverages() (*types.WeeklyAverages, error) {
	end := types.Day(t.now())
	start := end.AddDate(0, 0, -(weeklyWindowDays - 1))
	logs, err := t.store.ListDailyLogsByRange(start, end)
	if err != nil {
		return nil, err
	}
	return analytics.WeeklyAverages(logValues(logs)), nil
}

// CurrentStreak counts consecutive days with a check-in ending today. The
// walk looks back over the most recent logs only; a streak longer than the
// lookback reports the lookback.
func (t *Tracking) CurrentStreak() (int, error) {
	logs, err := t.store.ListRecentDailyLogs(streakLookback)
	if err != nil {
		return 0, err
	}
	return analytics.CurrentStreak(logValues(logs), t.now()), nil
}
