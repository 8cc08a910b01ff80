package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/calmworks/breathcheck/pkg/types"
)

// dailyLogColumns is the canonical select list. "trigger" needs quoting.
const dailyLogColumns = `id, date, mood, anxiety, stress, "trigger", entry_time, created_at, updated_at`

// scanDailyLog hydrates one daily_logs row.
func scanDailyLog(row rowScanner) (*types.DailyLog, error) {
	var (
		log       types.DailyLog
		date      string
		entryTime string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&log.ID, &date, &log.Mood, &log.Anxiety, &log.Stress, &log.Trigger, &entryTime, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if log.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	if log.EntryTime, err = parseTime(entryTime); err != nil {
		return nil, err
	}
	if log.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if log.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &log, nil
}

// CreateDailyLog inserts a check-in for a date that has no log yet. The
// trigger value is stored as given; encryption happens above this layer.
func (s *Store) CreateDailyLog(date time.Time, mood, anxiety, stress int, trigger string, entryTime time.Time) (*types.DailyLog, error) {
	now := s.now()
	res, err := s.db.Exec(
		`INSERT INTO daily_logs (date, mood, anxiety, stress, "trigger", entry_time, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		formatDate(date), mood, anxiety, stress, trigger, formatTime(entryTime), formatTime(now), formatTime(now),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting daily log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading daily log id: %w", err)
	}
	return &types.DailyLog{
		ID:        id,
		Date:      types.Day(date),
		Mood:      mood,
		Anxiety:   anxiety,
		Stress:    stress,
		Trigger:   trigger,
		EntryTime: entryTime.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// GetDailyLogByDate returns the log for a calendar date, or nil when the
// date has no entry.
func (s *Store) GetDailyLogByDate(date time.Time) (*types.DailyLog, error) {
	row := s.db.QueryRow(
		`SELECT `+dailyLogColumns+` FROM daily_logs WHERE date = ?`,
		formatDate(date),
	)
	log, err := scanDailyLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting daily log for %s: %w", formatDate(date), err)
	}
	return log, nil
}

// UpsertDailyLogByDate creates or overwrites the log for a date. An
// existing row keeps its id and created_at; mood, anxiety, stress, trigger,
// and entry_time are replaced and updated_at is bumped. The second return
// reports whether a new row was created.
func (s *Store) UpsertDailyLogByDate(date time.Time, mood, anxiety, stress int, trigger string, entryTime time.Time) (*types.DailyLog, bool, error) {
	existing, err := s.GetDailyLogByDate(date)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		log, err := s.CreateDailyLog(date, mood, anxiety, stress, trigger, entryTime)
		if err != nil {
			return nil, false, err
		}
		return log, true, nil
	}

	now := s.now()
	_, err = s.db.Exec(
		`UPDATE daily_logs SET mood = ?, anxiety = ?, stress = ?, "trigger" = ?, entry_time = ?, updated_at = ? WHERE id = ?`,
		mood, anxiety, stress, trigger, formatTime(entryTime), formatTime(now), existing.ID,
	)
	if err != nil {
		return nil, false, fmt.Errorf("updating daily log for %s: %w", formatDate(date), err)
	}
	log, err := s.GetDailyLogByDate(date)
	if err != nil {
		return nil, false, err
	}
	return log, false, nil
}

// ListRecentDailyLogs returns the newest logs first, at most limit rows.
func (s *Store) ListRecentDailyLogs(limit int) ([]*types.DailyLog, error) {
	rows, err := s.db.Query(
		`SELECT `+dailyLogColumns+` FROM daily_logs ORDER BY date DESC, entry_time DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent daily logs: %w", err)
	}
	defer rows.Close()
	return collectDailyLogs(rows)
}

// ListDailyLogsByRange returns logs with start <= date <= end, oldest first.
func (s *Store) ListDailyLogsByRange(start, end time.Time) ([]*types.DailyLog, error) {
	rows, err := s.db.Query(
		`SELECT `+dailyLogColumns+` FROM daily_logs WHERE date >= ? AND date <= ? ORDER BY date ASC`,
		formatDate(start), formatDate(end),
	)
	if err != nil {
		return nil, fmt.Errorf("listing daily logs by range: %w", err)
	}
	defer rows.Close()
	return collectDailyLogs(rows)
}

// ListAllDailyLogs returns every log, oldest first.
func (s *Store) ListAllDailyLogs() ([]*types.DailyLog, error) {
	rows, err := s.db.Query(
		`SELECT ` + dailyLogColumns + ` FROM daily_logs ORDER BY date ASC, entry_time ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing daily logs: %w", err)
	}
	defer rows.Close()
	return collectDailyLogs(rows)
}

func collectDailyLogs(rows *sql.Rows) ([]*types.DailyLog, error) {
	var logs []*types.DailyLog
	for rows.Next() {
		log, err := scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning daily log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
