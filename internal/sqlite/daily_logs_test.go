// Unit tests for daily log storage: upsert semantics and list orderings.
package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestUpsertDailyLogCreatesThenOverwrites(t *testing.T) {
	s := setupStore(t)
	t1 := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 8, 10, 21, 30, 0, 0, time.UTC)
	fixClock(s, t1, t2)

	day := date(2026, 8, 10)

	log, created, err := s.UpsertDailyLogByDate(day, 5, 6, 4, "meeting", t1)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 5, log.Mood)
	assert.Equal(t, "meeting", log.Trigger)
	assert.Equal(t, t1, log.CreatedAt)

	// Same date again: one row per day, scores and note overwritten.
	log2, created, err := s.UpsertDailyLogByDate(day, 7, 3, 2, "evening walk", t2)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, log.ID, log2.ID, "row identity survives the overwrite")
	assert.Equal(t, 7, log2.Mood)
	assert.Equal(t, "evening walk", log2.Trigger)
	assert.Equal(t, t2, log2.EntryTime)
	assert.Equal(t, t1, log2.CreatedAt, "created_at never changes")
	assert.Equal(t, t2, log2.UpdatedAt)

	all, err := s.ListAllDailyLogs()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetDailyLogByDateMissing(t *testing.T) {
	s := setupStore(t)

	log, err := s.GetDailyLogByDate(date(2026, 1, 1))
	require.NoError(t, err)
	assert.Nil(t, log)
}

func TestListRecentDailyLogsNewestFirst(t *testing.T) {
	s := setupStore(t)

	days := []time.Time{date(2026, 8, 1), date(2026, 8, 3), date(2026, 8, 2)}
	for i, d := range days {
		_, err := s.CreateDailyLog(d, 5+i, 4, 3, "", d.Add(9*time.Hour))
		require.NoError(t, err)
	}

	recent, err := s.ListRecentDailyLogs(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, date(2026, 8, 3), recent[0].Date)
	assert.Equal(t, date(2026, 8, 2), recent[1].Date)
}

func TestListDailyLogsByRange(t *testing.T) {
	s := setupStore(t)

	for d := 1; d <= 5; d++ {
		_, err := s.CreateDailyLog(date(2026, 8, d), 5, 4, 3, "", date(2026, 8, d))
		require.NoError(t, err)
	}

	logs, err := s.ListDailyLogsByRange(date(2026, 8, 2), date(2026, 8, 4))
	require.NoError(t, err)
	require.Len(t, logs, 3, "range bounds are inclusive")
	assert.Equal(t, date(2026, 8, 2), logs[0].Date)
	assert.Equal(t, date(2026, 8, 4), logs[2].Date)
}

func TestListAllDailyLogsOldestFirst(t *testing.T) {
	s := setupStore(t)

	for _, d := range []time.Time{date(2026, 8, 3), date(2026, 8, 1), date(2026, 8, 2)} {
		_, err := s.CreateDailyLog(d, 5, 4, 3, "", d)
		require.NoError(t, err)
	}

	logs, err := s.ListAllDailyLogs()
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, date(2026, 8, 1), logs[0].Date)
	assert.Equal(t, date(2026, 8, 3), logs[2].Date)
}

func TestDailyLogStoresTriggerVerbatim(t *testing.T) {
	s := setupStore(t)

	// Encryption happens above this layer; whatever arrives is what is
	// stored and returned, including ciphertext tokens.
	_, err := s.CreateDailyLog(date(2026, 8, 10), 5, 4, 3, "enc:abc123", date(2026, 8, 10))
	require.NoError(t, err)

	log, err := s.GetDailyLogByDate(date(2026, 8, 10))
	require.NoError(t, err)
	assert.Equal(t, "enc:abc123", log.Trigger)
}
