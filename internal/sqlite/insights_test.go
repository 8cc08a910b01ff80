package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestInsightEmpty(t *testing.T) {
	s := setupStore(t)

	i, err := s.LatestInsight()
	require.NoError(t, err)
	assert.Nil(t, i)
}

func TestInsightOrderings(t *testing.T) {
	s := setupStore(t)
	fixClock(s,
		time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC),
	)

	for _, summary := range []string{"first", "second", "third"} {
		_, err := s.CreateInsight(summary, `{}`)
		require.NoError(t, err)
	}

	latest, err := s.LatestInsight()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "third", latest.Summary)

	recent, err := s.ListRecentInsights(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "third", recent[0].Summary, "newest first")
	assert.Equal(t, "second", recent[1].Summary)

	all, err := s.ListAllInsights()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Summary, "exports read oldest first")
}
