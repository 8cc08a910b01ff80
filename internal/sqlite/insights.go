package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/calmworks/breathcheck/pkg/types"
)

const insightColumns = `id, generated_at, summary_text, raw_data`

func scanInsight(row rowScanner) (*types.Insight, error) {
	var (
		i           types.Insight
		generatedAt string
	)
	if err := row.Scan(&i.ID, &generatedAt, &i.Summary, &i.Raw); err != nil {
		return nil, err
	}
	var err error
	if i.GeneratedAt, err = parseTime(generatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

// CreateInsight appends a generated insight to the cache.
func (s *Store) CreateInsight(summary, raw string) (*types.Insight, error) {
	now := s.now()
	res, err := s.db.Exec(
		`INSERT INTO insight_cache (generated_at, summary_text, raw_data) VALUES (?, ?, ?)`,
		formatTime(now), summary, raw,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting insight: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading insight id: %w", err)
	}
	return &types.Insight{ID: id, GeneratedAt: now, Summary: summary, Raw: raw}, nil
}

// LatestInsight returns the most recently generated insight, or nil when
// the cache is empty.
func (s *Store) LatestInsight() (*types.Insight, error) {
	row := s.db.QueryRow(
		`SELECT ` + insightColumns + ` FROM insight_cache ORDER BY generated_at DESC LIMIT 1`,
	)
	i, err := scanInsight(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting latest insight: %w", err)
	}
	return i, nil
}

// ListRecentInsights returns the newest insights first, at most limit rows.
func (s *Store) ListRecentInsights(limit int) ([]*types.Insight, error) {
	rows, err := s.db.Query(
		`SELECT `+insightColumns+` FROM insight_cache ORDER BY generated_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent insights: %w", err)
	}
	defer rows.Close()
	return collectInsights(rows)
}

// ListAllInsights returns every cached insight, oldest first. Exports use
// this ordering.
func (s *Store) ListAllInsights() ([]*types.Insight, error) {
	rows, err := s.db.Query(
		`SELECT ` + insightColumns + ` FROM insight_cache ORDER BY generated_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing insights: %w", err)
	}
	defer rows.Close()
	return collectInsights(rows)
}

func collectInsights(rows *sql.Rows) ([]*types.Insight, error) {
	var list []*types.Insight
	for rows.Next() {
		i, err := scanInsight(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning insight: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}
