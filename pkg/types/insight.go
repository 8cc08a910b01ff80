package types

import "time"

// Insight is one cached generation result. The cache is append-only; the
// newest row by GeneratedAt is the current insight.
type Insight struct {
	ID          int64
	GeneratedAt time.Time
	Summary     string // encrypted at rest
	Raw         string // snapshot JSON the summary was derived from, encrypted at rest
}
