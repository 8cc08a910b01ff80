package types

import "time"

// SupportContact is a personal contact the user can reach out to.
type SupportContact struct {
	ID        int64
	Name      string
	Phone     string
	Note      string
	CreatedAt time.Time
}

// SupportResource is an external help resource, such as a hotline.
type SupportResource struct {
	ID        int64
	Title     string
	Contact   string
	Note      string
	CreatedAt time.Time
}
