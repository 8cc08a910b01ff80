package types

// UserSettings is the singleton preferences row. Reading settings creates it
// with defaults when absent.
type UserSettings struct {
	ID                  int64
	ReminderTime        string
	ThemeMode           string
	ComfortMode         bool
	AIEnabled           bool
	OnboardingCompleted bool
}

// DefaultSettings returns the settings written on first access.
func DefaultSettings() UserSettings {
	return UserSettings{
		ReminderTime:        "Morning",
		ThemeMode:           "light",
		ComfortMode:         false,
		AIEnabled:           true,
		OnboardingCompleted: false,
	}
}
