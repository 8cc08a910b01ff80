package types

import (
	"strings"
	"time"
)

// Module statuses. A module moves LOCKED -> UNLOCKED -> COMPLETE as the
// learner works through the program.
const (
	StatusLocked   = "LOCKED"
	StatusUnlocked = "UNLOCKED"
	StatusComplete = "COMPLETE"
)

// validStatuses is the set of canonical status values.
var validStatuses = map[string]bool{
	StatusLocked:   true,
	StatusUnlocked: true,
	StatusComplete: true,
}

// NormalizeStatus maps a stored status value onto the canonical set. Legacy
// spellings are folded in ("COMPLETED" -> COMPLETE, "IN_PROGRESS" ->
// UNLOCKED); empty and unrecognized values degrade to LOCKED rather than
// failing, so that old databases stay readable.
func NormalizeStatus(status string) string {
	value := strings.ToUpper(strings.TrimSpace(status))
	switch value {
	case "":
		return StatusLocked
	case "COMPLETED":
		return StatusComplete
	case "IN_PROGRESS":
		return StatusUnlocked
	}
	if !validStatuses[value] {
		return StatusLocked
	}
	return value
}

// ParseStatus normalizes a caller-supplied status for writing. Unlike
// NormalizeStatus it rejects unrecognized input with ErrInvalidStatus instead
// of degrading it to LOCKED.
func ParseStatus(status string) (string, error) {
	value := strings.ToUpper(strings.TrimSpace(status))
	switch value {
	case "COMPLETED":
		return StatusComplete, nil
	case "IN_PROGRESS":
		return StatusUnlocked, nil
	}
	if !validStatuses[value] {
		return "", ErrInvalidStatus
	}
	return value, nil
}

// ModuleProgress records how far the learner is through one program module.
type ModuleProgress struct {
	ID              int64
	ModuleID        string
	Status          string
	ProgressPercent int
	CompletedAt     *time.Time // set once on completion, never cleared
}

// Complete reports whether the normalized status marks the module finished.
func (p *ModuleProgress) Complete() bool {
	return NormalizeStatus(p.Status) == StatusComplete
}

// ModuleData is the learner's saved workbook state for one module. The
// payload is an encrypted JSON object at rest.
type ModuleData struct {
	ID        int64
	ModuleID  string
	Data      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ModuleInfo describes one entry of the learning program catalog.
type ModuleInfo struct {
	ID          string
	Title       string
	Description string
}

// moduleCatalog is the six-module program in order.
var moduleCatalog = []ModuleInfo{
	{
		ID:          "module_1",
		Title:       "Understanding Anxiety",
		Description: "Learn anxiety basics, map your patterns, and build your first coping plan.",
	},
	{
		ID:          "module_2",
		Title:       "Relaxation",
		Description: "Practice paced breathing and relaxation skills.",
	},
	{
		ID:          "module_3",
		Title:       "Our Thoughts",
		Description: "Understand thought patterns linked to anxiety.",
	},
	{
		ID:          "module_4",
		Title:       "Changing Thoughts",
		Description: "Build balanced thoughts with practical challenge steps.",
	},
	{
		ID:          "module_5",
		Title:       "Coping with Worry",
		Description: "Differentiate worries and practice structured coping.",
	},
	{
		ID:          "module_6",
		Title:       "Lifestyle Factors & Relapse Prevention",
		Description: "Create a maintenance plan for long-term stability.",
	},
}

// Modules returns the ordered program catalog.
func Modules() []ModuleInfo {
	out := make([]ModuleInfo, len(moduleCatalog))
	copy(out, moduleCatalog)
	return out
}

// ModuleIDs returns the catalog module IDs in program order.
func ModuleIDs() []string {
	ids := make([]string, len(moduleCatalog))
	for i, m := range moduleCatalog {
		ids[i] = m.ID
	}
	return ids
}

// KnownModule reports whether id belongs to the program catalog.
func KnownModule(id string) bool {
	for _, m := range moduleCatalog {
		if m.ID == id {
			return true
		}
	}
	return false
}
