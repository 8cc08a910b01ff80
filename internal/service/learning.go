package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/calmworks/breathcheck/internal/sqlite"
	"github.com/calmworks/breathcheck/pkg/types"
)

// demoteCap is the progress ceiling applied when the repair pass re-locks a
// module, so a later unlock does not present it as already finished.
const demoteCap = 99

// Learning manages module progress through the six-part program.
type Learning struct {
	store *sqlite.Store
	log   *slog.Logger
	now   func() time.Time
}

// NewLearning returns a Learning service over store.
func NewLearning(store *sqlite.Store, logger *slog.Logger) *Learning {
	if logger == nil {
		logger = slog.Default()
	}
	return &Learning{store: store, log: logger, now: utcNow}
}

// UpdateProgress writes a module's status and progress percent. The module
// must belong to the program catalog and the status must normalize to a
// recognized value; the percent is clamped to [0, 100]. The completion
// timestamp is stamped on the first transition to COMPLETE and kept on every
// later write.
func (l *Learning) UpdateProgress(moduleID, status string, progressPercent int) (*types.ModuleProgress, error) {
	if !types.KnownModule(moduleID) {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownModule, moduleID)
	}
	parsed, err := types.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	if progressPercent < 0 {
		progressPercent = 0
	} else if progressPercent > 100 {
		progressPercent = 100
	}

	var completedAt *time.Time
	if parsed == types.StatusComplete {
		existing, err := l.store.GetModuleProgress(moduleID)
		if err != nil {
			return nil, err
		}
		if existing == nil || existing.CompletedAt == nil {
			done := l.now()
			completedAt = &done
		}
	}

	entry, err := l.store.UpsertModuleProgress(moduleID, parsed, progressPercent, completedAt)
	if err != nil {
		return nil, fmt.Errorf("updating module progress: %w", err)
	}
	l.log.Info("updated module progress", "module", moduleID, "status", parsed)
	return entry, nil
}

// Progress returns one module's progress row, or nil when none exists yet.
func (l *Learning) Progress(moduleID string) (*types.ModuleProgress, error) {
	return l.store.GetModuleProgress(moduleID)
}

// ListProgress returns every progress row in module ID order.
func (l *Learning) ListProgress() ([]*types.ModuleProgress, error) {
	return l.store.ListModuleProgress()
}

// RepairUnlocks seeds missing progress rows and restores the sequential
// unlock chain: the first module is never LOCKED, a module after a completed
// one is unlocked, and a module whose predecessor is not complete is locked
// again with its percent capped below finished. All decisions read the state
// as it was before this pass, so one call moves each module at most one
// step and repeated calls converge.
func (l *Learning) RepairUnlocks(moduleIDs []string) error {
	existing, err := l.progressByModule()
	if err != nil {
		return err
	}
	for i, id := range moduleIDs {
		if existing[id] != nil {
			continue
		}
		status := types.StatusLocked
		if i == 0 {
			status = types.StatusUnlocked
		}
		if _, err := l.store.UpsertModuleProgress(id, status, 0, nil); err != nil {
			return fmt.Errorf("seeding module %s: %w", id, err)
		}
	}

	snapshot, err := l.progressByModule()
	if err != nil {
		return err
	}
	for i, id := range moduleIDs {
		row := snapshot[id]
		if row == nil {
			continue
		}
		status := types.NormalizeStatus(row.Status)
		if i == 0 {
			if status == types.StatusLocked {
				if _, err := l.store.UpsertModuleProgress(id, types.StatusUnlocked, row.ProgressPercent, nil); err != nil {
					return fmt.Errorf("unlocking module %s: %w", id, err)
				}
				l.log.Info("repaired module unlock", "module", id)
			}
			continue
		}

		prev := snapshot[moduleIDs[i-1]]
		prevComplete := prev != nil && prev.Complete()
		if prevComplete && status == types.StatusLocked {
			if _, err := l.store.UpsertModuleProgress(id, types.StatusUnlocked, row.ProgressPercent, nil); err != nil {
				return fmt.Errorf("unlocking module %s: %w", id, err)
			}
			l.log.Info("repaired module unlock", "module", id)
		}
		if !prevComplete && status == types.StatusUnlocked {
			percent := row.ProgressPercent
			if percent > demoteCap {
				percent = demoteCap
			}
			if _, err := l.store.UpsertModuleProgress(id, types.StatusLocked, percent, nil); err != nil {
				return fmt.Errorf("relocking module %s: %w", id, err)
			}
			l.log.Info("repaired module lock", "module", id)
		}
	}
	return nil
}

func (l *Learning) progressByModule() (map[string]*types.ModuleProgress, error) {
	rows, err := l.store.ListModuleProgress()
	if err != nil {
		return nil, err
	}
	byModule := make(map[string]*types.ModuleProgress, len(rows))
	for _, row := range rows {
		byModule[row.ModuleID] = row
	}
	return byModule, nil
}
