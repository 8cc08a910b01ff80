package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/calmworks/breathcheck/internal/ai"
	"github.com/calmworks/breathcheck/internal/analytics"
	"github.com/calmworks/breathcheck/internal/secure"
	"github.com/calmworks/breathcheck/internal/sqlite"
	"github.com/calmworks/breathcheck/pkg/types"
)

// insightsPrompt frames the snapshot for the generation backend. The label
// instruction keeps the summary parseable into the three dashboard sections.
const insightsPrompt = "Analyze the following anxiety program data. Provide professional, warm insights " +
	"in 3 short paragraphs with clear, human tone. Avoid clinical diagnosis; focus on " +
	"patterns, encouragement, and next steps. Recommend in-app activities when appropriate. " +
	"Use these exact labels for each paragraph: Modules:, Tracking:, Tools:.\n"

const thoughtLogPrompt = "Provide brief, supportive feedback for this thought log entry. " +
	"Use 3-5 sentences, avoid diagnosis, and suggest one realistic next step.\n"

const thoughtLogFallback = "You captured a clear thought pattern. " +
	"Try one balanced alternative and test it in a small situation today."

// promptFeatures tells the backend what it may recommend, so suggestions
// stay inside the app.
var promptFeatures = []string{
	"6-module CBT-based learning program",
	"BreathCheck Tool for paced breathing",
	"Thought Log tool for structured reflection",
}

type promptCapabilities struct {
	Features []string `json:"features"`
}

// insightRequest is the full prompt payload: capabilities first, then the
// snapshot fields inlined.
type insightRequest struct {
	AppCapabilities promptCapabilities `json:"app_capabilities"`
	*types.Snapshot
}

// Insights assembles the full-state snapshot, generates (or falls back to) a
// summary, and manages the encrypted insight cache. A generation failure is
// returned to the caller without caching anything; only produced summaries
// are persisted.
type Insights struct {
	store      *sqlite.Store
	cipher     *secure.Cipher
	gen        ai.Generator
	moduleData *ModuleData
	tools      *Tools
	settings   *Settings
	log        *slog.Logger
}

// NewInsights returns an Insights orchestrator over its collaborators.
func NewInsights(store *sqlite.Store, cipher *secure.Cipher, gen ai.Generator,
	moduleData *ModuleData, tools *Tools, settings *Settings, logger *slog.Logger) *Insights {
	if logger == nil {
		logger = slog.Default()
	}
	return &Insights{
		store:      store,
		cipher:     cipher,
		gen:        gen,
		moduleData: moduleData,
		tools:      tools,
		settings:   settings,
		log:        logger,
	}
}

// Generate builds a snapshot of every record, produces a summary, and caches
// both encrypted. When insights are disabled in settings or no backend is
// configured, the summary is the deterministic fallback derived from the
// snapshot counts. The snapshot JSON is cached verbatim alongside the
// summary so a later reader can see what the text was based on.
func (i *Insights) Generate(ctx context.Context) (*types.Insight, error) {
	snap, err := i.buildSnapshot()
	if err != nil {
		return nil, fmt.Errorf("collecting snapshot: %w", err)
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}

	settings, err := i.settings.Current()
	if err != nil {
		return nil, err
	}
	var summary string
	if settings.AIEnabled && i.gen.Configured() {
		prompt, err := json.Marshal(insightRequest{
			AppCapabilities: promptCapabilities{Features: promptFeatures},
			Snapshot:        snap,
		})
		if err != nil {
			return nil, fmt.Errorf("encoding prompt: %w", err)
		}
		summary, err = i.gen.Generate(ctx, insightsPrompt+string(prompt))
		if err != nil {
			return nil, err
		}
	} else {
		summary = fallbackSummary(snap)
	}

	cached, err := i.store.CreateInsight(i.cipher.Encrypt(summary), i.cipher.Encrypt(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("caching insight: %w", err)
	}
	i.log.Info("generated insights")
	return i.decryptInsight(cached), nil
}

// Latest returns the newest cached insight decrypted, or nil when none has
// been generated yet.
func (i *Insights) Latest() (*types.Insight, error) {
	row, err := i.store.LatestInsight()
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	return i.decryptInsight(row), nil
}

// Recent returns up to limit cached insights, newest first, decrypted.
func (i *Insights) Recent(limit int) ([]*types.Insight, error) {
	rows, err := i.store.ListRecentInsights(limit)
	if err != nil {
		return nil, err
	}
	out := make([]*types.Insight, len(rows))
	for n, row := range rows {
		out[n] = i.decryptInsight(row)
	}
	return out, nil
}

// ModuleSnapshot returns the decoded module payloads keyed by module ID plus
// a "module_progress" entry listing every progress row, the shape the module
// review screen renders.
func (i *Insights) ModuleSnapshot() (types.Payload, error) {
	payloads, err := i.moduleData.Payloads()
	if err != nil {
		return nil, err
	}
	rows, err := i.store.ListModuleProgress()
	if err != nil {
		return nil, err
	}
	out := types.Payload{}
	for id, data := range payloads {
		out[id] = data
	}
	progress := make([]types.Payload, 0, len(rows))
	for _, row := range rows {
		progress = append(progress, types.Payload{
			"module_id":        row.ModuleID,
			"status":           row.Status,
			"progress_percent": row.ProgressPercent,
		})
	}
	out["module_progress"] = progress
	return out, nil
}

// StreamThoughtLogFeedback streams supportive feedback for one thought log
// entry through fn. Without a configured backend it delivers the single
// fallback chunk and stops.
func (i *Insights) StreamThoughtLogFeedback(ctx context.Context, entry types.Payload, fn func(string) error) error {
	if !i.gen.Configured() {
		return fn(thoughtLogFallback)
	}
	request, err := json.Marshal(struct {
		ToolName string        `json:"tool_name"`
		Entry    types.Payload `json:"entry"`
	}{ToolName: types.ToolThoughtLog, Entry: entry})
	if err != nil {
		return fmt.Errorf("encoding entry: %w", err)
	}
	return i.gen.Stream(ctx, thoughtLogPrompt+string(request), fn)
}

// buildSnapshot collects and decrypts every record into the snapshot shape.
// List fields are always non-nil so the cached JSON holds empty arrays, not
// nulls; only the averages block may be null.
func (i *Insights) buildSnapshot() (*types.Snapshot, error) {
	logs, err := i.store.ListAllDailyLogs()
	if err != nil {
		return nil, err
	}
	decrypted := decryptLogs(i.cipher, logs)

	snap := &types.Snapshot{
		RecentLogs:     make([]types.SnapshotLog, 0, len(decrypted)),
		ModuleData:     map[string]types.Payload{},
		ToolEntries:    []types.SnapshotToolEntry{},
		ThoughtLogs:    []types.SnapshotThoughtLog{},
		ToolUsage:      []types.SnapshotToolUsage{},
		ModuleProgress: []types.SnapshotProgress{},
	}
	for _, log := range decrypted {
		at := log.EntryTime
		if at.IsZero() {
			at = log.CreatedAt
		}
		snap.RecentLogs = append(snap.RecentLogs, types.SnapshotLog{
			Date:    log.Date.Format(types.DateLayout),
			Time:    at.Format(time.RFC3339),
			Mood:    log.Mood,
			Anxiety: log.Anxiety,
			Stress:  log.Stress,
			Trigger: log.Trigger,
		})
	}
	if averages := analytics.WeeklyAverages(logValues(decrypted)); averages != nil {
		snap.WeeklyAverages = &types.SnapshotAverages{
			StartDate:  averages.StartDate.Format(types.DateLayout),
			EndDate:    averages.EndDate.Format(types.DateLayout),
			MoodAvg:    averages.MoodAvg,
			AnxietyAvg: averages.AnxietyAvg,
			StressAvg:  averages.StressAvg,
		}
	}

	payloads, err := i.moduleData.Payloads()
	if err != nil {
		return nil, err
	}
	for id, data := range payloads {
		snap.ModuleData[id] = data
	}

	entries, err := i.tools.Entries()
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		data, err := types.ParsePayload(entry.Data)
		if err != nil {
			return nil, fmt.Errorf("decoding entry %d: %w", entry.ID, err)
		}
		createdAt := entry.CreatedAt.Format(time.RFC3339)
		snap.ToolEntries = append(snap.ToolEntries, types.SnapshotToolEntry{
			ToolName:  entry.ToolName,
			CreatedAt: createdAt,
			Data:      data,
		})
		if entry.ToolName == types.ToolThoughtLog {
			snap.ThoughtLogs = append(snap.ThoughtLogs, types.SnapshotThoughtLog{
				CreatedAt: createdAt,
				Data:      data,
			})
		}
	}

	usage, err := i.tools.Usage()
	if err != nil {
		return nil, err
	}
	for _, row := range usage {
		metadata, err := types.ParsePayload(row.Metadata)
		if err != nil {
			return nil, fmt.Errorf("decoding session %d: %w", row.ID, err)
		}
		snap.ToolUsage = append(snap.ToolUsage, types.SnapshotToolUsage{
			ToolName: row.ToolName,
			UsedAt:   row.UsedAt.Format(time.RFC3339),
			Metadata: metadata,
		})
	}

	progress, err := i.store.ListModuleProgress()
	if err != nil {
		return nil, err
	}
	for _, row := range progress {
		snap.ModuleProgress = append(snap.ModuleProgress, types.SnapshotProgress{
			ModuleID:        row.ModuleID,
			Status:          row.Status,
			ProgressPercent: row.ProgressPercent,
		})
	}
	return snap, nil
}

func (i *Insights) decryptInsight(row *types.Insight) *types.Insight {
	out := *row
	out.Summary = i.cipher.Decrypt(row.Summary)
	out.Raw = i.cipher.Decrypt(row.Raw)
	return &out
}

// fallbackSummary renders the no-backend summary from snapshot counts alone,
// so the same snapshot always yields the same text.
func fallbackSummary(snap *types.Snapshot) string {
	completed := 0
	for _, row := range snap.ModuleProgress {
		if types.NormalizeStatus(row.Status) == types.StatusComplete {
			completed++
		}
	}
	total := len(snap.ModuleProgress)
	if total == 0 {
		total = len(types.ModuleIDs())
	}
	return fmt.Sprintf(
		"Modules: You have completed %d of %d modules. Keep a steady pace and focus on the next unlocked module.\n"+
			"Tracking: Your recent entries help establish patterns. Consistent engagement strengthens progress over time.\n"+
			"Tools: You have %d BreathCheck tool sessions and %d thought logs. "+
			"Try a short breathing session when stress rises and capture one thought log this week.",
		completed, total, len(snap.ToolUsage), len(snap.ThoughtLogs),
	)
}
