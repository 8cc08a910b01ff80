package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmworks/breathcheck/internal/secure"
	"github.com/calmworks/breathcheck/internal/sqlite"
	"github.com/calmworks/breathcheck/pkg/types"
)

// insightsFixture wires an Insights orchestrator with all collaborators over
// one store so tests can seed data through the same services the app uses.
type insightsFixture struct {
	store    *sqlite.Store
	cipher   *secure.Cipher
	gen      *fakeGen
	tracking *Tracking
	modules  *ModuleData
	tools    *Tools
	settings *Settings
	insights *Insights
}

func newInsightsFixture(t *testing.T, gen *fakeGen) *insightsFixture {
	t.Helper()
	store := newTestStore(t)
	cipher := newTestCipher(t)
	logger := testLogger()
	modules := NewModuleData(store, cipher, logger)
	tools := NewTools(store, cipher, logger)
	settings := NewSettings(store, logger)
	return &insightsFixture{
		store:    store,
		cipher:   cipher,
		gen:      gen,
		tracking: NewTracking(store, cipher, logger),
		modules:  modules,
		tools:    tools,
		settings: settings,
		insights: NewInsights(store, cipher, gen, modules, tools, settings, logger),
	}
}

func TestGenerateFallbackWhenUnconfigured(t *testing.T) {
	fx := newInsightsFixture(t, &fakeGen{configured: false})

	insight, err := fx.insights.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t,
		"Modules: You have completed 0 of 6 modules. Keep a steady pace and focus on the next unlocked module.\n"+
			"Tracking: Your recent entries help establish patterns. Consistent engagement strengthens progress over time.\n"+
			"Tools: You have 0 BreathCheck tool sessions and 0 thought logs. "+
			"Try a short breathing session when stress rises and capture one thought log this week.",
		insight.Summary)
	assert.Zero(t, fx.gen.generateCalls)

	// The fallback is cached like any generated summary, encrypted.
	cached, err := fx.store.LatestInsight()
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.True(t, strings.HasPrefix(cached.Summary, "enc:"))
}

func TestGenerateFallbackWhenDisabledInSettings(t *testing.T) {
	fx := newInsightsFixture(t, &fakeGen{configured: true, reply: "Modules: backend text"})
	_, err := fx.settings.Update(func(s *types.UserSettings) { s.AIEnabled = false })
	require.NoError(t, err)

	insight, err := fx.insights.Generate(context.Background())
	require.NoError(t, err)
	assert.Contains(t, insight.Summary, "Modules: You have completed 0 of 6 modules.")
	assert.Zero(t, fx.gen.generateCalls, "disabled insights never reach the backend")
}

func TestGenerateUsesBackend(t *testing.T) {
	fx := newInsightsFixture(t, &fakeGen{configured: true, reply: "Modules: steady.\nTracking: good.\nTools: try one."})

	insight, err := fx.insights.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Modules: steady.\nTracking: good.\nTools: try one.", insight.Summary)
	require.Len(t, fx.gen.prompts, 1)

	prompt := fx.gen.prompts[0]
	assert.True(t, strings.HasPrefix(prompt, "Analyze the following anxiety program data."))
	capIdx := strings.Index(prompt, `"app_capabilities"`)
	logsIdx := strings.Index(prompt, `"recent_logs"`)
	require.Greater(t, capIdx, 0)
	assert.Greater(t, logsIdx, capIdx, "capabilities lead the prompt payload")
	assert.Contains(t, prompt, "BreathCheck Tool for paced breathing")
}

func TestGenerateFailureCachesNothing(t *testing.T) {
	fx := newInsightsFixture(t, &fakeGen{configured: true, err: types.ErrGenerationFailed})

	_, err := fx.insights.Generate(context.Background())
	assert.ErrorIs(t, err, types.ErrGenerationFailed)

	cached, err := fx.store.LatestInsight()
	require.NoError(t, err)
	assert.Nil(t, cached, "a failed generation must not overwrite the cache")
}

func TestGenerateCachesSnapshotJSON(t *testing.T) {
	fx := newInsightsFixture(t, &fakeGen{configured: false})

	_, _, err := fx.tracking.LogDay(day(2026, time.March, 1), 6, 4, 3, "crowded train")
	require.NoError(t, err)
	_, err = fx.modules.Update("module_2", types.Payload{"step": float64(3)})
	require.NoError(t, err)
	_, err = fx.tools.CreateEntry(types.ToolThoughtLog, types.Payload{"situation": "meeting"})
	require.NoError(t, err)
	_, err = fx.tools.RecordUsage(types.ToolBreathCheck, types.Payload{"cycles": float64(4)})
	require.NoError(t, err)
	_, err = fx.store.UpsertModuleProgress("module_1", "COMPLETED", 100, nil)
	require.NoError(t, err)

	insight, err := fx.insights.Generate(context.Background())
	require.NoError(t, err)

	var snap map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(insight.Raw), &snap))

	var logs []map[string]any
	require.NoError(t, json.Unmarshal(snap["recent_logs"], &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "2026-03-01", logs[0]["date"])
	assert.Equal(t, "crowded train", logs[0]["trigger"], "snapshot holds plaintext")

	var progress []map[string]any
	require.NoError(t, json.Unmarshal(snap["module_progress"], &progress))
	require.Len(t, progress, 1)
	assert.Equal(t, "COMPLETED", progress[0]["status"], "snapshot keeps the stored spelling")

	var thoughtLogs []map[string]any
	require.NoError(t, json.Unmarshal(snap["thought_logs"], &thoughtLogs))
	assert.Len(t, thoughtLogs, 1)

	var averages map[string]any
	require.NoError(t, json.Unmarshal(snap["weekly_averages"], &averages))
	require.NotNil(t, averages)
	assert.Equal(t, float64(6), averages["mood_avg"])

	assert.Contains(t, insight.Summary, "completed 1 of 1 modules")
}

func TestGenerateEmptySnapshotShape(t *testing.T) {
	fx := newInsightsFixture(t, &fakeGen{configured: false})

	insight, err := fx.insights.Generate(context.Background())
	require.NoError(t, err)

	var snap map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(insight.Raw), &snap))
	assert.JSONEq(t, "[]", string(snap["recent_logs"]), "empty lists stay arrays")
	assert.JSONEq(t, "[]", string(snap["tool_usage"]))
	assert.JSONEq(t, "{}", string(snap["module_data"]))
	assert.JSONEq(t, "null", string(snap["weekly_averages"]))
}

func TestLatestAndRecentDecrypt(t *testing.T) {
	fx := newInsightsFixture(t, &fakeGen{configured: false})

	latest, err := fx.insights.Latest()
	require.NoError(t, err)
	assert.Nil(t, latest, "no cache yet")

	_, err = fx.insights.Generate(context.Background())
	require.NoError(t, err)
	_, err = fx.insights.Generate(context.Background())
	require.NoError(t, err)

	latest, err = fx.insights.Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.False(t, strings.HasPrefix(latest.Summary, "enc:"))
	assert.True(t, strings.HasPrefix(latest.Summary, "Modules:"))

	recent, err := fx.insights.Recent(5)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestModuleSnapshotShape(t *testing.T) {
	fx := newInsightsFixture(t, &fakeGen{configured: false})
	_, err := fx.modules.Update("module_2", types.Payload{"step": float64(3)})
	require.NoError(t, err)
	_, err = fx.store.UpsertModuleProgress("module_2", types.StatusUnlocked, 40, nil)
	require.NoError(t, err)

	snapshot, err := fx.insights.ModuleSnapshot()
	require.NoError(t, err)

	moduleTwo, ok := snapshot["module_2"].(types.Payload)
	require.True(t, ok)
	assert.Equal(t, 3, moduleTwo.Int("step"))

	progress, ok := snapshot["module_progress"].([]types.Payload)
	require.True(t, ok)
	require.Len(t, progress, 1)
	assert.Equal(t, "module_2", progress[0].String("module_id"))
}

func TestStreamThoughtLogFeedbackFallback(t *testing.T) {
	fx := newInsightsFixture(t, &fakeGen{configured: false})

	var chunks []string
	err := fx.insights.StreamThoughtLogFeedback(context.Background(), types.Payload{"situation": "exam"}, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "You captured a clear thought pattern. "+
		"Try one balanced alternative and test it in a small situation today.", chunks[0])
}

func TestStreamThoughtLogFeedbackStreams(t *testing.T) {
	gen := &fakeGen{configured: true, tokens: []string{"You ", "did ", "well."}}
	fx := newInsightsFixture(t, gen)

	var got strings.Builder
	err := fx.insights.StreamThoughtLogFeedback(context.Background(), types.Payload{"situation": "exam"}, func(chunk string) error {
		got.WriteString(chunk)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "You did well.", got.String())

	require.Len(t, gen.prompts, 1)
	assert.True(t, strings.HasPrefix(gen.prompts[0], "Provide brief, supportive feedback for this thought log entry."))
	assert.Contains(t, gen.prompts[0], `"tool_name":"thought_log"`)
	assert.Contains(t, gen.prompts[0], `"situation":"exam"`)
}
