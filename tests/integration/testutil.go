// Package integration provides CLI integration tests for breathcheck.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// breathcheckBin is the path to the built breathcheck binary.
	breathcheckBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetBreathcheckBin sets the path to the breathcheck binary (called from TestMain).
func SetBreathcheckBin(path string) {
	breathcheckBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// TestEnv provides an isolated environment with its own config and data
// directory. The platform keychain is disabled for every command, so field
// encryption runs in its degraded plaintext mode and no test ever touches
// the host keyring.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build breathcheck: %v", buildErr)
	}
	if breathcheckBin == "" {
		t.Fatal("breathcheck binary not built (breathcheckBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "data_dir: " + dataDir + "\ndb_file: breathcheck.db\ndebug: false\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: dataDir,
	}
}

// DBPath returns the database file location inside the data directory.
func (e *TestEnv) DBPath() string {
	return filepath.Join(e.DataDir, "breathcheck.db")
}

// CmdResult holds the result of a breathcheck command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes the breathcheck CLI with the given arguments.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(breathcheckBin, allArgs...)
	cmd.Env = append(os.Environ(), "BREATHCHECK_NO_KEYRING=1")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run breathcheck: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRun executes the breathcheck CLI and fails the test on a non-zero exit.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("breathcheck %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// ModuleRow mirrors one element of "modules list --json" output.
type ModuleRow struct {
	ID          string `json:"ID"`
	Title       string `json:"Title"`
	Status      string `json:"Status"`
	Percent     int    `json:"Percent"`
	CompletedAt string `json:"CompletedAt"`
}

// TrackShow mirrors "track show --json" output.
type TrackShow struct {
	Entry *struct {
		Mood    int    `json:"Mood"`
		Anxiety int    `json:"Anxiety"`
		Stress  int    `json:"Stress"`
		Trigger string `json:"Trigger"`
	} `json:"entry"`
	StreakDays int `json:"streak_days"`
}

// ProgressOut mirrors "progress --json" output.
type ProgressOut struct {
	Completion struct {
		CompletedModules int `json:"CompletedModules"`
		TotalModules     int `json:"TotalModules"`
		Percent          int `json:"Percent"`
	} `json:"completion"`
	ToolUsage struct {
		BreathCheckSessions int `json:"BreathCheckSessions"`
		ThoughtLogEntries   int `json:"ThoughtLogEntries"`
	} `json:"tool_usage"`
	Engagement struct {
		ActiveDays int `json:"ActiveDays"`
		StreakDays int `json:"StreakDays"`
	} `json:"engagement"`
}

// MilestoneOut mirrors one element of "milestones --json" output.
type MilestoneOut struct {
	Title       string `json:"Title"`
	Description string `json:"Description"`
	Achieved    bool   `json:"Achieved"`
	Locked      bool   `json:"Locked"`
}

// SettingsOut mirrors "settings get --json" output.
type SettingsOut struct {
	ReminderTime        string `json:"reminder_time"`
	ThemeMode           string `json:"theme_mode"`
	ComfortMode         bool   `json:"comfort_mode"`
	AIEnabled           bool   `json:"ai_enabled"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
	AIKeyConfigured     bool   `json:"ai_key_configured"`
}

// ExportDoc mirrors the JSON export document shape.
type ExportDoc struct {
	DailyLogs []struct {
		Date    string `json:"date"`
		Mood    int    `json:"mood"`
		Anxiety int    `json:"anxiety"`
		Stress  int    `json:"stress"`
		Trigger string `json:"trigger"`
	} `json:"daily_logs"`
	ModuleProgress []struct {
		ModuleID string `json:"module_id"`
		Status   string `json:"status"`
	} `json:"module_progress"`
	ToolUsage []struct {
		ToolName string `json:"tool_name"`
	} `json:"tool_usage"`
}
