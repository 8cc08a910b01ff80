// Shared helpers for breathcheck CLI commands.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/calmworks/breathcheck/internal/ai"
	"github.com/calmworks/breathcheck/internal/secrets"
	"github.com/calmworks/breathcheck/internal/secure"
	"github.com/calmworks/breathcheck/internal/service"
	"github.com/calmworks/breathcheck/internal/sqlite"
	"github.com/calmworks/breathcheck/pkg/types"
)

// appName is the keyring namespace root. Changing it orphans stored keys.
const appName = "breathcheck"

// app bundles the open store and the services wired on top of it. One app
// is opened per command invocation; the caller must defer close.
type app struct {
	store    *sqlite.Store
	keys     secrets.Store
	cipher   *secure.Cipher
	vault    *secure.Vault
	gen      *ai.Client
	tracking *service.Tracking
	learning *service.Learning
	modules  *service.ModuleData
	tools    *service.Tools
	settings *service.Settings
	support  *service.Support
	progress *service.Progress
	insights *service.Insights
	feedback *service.Feedback
	maint    *service.Maintenance
	log      *slog.Logger
	dbPath   string
}

// openApp resolves the database path, opens the store, and wires every
// service against it. Setting BREATHCHECK_NO_KEYRING disables the platform
// keychain, which downgrades field encryption to plaintext storage.
func openApp() (*app, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	logger := newLogger()
	store, err := sqlite.Open(dbPath, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var keys secrets.Store = secrets.System{}
	if os.Getenv("BREATHCHECK_NO_KEYRING") != "" {
		keys = secrets.Disabled{}
	}
	cipher := secure.NewCipher(appName, keys, logger)
	vault := secure.NewVault(appName, keys, cipher, logger)
	gen := ai.NewClient(appName, configAIKey, keys, configAIModel, logger)

	a := &app{
		store:  store,
		keys:   keys,
		cipher: cipher,
		vault:  vault,
		gen:    gen,
		log:    logger,
		dbPath: dbPath,
	}
	a.tracking = service.NewTracking(store, cipher, logger)
	a.learning = service.NewLearning(store, logger)
	a.modules = service.NewModuleData(store, cipher, logger)
	a.tools = service.NewTools(store, cipher, logger)
	a.settings = service.NewSettings(store, logger)
	a.support = service.NewSupport(store, logger)
	a.progress = service.NewProgress(store, logger)
	a.insights = service.NewInsights(store, cipher, gen, a.modules, a.tools, a.settings, logger)
	a.feedback = service.NewFeedback(gen, logger)
	a.maint = service.NewMaintenance(store, cipher, vault, gen, logger)
	return a, nil
}

// close releases the store. Failures are logged, not returned; the command
// output has already been written by the time this runs.
func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing store", "error", err)
	}
}

// newLogger builds the CLI logger. Service-level chatter stays hidden
// unless debug is enabled in config.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if configDebug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// parsePayloadFlag decodes a --data style JSON object flag. An empty flag
// value yields an empty payload.
func parsePayloadFlag(raw string) (types.Payload, error) {
	if strings.TrimSpace(raw) == "" {
		return types.Payload{}, nil
	}
	p, err := types.ParsePayload(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}
	return p, nil
}

// confirm prompts for explicit confirmation on stdin. The assumeYes flag
// bypasses the prompt.
func confirm(prompt string, assumeYes bool) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("%s Type \"yes\" to continue: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == "yes"
}

// readPassword returns the flag value when set, otherwise reads one line
// from stdin. Input echoes; there is no terminal handling here.
func readPassword(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Print("Master password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// truncate shortens s for table cells.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// onOff renders a boolean setting for human output.
func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
