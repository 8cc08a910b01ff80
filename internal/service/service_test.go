package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calmworks/breathcheck/internal/secrets"
	"github.com/calmworks/breathcheck/internal/secure"
	"github.com/calmworks/breathcheck/internal/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "breathcheck.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// newTestCipher returns a working cipher over an in-memory keychain, so
// encryption is active in tests without touching the host keyring.
func newTestCipher(t *testing.T) *secure.Cipher {
	t.Helper()
	return secure.NewCipher("breathcheck-test", secrets.NewMemory(), testLogger())
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// fakeGen is a canned Generator for service tests. It records prompts and
// plays back the configured reply, tokens, or error.
type fakeGen struct {
	configured bool
	reply      string
	err        error
	tokens     []string
	streamErr  error
	validOK    bool
	validMsg   string

	prompts       []string
	generateCalls int
}

func (g *fakeGen) Configured() bool { return g.configured }

func (g *fakeGen) ValidateKey(ctx context.Context) (bool, string) {
	return g.validOK, g.validMsg
}

func (g *fakeGen) Generate(ctx context.Context, prompt string) (string, error) {
	g.generateCalls++
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func (g *fakeGen) Stream(ctx context.Context, prompt string, fn func(string) error) error {
	g.prompts = append(g.prompts, prompt)
	for _, token := range g.tokens {
		if err := fn(token); err != nil {
			return err
		}
	}
	return g.streamErr
}
