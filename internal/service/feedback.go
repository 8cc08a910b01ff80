package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/calmworks/breathcheck/internal/ai"
	"github.com/calmworks/breathcheck/pkg/types"
)

const feedbackPrompt = "Provide brief, supportive feedback for the following CBT tool entry. " +
	"Use 3-5 sentences, avoid diagnosis, and suggest a helpful next step.\n"

// Feedback produces supportive feedback for completed tool worksheets. Every
// path ends in text: when the backend is unconfigured, fails, or streams
// nothing, the caller gets the deterministic fallback for the tool instead
// of an error.
type Feedback struct {
	gen ai.Generator
	log *slog.Logger
}

// NewFeedback returns a Feedback service over gen.
func NewFeedback(gen ai.Generator, logger *slog.Logger) *Feedback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feedback{gen: gen, log: logger}
}

// Configured reports whether a generation backend is available.
func (f *Feedback) Configured() bool {
	return f.gen.Configured()
}

// Generate returns feedback for one worksheet in a single response. Without
// a configured backend it returns the fallback text; a backend failure is
// returned to the caller.
func (f *Feedback) Generate(ctx context.Context, toolName string, payload types.Payload) (string, error) {
	if !f.gen.Configured() {
		return f.Fallback(toolName, payload), nil
	}
	prompt, err := f.prompt(toolName, payload)
	if err != nil {
		return "", err
	}
	return f.gen.Generate(ctx, prompt)
}

// Stream delivers feedback for one worksheet through fn token by token.
// Backend failures and empty streams resolve to a single fallback chunk, so
// the consumer always receives text. An error returned by fn itself aborts
// the stream and is returned unchanged.
func (f *Feedback) Stream(ctx context.Context, toolName string, payload types.Payload, fn func(string) error) error {
	if !f.gen.Configured() {
		return fn(f.Fallback(toolName, payload))
	}
	prompt, err := f.prompt(toolName, payload)
	if err != nil {
		return err
	}
	yielded := false
	err = f.gen.Stream(ctx, prompt, func(token string) error {
		yielded = true
		return fn(token)
	})
	if err != nil {
		if errors.Is(err, types.ErrGenerationFailed) || errors.Is(err, types.ErrNoAPIKey) {
			f.log.Warn("feedback stream failed, using fallback", "tool", toolName, "error", err)
			return fn(f.Fallback(toolName, payload))
		}
		return err
	}
	if !yielded {
		return fn(f.Fallback(toolName, payload))
	}
	return nil
}

// Fallback returns the deterministic feedback for a worksheet, derived only
// from the payload. Thought logs get a reframing-aware message; every other
// tool shares the generic encouragement.
func (f *Feedback) Fallback(toolName string, payload types.Payload) string {
	if toolName == types.ToolThoughtLog {
		intensity := payload.Int("emotion_intensity")
		rerate := payload.Int("emotion_rerate")
		if rerate == 0 {
			rerate = intensity
		}
		direction := "your intensity stayed the same"
		if intensity-rerate > 0 {
			direction = "your intensity lowered after reframing"
		}
		return "You captured a clear situation and thought pattern. " +
			fmt.Sprintf("After re-rating, %s. ", direction) +
			"Keep the alternative thought practical and testable today. " +
			"Small repetitions make this skill stronger."
	}
	return "You completed a useful coping step. " +
		"Notice what changed in your body and thinking. " +
		"Repeat this once more today if anxiety rises."
}

func (f *Feedback) prompt(toolName string, payload types.Payload) (string, error) {
	request, err := json.Marshal(struct {
		ToolName string        `json:"tool_name"`
		Entry    types.Payload `json:"entry"`
	}{ToolName: toolName, Entry: payload})
	if err != nil {
		return "", fmt.Errorf("encoding %s entry: %w", toolName, err)
	}
	return feedbackPrompt + string(request), nil
}
