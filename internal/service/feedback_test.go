package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmworks/breathcheck/pkg/types"
)

const genericFallback = "You completed a useful coping step. " +
	"Notice what changed in your body and thinking. " +
	"Repeat this once more today if anxiety rises."

func TestFallbackThoughtLogDirections(t *testing.T) {
	feedback := NewFeedback(&fakeGen{}, testLogger())
	cases := []struct {
		name    string
		payload types.Payload
		want    string
	}{
		{
			"intensity lowered",
			types.Payload{"emotion_intensity": float64(8), "emotion_rerate": float64(4)},
			"your intensity lowered after reframing",
		},
		{
			"intensity unchanged",
			types.Payload{"emotion_intensity": float64(5), "emotion_rerate": float64(5)},
			"your intensity stayed the same",
		},
		{
			"rerate missing falls back to intensity",
			types.Payload{"emotion_intensity": float64(7)},
			"your intensity stayed the same",
		},
		{
			"intensity rose",
			types.Payload{"emotion_intensity": float64(3), "emotion_rerate": float64(6)},
			"your intensity stayed the same",
		},
		{
			"empty payload",
			types.Payload{},
			"your intensity stayed the same",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := feedback.Fallback(types.ToolThoughtLog, tc.payload)
			assert.Contains(t, text, tc.want)
			assert.True(t, strings.HasPrefix(text, "You captured a clear situation and thought pattern."))
			assert.Contains(t, text, "Small repetitions make this skill stronger.")
		})
	}
}

func TestFallbackGenericTool(t *testing.T) {
	feedback := NewFeedback(&fakeGen{}, testLogger())
	assert.Equal(t, genericFallback, feedback.Fallback(types.ToolBreathCheck, types.Payload{}))
	assert.Equal(t, genericFallback, feedback.Fallback("grounding", nil))
}

func TestGenerateFeedbackUnconfigured(t *testing.T) {
	feedback := NewFeedback(&fakeGen{configured: false}, testLogger())
	text, err := feedback.Generate(context.Background(), "grounding", types.Payload{})
	require.NoError(t, err)
	assert.Equal(t, genericFallback, text)
}

func TestGenerateFeedbackDelegates(t *testing.T) {
	gen := &fakeGen{configured: true, reply: "Nice work today."}
	feedback := NewFeedback(gen, testLogger())

	text, err := feedback.Generate(context.Background(), types.ToolThoughtLog, types.Payload{"situation": "exam"})
	require.NoError(t, err)
	assert.Equal(t, "Nice work today.", text)
	require.Len(t, gen.prompts, 1)
	assert.True(t, strings.HasPrefix(gen.prompts[0], "Provide brief, supportive feedback for the following CBT tool entry."))
	assert.Contains(t, gen.prompts[0], `"tool_name":"thought_log"`)
}

func TestStreamFeedbackUnconfigured(t *testing.T) {
	feedback := NewFeedback(&fakeGen{configured: false}, testLogger())

	var chunks []string
	err := feedback.Stream(context.Background(), "grounding", types.Payload{}, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, genericFallback, chunks[0])
}

func TestStreamFeedbackEmptyStreamFallsBack(t *testing.T) {
	feedback := NewFeedback(&fakeGen{configured: true}, testLogger())

	var chunks []string
	err := feedback.Stream(context.Background(), "grounding", types.Payload{}, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, genericFallback, chunks[0])
}

func TestStreamFeedbackBackendFailureFallsBack(t *testing.T) {
	gen := &fakeGen{
		configured: true,
		tokens:     []string{"partial "},
		streamErr:  types.ErrGenerationFailed,
	}
	feedback := NewFeedback(gen, testLogger())

	var chunks []string
	err := feedback.Stream(context.Background(), "grounding", types.Payload{}, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, chunks, 2, "partial tokens then the terminal fallback chunk")
	assert.Equal(t, "partial ", chunks[0])
	assert.Equal(t, genericFallback, chunks[1])
}

func TestStreamFeedbackConsumerErrorPropagates(t *testing.T) {
	gen := &fakeGen{configured: true, tokens: []string{"a", "b"}}
	feedback := NewFeedback(gen, testLogger())

	stop := errors.New("stop")
	var chunks []string
	err := feedback.Stream(context.Background(), "grounding", types.Payload{}, func(chunk string) error {
		chunks = append(chunks, chunk)
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Len(t, chunks, 1, "consumer abort delivers no fallback")
}
