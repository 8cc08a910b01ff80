package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Payload
		wantErr error
	}{
		{"empty yields empty object", "", Payload{}, nil},
		{"whitespace yields empty object", "  \n", Payload{}, nil},
		{"null yields empty object", "null", Payload{}, nil},
		{"object decoded", `{"a":1,"b":"x"}`, Payload{"a": float64(1), "b": "x"}, nil},
		{"array rejected", `[1,2]`, nil, ErrMalformedPayload},
		{"garbage rejected", `{"a":`, nil, ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePayload(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPayloadMerge(t *testing.T) {
	base := Payload{"keep": "old", "overwrite": "old", "nested": Payload{"a": 1}}
	base.Merge(Payload{"overwrite": "new", "added": true, "nested": Payload{"b": 2}})

	assert.Equal(t, "old", base["keep"])
	assert.Equal(t, "new", base["overwrite"])
	assert.Equal(t, true, base["added"])
	// Nested objects are replaced wholesale, not merged.
	assert.Equal(t, Payload{"b": 2}, base["nested"])
}

func TestPayloadClone(t *testing.T) {
	orig := Payload{"a": 1}
	clone := orig.Clone()
	clone["a"] = 2
	clone["b"] = 3

	assert.Equal(t, 1, orig["a"])
	assert.NotContains(t, orig, "b")
}

func TestPayloadInt(t *testing.T) {
	p := Payload{
		"float":  float64(7),
		"int":    5,
		"string": "3",
		"junk":   "abc",
		"bool":   true,
	}

	assert.Equal(t, 7, p.Int("float"))
	assert.Equal(t, 5, p.Int("int"))
	assert.Equal(t, 3, p.Int("string"))
	assert.Equal(t, 0, p.Int("junk"))
	assert.Equal(t, 0, p.Int("bool"))
	assert.Equal(t, 0, p.Int("missing"))
}

func TestPayloadEncodeRoundTrip(t *testing.T) {
	p := Payload{"worry": "exam", "intensity": float64(6)}
	raw, err := p.Encode()
	require.NoError(t, err)

	back, err := ParsePayload(raw)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}
