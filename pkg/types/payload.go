package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Payload is a decoded JSON object, the unit of data saved by tools and
// learning modules.
type Payload map[string]any

// ParsePayload decodes a JSON object from raw. Empty input yields an empty
// payload. Returns ErrMalformedPayload when raw is not a JSON object, so
// corrupt rows surface at decode time instead of propagating silently.
func ParsePayload(raw string) (Payload, error) {
	if strings.TrimSpace(raw) == "" {
		return Payload{}, nil
	}
	var p Payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if p == nil {
		return Payload{}, nil
	}
	return p, nil
}

// Encode returns the payload as compact JSON.
func (p Payload) Encode() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}
	return string(data), nil
}

// Merge copies the entries of other into p, overwriting existing keys.
// Nested values are replaced, not merged.
func (p Payload) Merge(other Payload) {
	for k, v := range other {
		p[k] = v
	}
}

// Clone returns a shallow copy of the payload.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Int reads an integer field, tolerating the numeric encodings JSON decoding
// produces. Missing or non-numeric values yield 0.
func (p Payload) Int(key string) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// String reads a text field. Missing or non-string values yield "".
func (p Payload) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}
