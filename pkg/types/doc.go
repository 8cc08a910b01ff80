// Package types defines the entities, statuses, and standard errors shared by
// the BreathCheck storage, security, and service layers.
package types

import "errors"

// Standard errors returned by stores and services. Callers match them with
// errors.Is; layers add context with fmt.Errorf("...: %w", err).
var (
	// ErrNotFound is returned when a row addressed by ID does not exist and
	// its absence is exceptional (for example updating a tool entry).
	ErrNotFound = errors.New("not found")

	// ErrScoreOutOfRange is returned for mood, anxiety, or stress values
	// outside [MinScore, MaxScore].
	ErrScoreOutOfRange = errors.New("score out of range")

	// ErrInvalidStatus is returned when a module status cannot be normalized
	// to one of the recognized values.
	ErrInvalidStatus = errors.New("invalid module status")

	// ErrUnknownModule is returned for module IDs outside the program catalog.
	ErrUnknownModule = errors.New("unknown module")

	// ErrMalformedPayload is returned when a stored JSON payload cannot be
	// decoded into an object.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrSecretNotFound is returned by secret stores for missing entries.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrNoAPIKey is returned by the AI backend when no API key resolves.
	ErrNoAPIKey = errors.New("no api key configured")

	// ErrGenerationFailed is returned when an AI request was attempted and
	// did not produce a usable result.
	ErrGenerationFailed = errors.New("insight generation failed")

	// ErrUnsupportedFormat is returned for export formats this build cannot
	// write.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
