// Package service implements the application logic of BreathCheck on top of
// the sqlite store: check-in tracking, the gated learning program, tool
// worksheets, insight generation, and account maintenance. Services own the
// field cipher; everything below them sees only at-rest values and everything
// above them sees only plaintext.
package service

import (
	"time"

	"github.com/calmworks/breathcheck/internal/secure"
	"github.com/calmworks/breathcheck/pkg/types"
)

// utcNow is the default clock for services that stamp rows. Tests swap it
// for a fixed sequence.
func utcNow() time.Time {
	return time.Now().UTC()
}

// logValues dereferences a slice of stored logs for the analytics functions,
// which take values so they cannot mutate repository results.
func logValues(logs []*types.DailyLog) []types.DailyLog {
	out := make([]types.DailyLog, len(logs))
	for i, log := range logs {
		out[i] = *log
	}
	return out
}

// decryptLog returns a copy of log with the trigger note decrypted. The
// stored row is never mutated.
func decryptLog(cipher *secure.Cipher, log *types.DailyLog) *types.DailyLog {
	if log == nil {
		return nil
	}
	out := *log
	out.Trigger = cipher.Decrypt(log.Trigger)
	return &out
}

func decryptLogs(cipher *secure.Cipher, logs []*types.DailyLog) []*types.DailyLog {
	out := make([]*types.DailyLog, len(logs))
	for i, log := range logs {
		out[i] = decryptLog(cipher, log)
	}
	return out
}

// decodePayload decrypts and parses a stored JSON object field. An empty
// stored value decodes to an empty payload.
func decodePayload(cipher *secure.Cipher, raw string) (types.Payload, error) {
	return types.ParsePayload(cipher.Decrypt(raw))
}

// encodePayload serializes and encrypts a payload for storage.
func encodePayload(cipher *secure.Cipher, p types.Payload) (string, error) {
	encoded, err := p.Encode()
	if err != nil {
		return "", err
	}
	return cipher.Encrypt(encoded), nil
}
