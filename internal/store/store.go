// Package store provides the persisted key/value layer. Values are JSON
// documents; every backend implements the same three operations and reads
// never fail the caller on corrupt data.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

// Keys under which the tracker keeps its entities.
const (
	KeyPreferences   = "jobTrackerPreferences"
	KeySavedJobs     = "jobTrackerSavedJobs"
	KeyStatus        = "jobTrackerStatus"
	KeyStatusHistory = "jobTrackerStatusHistory"
	KeyProof         = "jobTrackerProofSubmission"
	KeyTestChecklist = "jobTrackerTestChecklist"

	digestKeyPrefix = "jobTrackerDigest_"
)

// ErrInvalidKey is returned for keys that cannot be used as file names or table keys.
var ErrInvalidKey = errors.New("invalid store key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Store is a key to JSON value store. Get reports ok=false for a missing key.
type Store interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// DigestKey returns the key of the digest cached for the given date key (YYYY-MM-DD).
func DigestKey(dateKey string) string {
	return digestKeyPrefix + dateKey
}

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Read decodes the value stored under key into dst. It returns false when the
// key is missing, the backend fails or the stored JSON is malformed; the last
// two cases are logged and dst is left untouched.
func Read(s Store, key string, dst any, logger *zap.Logger) bool {
	if logger == nil {
		logger = zap.NewNop()
	}

	raw, ok, err := s.Get(key)
	if err != nil {
		logger.Warn("reading from store failed, using defaults", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok || len(raw) == 0 {
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		logger.Warn("malformed stored value, using defaults", zap.String("key", key), zap.Error(err))
		return false
	}

	return true
}

// Write serializes the full value and stores it under key.
func Write(s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := s.Set(key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	return nil
}
