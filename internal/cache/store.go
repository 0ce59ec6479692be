package cache

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoEntry is returned by Evict when no cache file exists at the key.
var ErrNoEntry = errors.New("no cache entry")

// GetOrCompute returns the value cached at path, computing and persisting
// it first if no cache file exists.
//
// If a file exists at path it is decoded and returned without invoking
// compute. Otherwise compute is invoked, parent directories of path are
// created as needed, and the result is gob-encoded to path before being
// returned.
//
// The key doubles as the storage location, so independent values need
// independent paths. There is no locking: two processes racing on the same
// key may both compute, and the last write wins. That is an accepted
// limitation, not an exactly-once guarantee.
//
// Example:
//
//	table, err := cache.GetOrCompute(cachePath, func() (*model.PatientTable, error) {
//	    return buildPatients()
//	})
func GetOrCompute[T any](path string, compute func() (T, error)) (T, error) {
	var value T

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&value); err != nil {
			return value, fmt.Errorf("decoding cache file %s: %w", path, err)
		}
		return value, nil
	case !os.IsNotExist(err):
		return value, err
	}

	value, err = compute()
	if err != nil {
		return value, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return value, err
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&value); err != nil {
		return value, fmt.Errorf("encoding cache file %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return value, err
	}

	return value, nil
}

// Evict deletes the cache file at path, forcing the next GetOrCompute on
// the same key to recompute.
//
// Returns ErrNoEntry if no file exists at path.
func Evict(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNoEntry, path)
	}
	return err
}
