// Package cache provides disk-backed memoization of expensive computations.
//
// Assembling the dataset tables involves downloading and decoding hundreds
// of audio files, so the results are cached to disk and reused across
// process runs. A cache entry is addressed by its file path, which serves
// both as identity and storage location:
//
//	table, err := cache.GetOrCompute(path, buildTable)
//
// The first call invokes buildTable and persists the result at path;
// subsequent calls (including in later processes) decode the file instead.
// Entries are invalidated only by explicit eviction:
//
//	err := cache.Evict(path) // next GetOrCompute recomputes
//
// Values are serialized with encoding/gob, so cached types follow gob's
// rules (exported fields only).
package cache
