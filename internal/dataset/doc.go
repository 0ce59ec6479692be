// Package dataset orchestrates assembly of the respiratory-sounds tables.
//
// # Manager
//
// The Manager coordinates the entire load:
//
//  1. Ensure the audio corpus is present (download + extract, both
//     idempotent)
//  2. Enumerate the corpus and parse each file name
//  3. Decode each recording into samples
//  4. Assemble the recordings table with dense recording IDs
//  5. Parse and join the demographic and diagnosis files into the
//     patients table
//
// # Basic Usage
//
//	manager := dataset.NewManager(settings, func(event dataset.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	recordings, err := manager.Recordings(ctx)
//	patients, err := manager.Patients()
//	joined, err := manager.Join(ctx)
//
// # Caching
//
// Both tables are persisted to disk through the cache package and memoized
// in-process, so an expensive assembly happens once and later runs load in
// milliseconds. EmptyCacheRecordings and EmptyCachePatients delete the
// corresponding cache file and drop the in-memory copy.
//
// # Progress Tracking
//
// Progress is reported via a callback that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// # Failure policy
//
// Assembly has no skip-and-continue recovery: a malformed file name, an
// unknown diagnosis name or a sub-table length mismatch aborts the whole
// load. The waveform exporter is the one exception; a preview that fails
// to render is reported and skipped.
package dataset
