package dataset

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/icbhi/respiratory-sounds/internal/audio"
	"github.com/icbhi/respiratory-sounds/internal/cache"
	"github.com/icbhi/respiratory-sounds/internal/config"
	"github.com/icbhi/respiratory-sounds/internal/http"
	"github.com/icbhi/respiratory-sounds/internal/icbhi"
	ioutils "github.com/icbhi/respiratory-sounds/internal/io"
	"github.com/icbhi/respiratory-sounds/internal/model"
)

// ErrTableMismatch is returned when the metadata and audio sub-tables
// assembled from the corpus disagree in length. The two are derived from
// the same file enumeration, so a divergence signals a parser/decoder
// desynchronization bug; assembly aborts rather than producing a silently
// misaligned table.
var ErrTableMismatch = errors.New("recording sub-table length mismatch")

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a dataset assembly progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Manager assembles and memoizes the dataset tables.
//
// A Manager owns the in-memory recordings and patients tables. Each table
// is built at most once per process (guarded by a mutex) and persisted to a
// disk cache, so later processes skip the download/decode work entirely.
// The eviction methods provide the controlled reset.
type Manager struct {
	settings   *config.Settings
	httpClient *http.Client
	onProgress func(ProgressEvent)

	mu         sync.Mutex
	recordings *model.RecordingTable
	patients   *model.PatientTable
}

// NewManager creates a new dataset Manager.
//
// onProgress receives human-readable progress events during downloads and
// assembly; pass nil to discard them.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:   settings,
		httpClient: http.NewClient(),
		onProgress: onProgress,
	}
}

// Recordings returns the recordings table, assembling it on first access.
//
// The first call in a process either decodes the disk cache or, when no
// cache exists, downloads and extracts the corpus (both steps are
// idempotent: a present archive file skips the download, a present corpus
// directory skips the extraction), enumerates the audio files, parses each
// file name and decodes each recording. The result is persisted through
// the cache and memoized for the rest of the process.
func (m *Manager) Recordings(ctx context.Context) (*model.RecordingTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.recordings != nil {
		return m.recordings, nil
	}

	table, err := cache.GetOrCompute(m.settings.RecordingsCachePath(), func() (*model.RecordingTable, error) {
		return m.buildRecordings(ctx)
	})
	if err != nil {
		return nil, err
	}

	m.recordings = table
	return table, nil
}

// Patients returns the patients table, assembling it on first access.
//
// The table is the inner join of the demographic file and the diagnosis
// table on patient number, keyed by patient number. Like Recordings, the
// result is cached on disk and memoized in-process.
func (m *Manager) Patients() (*model.PatientTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.patients != nil {
		return m.patients, nil
	}

	table, err := cache.GetOrCompute(m.settings.PatientsCachePath(), m.buildPatients)
	if err != nil {
		return nil, err
	}

	m.patients = table
	return table, nil
}

// Join returns the inner join of the recordings and patients tables on
// patient number, loading either table first if needed.
func (m *Manager) Join(ctx context.Context) ([]model.RecordingPatientRow, error) {
	recordings, err := m.Recordings(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := m.Patients()
	if err != nil {
		return nil, err
	}
	return model.JoinRecordingsPatients(recordings, patients), nil
}

// EmptyCacheRecordings deletes the recordings cache file and drops the
// in-memory table, forcing the next access to reassemble.
//
// Returns cache.ErrNoEntry if no cache file exists.
func (m *Manager) EmptyCacheRecordings() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recordings = nil
	return cache.Evict(m.settings.RecordingsCachePath())
}

// EmptyCachePatients deletes the patients cache file and drops the
// in-memory table, forcing the next access to reassemble.
//
// Returns cache.ErrNoEntry if no cache file exists.
func (m *Manager) EmptyCachePatients() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.patients = nil
	return cache.Evict(m.settings.PatientsCachePath())
}

// buildRecordings assembles the recordings table from the corpus.
func (m *Manager) buildRecordings(ctx context.Context) (*model.RecordingTable, error) {
	if err := m.ensureCorpusAvailable(ctx); err != nil {
		return nil, err
	}

	paths, err := ioutils.ScanAudioFiles(m.settings.CorpusDir(), m.settings.AudioExtensions)
	if err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Found %d recordings, decoding. This could take a while..", len(paths)),
		Level:   LevelInfo,
	})

	// Metadata and audio are assembled as parallel sub-tables from the
	// same enumeration, then zipped under a length check.
	metas := make([]model.RecordingMetaInfo, 0, len(paths))
	for _, path := range paths {
		stem, err := icbhi.Stem(filepath.Base(path))
		if err != nil {
			return nil, err
		}
		meta, err := icbhi.ParseRecordingFileName(stem)
		if err != nil {
			return nil, err
		}
		metas = append(metas, meta)
	}

	clips := make([]Clip, 0, len(paths))
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		samples, rate, err := audio.DecodeFile(path)
		if err != nil {
			return nil, err
		}
		clips = append(clips, Clip{Samples: samples, SampleRate: rate})

		if (i+1)%100 == 0 {
			m.progress(ProgressEvent{
				Message: fmt.Sprintf("Decoded %d/%d recordings", i+1, len(paths)),
				Level:   LevelVerbose,
			})
		}
	}

	table, err := assembleRecordings(metas, clips)
	if err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Assembled recordings table with %d rows", table.Len()),
		Level:   LevelSuccess,
	})

	return table, nil
}

// Clip is one decoded recording: a sample series plus its sample rate.
type Clip struct {
	Samples    []float64
	SampleRate int
}

// assembleRecordings zips the metadata and audio sub-tables into the
// recordings table, assigning dense recording IDs in enumeration order.
//
// The sub-tables come from the same file enumeration and must be equal in
// length; a divergence returns ErrTableMismatch.
func assembleRecordings(metas []model.RecordingMetaInfo, clips []Clip) (*model.RecordingTable, error) {
	if len(metas) != len(clips) {
		return nil, fmt.Errorf("%w: %d metadata rows, %d decoded clips",
			ErrTableMismatch, len(metas), len(clips))
	}

	rows := make([]model.RecordingRow, len(metas))
	for i := range metas {
		rows[i] = model.RecordingRow{
			RecordingID: i,
			Meta:        metas[i],
			Samples:     clips[i].Samples,
			SampleRate:  clips[i].SampleRate,
		}
	}

	return &model.RecordingTable{Rows: rows}, nil
}

// buildPatients assembles the patients table from the two source files.
func (m *Manager) buildPatients() (*model.PatientTable, error) {
	demographicFile, err := os.Open(m.settings.DemographicPath())
	if err != nil {
		return nil, err
	}
	defer demographicFile.Close()

	demographics, err := icbhi.ParseDemographics(demographicFile)
	if err != nil {
		return nil, err
	}

	diagnosisFile, err := os.Open(m.settings.DiagnosisPath())
	if err != nil {
		return nil, err
	}
	defer diagnosisFile.Close()

	diagnoses, err := icbhi.ParseDiagnosisTable(diagnosisFile)
	if err != nil {
		return nil, err
	}

	table, err := model.JoinPatients(diagnoses, demographics)
	if err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Assembled patients table with %d rows", table.Len()),
		Level:   LevelSuccess,
	})

	return table, nil
}

// ensureCorpusAvailable downloads and extracts the corpus if it is not
// already present. Both steps are idempotent.
func (m *Manager) ensureCorpusAvailable(ctx context.Context) error {
	corpusDir := m.settings.CorpusDir()
	if info, err := os.Stat(corpusDir); err == nil && info.IsDir() {
		return nil
	}

	if err := ioutils.EnsureDir(m.settings.TempDir()); err != nil {
		return err
	}

	archivePath, err := m.settings.ArchivePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(archivePath); err == nil {
		m.progress(ProgressEvent{Message: "Found cached data set zip file.", Level: LevelInfo})
	} else {
		m.progress(ProgressEvent{
			Message: "Downloading the data set zip file. This could take a while..",
			Level:   LevelInfo,
		})
		if err := m.fetchArchive(ctx, archivePath); err != nil {
			return err
		}
	}

	m.progress(ProgressEvent{
		Message: "Unzipping the data set zip file. This could take a while..",
		Level:   LevelInfo,
	})

	// Archive members live under the corpus directory name, so extracting
	// into the temp dir produces the corpus dir.
	wantMember := m.settings.CorpusDirName + "/"
	return ioutils.ExtractZip(archivePath, m.settings.TempDir(), wantMember)
}

// fetchArchive downloads the dataset archive with the configured retry
// policy, reporting percent progress as the body streams in.
func (m *Manager) fetchArchive(ctx context.Context, archivePath string) error {
	if size, err := m.httpClient.GetFileSize(ctx, m.settings.DatasetURL); err == nil {
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Data set archive is %.1f MB", float64(size)/1024/1024),
			Level:   LevelVerbose,
		})
	}

	var err error
	for tries := 0; tries < m.settings.DownloadMaxRetries; tries++ {
		lastStep := -1
		err = m.httpClient.DownloadFile(ctx, m.settings.DatasetURL, archivePath, func(written, total int64) {
			if total <= 0 {
				return
			}
			// Report in 10% steps to keep the event stream readable.
			if step := int(written * 10 / total); step > lastStep {
				lastStep = step
				m.progress(ProgressEvent{
					Message: fmt.Sprintf("Downloaded %d%%", step*10),
					Level:   LevelVerbose,
				})
			}
		})
		if err == nil {
			return nil
		}

		// A partial file must not pass for a cached archive on the next run.
		os.Remove(archivePath)

		if tries == m.settings.DownloadMaxRetries-1 {
			break
		}
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Retrying data set download (attempt %d/%d)", tries+2, m.settings.DownloadMaxRetries),
			Level:   LevelWarning,
		})
		m.waitForRetry(ctx, tries)
	}
	return err
}

// waitForRetry sleeps for the configured exponential cooldown.
func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := m.settings.DownloadRetryCooldown * math.Pow(m.settings.DownloadRetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
