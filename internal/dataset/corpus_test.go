package dataset

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// buildCorpusArchive zips a one-recording corpus the way the challenge
// site serves it: members under "ICBHI_final_database/".
func buildCorpusArchive(t *testing.T) []byte {
	t.Helper()

	wavPath := filepath.Join(t.TempDir(), "r.wav")
	writeCorpusWAV(t, wavPath)
	wavBytes, err := os.ReadFile(wavPath)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	if _, err := w.Create("ICBHI_final_database/"); err != nil {
		t.Fatal(err)
	}
	f, err := w.Create("ICBHI_final_database/101_1b1_Al_sc_Meditron.wav")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write(wavBytes); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestManager_DownloadsAndExtractsCorpus(t *testing.T) {
	archive := buildCorpusArchive(t)

	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			fetches++
		}
		w.Write(archive)
	}))
	defer srv.Close()

	settings := testSettings(t)
	settings.DatasetURL = srv.URL + "/ICBHI_final_database.zip"

	// Start from a data dir with no corpus and no archive.
	if err := os.RemoveAll(settings.CorpusDir()); err != nil {
		t.Fatal(err)
	}

	m := NewManager(settings, nil)
	table, err := m.Recordings(context.Background())
	if err != nil {
		t.Fatalf("Recordings failed: %v", err)
	}

	if fetches != 1 {
		t.Errorf("archive fetched %d times, want 1", fetches)
	}
	if table.Len() != 1 {
		t.Fatalf("table has %d rows, want 1", table.Len())
	}
	if table.Rows[0].Meta.PatientNumber != 101 {
		t.Errorf("decoded wrong recording: %+v", table.Rows[0].Meta)
	}

	archivePath, err := settings.ArchivePath()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(archivePath); err != nil {
		t.Errorf("archive not kept for later runs: %v", err)
	}
}

func TestManager_ReportsDownloadProgress(t *testing.T) {
	archive := buildCorpusArchive(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(archive)))
		if r.Method != http.MethodHead {
			w.Write(archive)
		}
	}))
	defer srv.Close()

	settings := testSettings(t)
	settings.DatasetURL = srv.URL + "/ICBHI_final_database.zip"
	if err := os.RemoveAll(settings.CorpusDir()); err != nil {
		t.Fatal(err)
	}

	var messages []string
	m := NewManager(settings, func(event ProgressEvent) {
		if event.Level == LevelVerbose {
			messages = append(messages, event.Message)
		}
	})
	if _, err := m.Recordings(context.Background()); err != nil {
		t.Fatalf("Recordings failed: %v", err)
	}

	var sized, completed bool
	for _, msg := range messages {
		if strings.Contains(msg, "MB") {
			sized = true
		}
		if strings.Contains(msg, "Downloaded 100%") {
			completed = true
		}
	}
	if !sized {
		t.Errorf("no archive size event reported; verbose events: %v", messages)
	}
	if !completed {
		t.Errorf("no completion percent event reported; verbose events: %v", messages)
	}
}

func TestManager_FailedDownloadLeavesNoArchive(t *testing.T) {
	// Declare a large body but close the connection after a few bytes, so
	// the client fails mid-stream with a partially written file.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100000")
		if r.Method != http.MethodHead {
			w.Write([]byte("partial"))
		}
	}))
	defer srv.Close()

	settings := testSettings(t)
	settings.DatasetURL = srv.URL + "/ICBHI_final_database.zip"
	if err := os.RemoveAll(settings.CorpusDir()); err != nil {
		t.Fatal(err)
	}

	var warnings []string
	m := NewManager(settings, func(event ProgressEvent) {
		if event.Level == LevelWarning {
			warnings = append(warnings, event.Message)
		}
	})
	if _, err := m.Recordings(context.Background()); err == nil {
		t.Fatal("Recordings succeeded despite truncated download")
	}

	// A truncated file left behind would pass for a cached archive on the
	// next run and fail later in extraction.
	archivePath, err := settings.ArchivePath()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(archivePath); !os.IsNotExist(err) {
		t.Error("partial archive left behind after failed download")
	}

	// With a single attempt configured there is nothing to retry, so no
	// retry warning (or cooldown) should follow the final failure.
	for _, msg := range warnings {
		if strings.Contains(msg, "Retrying") {
			t.Errorf("retry warning emitted after the final attempt: %q", msg)
		}
	}
}

func TestManager_SkipsDownloadWhenArchiveCached(t *testing.T) {
	archive := buildCorpusArchive(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("download attempted despite cached archive")
	}))
	defer srv.Close()

	settings := testSettings(t)
	settings.DatasetURL = srv.URL + "/ICBHI_final_database.zip"

	if err := os.RemoveAll(settings.CorpusDir()); err != nil {
		t.Fatal(err)
	}
	archivePath, err := settings.ArchivePath()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(archivePath, archive, 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(settings, nil)
	table, err := m.Recordings(context.Background())
	if err != nil {
		t.Fatalf("Recordings failed: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("table has %d rows, want 1", table.Len())
	}
}
