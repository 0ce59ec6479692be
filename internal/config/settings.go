package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// DefaultDatasetURL is the fixed location of the ICBHI 2017 challenge
// database archive.
const DefaultDatasetURL = "https://bhichallenge.med.auth.gr/sites/default/files/ICBHI_final_database/ICBHI_final_database.zip"

// Settings holds all configuration options.
type Settings struct {
	// Dataset location
	DataDir       string `json:"data_dir"`
	DatasetURL    string `json:"dataset_url"`
	CorpusDirName string `json:"corpus_dir_name"`
	TempDirName   string `json:"temp_dir_name"`

	// Source table files, relative to DataDir
	DemographicFileName string `json:"demographic_file_name"`
	DiagnosisFileName   string `json:"diagnosis_file_name"`

	// Cache files, relative to the temp dir
	RecordingsCacheFileName string `json:"recordings_cache_file_name"`
	PatientsCacheFileName   string `json:"patients_cache_file_name"`

	// Audio discovery
	AudioExtensions []string `json:"audio_extensions"`

	// Archive download behavior
	DownloadMaxRetries    int     `json:"download_max_retries"`
	DownloadRetryCooldown float64 `json:"download_retry_cooldown"`
	DownloadRetryExponent float64 `json:"download_retry_exponent"`

	// Waveform export
	WaveformDirName       string `json:"waveform_dir_name"`
	WaveformWidth         int    `json:"waveform_width"`
	WaveformHeight        int    `json:"waveform_height"`
	WaveformMaxConcurrent int    `json:"waveform_max_concurrent"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		DataDir:       filepath.Join(homeDir, ".respiratory-sounds"),
		DatasetURL:    DefaultDatasetURL,
		CorpusDirName: "ICBHI_final_database",
		TempDirName:   "temp",

		DemographicFileName: "demographic_info.txt",
		DiagnosisFileName:   "patient_diagnosis.csv",

		RecordingsCacheFileName: "_all_recording_data.gob",
		PatientsCacheFileName:   "_all_patient_data.gob",

		AudioExtensions: []string{".wav", ".wave"},

		DownloadMaxRetries:    1,
		DownloadRetryCooldown: 0.2,
		DownloadRetryExponent: 4.0,

		WaveformDirName:       "waveforms",
		WaveformWidth:         1200,
		WaveformHeight:        300,
		WaveformMaxConcurrent: 4,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error; defaults are returned instead.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file, creating parent directories as
// needed.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// TempDir returns the scratch directory holding the downloaded archive, the
// extracted corpus and the table cache files.
func (s *Settings) TempDir() string {
	return filepath.Join(s.DataDir, s.TempDirName)
}

// CorpusDir returns the directory holding the extracted audio corpus.
func (s *Settings) CorpusDir() string {
	return filepath.Join(s.TempDir(), s.CorpusDirName)
}

// ArchivePath returns the local path the dataset archive is downloaded to:
// the temp dir joined with the archive's base name from the URL.
func (s *Settings) ArchivePath() (string, error) {
	parsed, err := url.Parse(s.DatasetURL)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.TempDir(), path.Base(parsed.Path)), nil
}

// DemographicPath returns the path of the demographic info file.
func (s *Settings) DemographicPath() string {
	return filepath.Join(s.DataDir, s.DemographicFileName)
}

// DiagnosisPath returns the path of the patient diagnosis table.
func (s *Settings) DiagnosisPath() string {
	return filepath.Join(s.DataDir, s.DiagnosisFileName)
}

// RecordingsCachePath returns the cache file path for the recordings table.
func (s *Settings) RecordingsCachePath() string {
	return filepath.Join(s.TempDir(), s.RecordingsCacheFileName)
}

// PatientsCachePath returns the cache file path for the patients table.
func (s *Settings) PatientsCachePath() string {
	return filepath.Join(s.TempDir(), s.PatientsCacheFileName)
}

// WaveformDir returns the directory waveform previews are exported to.
func (s *Settings) WaveformDir() string {
	return filepath.Join(s.DataDir, s.WaveformDirName)
}
