// Package config provides configuration management for respiratory-sounds.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Derived filesystem paths for the dataset layout
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Data lives under ~/.respiratory-sounds
//	// Archive fetched from the ICBHI challenge site
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Dataset layout
//
// All paths derive from DataDir:
//
//	<data>/demographic_info.txt
//	<data>/patient_diagnosis.csv
//	<data>/temp/ICBHI_final_database.zip
//	<data>/temp/ICBHI_final_database/      (extracted corpus)
//	<data>/temp/_all_recording_data.gob    (recordings table cache)
//	<data>/temp/_all_patient_data.gob      (patients table cache)
//	<data>/waveforms/                      (exported previews)
package config
