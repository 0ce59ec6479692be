// Package ioutils provides file system utilities and waveform rendering.
//
// This package contains functions for:
//   - Directory creation
//   - Zip archive extraction
//   - Audio corpus directory scanning
//   - Waveform preview rendering
//
// # File Operations
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/data/temp")
//
//	// Extract the dataset archive, verifying the expected member exists
//	err := ioutils.ExtractZip(archivePath, tempDir, "ICBHI_final_database/")
//
//	// Enumerate recordings
//	paths, err := ioutils.ScanAudioFiles(corpusDir, []string{".wav", ".wave"})
//
// # Waveform Rendering
//
// The WaveformRenderer turns decoded samples into PNG previews:
//
//	r := ioutils.NewWaveformRenderer(1200, 300)
//	data, err := r.RenderPNG(samples)
package ioutils
