package model

import (
	"fmt"
	"time"

	"github.com/icbhi/respiratory-sounds/internal/audio"
)

// RecordingMetaInfo holds the metadata encoded in a recording's file name.
//
// ICBHI recording files are named with five underscore-delimited fields:
//
//	{patient_number}_{recording_index}_{chest_location}_{sc|mc}_{equipment}.wav
//
// For example "101_1b1_Al_sc_Meditron.wav" describes patient 101, recording
// index "1b1", chest location "Al" (anterior left), single-channel
// acquisition, recorded with a Meditron stethoscope.
type RecordingMetaInfo struct {
	// PatientNumber identifies the patient (101, 102, ..., 226).
	PatientNumber int

	// RecordingIndex distinguishes recordings of the same patient,
	// e.g. "1b1". Kept verbatim from the file name.
	RecordingIndex string

	// ChestLocation is the coded microphone placement: Trachea (Tc) or
	// {Anterior (A), Posterior (P), Lateral (L)}{left (l), right (r)}.
	ChestLocation string

	// NumChannels is the acquisition mode: 1 for sequential/single
	// channel ("sc"), 2 for simultaneous/multichannel ("mc").
	NumChannels int

	// RecordingEquipment is the device token from the file name, e.g.
	// "Meditron" or "AKGC417L".
	RecordingEquipment string
}

// FileStem reconstructs the five-field file name stem this metadata was
// decoded from, e.g. "101_1b1_Al_sc_Meditron".
func (m RecordingMetaInfo) FileStem() string {
	mode := "sc"
	if m.NumChannels == 2 {
		mode = "mc"
	}
	return fmt.Sprintf("%d_%s_%s_%s_%s",
		m.PatientNumber, m.RecordingIndex, m.ChestLocation, mode, m.RecordingEquipment)
}

// RecordingRow is one row of the recordings table: the file-name metadata
// of a recording together with its decoded audio.
type RecordingRow struct {
	// RecordingID is a dense identifier assigned in enumeration order,
	// 0..N-1 over the discovered audio files.
	RecordingID int

	// Meta is the metadata decoded from the recording's file name.
	Meta RecordingMetaInfo

	// Samples is the decoded audio as a mono floating point time series
	// normalized to [-1, 1].
	Samples []float64

	// SampleRate is the sampling rate of Samples in Hz.
	SampleRate int
}

// RecordingTable is the assembled recordings table.
//
// Rows are ordered by RecordingID, which is contiguous from zero. The zero
// value is an empty table.
type RecordingTable struct {
	Rows []RecordingRow
}

// Len returns the number of recordings in the table.
func (t *RecordingTable) Len() int {
	return len(t.Rows)
}

// ByPatient returns the rows belonging to the given patient, in table order.
func (t *RecordingTable) ByPatient(patientNumber int) []RecordingRow {
	var rows []RecordingRow
	for _, row := range t.Rows {
		if row.Meta.PatientNumber == patientNumber {
			rows = append(rows, row)
		}
	}
	return rows
}

// TotalDuration returns the summed playing time of all recordings.
func (t *RecordingTable) TotalDuration() time.Duration {
	var total time.Duration
	for _, row := range t.Rows {
		total += audio.Duration(row.Samples, row.SampleRate)
	}
	return total
}

// PatientNumbers returns the distinct patient numbers present in the table,
// in first-appearance order.
func (t *RecordingTable) PatientNumbers() []int {
	seen := make(map[int]struct{})
	var numbers []int
	for _, row := range t.Rows {
		if _, ok := seen[row.Meta.PatientNumber]; ok {
			continue
		}
		seen[row.Meta.PatientNumber] = struct{}{}
		numbers = append(numbers, row.Meta.PatientNumber)
	}
	return numbers
}
