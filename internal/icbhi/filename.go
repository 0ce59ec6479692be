package icbhi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/icbhi/respiratory-sounds/internal/model"
)

// ErrFormat is returned when a source record does not follow the fixed
// ICBHI format: a recording file name with the wrong field count or a bad
// acquisition-mode token, or a demographic line with the wrong arity.
//
// All parse failures in this package wrap ErrFormat, so callers can
// classify them with errors.Is:
//
//	if errors.Is(err, icbhi.ErrFormat) {
//	    // malformed source data, abort the load
//	}
var ErrFormat = errors.New("malformed ICBHI record")

// fileNameFields is the number of underscore-delimited fields in a
// recording file name.
const fileNameFields = 5

// Stem strips the extension from a file name.
//
// The file name is split on "." and all parts except the last are rejoined
// with ".", so names that legitimately contain dots before the final
// extension survive intact:
//
//	Stem("101_1b1_Al_sc_Meditron.wav")  // "101_1b1_Al_sc_Meditron"
//	Stem("archive.v2.wav")              // "archive.v2"
//
// A name without any dot has no extension to strip and fails with
// ErrFormat.
func Stem(fileName string) (string, error) {
	parts := strings.Split(fileName, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: file name %q has no extension", ErrFormat, fileName)
	}
	return strings.Join(parts[:len(parts)-1], "."), nil
}

// ParseRecordingFileName decodes recording metadata from a file name stem.
//
// ICBHI recordings are named with exactly five underscore-delimited fields:
//
//	{patient_number}_{recording_index}_{chest_location}_{sc|mc}_{equipment}
//
// The patient number is coerced to an integer and the acquisition-mode
// token maps to a channel count ("sc" is 1, "mc" is 2). The remaining
// fields are kept verbatim.
//
// Example:
//
//	meta, err := icbhi.ParseRecordingFileName("101_1b1_Al_sc_Meditron")
//	// meta.PatientNumber = 101, meta.NumChannels = 1
//
// Returns ErrFormat if the field count is not five, the patient number is
// not numeric, or the acquisition-mode token is neither "sc" nor "mc".
func ParseRecordingFileName(stem string) (model.RecordingMetaInfo, error) {
	fields := strings.Split(stem, "_")
	if len(fields) != fileNameFields {
		return model.RecordingMetaInfo{}, fmt.Errorf("%w: file name %q has %d fields, want %d",
			ErrFormat, stem, len(fields), fileNameFields)
	}

	patientNumber, err := strconv.Atoi(fields[0])
	if err != nil {
		return model.RecordingMetaInfo{}, fmt.Errorf("%w: patient number %q is not numeric",
			ErrFormat, fields[0])
	}

	var numChannels int
	switch fields[3] {
	case "sc":
		numChannels = 1
	case "mc":
		numChannels = 2
	default:
		return model.RecordingMetaInfo{}, fmt.Errorf("%w: acquisition mode %q, want \"sc\" or \"mc\"",
			ErrFormat, fields[3])
	}

	return model.RecordingMetaInfo{
		PatientNumber:      patientNumber,
		RecordingIndex:     fields[1],
		ChestLocation:      fields[2],
		NumChannels:        numChannels,
		RecordingEquipment: fields[4],
	}, nil
}
