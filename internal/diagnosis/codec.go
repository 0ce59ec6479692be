package diagnosis

import (
	"errors"
	"fmt"
)

// ErrClassOutOfRange is returned when an integer class label is outside
// the valid range [0, NumClasses()).
var ErrClassOutOfRange = errors.New("diagnosis class out of range")

// ErrUnknownDiagnosis is returned when a diagnosis name is not one of the
// known ICBHI diagnosis names.
var ErrUnknownDiagnosis = errors.New("unknown diagnosis name")

// names defines the one-to-one mapping between class labels and diagnosis
// names. The slice index is the class label, so the order is load-bearing
// and must never change.
var names = []string{
	"Healthy",
	"Asthma",
	"Bronchiectasis",
	"Bronchiolitis",
	"COPD",
	"LRTI",
	"Pneumonia",
	"URTI",
}

// ClassToName converts an integer class label into a diagnosis name.
//
// Returns ErrClassOutOfRange if label is not in [0, NumClasses()).
//
// Example:
//
//	name, err := diagnosis.ClassToName(4) // "COPD", nil
func ClassToName(label int) (string, error) {
	if label < 0 || label >= len(names) {
		return "", fmt.Errorf("%w: %d", ErrClassOutOfRange, label)
	}
	return names[label], nil
}

// NameToClass converts a diagnosis name into its integer class label.
//
// Returns ErrUnknownDiagnosis if name is not one of the known names.
// Matching is case-sensitive, as the source data uses fixed spellings.
//
// Example:
//
//	label, err := diagnosis.NameToClass("COPD") // 4, nil
func NameToClass(name string) (int, error) {
	for label, candidate := range names {
		if candidate == name {
			return label, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDiagnosis, name)
}

// Names returns the diagnosis names in canonical class order.
//
// The returned slice is a copy; callers may modify it freely.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Classes returns all valid class labels in ascending order.
func Classes() []int {
	out := make([]int, len(names))
	for i := range out {
		out[i] = i
	}
	return out
}

// NumClasses returns the number of diagnosis classes.
func NumClasses() int {
	return len(names)
}
