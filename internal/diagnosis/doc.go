// Package diagnosis defines the fixed mapping between ICBHI diagnosis
// names and integer class labels.
//
// The dataset covers eight respiratory diagnoses. Each diagnosis has a
// stable class label in [0, 8), defined by its position in the canonical
// name list:
//
//	0 Healthy
//	1 Asthma
//	2 Bronchiectasis
//	3 Bronchiolitis
//	4 COPD
//	5 LRTI
//	6 Pneumonia
//	7 URTI
//
// The mapping is a total bijection: converting a valid label to a name and
// back (or a valid name to a label and back) always yields the input.
//
// # Usage
//
//	label, err := diagnosis.NameToClass("Pneumonia") // 6
//	name, err := diagnosis.ClassToName(6)            // "Pneumonia"
//
//	for _, name := range diagnosis.Names() {
//	    fmt.Println(name)
//	}
//
// Invalid inputs return ErrClassOutOfRange or ErrUnknownDiagnosis, which
// callers can test with errors.Is.
package diagnosis
