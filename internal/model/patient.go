package model

import (
	"errors"
	"fmt"
)

// ErrDuplicatePatient is returned when two rows claim the same patient
// number while building a PatientTable. The patients table is keyed by
// patient number, so a duplicate is a data-integrity violation.
var ErrDuplicatePatient = errors.New("duplicate patient number")

// Patient is one demographic record from demographic_info.txt.
//
// The source file carries six whitespace-separated columns per line. Only
// the patient number is numeric by contract; the remaining columns are kept
// as the source strings since they may be "NA".
type Patient struct {
	// PatientNumber identifies the patient.
	PatientNumber int

	// Age in years, or "NA".
	Age string

	// Sex is "M" or "F".
	Sex string

	// AdultBMI is the body mass index in kg/m2 for adults, or "NA".
	AdultBMI string

	// ChildWeight is the weight in kg for children, or "NA".
	ChildWeight string

	// ChildHeight is the height in cm for children, or "NA".
	ChildHeight string
}

// PatientDiagnosis is one row of the diagnosis table: a patient number and
// the diagnosis class label converted from the diagnosis name at load time.
type PatientDiagnosis struct {
	PatientNumber  int
	DiagnosisClass int
}

// PatientRow is one row of the patients table: the inner join of a
// patient's diagnosis and demographic records.
type PatientRow struct {
	PatientNumber  int
	DiagnosisClass int
	Age            string
	Sex            string
	AdultBMI       string
	ChildWeight    string
	ChildHeight    string
}

// PatientTable is the assembled patients table, keyed by patient number.
//
// Rows preserve the order of the diagnosis table. Patient numbers are
// unique; NewPatientTable enforces this.
type PatientTable struct {
	Rows []PatientRow
}

// NewPatientTable builds a PatientTable from joined rows, verifying that
// every patient number appears at most once.
//
// Returns ErrDuplicatePatient if the same patient number appears twice.
func NewPatientTable(rows []PatientRow) (*PatientTable, error) {
	seen := make(map[int]struct{}, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.PatientNumber]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicatePatient, row.PatientNumber)
		}
		seen[row.PatientNumber] = struct{}{}
	}
	return &PatientTable{Rows: rows}, nil
}

// Len returns the number of patients in the table.
func (t *PatientTable) Len() int {
	return len(t.Rows)
}

// Get returns the row for the given patient number.
//
// The second return value reports whether the patient is present.
func (t *PatientTable) Get(patientNumber int) (PatientRow, bool) {
	for _, row := range t.Rows {
		if row.PatientNumber == patientNumber {
			return row, true
		}
	}
	return PatientRow{}, false
}

// JoinPatients inner-joins diagnosis rows with demographic records on
// patient number and returns the resulting patients table.
//
// Row order follows the diagnosis table. Patients present in only one of
// the two inputs are dropped, matching inner-join semantics. A patient
// number appearing twice in the joined output is rejected with
// ErrDuplicatePatient.
func JoinPatients(diagnoses []PatientDiagnosis, demographics []Patient) (*PatientTable, error) {
	byNumber := make(map[int]Patient, len(demographics))
	for _, p := range demographics {
		byNumber[p.PatientNumber] = p
	}

	var rows []PatientRow
	for _, d := range diagnoses {
		p, ok := byNumber[d.PatientNumber]
		if !ok {
			continue
		}
		rows = append(rows, PatientRow{
			PatientNumber:  d.PatientNumber,
			DiagnosisClass: d.DiagnosisClass,
			Age:            p.Age,
			Sex:            p.Sex,
			AdultBMI:       p.AdultBMI,
			ChildWeight:    p.ChildWeight,
			ChildHeight:    p.ChildHeight,
		})
	}

	return NewPatientTable(rows)
}

// RecordingPatientRow is one row of the recordings-patients join view.
type RecordingPatientRow struct {
	Recording RecordingRow
	Patient   PatientRow
}

// JoinRecordingsPatients inner-joins the recordings table with the patients
// table on patient number.
//
// Row order follows the recordings table. Recordings whose patient has no
// row in the patients table are dropped, and patients without recordings do
// not appear.
func JoinRecordingsPatients(recordings *RecordingTable, patients *PatientTable) []RecordingPatientRow {
	var rows []RecordingPatientRow
	for _, rec := range recordings.Rows {
		patient, ok := patients.Get(rec.Meta.PatientNumber)
		if !ok {
			continue
		}
		rows = append(rows, RecordingPatientRow{Recording: rec, Patient: patient})
	}
	return rows
}
