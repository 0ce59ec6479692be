package model

import (
	"errors"
	"testing"
	"time"
)

func TestJoinPatients_InnerJoin(t *testing.T) {
	diagnoses := []PatientDiagnosis{
		{PatientNumber: 101, DiagnosisClass: 7},
		{PatientNumber: 102, DiagnosisClass: 1},
		{PatientNumber: 103, DiagnosisClass: 0}, // no demographic record
	}
	demographics := []Patient{
		{PatientNumber: 101, Age: "3", Sex: "F", AdultBMI: "NA", ChildWeight: "19", ChildHeight: "99"},
		{PatientNumber: 102, Age: "70", Sex: "M", AdultBMI: "33", ChildWeight: "NA", ChildHeight: "NA"},
		{PatientNumber: 104, Age: "60", Sex: "M", AdultBMI: "28", ChildWeight: "NA", ChildHeight: "NA"}, // no diagnosis
	}

	table, err := JoinPatients(diagnoses, demographics)
	if err != nil {
		t.Fatalf("JoinPatients failed: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("joined table has %d rows, want 2", table.Len())
	}

	// Row order follows the diagnosis table.
	if table.Rows[0].PatientNumber != 101 || table.Rows[1].PatientNumber != 102 {
		t.Errorf("row order = %d, %d, want 101, 102", table.Rows[0].PatientNumber, table.Rows[1].PatientNumber)
	}

	row, ok := table.Get(101)
	if !ok {
		t.Fatal("patient 101 missing from joined table")
	}
	if row.DiagnosisClass != 7 || row.Age != "3" || row.ChildWeight != "19" {
		t.Errorf("joined row = %+v, want diagnosis 7, age 3, weight 19", row)
	}

	for _, absent := range []int{103, 104} {
		if _, ok := table.Get(absent); ok {
			t.Errorf("patient %d should have been dropped by the inner join", absent)
		}
	}
}

func TestNewPatientTable_DuplicatePatient(t *testing.T) {
	rows := []PatientRow{
		{PatientNumber: 101},
		{PatientNumber: 101},
	}

	if _, err := NewPatientTable(rows); !errors.Is(err, ErrDuplicatePatient) {
		t.Errorf("NewPatientTable error = %v, want ErrDuplicatePatient", err)
	}
}

func TestJoinRecordingsPatients(t *testing.T) {
	recordings := &RecordingTable{Rows: []RecordingRow{
		{RecordingID: 0, Meta: RecordingMetaInfo{PatientNumber: 101}},
		{RecordingID: 1, Meta: RecordingMetaInfo{PatientNumber: 226}}, // not in patients
		{RecordingID: 2, Meta: RecordingMetaInfo{PatientNumber: 101}},
	}}
	patients := &PatientTable{Rows: []PatientRow{
		{PatientNumber: 101, DiagnosisClass: 4},
		{PatientNumber: 150, DiagnosisClass: 0}, // no recordings
	}}

	joined := JoinRecordingsPatients(recordings, patients)

	if len(joined) != 2 {
		t.Fatalf("join has %d rows, want 2", len(joined))
	}
	for _, row := range joined {
		if row.Recording.Meta.PatientNumber != row.Patient.PatientNumber {
			t.Errorf("join key mismatch: recording patient %d, patient %d",
				row.Recording.Meta.PatientNumber, row.Patient.PatientNumber)
		}
		if row.Patient.PatientNumber != 101 {
			t.Errorf("unexpected patient %d in join", row.Patient.PatientNumber)
		}
	}
	if joined[0].Recording.RecordingID != 0 || joined[1].Recording.RecordingID != 2 {
		t.Errorf("join order = %d, %d, want 0, 2", joined[0].Recording.RecordingID, joined[1].Recording.RecordingID)
	}
}

func TestRecordingTable_TotalDuration(t *testing.T) {
	table := &RecordingTable{Rows: []RecordingRow{
		{RecordingID: 0, Samples: make([]float64, 4000), SampleRate: 4000}, // 1s
		{RecordingID: 1, Samples: make([]float64, 2000), SampleRate: 4000}, // 0.5s
	}}

	if got, want := table.TotalDuration(), 1500*time.Millisecond; got != want {
		t.Errorf("TotalDuration() = %v, want %v", got, want)
	}

	empty := &RecordingTable{}
	if got := empty.TotalDuration(); got != 0 {
		t.Errorf("empty table TotalDuration() = %v, want 0", got)
	}
}

func TestRecordingTable_ByPatient(t *testing.T) {
	table := &RecordingTable{Rows: []RecordingRow{
		{RecordingID: 0, Meta: RecordingMetaInfo{PatientNumber: 101}},
		{RecordingID: 1, Meta: RecordingMetaInfo{PatientNumber: 102}},
		{RecordingID: 2, Meta: RecordingMetaInfo{PatientNumber: 101}},
	}}

	rows := table.ByPatient(101)
	if len(rows) != 2 {
		t.Fatalf("ByPatient(101) returned %d rows, want 2", len(rows))
	}

	numbers := table.PatientNumbers()
	if len(numbers) != 2 || numbers[0] != 101 || numbers[1] != 102 {
		t.Errorf("PatientNumbers() = %v, want [101 102]", numbers)
	}
}
