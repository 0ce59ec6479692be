// Package model defines the core data structures of the respiratory-sounds
// dataset: recording and patient rows and the tables built from them.
//
// # Recordings
//
// RecordingMetaInfo is the metadata decoded from a recording's file name,
// and RecordingRow pairs it with the decoded audio:
//
//	row := table.Rows[0]
//	fmt.Println(row.Meta.PatientNumber, row.SampleRate, len(row.Samples))
//
// # Patients
//
// Patient (demographics) and PatientDiagnosis are the two parsed source
// tables; PatientRow is their inner join on patient number, collected into
// a PatientTable keyed by patient number:
//
//	patients, err := model.JoinPatients(diagnoses, demographics)
//	row, ok := patients.Get(101)
//
// # Join view
//
// JoinRecordingsPatients produces the combined view used for analysis,
// inner-joined on patient number:
//
//	joined := model.JoinRecordingsPatients(recordings, patients)
//
// All schemas are fixed; there is no dynamic column access.
package model
