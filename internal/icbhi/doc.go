// Package icbhi parses the fixed text formats of the ICBHI 2017
// respiratory sound database.
//
// The package handles three source formats:
//
//  1. Recording file names, which encode metadata in five
//     underscore-delimited fields
//  2. demographic_info.txt, with six whitespace-separated columns per line
//  3. patient_diagnosis.csv, a headerless two-column CSV
//
// # File name parsing
//
// File names are stripped of their extension with Stem and decoded with
// ParseRecordingFileName:
//
//	stem, err := icbhi.Stem("101_1b1_Al_sc_Meditron.wav")
//	meta, err := icbhi.ParseRecordingFileName(stem)
//	fmt.Println(meta.PatientNumber, meta.ChestLocation) // 101 Al
//
// # Text tables
//
//	patients, err := icbhi.ParseDemographics(file)
//	diagnoses, err := icbhi.ParseDiagnosisTable(csvFile)
//
// # Errors
//
// The formats are fixed and versionless, so every deviation is treated as
// corrupt input: parsers fail on the first malformed record and wrap
// ErrFormat. There is no skip-and-continue recovery.
package icbhi
