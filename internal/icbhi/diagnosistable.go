package icbhi

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/icbhi/respiratory-sounds/internal/diagnosis"
	"github.com/icbhi/respiratory-sounds/internal/model"
)

// ParseDiagnosisTable reads the patient diagnosis table.
//
// The source is a headerless two-column CSV:
//
//	101,URTI
//	102,Asthma
//
// The diagnosis name is converted to its class label at load time via the
// diagnosis package. An unrecognized name is a hard failure
// (diagnosis.ErrUnknownDiagnosis); rows are never skipped, since a typo in
// the source table should abort the load rather than silently shrink it.
//
// Returns ErrFormat on a malformed row and propagates
// diagnosis.ErrUnknownDiagnosis on an unknown name.
func ParseDiagnosisTable(r io.Reader) ([]model.PatientDiagnosis, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	var diagnoses []model.PatientDiagnosis
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: diagnosis row %d: %v", ErrFormat, line, err)
		}

		patientNumber, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: diagnosis row %d: patient number %q is not numeric",
				ErrFormat, line, record[0])
		}

		class, err := diagnosis.NameToClass(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("diagnosis row %d: %w", line, err)
		}

		diagnoses = append(diagnoses, model.PatientDiagnosis{
			PatientNumber:  patientNumber,
			DiagnosisClass: class,
		})
	}

	return diagnoses, nil
}
