package icbhi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/icbhi/respiratory-sounds/internal/model"
)

// demographicFields is the number of whitespace-separated columns in a
// demographic_info.txt line.
const demographicFields = 6

// ParseDemographics reads demographic records, one per line.
//
// Each line carries six whitespace-separated columns:
//
//	patient_number age sex adult_bmi child_weight child_height
//
// e.g. "101 3 F NA 19 99". The patient number is coerced to an integer;
// the remaining columns are kept as strings since missing values are
// written as "NA". Row order follows line order.
//
// Returns ErrFormat if a line does not have exactly six columns or its
// patient number is not numeric. A blank line has zero columns and fails
// like any other short line.
func ParseDemographics(r io.Reader) ([]model.Patient, error) {
	var patients []model.Patient

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) != demographicFields {
			return nil, fmt.Errorf("%w: demographic line %d has %d fields, want %d",
				ErrFormat, line, len(fields), demographicFields)
		}

		patientNumber, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: demographic line %d: patient number %q is not numeric",
				ErrFormat, line, fields[0])
		}

		patients = append(patients, model.Patient{
			PatientNumber: patientNumber,
			Age:           fields[1],
			Sex:           fields[2],
			AdultBMI:      fields[3],
			ChildWeight:   fields[4],
			ChildHeight:   fields[5],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return patients, nil
}
