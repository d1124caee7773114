package pkg

import (
	"io"

	"github.com/pkg/errors"
	"github.com/thijzert/pixiemap/lib/fieldreader"
)

// CalibrationFields is the least number of fields on a cal.txt line:
// location, type, subtype, number of calibrations, order, threshold, a0, a1
const CalibrationFields = 8

// A CalibrationRecord is one line from a calibration table
type CalibrationRecord struct {
	Location string
	Type     string
	Subtype  string

	Calibration Calibration

	// Where this record came from
	Source string
	Line   int
}

func (r CalibrationRecord) String() string {
	return "type " + r.Type + " subtype " + r.Subtype + " loc " + r.Location
}

// LoadCalibrations reads a calibration table from a file
func LoadCalibrations(filename string) ([]CalibrationRecord, error) {
	fr, err := fieldreader.Open(filename, CalibrationFields)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	return readCalibrations(fr)
}

// ReadCalibrations parses a calibration table. Only the linear coefficients
// of the first calibration on each line are used; the calibration count,
// order, threshold, and any further calibrations are ignored.
func ReadCalibrations(r io.Reader, name string) ([]CalibrationRecord, error) {
	return readCalibrations(fieldreader.New(r, name, CalibrationFields))
}

func readCalibrations(fr *fieldreader.Reader) ([]CalibrationRecord, error) {
	var rv []CalibrationRecord

	for fr.Next() {
		fields := fr.Fields()

		a0, err := parseCoefficient(fields[6])
		if err != nil {
			return nil, fr.Wrap(errors.WithMessage(err, "invalid a0"))
		}
		a1, err := parseCoefficient(fields[7])
		if err != nil {
			return nil, fr.Wrap(errors.WithMessage(err, "invalid a1"))
		}

		rv = append(rv, CalibrationRecord{
			Location:    fields[0],
			Type:        fields[1],
			Subtype:     fields[2],
			Calibration: Calibration{A0: a0, A1: a1},
			Source:      fr.Name,
			Line:        fr.Line(),
		})
	}
	if err := fr.Err(); err != nil {
		return nil, err
	}

	return rv, nil
}

// A MergeReport summarises the outcome of Calibrate
type MergeReport struct {
	// The number of records that were assigned to a channel
	Matched int

	// Records for which no channel exists
	Unmatched []CalibrationRecord

	// Records that replaced the calibration a previous record assigned to
	// the same channel
	Overridden []CalibrationRecord
}

// Calibrate assigns every calibration record to the first channel in the map
// with the same type, subtype, and location. Records that match a channel
// which already has a calibration replace it; records that match nothing
// are reported and otherwise ignored.
func (m *Map) Calibrate(records []CalibrationRecord) MergeReport {
	var rv MergeReport

	for _, rec := range records {
		c := m.Find(rec.Type, rec.Subtype, rec.Location)
		if c == nil {
			rv.Unmatched = append(rv.Unmatched, rec)
			continue
		}

		if c.Calibration != nil {
			rv.Overridden = append(rv.Overridden, rec)
		}
		cal := rec.Calibration
		c.Calibration = &cal
		rv.Matched++
	}

	return rv
}
