package pkg

import (
	"encoding/xml"
	"io"
	"os"
)

const (
	// CalibrationModel is the model name of every emitted calibration
	CalibrationModel = "linear"

	// CalibrationMax is the upper end of the range in which a calibration is valid
	CalibrationMax = 32000

	// LegacyNumberAttribute is the channel number attribute name produced by
	// older versions of this tool
	LegacyNumberAttribute = "aa_number"
)

type xmlCalibration struct {
	Model        string `xml:"model,attr"`
	Max          int    `xml:"max,attr"`
	Coefficients string `xml:",chardata"`
}

// An Encoder serialises a Map to the <Map> section of a pixie Config.xml
type Encoder struct {
	// The name of the channel number attribute. Defaults to "number".
	NumberAttribute string

	// Indentation for each nesting level. Defaults to four spaces.
	Indent string
}

func (e Encoder) numberAttribute() string {
	if e.NumberAttribute != "" {
		return e.NumberAttribute
	}
	return "number"
}

func (e Encoder) indent() string {
	if e.Indent != "" {
		return e.Indent
	}
	return "    "
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// Encode writes m as a complete XML document. The map is validated first;
// if any channel lacks a calibration, nothing is written.
func (e Encoder) Encode(w io.Writer, m *Map) error {
	if err := m.Validate(); err != nil {
		return err
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", e.indent())

	root := xml.StartElement{Name: xml.Name{Local: "Map"}}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	for _, mod := range m.Modules {
		ms := xml.StartElement{
			Name: xml.Name{Local: "Module"},
			Attr: []xml.Attr{attr("number", mod.Number)},
		}
		if err := enc.EncodeToken(ms); err != nil {
			return err
		}

		for _, ch := range mod.Channels {
			cs := xml.StartElement{
				Name: xml.Name{Local: "Channel"},
				Attr: []xml.Attr{
					attr(e.numberAttribute(), ch.Number),
					attr("type", ch.Type),
					attr("subtype", ch.Subtype),
					attr("location", ch.Location),
				},
			}
			if err := enc.EncodeToken(cs); err != nil {
				return err
			}

			cal := xmlCalibration{
				Model:        CalibrationModel,
				Max:          CalibrationMax,
				Coefficients: ch.Calibration.String(),
			}
			err := enc.EncodeElement(cal, xml.StartElement{Name: xml.Name{Local: "Calibration"}})
			if err != nil {
				return err
			}

			if err := enc.EncodeToken(cs.End()); err != nil {
				return err
			}
		}

		if err := enc.EncodeToken(ms.End()); err != nil {
			return err
		}
	}

	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile serialises m to disk. The file is only created if m is valid,
// and is removed again if encoding fails.
func (e Encoder) WriteFile(filename string, m *Map) error {
	if err := m.Validate(); err != nil {
		return err
	}

	return createFile(filename, func(w io.Writer) error {
		return e.Encode(w, m)
	})
}

func createFile(filename string, write func(io.Writer) error) error {
	op, err := os.Create(filename)
	if err != nil {
		return err
	}

	err = write(op)
	if cerr := op.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filename)
		return err
	}

	return nil
}

// Write serialises the map to disk using the default settings
func (m *Map) Write(filename string) error {
	return Encoder{}.WriteFile(filename, m)
}
