package pkg

import (
	"fmt"
)

// A Calibration holds the coefficients of a linear energy calibration,
// E = A0 + A1*x
type Calibration struct {
	A0 float64 `yaml:"a0"`
	A1 float64 `yaml:"a1"`
}

// String renders the coefficients the way they appear in the XML output
func (c Calibration) String() string {
	return FormatCoefficient(c.A0) + " " + FormatCoefficient(c.A1)
}

// A Channel represents one detector channel in a Module
type Channel struct {
	// The channel number within its module, as written in map.txt
	Number string `yaml:"number"`

	// The number of the module this channel belongs to
	Module string `yaml:"-"`

	// Type, Subtype and Location together identify a channel when
	// matching calibrations
	Type     string `yaml:"type"`
	Subtype  string `yaml:"subtype"`
	Location string `yaml:"location"`

	// The calibration, if one was assigned
	Calibration *Calibration `yaml:"calibration,omitempty,flow"`
}

func (c Channel) String() string {
	return fmt.Sprintf("type %s subtype %s loc %s", c.Type, c.Subtype, c.Location)
}

// Matches tests if this channel has the given type, subtype, and location
func (c Channel) Matches(detType, detSubtype, location string) bool {
	return c.Type == detType && c.Subtype == detSubtype && c.Location == location
}

// A Module groups the channels in one contiguous run of map.txt lines that
// share a module number
type Module struct {
	Number   string    `yaml:"number"`
	Channels []Channel `yaml:"channels"`
}

// A Map is the full channel map in file order
type Map struct {
	Modules []Module `yaml:"modules"`
}

// Channels lists every channel in document order. The pointers refer to
// the channels inside the map, so modifying them modifies the map.
func (m *Map) Channels() []*Channel {
	rv := make([]*Channel, 0, 16*len(m.Modules))
	for i := range m.Modules {
		for j := range m.Modules[i].Channels {
			rv = append(rv, &m.Modules[i].Channels[j])
		}
	}
	return rv
}

// Find returns the first channel in document order with the given type,
// subtype, and location, or nil if there is none.
func (m *Map) Find(detType, detSubtype, location string) *Channel {
	for _, c := range m.Channels() {
		if c.Matches(detType, detSubtype, location) {
			return c
		}
	}
	return nil
}

// An UncalibratedError indicates a channel that never received a calibration
type UncalibratedError struct {
	Channel Channel
}

func (e *UncalibratedError) Error() string {
	return fmt.Sprintf("module %s channel %s (%s) has no calibration", e.Channel.Module, e.Channel.Number, e.Channel)
}

// Validate checks that the map can be serialised, i.e. that every channel
// has a calibration. It returns an *UncalibratedError for the first channel
// that doesn't.
func (m *Map) Validate() error {
	for _, c := range m.Channels() {
		if c.Calibration == nil {
			return &UncalibratedError{Channel: *c}
		}
	}
	return nil
}
