package pkg

import (
	"io"

	"github.com/thijzert/pixiemap/lib/fieldreader"
)

// MapFields is the number of fields on a map.txt line:
// module, channel, raw channel number, type, subtype, location
const MapFields = 6

// LoadMap reads a channel map from a file
func LoadMap(filename string) (*Map, error) {
	fr, err := fieldreader.Open(filename, MapFields)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	return readMap(fr)
}

// ReadMap parses a channel map. A new module starts every time the module
// number changes from the previous line, so a module number that reappears
// later on yields a second, separate module.
func ReadMap(r io.Reader, name string) (*Map, error) {
	return readMap(fieldreader.New(r, name, MapFields))
}

func readMap(fr *fieldreader.Reader) (*Map, error) {
	rv := &Map{}
	var current *Module

	for fr.Next() {
		fields := fr.Fields()
		mod := fields[0]

		if current == nil || current.Number != mod {
			rv.Modules = append(rv.Modules, Module{Number: mod})
			current = &rv.Modules[len(rv.Modules)-1]
		}

		// The raw channel number in fields[2] is not used
		current.Channels = append(current.Channels, Channel{
			Number:   fields[1],
			Module:   mod,
			Type:     fields[3],
			Subtype:  fields[4],
			Location: fields[5],
		})
	}
	if err := fr.Err(); err != nil {
		return nil, err
	}

	return rv, nil
}
