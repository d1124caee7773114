package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/thijzert/go-rcfile"
	tc "github.com/thijzert/go-termcolours"
	pixiemap "github.com/thijzert/pixiemap/pkg"
	"gopkg.in/yaml.v3"
)

var Config = struct {
	MapFile, CalFile, OutputFile string
	LegacyNumberAttribute        bool
	Dump                         bool
	Colour                       bool
}{}

func init() {
	flag.StringVar(&Config.MapFile, "map_file", "map.txt", "Input channel map")
	flag.StringVar(&Config.CalFile, "cal_file", "cal.txt", "Input calibration table")
	flag.StringVar(&Config.OutputFile, "output_file", "out.xml", "Output XML file")

	flag.BoolVar(&Config.LegacyNumberAttribute, "aa_number", false, "Name the channel number attribute 'aa_number', like older versions did")
	flag.BoolVar(&Config.Dump, "dump", false, "Print the calibrated channel map to stdout before writing it")
	flag.BoolVar(&Config.Colour, "colour", true, "Highlight diagnostics using terminal colours")
}

func main() {
	// Parse config file first, and override with anything on the commandline
	rcfile.Parse()
	flag.Parse()

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(1)
		return
	}

	croak(convert(os.Stdout))
}

// convert reads the channel map and calibration table, merges them, and
// writes the XML document
func convert(stdout io.Writer) error {
	m, err := pixiemap.LoadMap(Config.MapFile)
	if err != nil {
		return err
	}

	cals, err := pixiemap.LoadCalibrations(Config.CalFile)
	if err != nil {
		return err
	}

	report := m.Calibrate(cals)
	for _, rec := range report.Unmatched {
		log.Printf("Could not find channel: %s", highlight(tc.Yellow, rec.String()))
	}
	for _, rec := range report.Overridden {
		log.Printf("%s:%d: replacing an earlier calibration for %s", rec.Source, rec.Line, highlight(tc.Yellow, rec.String()))
	}

	if Config.Dump {
		if err := dump(stdout, m); err != nil {
			return err
		}
	}

	enc := pixiemap.Encoder{}
	if Config.LegacyNumberAttribute {
		enc.NumberAttribute = pixiemap.LegacyNumberAttribute
	}
	if err := enc.WriteFile(Config.OutputFile, m); err != nil {
		return err
	}

	log.Printf("Wrote %d modules with %d channels to %s", len(m.Modules), len(m.Channels()), highlight(tc.Green, Config.OutputFile))
	return nil
}

func dump(w io.Writer, m *pixiemap.Map) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

func highlight(colour func(string) string, s string) string {
	if !Config.Colour {
		return s
	}
	return colour(s)
}

func croak(e error) {
	if e != nil {
		log.Fatal(e)
	}
}
