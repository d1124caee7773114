// Copyright 2016 Thijs van Dijk. All rights reserved.
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

/*
	Package fieldreader reads the line-oriented text tables used by the
	pixie acquisition setup, such as map.txt and cal.txt.

	Every line holds a number of whitespace separated fields. Blank lines
	and lines starting with a '%' are comments and are skipped. A UTF-8
	byte order mark at the start of the input is ignored.

	Usage:

		fr, err := fieldreader.Open("map.txt", 6)
		if err != nil {
			panic(err)
		}
		defer fr.Close()
		for fr.Next() {
			fmt.Println(fr.Line(), fr.Fields())
		}
		if err := fr.Err(); err != nil {
			panic(err)
		}

	A Reader stops at the first line that has fewer fields than requested.
	This library is not thread-safe in any way.
*/
package fieldreader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CommentPrefix marks a line as a comment
const CommentPrefix = "%"

// A FieldCountError is returned when a line holds fewer fields than required
type FieldCountError struct {
	Wanted int
	Got    int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("expected at least %d fields; got %d", e.Wanted, e.Got)
}

// A Reader tokenizes a commented, whitespace separated text table
type Reader struct {
	// Name identifies the input in error messages
	Name string

	// MinFields is the least number of fields a data line must have
	MinFields int

	scanner *bufio.Scanner
	closer  io.Closer
	line    int
	fields  []string
	err     error
}

// New creates a Reader on top of an existing io.Reader
func New(r io.Reader, name string, minFields int) *Reader {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	rv := &Reader{
		Name:      name,
		MinFields: minFields,
		scanner:   bufio.NewScanner(dec),
	}
	rv.scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	return rv
}

// Open opens a file for reading. The caller should Close the Reader when done.
func Open(filename string, minFields int) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.WithMessage(err, "cannot open input")
	}

	rv := New(f, filename, minFields)
	rv.closer = f
	return rv, nil
}

// Close releases the underlying file, if any
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// Next advances to the next data line. It returns false at the end of the
// input or on the first error; check Err afterwards.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < r.MinFields {
			r.fields = nil
			r.err = r.Wrap(&FieldCountError{Wanted: r.MinFields, Got: len(fields)})
			return false
		}

		r.fields = fields
		return true
	}

	r.fields = nil
	if err := r.scanner.Err(); err != nil {
		r.err = errors.Wrap(err, r.Name)
	}
	return false
}

// Fields returns the fields on the current line
func (r *Reader) Fields() []string {
	return r.fields
}

// Line returns the 1-based number of the current line, counting comments
func (r *Reader) Line() int {
	return r.line
}

// Err returns the first error encountered, if any
func (r *Reader) Err() error {
	return r.err
}

// Wrap annotates an error with the current file name and line number. Use
// it for errors found while interpreting the fields of a line.
func (r *Reader) Wrap(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, "%s:%d", r.Name, r.line)
}
