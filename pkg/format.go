package pkg

import (
	"math"
	"strconv"
	"strings"
)

// FormatCoefficient renders a calibration coefficient in its natural decimal
// form: the shortest representation that parses back to the same value,
// with a trailing ".0" on whole numbers. Very large and very small
// magnitudes use an exponent, e.g. 1e-05 or 1.5e+16.
func FormatCoefficient(f float64) string {
	if math.IsNaN(f) {
		return "nan"
	} else if math.IsInf(f, 1) {
		return "inf"
	} else if math.IsInf(f, -1) {
		return "-inf"
	}

	if f != 0 {
		sci := strconv.FormatFloat(f, 'e', -1, 64)
		exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
		if err == nil && (exp < -4 || exp >= 16) {
			return sci
		}
	}

	rv := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(rv, ".") {
		rv += ".0"
	}
	return rv
}

// parseCoefficient is the inverse of FormatCoefficient. Values outside the
// range of a float64 overflow to infinity rather than failing. Hexadecimal
// notation is not a decimal number and is rejected.
func parseCoefficient(s string) (float64, error) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax}
	}

	f, err := strconv.ParseFloat(s, 64)
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		return f, nil
	}
	return f, err
}
