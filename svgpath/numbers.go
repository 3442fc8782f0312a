package svgpath

import (
	parse "github.com/tdewolff/parse/v2/strconv"
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// skipCommaSpace consumes an optional comma surrounded by white spaces,
// and returns the new position and the number of commas seen.
func skipCommaSpace(b []byte, i int) (int, int) {
	commas := 0
	for i < len(b) {
		switch {
		case isSpace(b[i]):
		case b[i] == ',':
			commas++
		default:
			return i, commas
		}
		i++
	}
	return i, commas
}

// ParseNumbers reads a list of numbers separated by white spaces
// and/or a comma, as found in the "points" or "viewBox" attributes.
// Numbers may directly follow each other when it is not ambiguous, as in "10-5".
// A single trailing separator is accepted.
// ok is false if the list is malformed.
func ParseNumbers(s string) (out []float64, ok bool) {
	b := []byte(s)
	i, commas := skipCommaSpace(b, 0)
	if commas != 0 {
		return nil, false
	}
	for i < len(b) {
		f, n := parse.ParseFloat(b[i:])
		if n == 0 {
			return nil, false
		}
		out = append(out, f)
		i, commas = skipCommaSpace(b, i+n)
		if commas > 1 {
			return nil, false
		}
	}
	return out, true
}
