// Package callnum provides normalization and ordering for library call
// numbers (LC-style classification strings).
//
// Plain string comparison misorders call numbers whose numeric parts have
// different digit counts ("QA9" would sort after "QA10"). Compare tokenizes
// a call number into alphabetic and numeric segments and compares numeric
// segments by value, which matches shelf order.
package callnum

import (
	"regexp"
	"strings"
)

// cutterPattern matches the first cutter segment, e.g. ".C49" or " E353",
// and everything after it (workmarks, further cutters, the year).
var cutterPattern = regexp.MustCompile(`[\s.]+[A-Z]\d+.*$`)

// Normalize prepares a raw call number for comparison: uppercase, trimmed,
// internal whitespace collapsed. Empty input stays empty.
func Normalize(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	return strings.Join(strings.Fields(s), " ")
}

// StripCutter removes the cutter and anything after it from a normalized
// call number. "QA76.73.G63 C49 2015" becomes "QA76.73"; "QA76" is left
// alone since its tail is the class number, not a cutter.
func StripCutter(s string) string {
	return cutterPattern.ReplaceAllString(s, "")
}

type segment struct {
	text    string
	intPart string // leading zeros trimmed
	frac    string
	numeric bool
}

// segments splits a normalized call number into alternating alphabetic and
// numeric runs. A period between digits is treated as a decimal point, so
// "76.5" is one numeric segment; all other punctuation and spaces only
// separate segments.
func segments(s string) []segment {
	var segs []segment
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			j := i
			for j < len(s) && s[j] >= 'A' && s[j] <= 'Z' {
				j++
			}
			segs = append(segs, segment{text: s[i:j]})
			i = j
		case c >= '0' && c <= '9':
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			intPart := s[i:j]
			frac := ""
			if j+1 < len(s) && s[j] == '.' && s[j+1] >= '0' && s[j+1] <= '9' {
				k := j + 1
				for k < len(s) && s[k] >= '0' && s[k] <= '9' {
					k++
				}
				frac = s[j+1 : k]
				j = k
			}
			segs = append(segs, segment{
				text:    s[i:j],
				intPart: strings.TrimLeft(intPart, "0"),
				frac:    strings.TrimRight(frac, "0"),
				numeric: true,
			})
			i = j
		default:
			i++
		}
	}
	return segs
}

func compareSegments(a, b segment) int {
	// Numeric segments sort before alphabetic ones.
	if a.numeric != b.numeric {
		if a.numeric {
			return -1
		}
		return 1
	}
	if !a.numeric {
		return strings.Compare(a.text, b.text)
	}
	// Whole-number part: fewer digits means smaller once leading zeros are gone.
	if len(a.intPart) != len(b.intPart) {
		if len(a.intPart) < len(b.intPart) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(a.intPart, b.intPart); c != 0 {
		return c
	}
	// Fraction digits compare positionally, so ".5" < ".54" < ".6".
	return strings.Compare(a.frac, b.frac)
}

// Compare reports the shelf order of two call numbers: -1 if a shelves
// before b, 0 if they are equivalent, 1 if a shelves after b. Inputs are
// normalized first, so callers may pass raw strings.
func Compare(a, b string) int {
	as := segments(Normalize(a))
	bs := segments(Normalize(b))
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegments(as[i], bs[i]); c != 0 {
			return c
		}
	}
	// A call number that is a prefix of another shelves first.
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	default:
		return 0
	}
}

// InRange reports whether call falls inside [low, high] inclusive under
// shelf order.
func InRange(call, low, high string) bool {
	return Compare(low, call) <= 0 && Compare(call, high) <= 0
}
