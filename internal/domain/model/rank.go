package model

import (
	"strconv"
	"strings"
)

// ParseRank converts a published rank string into its numeric sort key.
// Accepted shapes:
//
//	"12"       plain rank
//	"=12"      tied rank, sorts at the shared position
//	"601-650"  range rank, sorts by the range start
//	"1401+"    open-ended range, sorts by its lower bound
//
// Empty strings and "-" are unranked. The display string is preserved
// verbatim by callers; only the sort key is derived here.
func ParseRank(display string) (rank int, ranked bool) {
	s := strings.TrimSpace(display)
	if s == "" || s == "-" {
		return 0, false
	}
	s = strings.TrimPrefix(s, "=")
	s = strings.TrimSuffix(s, "+")
	if i := strings.IndexAny(s, "-–"); i > 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		// Some exports write ranks as floats ("5.0").
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, false
		}
		n = int(f)
	}
	if n < 1 {
		return 0, false
	}
	return n, true
}
