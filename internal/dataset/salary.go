package dataset

import (
	"regexp"
	"strconv"
	"strings"
)

var salaryRangeRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)$`)

// NormalizeSalary turns heterogeneous salary text into a numeric value.
// Currency symbols and thousands separators are stripped, a hyphenated range
// like "5000-7000" resolves to its midpoint, anything else is attempted as a
// direct numeric parse. Non-parsable input yields ok=false, never an error.
func NormalizeSalary(raw string) (float64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	s = strings.TrimSpace(s)

	if m := salaryRangeRe.FindStringSubmatch(s); m != nil {
		lo, err1 := strconv.ParseFloat(m[1], 64)
		hi, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			return (lo + hi) / 2, true
		}
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
