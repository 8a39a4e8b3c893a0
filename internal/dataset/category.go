package dataset

import (
	"encoding/json"
	"strings"
)

const categoryMarker = `"category":`

// ParseCategories extracts the ordered category labels from the raw
// categories cell, which is expected to hold a JSON array of objects like
// [{"category":"IT"},{"category":"Finance"}]. Elements without a category
// field are skipped. When strict parsing fails, a best-effort scan for
// "category": markers is used instead; it may under- or over-match on
// malformed input. Always returns a (possibly empty) list, never an error.
func ParseCategories(raw string) []string {
	if raw == "" {
		return nil
	}

	var elems []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &elems); err == nil {
		cats := make([]string, 0, len(elems))
		for _, e := range elems {
			if v, ok := e["category"]; ok {
				if s, ok := v.(string); ok {
					cats = append(cats, s)
				}
			}
		}
		return cats
	}

	return scanCategories(raw)
}

// scanCategories is the fallback path: for every "category": occurrence take
// the quoted value that follows it.
func scanCategories(raw string) []string {
	var cats []string
	s := raw
	for {
		idx := strings.Index(s, categoryMarker)
		if idx < 0 {
			break
		}
		s = s[idx+len(categoryMarker):]
		q := strings.IndexByte(s, '"')
		if q < 0 {
			break
		}
		rest := s[q+1:]
		end := strings.IndexByte(rest, '"')
		if end < 0 {
			break
		}
		cats = append(cats, rest[:end])
		s = rest[end+1:]
	}
	return cats
}

// PrimaryCategory returns the first parsed category, or "" when none parse.
func PrimaryCategory(raw string) string {
	cats := ParseCategories(raw)
	if len(cats) == 0 {
		return ""
	}
	return cats[0]
}
