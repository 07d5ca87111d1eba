package forms

import "time"

// Accepted layouts for date-typed draft fields. Forms submit either a bare
// date from a date picker or a full RFC3339 timestamp.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MatchField requires draft[field] to equal draft[other]; the error lands
// on field (e.g. confirmPassword next to its own input).
func MatchField(field, other, message string) Refinement {
	return func(draft map[string]any) (string, string) {
		a, aok := draft[field].(string)
		b, bok := draft[other].(string)
		if !aok || !bok || a == "" || b == "" {
			return "", ""
		}
		if a != b {
			return field, message
		}
		return "", ""
	}
}

// DateNotBefore requires draft[field] to be on or after draft[other]; the
// error lands on field.
func DateNotBefore(field, other, message string) Refinement {
	return func(draft map[string]any) (string, string) {
		end, ok := parseDate(draft[field])
		if !ok {
			return "", ""
		}
		start, ok := parseDate(draft[other])
		if !ok {
			return "", ""
		}
		if end.Before(start) {
			return field, message
		}
		return "", ""
	}
}

// DateNotPast requires draft[field] to be today or later.
func DateNotPast(field, message string) Refinement {
	return func(draft map[string]any) (string, string) {
		t, ok := parseDate(draft[field])
		if !ok {
			return "", ""
		}
		today := time.Now().Truncate(24 * time.Hour)
		if t.Before(today) {
			return field, message
		}
		return "", ""
	}
}
