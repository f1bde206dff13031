package validation

import (
	"errors"
	"strings"
)

// ExtractJSON recovers the outermost JSON value from raw model output.
// Models wrap answers in markdown fences or lead with prose; both are
// stripped before strict parsing. Returns an error when no JSON value is
// present at all.
func ExtractJSON(raw string) (string, error) {
	s := stripCodeFences(strings.TrimSpace(raw))

	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	start := objStart
	end := strings.LastIndex(s, "}")
	if objStart < 0 || (arrStart >= 0 && arrStart < objStart) {
		start = arrStart
		end = strings.LastIndex(s, "]")
	}
	if start < 0 || end <= start {
		return "", errors.New("no JSON value in model output")
	}
	return s[start : end+1], nil
}

func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// drop the info string ("json", "JSON", ...)
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
