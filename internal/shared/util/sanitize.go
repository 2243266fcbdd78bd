package util

import (
	"errors"
	"strings"
)

// SanitizeFileName rejects traversal patterns and strips path separators so
// the result is safe as a single path segment.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	for _, sep := range []string{"/", "\\"} {
		s = strings.ReplaceAll(s, sep, "_")
	}
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}
