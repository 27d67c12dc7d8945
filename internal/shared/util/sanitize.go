package util

import (
	"errors"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFileNameRunes bounds a stored resume name; longer names keep their extension.
const MaxFileNameRunes = 100

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName turns an uploaded resume name into a single safe key
// segment. Separators and whitespace become "_", control characters are
// dropped and traversal patterns are rejected.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\' || unicode.IsSpace(r):
			b.WriteRune('_')
		case unicode.IsControl(r) || r == utf8.RuneError:
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" || s == "." {
		return "", ErrInvalidFileName
	}
	return truncateKeepingExt(s, MaxFileNameRunes), nil
}

func truncateKeepingExt(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	ext := path.Ext(s)
	if utf8.RuneCountInString(ext) >= max {
		ext = ""
	}
	base := []rune(strings.TrimSuffix(s, ext))
	return string(base[:max-utf8.RuneCountInString(ext)]) + ext
}
