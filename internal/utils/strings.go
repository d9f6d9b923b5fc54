package utils

import (
	"strings"
	"unicode"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeRegistration strips all whitespace and uppercases a number plate,
// so "ca 123-456" and "CA123-456" compare equal. Plates are free text; no
// grammar is enforced.
func NormalizeRegistration(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// CompactPlate reduces a number plate to uppercase letters and digits for
// fuzzy matching: "ca123456" compacts equal to "CA 123-456".
func CompactPlate(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// SafeFilenamePart replaces characters that break filenames on common
// filesystems and caps the length.
func SafeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	// Cap on rune boundaries; names can carry multibyte characters.
	if r := []rune(s); len(r) > 40 {
		s = string(r[:40])
	}
	return s
}
