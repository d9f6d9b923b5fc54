package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutLongDate = "02 January 2006"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseISO parses an ISO-8601 timestamp as sent by the gateway. Timestamps
// without an offset are taken as UTC.
func ParseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	// Zone-less form, with or without fractional seconds.
	return time.Parse("2006-01-02T15:04:05.999999999", s)
}

// FormatDate formats time to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}

// FormatLongDate formats time for customer-facing documents, e.g. "08 March 2026".
func FormatLongDate(t time.Time) string {
	return t.Format(layoutLongDate)
}

// FormatTimeHM formats the clock portion of a timestamp as HH:MM.
func FormatTimeHM(t time.Time) string {
	return t.Format("15:04")
}

// SameDay reports whether two timestamps fall on the same calendar day in UTC.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
