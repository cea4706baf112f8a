package utils

import (
	"time"
)

const (
	// TimestampLayout renders dd/mm/yyyy HH:MM:SS with a 24 hour clock.
	TimestampLayout = "02/01/2006 15:04:05"
	// FileDateLayout renders the daily file name.
	FileDateLayout = "2006-01-02"
	// LocaleDateTimeLayout mirrors the it-IT locale rendering of a date and time.
	LocaleDateTimeLayout = "2/1/2006, 15:04:05"
	// ISOLayout renders an instant with millisecond precision, always in UTC.
	ISOLayout = "2006-01-02T15:04:05.000Z"
)

// LogTimestamp formats t for the prefix of a file entry.
func LogTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// LogDate formats t as the base name of the daily file.
func LogDate(t time.Time) string {
	return t.Format(FileDateLayout)
}

// LocaleDateTime formats t in loc the way the it-IT locale does.
func LocaleDateTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}

	return t.Format(LocaleDateTimeLayout)
}

// ISOString formats t as an ISO-8601 instant in UTC with milliseconds.
func ISOString(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}
