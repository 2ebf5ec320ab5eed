package gdrive

import (
	"log"
	"time"
)

// parseTime parses a RFC 3339 date-time string of the drive metadata.
// input example: 2018-08-03T12:03:30.407Z
// Invalid strings return the zero time.
func parseTime(s string) time.Time {
	t := time.Time{}
	if err := t.UnmarshalText([]byte(s)); err != nil {
		log.Printf("WARNING: %s/parseTime: can't parse timestring '%s': %v", packageName, s, err)
		return time.Time{}
	}
	return t
}
