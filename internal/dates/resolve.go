// Package dates resolves the heterogeneous date tokens found in assignment files into
// calendar dates.
package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// nullToken marks an open-ended assignment; it resolves to the reference date.
const nullToken = "NULL"

// layouts is tried in order and the first successful parse wins. The order is load-bearing:
// "01/02/2023" must resolve day-first, so dd/MM/yyyy precedes MM/dd/yyyy.
// Numeric day and month fields accept one or two digits.
var layouts = []string{
	"2006-1-2",        // yyyy-MM-dd
	"2/1/2006",        // dd/MM/yyyy
	"1/2/2006",        // MM/dd/yyyy
	"2-Jan-2006",      // d-MMM-yyyy
	"2 Jan 2006",      // d MMM yyyy
	"2006/1/2",        // yyyy/MM/dd
	"1-2-2006",        // MM-dd-yyyy
	"Jan 2, 2006",     // MMM d, yyyy
	"January 2, 2006", // MMMM d, yyyy
	"2 January 2006",  // d MMMM yyyy
	"2006.1.2",        // yyyy.MM.dd
	"2.1.2006",        // dd.MM.yyyy
	"1/2/2006 15:04",  // MM/dd/yyyy HH:mm
	"2006-1-2 15:04",  // yyyy-MM-dd HH:mm
}

// BadDateError reports a token that no layout or the free-form fallback could parse.
type BadDateError struct {
	Token string
}

func (e *BadDateError) Error() string {
	return fmt.Sprintf(`Bad date: "%s"`, e.Token)
}

// Resolve turns a raw token into a calendar date (UTC midnight). Empty and NULL tokens
// resolve to the calendar date of ref. Any time of day in the token is discarded.
func Resolve(token string, ref time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" || strings.EqualFold(trimmed, nullToken) {
		return CalendarDate(ref), nil
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return CalendarDate(t), nil
		}
	}

	t, err := dateparse.ParseIn(trimmed, time.UTC)
	if err != nil || t.IsZero() {
		return time.Time{}, &BadDateError{Token: token}
	}
	return CalendarDate(t), nil
}

// CalendarDate drops the time of day and location, keeping the date as written.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date.
func Today() time.Time {
	return CalendarDate(time.Now())
}

// DaysBetween counts whole days from a to b. Both must be calendar dates.
// Works on Unix seconds: time.Duration overflows for spans past ~292 years.
func DaysBetween(a, b time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}
