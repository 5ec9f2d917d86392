package timeutil

import (
	"time"
)

// PKT is the Pakistan Standard Time location (UTC+5)
var PKT *time.Location

func init() {
	var err error
	PKT, err = time.LoadLocation("Asia/Karachi")
	if err != nil {
		// Fallback: create fixed zone if Asia/Karachi not available
		PKT = time.FixedZone("PKT", 5*60*60) // UTC+5
	}
}

// Now returns the current time in PKT
func Now() time.Time {
	return time.Now().In(PKT)
}

// ToPKT converts any time to PKT
func ToPKT(t time.Time) time.Time {
	return t.In(PKT)
}

// ParseInPKT parses a time string and returns it in PKT
func ParseInPKT(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, PKT)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatPKT formats a time in PKT using the given layout
func FormatPKT(t time.Time, layout string) string {
	return t.In(PKT).Format(layout)
}

// StartOfDay returns the start of day (00:00:00) in PKT for the given time
func StartOfDay(t time.Time) time.Time {
	pkt := t.In(PKT)
	return time.Date(pkt.Year(), pkt.Month(), pkt.Day(), 0, 0, 0, 0, PKT)
}

// PeriodOf returns the calendar (month, year) a payment date belongs to
func PeriodOf(t time.Time) (month int, year int) {
	pkt := t.In(PKT)
	return int(pkt.Month()), pkt.Year()
}

// DueDateFor returns the due date for a billing period: the 5th of that month
func DueDateFor(month, year int) time.Time {
	return time.Date(year, time.Month(month), 5, 0, 0, 0, 0, PKT)
}

// Common layouts for PKT formatting
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
