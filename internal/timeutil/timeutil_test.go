package timeutil

import (
	"testing"
	"time"
)

func TestPeriodOf(t *testing.T) {
	// 31 Dec 23:30 UTC is already 1 Jan in PKT
	utcNewYear := time.Date(2024, 12, 31, 23, 30, 0, 0, time.UTC)
	month, year := PeriodOf(utcNewYear)
	if month != 1 || year != 2025 {
		t.Errorf("PeriodOf() = (%d, %d), want (1, 2025)", month, year)
	}

	local := time.Date(2025, 3, 15, 10, 0, 0, 0, PKT)
	month, year = PeriodOf(local)
	if month != 3 || year != 2025 {
		t.Errorf("PeriodOf() = (%d, %d), want (3, 2025)", month, year)
	}
}

func TestDueDateFor(t *testing.T) {
	due := DueDateFor(3, 2025)
	if due.Day() != 5 || due.Month() != time.March || due.Year() != 2025 {
		t.Errorf("DueDateFor(3, 2025) = %v, want 5 March 2025", due)
	}
	if due.Location() != PKT {
		t.Errorf("DueDateFor() location = %v, want PKT", due.Location())
	}
}

func TestParseInPKT(t *testing.T) {
	parsed, err := ParseInPKT(DateLayout, "2025-03-03")
	if err != nil {
		t.Fatalf("ParseInPKT() error = %v", err)
	}
	if parsed.Day() != 3 || parsed.Month() != time.March {
		t.Errorf("ParseInPKT() = %v, want 3 March 2025", parsed)
	}

	if _, err := ParseInPKT(DateLayout, "03/03/2025"); err == nil {
		t.Error("ParseInPKT() accepted a malformed date")
	}
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 3, 18, 45, 12, 0, PKT)
	start := StartOfDay(ts)
	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Errorf("StartOfDay() = %v, want midnight", start)
	}
	if start.Day() != 3 {
		t.Errorf("StartOfDay() day = %d, want 3", start.Day())
	}
}
