package util

import (
	"testing"
	"time"
)

func TestQuickDates(t *testing.T) {
	// Wednesday
	wed := time.Date(2026, 1, 28, 15, 0, 0, 0, time.Local)
	if got := Tomorrow(wed); got != "2026-01-29" {
		t.Errorf("Expected tomorrow 2026-01-29, got %s", got)
	}
	if got := NextSunday(wed); got != "2026-02-01" {
		t.Errorf("Expected Sunday 2026-02-01, got %s", got)
	}

	sun := time.Date(2026, 2, 1, 8, 0, 0, 0, time.Local)
	if got := NextSunday(sun); got != "2026-02-08" {
		t.Errorf("Expected following Sunday 2026-02-08, got %s", got)
	}

	sat := time.Date(2026, 1, 31, 23, 0, 0, 0, time.Local)
	if got := NextSunday(sat); got != "2026-02-01" {
		t.Errorf("Expected Sunday 2026-02-01, got %s", got)
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 1, 29, 10, 0, 0, 0, time.Local)
	if !IsOverdue("2026-01-28", now) {
		t.Error("Expected yesterday to be overdue")
	}
	if IsOverdue("2026-01-29", now) {
		t.Error("Expected today not to be overdue")
	}
	if IsOverdue("2026-02-01", now) {
		t.Error("Expected future date not to be overdue")
	}
	if IsOverdue("soon", now) {
		t.Error("Expected unparseable date not to be overdue")
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2026-01-29"); got != "Jan 29, 2026" {
		t.Errorf("Expected 'Jan 29, 2026', got '%s'", got)
	}
	if got := FormatDate("whenever"); got != "whenever" {
		t.Errorf("Expected raw value back, got '%s'", got)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2026-13-01"); err == nil {
		t.Error("Expected error for month 13")
	}
	if _, err := ParseDate(""); err == nil {
		t.Error("Expected error for empty date")
	}
	next, err := NextDay("2026-12-31")
	if err != nil || next != "2027-01-01" {
		t.Errorf("Expected 2027-01-01, got %s (%v)", next, err)
	}
}
