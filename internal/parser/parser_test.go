package parser

import (
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 2, 27, 10, 0, 0, 0, time.UTC)

func TestExpandDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"today", "2024-02-27"},
		{"Tomorrow", "2024-02-28"},
		{"3 days", "2024-03-01"},
		{"1 day", "2024-02-28"},
		{"2d", "2024-02-29"},
		{"1 week", "2024-03-05"},
		{"2w", "2024-03-12"},
		{"2024-12-25", "2024-12-25"},
		{"next friday", "next friday"},
		{"  someday ", "someday"},
		{"99999 days", "99999 days"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExpandDate(tt.input, fixedNow); got != tt.want {
				t.Errorf("ExpandDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		action   string
		date     string
		priority bool
		errors   int
	}{
		{"plain", "Buy milk", "Buy milk", "", false, 0},
		{"due and priority", "Buy milk +high due:tomorrow", "Buy milk", "2024-02-28", true, 0},
		{"bang priority", "! Call mum due:2024-06-01", "Call mum", "2024-06-01", true, 0},
		{"opaque date", "Pay rent due:first-of-month", "Pay rent", "first-of-month", false, 0},
		{"invalid priority", "Fix bike +maybe", "Fix bike", "", false, 1},
		{"empty due", "Read due: book", "Read book", "", false, 1},
		{"plus inside word kept", "C++ homework", "C++ homework", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAction(tt.input, fixedNow)
			if got.Action != tt.action {
				t.Errorf("Action = %q, want %q", got.Action, tt.action)
			}
			if got.Date != tt.date {
				t.Errorf("Date = %q, want %q", got.Date, tt.date)
			}
			if got.Priority != tt.priority {
				t.Errorf("Priority = %v, want %v", got.Priority, tt.priority)
			}
			if len(got.Errors) != tt.errors {
				t.Errorf("expected %d errors, got %v", tt.errors, got.Errors)
			}
		})
	}
}
