package helper

import (
	"testing"
	"time"
)

func TestIsOverdue(t *testing.T) {
	loc := Location()
	deadline := time.Date(2025, 4, 30, 0, 0, 0, 0, loc)

	cases := []struct {
		name  string
		today time.Time
		want  bool
	}{
		{"day before", time.Date(2025, 4, 29, 23, 0, 0, 0, loc), false},
		{"deadline day", time.Date(2025, 4, 30, 23, 59, 0, 0, loc), false},
		{"day after", time.Date(2025, 5, 1, 0, 0, 0, 0, loc), true},
		// 2025-04-30 17:30 UTC is already 2025-05-01 00:30 in +07:00
		{"utc instant past local midnight", time.Date(2025, 4, 30, 17, 30, 0, 0, time.UTC), true},
		// 2025-05-01 02:00 UTC+13 is still 2025-04-30 20:00 in +07:00
		{"foreign zone still same civil day", time.Date(2025, 5, 1, 2, 0, 0, 0, time.FixedZone("X", 13*3600)), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOverdue(deadline, tc.today); got != tc.want {
				t.Errorf("IsOverdue(%s, %s) = %v, want %v", deadline, tc.today, got, tc.want)
			}
		})
	}
}

func TestStartOfMonthBoundaries(t *testing.T) {
	loc := Location()
	at := time.Date(2025, 3, 15, 13, 45, 0, 0, loc)

	if got := StartOfMonth(at); !got.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("StartOfMonth = %s", got)
	}
	if got := StartOfNextMonth(at); !got.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("StartOfNextMonth = %s", got)
	}
	if got := StartOfPrevMonth(at); !got.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("StartOfPrevMonth = %s", got)
	}

	// year rollover
	dec := time.Date(2025, 12, 31, 23, 0, 0, 0, loc)
	if got := StartOfNextMonth(dec); !got.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, loc)) {
		t.Errorf("StartOfNextMonth(dec) = %s", got)
	}
}

func TestFormatThaiDate(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"plain", time.Date(2025, 4, 30, 12, 0, 0, 0, Location()), "30/04/2568"},
		{"single digit day", time.Date(2026, 1, 5, 0, 0, 0, 0, Location()), "05/01/2569"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatThaiDate(tc.t); got != tc.want {
				t.Errorf("FormatThaiDate = %q, want %q", got, tc.want)
			}
		})
	}
}
