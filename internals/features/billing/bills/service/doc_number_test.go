package service

import (
	"testing"
	"time"
)

func TestDocNoDatePart(t *testing.T) {
	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"plain", time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC), "2025-0307"},
		{"double digit", time.Date(2025, 11, 21, 0, 0, 0, 0, time.UTC), "2025-1121"},
		{"new year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "2026-0101"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DocNoDatePart(tc.t); got != tc.want {
				t.Errorf("DocNoDatePart() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormatDocNo(t *testing.T) {
	day := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		prefix string
		seq    int
		want   string
	}{
		{"first of day", "BILL", 0, "BILL-2025-0615-000"},
		{"mid sequence", "INV", 42, "INV-2025-0615-042"},
		{"last before wrap", "BILL", 999, "BILL-2025-0615-999"},
		{"wraps modulo 1000", "INV", 1000, "INV-2025-0615-000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDocNo(tc.prefix, day, tc.seq); got != tc.want {
				t.Errorf("FormatDocNo() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseDocSeq(t *testing.T) {
	cases := []struct {
		name  string
		docNo string
		want  int
		ok    bool
	}{
		{"bill number", "BILL-2025-0615-007", 7, true},
		{"invoice number", "INV-2025-0615-999", 999, true},
		{"no dash", "BILL20250615007", 0, false},
		{"trailing dash", "BILL-2025-0615-", 0, false},
		{"non numeric suffix", "BILL-2025-0615-abc", 0, false},
		{"empty", "", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDocSeq(tc.docNo)
			if got != tc.want || ok != tc.ok {
				t.Errorf("ParseDocSeq(%q) = (%d, %v), want (%d, %v)", tc.docNo, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestNextSeq(t *testing.T) {
	cases := []struct {
		prev, want int
	}{
		{0, 1},
		{41, 42},
		{998, 999},
		{999, 0}, // daily counter wraps
	}
	for _, tc := range cases {
		if got := NextSeq(tc.prev); got != tc.want {
			t.Errorf("NextSeq(%d) = %d, want %d", tc.prev, got, tc.want)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	day := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	for _, seq := range []int{0, 1, 99, 999} {
		docNo := FormatDocNo("BILL", day, seq)
		got, ok := ParseDocSeq(docNo)
		if !ok || got != seq {
			t.Errorf("round trip %q: got (%d, %v), want (%d, true)", docNo, got, ok, seq)
		}
	}
}
