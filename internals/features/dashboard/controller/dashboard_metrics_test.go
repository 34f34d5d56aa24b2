package controller

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEfficiencyRate(t *testing.T) {
	cases := []struct {
		name        string
		paid, total int64
		want        float64
	}{
		{"empty window", 0, 0, 0},
		{"nothing settled", 0, 40, 0},
		{"half settled", 20, 40, 50},
		{"all settled", 40, 40, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := efficiencyRate(tc.paid, tc.total); got != tc.want {
				t.Errorf("efficiencyRate(%d, %d) = %v, want %v", tc.paid, tc.total, got, tc.want)
			}
		})
	}
}

func TestCountToTarget(t *testing.T) {
	cases := []struct {
		name        string
		paid, total int64
		want        int64
	}{
		{"empty window", 0, 0, 0},
		// ceil(0.9*10)=9
		{"none settled", 0, 10, 9},
		{"partially there", 5, 10, 4},
		{"exactly on target", 9, 10, 0},
		{"above target", 10, 10, 0},
		// ceil(0.9*7)=7: a small batch needs every line
		{"rounding up", 5, 7, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := countToTarget(tc.paid, tc.total, 90.0); got != tc.want {
				t.Errorf("countToTarget(%d, %d, 90) = %d, want %d", tc.paid, tc.total, got, tc.want)
			}
		})
	}
}

func TestRevenueDelta(t *testing.T) {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	abs, pct := revenueDelta(d("1500.00"), d("1000.00"))
	if abs.StringFixed(2) != "500.00" {
		t.Errorf("delta amount = %s, want 500.00", abs.StringFixed(2))
	}
	if pct == nil || *pct != 50 {
		t.Errorf("delta percent = %v, want 50", pct)
	}

	abs, pct = revenueDelta(d("800.00"), d("1000.00"))
	if abs.StringFixed(2) != "-200.00" {
		t.Errorf("negative delta amount = %s, want -200.00", abs.StringFixed(2))
	}
	if pct == nil || *pct != -20 {
		t.Errorf("negative delta percent = %v, want -20", pct)
	}

	abs, pct = revenueDelta(d("300.00"), decimal.Zero)
	if abs.StringFixed(2) != "300.00" {
		t.Errorf("delta over empty month = %s, want 300.00", abs.StringFixed(2))
	}
	if pct != nil {
		t.Errorf("percent over empty month should be nil, got %v", *pct)
	}
}
