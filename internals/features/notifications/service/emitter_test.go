package service

import (
	"strings"
	"testing"
	"time"
)

func TestBillDetailText(t *testing.T) {
	due := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)

	got := BillDetailText("ค่าส่วนกลางเดือนเมษายน", due)
	if !strings.HasPrefix(got, "ค่าส่วนกลางเดือนเมษายน ") {
		t.Errorf("detail prefix lost: %q", got)
	}
	if !strings.Contains(got, "ครบกำหนด:") {
		t.Errorf("deadline label missing: %q", got)
	}
	if !strings.Contains(got, "2568") { // Buddhist year of 2025
		t.Errorf("Buddhist year missing: %q", got)
	}

	// empty detail keeps only the deadline
	got = BillDetailText("  ", due)
	if !strings.HasPrefix(got, "ครบกำหนด:") {
		t.Errorf("empty detail should start with deadline: %q", got)
	}
}
