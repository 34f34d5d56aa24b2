package helper

import "testing"

func TestBuildPagination(t *testing.T) {
	cases := []struct {
		name       string
		total      int64
		page       int
		perPage    int
		wantPages  int
		wantHasNext bool
		wantHasPrev bool
	}{
		{"empty result", 0, 1, 20, 1, false, false},
		{"one short page", 5, 1, 20, 1, false, false},
		{"exact boundary", 40, 1, 20, 2, true, false},
		{"middle page", 100, 3, 20, 5, true, true},
		{"last page", 100, 5, 20, 5, false, true},
		{"ceil rounding", 41, 1, 20, 3, true, false},
		{"defaults on zero per page", 10, 0, 0, 1, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := BuildPagination(tc.total, tc.page, tc.perPage)
			if p.TotalPages != tc.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tc.wantPages)
			}
			if p.HasNext != tc.wantHasNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tc.wantHasNext)
			}
			if p.HasPrev != tc.wantHasPrev {
				t.Errorf("HasPrev = %v, want %v", p.HasPrev, tc.wantHasPrev)
			}
			if p.Total != tc.total {
				t.Errorf("Total = %d, want %d", p.Total, tc.total)
			}
		})
	}
}
