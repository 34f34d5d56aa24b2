package service

import (
	"testing"
	"time"

	"nitihub_backend/internals/features/notifications/model"
)

func TestBackoff(t *testing.T) {
	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 2 * time.Second}, // clamped to 1
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{6, 64 * time.Second},
		{7, 2 * time.Minute}, // capped
		{20, 2 * time.Minute},
	}
	for _, tc := range cases {
		if got := Backoff(tc.attempt); got != tc.want {
			t.Errorf("Backoff(%d) = %s, want %s", tc.attempt, got, tc.want)
		}
	}
}

func TestChunk(t *testing.T) {
	rows := func(n int) []model.NotificationAuditModel {
		return make([]model.NotificationAuditModel, n)
	}
	cases := []struct {
		name      string
		total     int
		size      int
		wantSizes []int
	}{
		{"empty", 0, 20, nil},
		{"under one batch", 5, 20, []int{5}},
		{"exact batch", 20, 20, []int{20}},
		{"split", 45, 20, []int{20, 20, 5}},
		{"size clamp", 3, 0, []int{1, 1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Chunk(rows(tc.total), tc.size)
			if len(got) != len(tc.wantSizes) {
				t.Fatalf("got %d chunks, want %d", len(got), len(tc.wantSizes))
			}
			for i, want := range tc.wantSizes {
				if len(got[i]) != want {
					t.Errorf("chunk %d has %d rows, want %d", i, len(got[i]), want)
				}
			}
		})
	}
}
