package model

import (
	"testing"
	"time"

	"nitihub_backend/internals/constants"
	helper "nitihub_backend/internals/helpers"
)

func TestDisplayStatus(t *testing.T) {
	loc := helper.Location()
	deadline := time.Date(2025, 4, 30, 0, 0, 0, 0, loc)
	before := time.Date(2025, 4, 29, 0, 0, 0, 0, loc)
	onDay := time.Date(2025, 4, 30, 0, 0, 0, 0, loc)
	after := time.Date(2025, 5, 1, 0, 0, 0, 0, loc)

	cases := []struct {
		name      string
		persisted int
		today     time.Time
		want      int
	}{
		{"unpaid before deadline", constants.BillRoomStatusUnpaid, before, constants.BillRoomStatusUnpaid},
		{"unpaid on deadline day", constants.BillRoomStatusUnpaid, onDay, constants.BillRoomStatusUnpaid},
		{"unpaid past deadline", constants.BillRoomStatusUnpaid, after, constants.BillRoomStatusOverdue},
		{"awaiting review past deadline", constants.BillRoomStatusAwaitingReview, after, constants.BillRoomStatusOverdue},
		{"awaiting review before deadline", constants.BillRoomStatusAwaitingReview, before, constants.BillRoomStatusAwaitingReview},
		{"partial never flips", constants.BillRoomStatusPartiallyPaid, after, constants.BillRoomStatusPartiallyPaid},
		{"paid never flips", constants.BillRoomStatusPaid, after, constants.BillRoomStatusPaid},
		{"deleted never flips", constants.StatusDeleted, after, constants.StatusDeleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayStatus(tc.persisted, deadline, tc.today); got != tc.want {
				t.Errorf("DisplayStatus(%d) = %d, want %d", tc.persisted, got, tc.want)
			}
		})
	}
}
