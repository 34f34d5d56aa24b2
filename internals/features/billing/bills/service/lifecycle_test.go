package service

import (
	"testing"

	"nitihub_backend/internals/constants"
)

func TestTransitionPreconditions(t *testing.T) {
	cases := []struct {
		name       string
		status     int
		canSend    bool
		canCancel  bool
		canUpdate  bool
		canDelete  bool
	}{
		{"draft", constants.BillStatusDraft, true, false, true, true},
		{"sent", constants.BillStatusSent, false, true, true, true},
		{"canceled", constants.BillStatusCanceled, true, false, true, true},
		{"deleted", constants.StatusDeleted, false, false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanSend(tc.status); got != tc.canSend {
				t.Errorf("CanSend(%d) = %v, want %v", tc.status, got, tc.canSend)
			}
			if got := CanCancelSend(tc.status); got != tc.canCancel {
				t.Errorf("CanCancelSend(%d) = %v, want %v", tc.status, got, tc.canCancel)
			}
			if got := CanUpdate(tc.status); got != tc.canUpdate {
				t.Errorf("CanUpdate(%d) = %v, want %v", tc.status, got, tc.canUpdate)
			}
			if got := CanDelete(tc.status); got != tc.canDelete {
				t.Errorf("CanDelete(%d) = %v, want %v", tc.status, got, tc.canDelete)
			}
		})
	}
}

func TestStatePreconditionError(t *testing.T) {
	err := &StatePreconditionError{Op: "send", Observed: 1}
	want := "send not allowed from status 1"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
