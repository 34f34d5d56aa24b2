package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"nitihub_backend/internals/constants"
)

func TestValidateReviewInput(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name string
		in   ReviewInput
		want error
	}{
		{"approve ok", ReviewInput{IDs: []uuid.UUID{id}, Status: constants.PaymentStatusApproved}, nil},
		{"reject with remark", ReviewInput{IDs: []uuid.UUID{id}, Status: constants.PaymentStatusRejected, Remark: "ยอดไม่ตรง"}, nil},
		{"empty batch", ReviewInput{Status: constants.PaymentStatusApproved}, ErrEmptyBatch},
		{"bad status", ReviewInput{IDs: []uuid.UUID{id}, Status: 0}, ErrBadStatus},
		{"deleted as status", ReviewInput{IDs: []uuid.UUID{id}, Status: 2}, ErrBadStatus},
		{"reject without remark", ReviewInput{IDs: []uuid.UUID{id}, Status: constants.PaymentStatusRejected}, ErrRemarkOnReject},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateReviewInput(tc.in)
			if !errors.Is(got, tc.want) {
				t.Errorf("ValidateReviewInput() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDecideReview(t *testing.T) {
	cases := []struct {
		name       string
		found      bool
		status     int
		wantOK     bool
		wantReason string
	}{
		{"awaiting review", true, constants.PaymentStatusAwaitingReview, true, ""},
		{"not found", false, 0, false, ReasonNotFound},
		{"already approved", true, constants.PaymentStatusApproved, false, ReasonAlreadyProcessed},
		{"already rejected", true, constants.PaymentStatusRejected, false, ReasonAlreadyProcessed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := DecideReview(tc.found, tc.status)
			if ok != tc.wantOK || reason != tc.wantReason {
				t.Errorf("DecideReview(%v, %d) = (%v, %q), want (%v, %q)",
					tc.found, tc.status, ok, reason, tc.wantOK, tc.wantReason)
			}
		})
	}
}
