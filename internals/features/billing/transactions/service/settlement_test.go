package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"nitihub_backend/internals/constants"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestDeriveTransactionType(t *testing.T) {
	cases := []struct {
		name       string
		paid       string
		amount     string
		total      string
		wantType   string
		wantStatus int
	}{
		{"full in one shot", "0", "1500.00", "1500.00", constants.TransactionTypeFull, constants.BillRoomStatusPaid},
		{"overpay", "0", "2000.00", "1500.00", constants.TransactionTypeFull, constants.BillRoomStatusPaid},
		{"partial first", "0", "500.00", "1500.00", constants.TransactionTypePartial, constants.BillRoomStatusPartiallyPaid},
		{"partial then complete", "1000.00", "500.00", "1500.00", constants.TransactionTypeFull, constants.BillRoomStatusPaid},
		{"partial then still short", "500.00", "500.00", "1500.00", constants.TransactionTypePartial, constants.BillRoomStatusPartiallyPaid},
		{"one satang short", "0", "1499.99", "1500.00", constants.TransactionTypePartial, constants.BillRoomStatusPartiallyPaid},
		{"exact after many", "1499.99", "0.01", "1500.00", constants.TransactionTypeFull, constants.BillRoomStatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotType, gotStatus := DeriveTransactionType(d(tc.paid), d(tc.amount), d(tc.total))
			if gotType != tc.wantType || gotStatus != tc.wantStatus {
				t.Errorf("DeriveTransactionType(%s, %s, %s) = (%s, %d), want (%s, %d)",
					tc.paid, tc.amount, tc.total, gotType, gotStatus, tc.wantType, tc.wantStatus)
			}
		})
	}
}
