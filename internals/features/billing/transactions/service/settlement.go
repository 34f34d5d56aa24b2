// file: internals/features/billing/transactions/service/settlement.go
//
// Posts a ledger entry against one bill room, recomputes paid-to-date and
// advances the room status (unpaid → partial → paid). Runs in a single
// transaction with a row lock on the bill room.
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nitihub_backend/internals/constants"
	roomModel "nitihub_backend/internals/features/billing/billrooms/model"
	"nitihub_backend/internals/features/billing/transactions/model"
)

var (
	ErrBillRoomNotFound  = errors.New("bill room not found")
	ErrSourceXOR         = errors.New("exactly one of payment_id and bill_transaction_type_id must be set")
	ErrAmountNotPositive = errors.New("transaction amount must be positive")
)

type SettleInput struct {
	BillRoomID            uuid.UUID
	PaymentID             *uuid.UUID
	BillTransactionTypeID *int
	Amount                decimal.Decimal
	PayDate               *time.Time // business payment date; defaults to now
	TransactionJSON       datatypes.JSON
	Remark                *string
	CustomerID            string
	By                    string
}

type SettleResult struct {
	Transaction   *model.BillTransactionModel
	PaidToDate    decimal.Decimal // including this entry
	NewRoomStatus int
}

// DeriveTransactionType: full when the new paid total reaches total_price,
// else partial. Comparison is exact on the stored decimals.
func DeriveTransactionType(paidToDate, amount, totalPrice decimal.Decimal) (string, int) {
	newPaid := paidToDate.Add(amount)
	if newPaid.GreaterThanOrEqual(totalPrice) {
		return constants.TransactionTypeFull, constants.BillRoomStatusPaid
	}
	return constants.TransactionTypePartial, constants.BillRoomStatusPartiallyPaid
}

// Settle runs the settlement in one transaction on db.
func Settle(db *gorm.DB, in SettleInput) (*SettleResult, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	if (in.PaymentID == nil) == (in.BillTransactionTypeID == nil) {
		return nil, ErrSourceXOR
	}

	var result *SettleResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var room roomModel.BillRoomModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND customer_id = ? AND status <> ?", in.BillRoomID, in.CustomerID, constants.StatusDeleted).
			First(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBillRoomNotFound
			}
			return err
		}

		var paidToDate decimal.Decimal
		if err := tx.Model(&model.BillTransactionModel{}).
			Where("bill_room_id = ? AND status <> ?", room.ID, constants.StatusDeleted).
			Select("COALESCE(SUM(transaction_amount), 0)").
			Scan(&paidToDate).Error; err != nil {
			return err
		}

		txType, newStatus := DeriveTransactionType(paidToDate, in.Amount, room.TotalPrice)

		now := time.Now().UTC()
		payDate := now
		if in.PayDate != nil {
			payDate = *in.PayDate
		}

		entry := model.BillTransactionModel{
			BillRoomID:            room.ID,
			PaymentID:             in.PaymentID,
			BillTransactionTypeID: in.BillTransactionTypeID,
			TransactionAmount:     in.Amount,
			PayDate:               payDate,
			TransactionDate:       now,
			TransactionType:       txType,
			TransactionJSON:       in.TransactionJSON,
			CustomerID:            in.CustomerID,
			Remark:                in.Remark,
			CreateDate:            now,
			CreateBy:              in.By,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if err := tx.Model(&roomModel.BillRoomModel{}).
			Where("id = ?", room.ID).
			Updates(map[string]interface{}{
				"status":      newStatus,
				"update_date": now,
				"update_by":   in.By,
			}).Error; err != nil {
			return err
		}

		result = &SettleResult{
			Transaction:   &entry,
			PaidToDate:    paidToDate.Add(in.Amount),
			NewRoomStatus: newStatus,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
