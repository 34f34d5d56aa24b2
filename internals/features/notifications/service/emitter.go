// file: internals/features/notifications/service/emitter.go
package service

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	billModel "nitihub_backend/internals/features/billing/bills/model"
	roomModel "nitihub_backend/internals/features/billing/billrooms/model"
	"nitihub_backend/internals/features/notifications/model"
	masters "nitihub_backend/internals/features/masters/service"
	helper "nitihub_backend/internals/helpers"
)

const notifyTypeBillSent = "bill_sent"

// BillDetailText renders the resident-facing body with the deadline.
func BillDetailText(detail string, expireDate time.Time) string {
	detail = strings.TrimSpace(detail)
	due := "ครบกำหนด: " + helper.FormatThaiDate(expireDate)
	if detail == "" {
		return due
	}
	return fmt.Sprintf("%s %s", detail, due)
}

// EmitBillSent writes one audit row per (bill room, resolved member) inside
// the caller's transaction. Members must be resolved before the transaction
// opens; no external call happens here.
func EmitBillSent(tx *gorm.DB, bill *billModel.BillModel, rooms []roomModel.BillRoomModel, members []masters.Member, by string) error {
	if len(rooms) == 0 || len(members) == 0 {
		return nil
	}

	byHouse := make(map[string][]masters.Member, len(members))
	for _, m := range members {
		byHouse[m.HouseNo] = append(byHouse[m.HouseNo], m)
	}

	detail := BillDetailText(bill.Detail, bill.ExpireDate)
	now := time.Now().UTC()

	rows := make([]model.NotificationAuditModel, 0, len(rooms))
	for _, room := range rooms {
		for _, m := range byHouse[room.HouseNo] {
			rows = append(rows, model.NotificationAuditModel{
				TableName_: roomModel.BillRoomModel{}.TableName(),
				RowsID:     room.ID,
				Title:      bill.Title,
				Detail:     detail,
				Topic:      m.Topic,
				Type:       notifyTypeBillSent,
				Receiver:   m.UID,
				CustomerID: bill.CustomerID,
				PushStatus: model.PushStatusPending,
				CreateDate: now,
				CreateBy:   by,
			})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, 200).Error
}
