// file: internals/features/billing/bills/service/lifecycle.go
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/billing/bills/model"
)

// StatePreconditionError: the operation's precondition on status does not
// hold. Carries the observed status for the error envelope.
type StatePreconditionError struct {
	Op       string
	Observed int
}

func (e *StatePreconditionError) Error() string {
	return fmt.Sprintf("%s not allowed from status %d", e.Op, e.Observed)
}

// Transition preconditions on Bill.status.
func CanSend(status int) bool {
	return status == constants.BillStatusDraft || status == constants.BillStatusCanceled
}

func CanCancelSend(status int) bool {
	return status == constants.BillStatusSent
}

func CanUpdate(status int) bool {
	switch status {
	case constants.BillStatusDraft, constants.BillStatusSent, constants.BillStatusCanceled:
		return true
	}
	return false
}

func CanDelete(status int) bool {
	return status != constants.StatusDeleted
}

// AppendAudit writes one append-only audit row for a bill status transition.
func AppendAudit(tx *gorm.DB, billID uuid.UUID, status int, by string) error {
	return tx.Create(&model.BillAuditModel{
		BillID:     billID,
		Status:     status,
		CreateDate: time.Now().UTC(),
		CreateBy:   by,
	}).Error
}

// Send transitions 0|3 → 1, stamps send_date, writes the audit row.
// The bill must already be locked by the caller.
func Send(tx *gorm.DB, bill *model.BillModel, by string) error {
	if !CanSend(bill.Status) {
		return &StatePreconditionError{Op: "send", Observed: bill.Status}
	}
	now := time.Now().UTC()
	bill.Status = constants.BillStatusSent
	bill.SendDate = &now
	bill.UpdateDate = &now
	bill.UpdateBy = &by
	if err := tx.Model(bill).Select("status", "send_date", "update_date", "update_by").Updates(bill).Error; err != nil {
		return err
	}
	return AppendAudit(tx, bill.ID, bill.Status, by)
}

// CancelSend transitions 1 → 3 and clears send_date.
func CancelSend(tx *gorm.DB, bill *model.BillModel, by string) error {
	if !CanCancelSend(bill.Status) {
		return &StatePreconditionError{Op: "cancel-send", Observed: bill.Status}
	}
	now := time.Now().UTC()
	bill.Status = constants.BillStatusCanceled
	bill.SendDate = nil
	bill.UpdateDate = &now
	bill.UpdateBy = &by
	if err := tx.Model(bill).Select("status", "send_date", "update_date", "update_by").Updates(map[string]interface{}{
		"status":      bill.Status,
		"send_date":   nil,
		"update_date": now,
		"update_by":   by,
	}).Error; err != nil {
		return err
	}
	return AppendAudit(tx, bill.ID, bill.Status, by)
}

// SoftDelete tombstones a live bill (status → 2).
func SoftDelete(tx *gorm.DB, bill *model.BillModel, by string) error {
	if !CanDelete(bill.Status) {
		return &StatePreconditionError{Op: "delete", Observed: bill.Status}
	}
	now := time.Now().UTC()
	bill.Status = constants.StatusDeleted
	if err := tx.Model(bill).Updates(map[string]interface{}{
		"status":      constants.StatusDeleted,
		"delete_date": now,
		"delete_by":   by,
	}).Error; err != nil {
		return err
	}
	return AppendAudit(tx, bill.ID, constants.StatusDeleted, by)
}
