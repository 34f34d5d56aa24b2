// file: internals/features/billing/bills/model/bill_audit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// BillAuditModel is append-only: one row per bill status transition.
// Never updated or deleted.
type BillAuditModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	BillID     uuid.UUID `gorm:"column:bill_id;type:uuid;not null;index" json:"bill_id"`
	Status     int       `gorm:"column:status;not null" json:"status"`
	CreateDate time.Time `gorm:"column:create_date;not null;autoCreateTime" json:"create_date"`
	CreateBy   string    `gorm:"column:create_by;type:varchar(64)" json:"create_by"`
}

func (BillAuditModel) TableName() string {
	return "bill_audits"
}
