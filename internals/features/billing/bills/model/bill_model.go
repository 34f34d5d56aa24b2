// file: internals/features/billing/bills/model/bill_model.go
package model

import (
	"time"

	"github.com/google/uuid"

	"nitihub_backend/internals/constants"
)

// BillModel is a batch of charges for one customer (niti).
// status: 0 draft, 1 sent, 3 canceled, 2 deleted (tombstone).
type BillModel struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	// human id BILL-YYYY-MMDD-NNN, unique within (customer, day)
	BillNo string `gorm:"column:bill_no;type:varchar(20);not null;uniqueIndex:uniq_bills_customer_no,priority:2" json:"bill_no"`

	Title      string     `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Detail     string     `gorm:"column:detail;type:text" json:"detail"`
	BillTypeID *int       `gorm:"column:bill_type_id;index" json:"bill_type_id"`
	ExpireDate time.Time  `gorm:"column:expire_date;not null;index" json:"expire_date"`
	SendDate   *time.Time `gorm:"column:send_date" json:"send_date"` // stamped at first send
	CustomerID string     `gorm:"column:customer_id;type:varchar(64);not null;index;uniqueIndex:uniq_bills_customer_no,priority:1" json:"customer_id"`
	Remark     *string    `gorm:"column:remark;type:text" json:"remark,omitempty"`

	Status int `gorm:"column:status;not null;default:0;index" json:"status"`

	CreateDate time.Time  `gorm:"column:create_date;not null;autoCreateTime" json:"create_date"`
	CreateBy   string     `gorm:"column:create_by;type:varchar(64)" json:"create_by"`
	UpdateDate *time.Time `gorm:"column:update_date" json:"update_date,omitempty"`
	UpdateBy   *string    `gorm:"column:update_by;type:varchar(64)" json:"update_by,omitempty"`
	DeleteDate *time.Time `gorm:"column:delete_date" json:"-"`
	DeleteBy   *string    `gorm:"column:delete_by;type:varchar(64)" json:"-"`
}

func (BillModel) TableName() string {
	return "bills"
}

func (m *BillModel) IsDeleted() bool {
	return m.Status == constants.StatusDeleted
}
