// file: internals/features/billing/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentModel is a resident- or admin-submitted claim that money was paid
// against a payable (polymorphic: payable_type + payable_id). Requires at
// least one valid attachment under the same upload_key.
// status: 0 awaiting review, 1 approved, 3 rejected, 2 deleted.
type PaymentModel struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	PayableType string    `gorm:"column:payable_type;type:varchar(64);not null;index:ix_payments_payable,priority:1" json:"payable_type"`
	PayableID   uuid.UUID `gorm:"column:payable_id;type:uuid;not null;index:ix_payments_payable,priority:2" json:"payable_id"`

	PaymentAmount decimal.Decimal `gorm:"column:payment_amount;type:numeric(14,2);not null" json:"payment_amount"`
	PaymentTypeID int             `gorm:"column:payment_type_id;not null" json:"payment_type_id"`
	BankID        *string         `gorm:"column:bank_id;type:varchar(64)" json:"bank_id,omitempty"`
	MemberID      string          `gorm:"column:member_id;type:varchar(64);not null;index" json:"member_id"`
	Remark        *string         `gorm:"column:remark;type:text" json:"remark,omitempty"`
	MemberRemark  *string         `gorm:"column:member_remark;type:text" json:"member_remark,omitempty"`
	UploadKey     string          `gorm:"column:upload_key;type:varchar(32);not null;index" json:"upload_key"`
	CustomerID    string          `gorm:"column:customer_id;type:varchar(64);not null;index" json:"customer_id"`

	Status int `gorm:"column:status;not null;default:0;index" json:"status"`

	CreateDate time.Time  `gorm:"column:create_date;not null;autoCreateTime" json:"create_date"`
	CreateBy   string     `gorm:"column:create_by;type:varchar(64)" json:"create_by"`
	UpdateDate *time.Time `gorm:"column:update_date" json:"update_date,omitempty"`
	UpdateBy   *string    `gorm:"column:update_by;type:varchar(64)" json:"update_by,omitempty"`
	DeleteDate *time.Time `gorm:"column:delete_date" json:"-"`
	DeleteBy   *string    `gorm:"column:delete_by;type:varchar(64)" json:"-"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
