// file: internals/features/billing/transactions/model/bill_transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// BillTransactionModel is the authoritative settlement ledger entry posted
// against one bill room. Exactly one of payment_id (synthesized on payment
// approval) and bill_transaction_type_id (manual admin entry) is set.
type BillTransactionModel struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	BillRoomID            uuid.UUID  `gorm:"column:bill_room_id;type:uuid;not null;index" json:"bill_room_id"`
	PaymentID             *uuid.UUID `gorm:"column:payment_id;type:uuid;index" json:"payment_id,omitempty"`
	BillTransactionTypeID *int       `gorm:"column:bill_transaction_type_id" json:"bill_transaction_type_id,omitempty"`

	TransactionAmount decimal.Decimal `gorm:"column:transaction_amount;type:numeric(14,2);not null" json:"transaction_amount"`
	PayDate           time.Time       `gorm:"column:pay_date;not null" json:"pay_date"`           // business time, not monotonic
	TransactionDate   time.Time       `gorm:"column:transaction_date;not null" json:"transaction_date"` // server clock
	TransactionType   string          `gorm:"column:transaction_type;type:varchar(10);not null" json:"transaction_type"` // full | partial (derived)
	TransactionJSON   datatypes.JSON  `gorm:"column:transaction_type_json" json:"transaction_type_json,omitempty"`

	CustomerID string  `gorm:"column:customer_id;type:varchar(64);not null;index" json:"customer_id"`
	Remark     *string `gorm:"column:remark;type:text" json:"remark,omitempty"`

	Status int `gorm:"column:status;not null;default:0;index" json:"status"`

	CreateDate time.Time  `gorm:"column:create_date;not null;autoCreateTime" json:"create_date"`
	CreateBy   string     `gorm:"column:create_by;type:varchar(64)" json:"create_by"`
	UpdateDate *time.Time `gorm:"column:update_date" json:"update_date,omitempty"`
	UpdateBy   *string    `gorm:"column:update_by;type:varchar(64)" json:"update_by,omitempty"`
	DeleteDate *time.Time `gorm:"column:delete_date" json:"-"`
	DeleteBy   *string    `gorm:"column:delete_by;type:varchar(64)" json:"-"`
}

func (BillTransactionModel) TableName() string {
	return "bill_transactions"
}
