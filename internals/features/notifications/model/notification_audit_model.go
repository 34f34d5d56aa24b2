// file: internals/features/notifications/model/notification_audit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Push delivery state of a notification audit row.
const (
	PushStatusPending = 0
	PushStatusSent    = 1
	PushStatusFailed  = 3
)

// NotificationAuditModel: one row per affected recipient, written inside the
// originating business transaction. A background dispatcher then best-effort
// delivers each row to the external push backend; delivery failure never
// reverts the audit row.
type NotificationAuditModel struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	TableName_ string    `gorm:"column:table_name;type:varchar(64);not null" json:"table_name"`
	RowsID     uuid.UUID `gorm:"column:rows_id;type:uuid;not null;index" json:"rows_id"`

	Title    string  `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Detail   string  `gorm:"column:detail;type:text" json:"detail"`
	Topic    string  `gorm:"column:topic;type:varchar(100)" json:"topic"`
	Type     string  `gorm:"column:type;type:varchar(50)" json:"type"`
	Receiver string  `gorm:"column:receiver;type:varchar(64);not null" json:"receiver"`
	Remark   *string `gorm:"column:remark;type:text" json:"remark,omitempty"`

	CustomerID string `gorm:"column:customer_id;type:varchar(64);not null;index" json:"customer_id"`

	PushStatus    int        `gorm:"column:push_status;not null;default:0;index" json:"push_status"`
	PushAttempts  int        `gorm:"column:push_attempts;not null;default:0" json:"push_attempts"`
	PushLastError *string    `gorm:"column:push_last_error;type:text" json:"-"`
	PushDate      *time.Time `gorm:"column:push_date" json:"push_date,omitempty"`

	CreateDate time.Time `gorm:"column:create_date;not null;autoCreateTime" json:"create_date"`
	CreateBy   string    `gorm:"column:create_by;type:varchar(64)" json:"create_by"`
}

func (NotificationAuditModel) TableName() string {
	return "notification_audits"
}
