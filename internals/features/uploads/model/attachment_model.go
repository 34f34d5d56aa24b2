// file: internals/features/uploads/model/attachment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AttachmentModel: one row per uploaded file, owned by the upload_key
// namespace (no parent id). Parent entities reference the same key.
// status: 1 = validated upload (satisfies the slip gate), 2 = deleted.
type AttachmentModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UploadKey string    `gorm:"column:upload_key;type:varchar(32);not null;index" json:"upload_key"`

	FileName string `gorm:"column:file_name;type:varchar(255);not null" json:"file_name"`
	FileSize int64  `gorm:"column:file_size;not null" json:"file_size"`
	FileExt  string `gorm:"column:file_ext;type:varchar(10);not null" json:"file_ext"`
	FilePath string `gorm:"column:file_path;type:varchar(500);not null" json:"file_path"`

	Status int `gorm:"column:status;not null;default:0;index" json:"status"`

	CreateDate time.Time  `gorm:"column:create_date;not null;autoCreateTime" json:"create_date"`
	CreateBy   string     `gorm:"column:create_by;type:varchar(64)" json:"create_by"`
	UpdateDate *time.Time `gorm:"column:update_date" json:"update_date,omitempty"`
	UpdateBy   *string    `gorm:"column:update_by;type:varchar(64)" json:"update_by,omitempty"`
	DeleteDate *time.Time `gorm:"column:delete_date" json:"-"`
	DeleteBy   *string    `gorm:"column:delete_by;type:varchar(64)" json:"-"`
}

func (AttachmentModel) TableName() string {
	return "attachments"
}

const AttachmentStatusValid = 1
