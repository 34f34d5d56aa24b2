// file: internals/features/uploads/model/app_config_model.go
package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// AppConfigModel: dynamic configuration row (max file size, max file count
// per upload key, allowed extensions, ...). Read at each use. List-valued
// rows (allowed extensions) live in value_list; scalar rows in value.
type AppConfigModel struct {
	ID         int            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name       string         `gorm:"column:name;type:varchar(100);not null;uniqueIndex" json:"name"`
	Value      string         `gorm:"column:value;type:text;not null" json:"value"`
	ValueList  pq.StringArray `gorm:"column:value_list;type:text[]" json:"value_list,omitempty"`
	ValueType  string         `gorm:"column:value_type;type:varchar(10);not null;default:'string'" json:"value_type"` // string|number|boolean|json|list
	Status     int            `gorm:"column:status;not null;default:0" json:"status"`
	CreateDate time.Time      `gorm:"column:create_date;not null;autoCreateTime" json:"create_date"`
	CreateBy   string         `gorm:"column:create_by;type:varchar(64)" json:"create_by"`
}

func (AppConfigModel) TableName() string {
	return "configs"
}

func (m *AppConfigModel) AsString() string {
	return m.Value
}

func (m *AppConfigModel) AsInt(def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(m.Value))
	if err != nil {
		return def
	}
	return n
}

func (m *AppConfigModel) AsBool(def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(m.Value))
	if err != nil {
		return def
	}
	return b
}

func (m *AppConfigModel) AsStringList() []string {
	if len(m.ValueList) > 0 {
		return []string(m.ValueList)
	}
	if m.ValueType == "json" {
		var out []string
		if err := json.Unmarshal([]byte(m.Value), &out); err == nil {
			return out
		}
	}
	parts := strings.Split(m.Value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
