// file: internals/features/uploads/service/config_lookup.go
package service

import (
	"gorm.io/gorm"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/uploads/model"
)

// Defaults when the configs table has no row.
const (
	DefaultMaxFileSize  = 5 * 1024 * 1024
	DefaultMaxFileCount = 5
)

var DefaultAllowedExts = []string{"jpg", "jpeg", "png", "pdf", "xlsx", "csv"}

type UploadLimits struct {
	MaxFileSize  int64
	MaxFileCount int
	AllowedExts  []string
}

// LookupConfig reads one dynamic config row; returns nil when absent.
func LookupConfig(db *gorm.DB, name string) *model.AppConfigModel {
	var cfg model.AppConfigModel
	err := db.Where("name = ? AND status <> ?", name, constants.StatusDeleted).First(&cfg).Error
	if err != nil {
		return nil
	}
	return &cfg
}

// LookupUploadLimits reads the upload limits from the configs table at each
// use (values may change without a restart).
func LookupUploadLimits(db *gorm.DB) UploadLimits {
	limits := UploadLimits{
		MaxFileSize:  DefaultMaxFileSize,
		MaxFileCount: DefaultMaxFileCount,
		AllowedExts:  DefaultAllowedExts,
	}
	if cfg := LookupConfig(db, "upload_max_file_size"); cfg != nil {
		limits.MaxFileSize = int64(cfg.AsInt(DefaultMaxFileSize))
	}
	if cfg := LookupConfig(db, "upload_max_file_count"); cfg != nil {
		limits.MaxFileCount = cfg.AsInt(DefaultMaxFileCount)
	}
	if cfg := LookupConfig(db, "upload_allowed_extensions"); cfg != nil {
		if exts := cfg.AsStringList(); len(exts) > 0 {
			limits.AllowedExts = exts
		}
	}
	return limits
}

func (l UploadLimits) ExtAllowed(ext string) bool {
	for _, e := range l.AllowedExts {
		if e == ext {
			return true
		}
	}
	return false
}
