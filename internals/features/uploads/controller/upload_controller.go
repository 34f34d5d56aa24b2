// file: internals/features/uploads/controller/upload_controller.go
package controller

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"gorm.io/gorm"

	"nitihub_backend/internals/configs"
	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/uploads/model"
	"nitihub_backend/internals/features/uploads/service"
	helper "nitihub_backend/internals/helpers"
	authz "nitihub_backend/internals/middlewares/auth"
)

type UploadHandler struct {
	DB      *gorm.DB
	Storage service.Storage
}

func NewUploadHandler(db *gorm.DB, storage service.Storage) *UploadHandler {
	return &UploadHandler{DB: db, Storage: storage}
}

// -----------------------------------------
// Upload (POST /uploads): multipart, field name "files"
// New files land under an upload key (submitted or generated); the key is
// later referenced by the parent entity (payment slip, bill sheet).
// -----------------------------------------
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบไฟล์อัปโหลดไม่ถูกต้อง")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "กรุณาเลือกไฟล์")
	}

	uploadKey := strings.TrimSpace(c.FormValue("upload_key"))
	if uploadKey == "" {
		uploadKey = helper.GenerateUploadKey()
	} else if !helper.IsUploadKey(uploadKey) {
		return helper.JsonValidationError(c, map[string]string{"upload_key": "format"})
	}

	limits := service.LookupUploadLimits(h.DB)

	var existing int64
	if err := h.DB.Model(&model.AttachmentModel{}).
		Where("upload_key = ? AND status = ?", uploadKey, model.AttachmentStatusValid).
		Count(&existing).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	if int(existing)+len(files) > limits.MaxFileCount {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation,
			fmt.Sprintf("อัปโหลดได้สูงสุด %d ไฟล์ต่อรายการ", limits.MaxFileCount))
	}

	saved := make([]model.AttachmentModel, 0, len(files))
	for _, fh := range files {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
		if !limits.ExtAllowed(ext) {
			return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation,
				fmt.Sprintf("ไม่รองรับไฟล์นามสกุล .%s", ext))
		}
		if fh.Size > limits.MaxFileSize {
			return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation,
				fmt.Sprintf("ไฟล์ %s มีขนาดเกิน %d MB", fh.Filename, limits.MaxFileSize/(1024*1024)))
		}

		src, err := fh.Open()
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
		}

		data, ext, err = service.RecompressImage(data, ext)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
		}

		storedName := storedFileName(fh.Filename, ext)
		path, err := h.Storage.Save(c.UserContext(), uploadKey, storedName, data)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
		}

		att := model.AttachmentModel{
			UploadKey:  uploadKey,
			FileName:   storedName,
			FileSize:   int64(len(data)),
			FileExt:    ext,
			FilePath:   path,
			Status:     model.AttachmentStatusValid,
			CreateDate: time.Now().UTC(),
			CreateBy:   uid,
		}
		if err := h.DB.Create(&att).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
		}
		saved = append(saved, att)
	}

	return helper.JsonCreated(c, "อัปโหลดไฟล์สำเร็จ", fiber.Map{
		"upload_key": uploadKey,
		"files":      saved,
	})
}

// ListByKey (GET /uploads/:key)
func (h *UploadHandler) ListByKey(c *fiber.Ctx) error {
	key := c.Params("key")
	if !helper.IsUploadKey(key) {
		return helper.JsonValidationError(c, map[string]string{"upload_key": "format"})
	}
	var list []model.AttachmentModel
	if err := h.DB.
		Where("upload_key = ? AND status = ?", key, model.AttachmentStatusValid).
		Order("create_date ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	return helper.JsonOK(c, "", fiber.Map{
		"upload_key": key,
		"files":      list,
		"base_url":   configs.BaseURL,
	})
}

// Delete (DELETE /uploads/:key/:id): tombstone plus best-effort storage delete
func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	key := c.Params("key")
	if !helper.IsUploadKey(key) {
		return helper.JsonValidationError(c, map[string]string{"upload_key": "format"})
	}

	var att model.AttachmentModel
	if err := h.DB.
		Where("id = ? AND upload_key = ? AND status = ?", c.Params("id"), key, model.AttachmentStatusValid).
		First(&att).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบไฟล์")
	}

	now := time.Now().UTC()
	if err := h.DB.Model(&att).Updates(map[string]interface{}{
		"status":      constants.StatusDeleted,
		"delete_date": now,
		"delete_by":   uid,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
	_ = h.Storage.Delete(c.UserContext(), att.FilePath)

	return helper.JsonDeleted(c, "", fiber.Map{"id": att.ID})
}

func storedFileName(original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s_%d.%s", base, time.Now().UnixNano(), ext)
}
