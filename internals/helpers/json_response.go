// file: internals/helpers/json_response.go
package helper

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"nitihub_backend/internals/constants"
)

/* ===============================
   Pagination type & paging resolver
=================================*/

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

type Paging struct {
	Page    int
	PerPage int
	Offset  int
	Limit   int
}

// ResolvePaging reads ?page= & ?per_page= (alias ?limit=) and normalizes.
func ResolvePaging(c *fiber.Ctx, defaultPerPage, maxPerPage int) Paging {
	pageStr := strings.TrimSpace(c.Query("page", "1"))

	perPageStr := strings.TrimSpace(c.Query("per_page"))
	if perPageStr == "" {
		perPageStr = strings.TrimSpace(c.Query("limit", strconv.Itoa(defaultPerPage)))
	}

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(perPageStr)
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}

	return Paging{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
		Limit:   perPage,
	}
}

func BuildPagination(total int64, page, perPage int) Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage)) // ceil
	if totalPages == 0 {
		totalPages = 1
	}
	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

/* ===============================
   Standard envelope
   { success, data?, error?, message?, pagination?, timestamp }
=================================*/

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// JsonError: generic error with a stable code tag
func JsonError(c *fiber.Ctx, status int, code, message string) error {
	if strings.TrimSpace(code) == "" {
		code = constants.ErrCodeInternal
	}
	if strings.TrimSpace(message) == "" {
		message = "เกิดข้อผิดพลาดภายในระบบ"
	}
	return c.Status(status).JSON(fiber.Map{
		"success":   false,
		"error":     code,
		"message":   message,
		"timestamp": timestamp(),
	})
}

// JsonErrorWith: error plus extra payload (offending fields, observed status, ...)
func JsonErrorWith(c *fiber.Ctx, status int, code, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success":   false,
		"error":     code,
		"message":   message,
		"data":      data,
		"timestamp": timestamp(),
	})
}

// JsonValidationError: 400 with a field map
func JsonValidationError(c *fiber.Ctx, fields map[string]string) error {
	if fields == nil {
		fields = map[string]string{}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success":   false,
		"error":     constants.ErrCodeValidation,
		"message":   "ข้อมูลไม่ถูกต้อง",
		"data":      fiber.Map{"fields": fields},
		"timestamp": timestamp(),
	})
}

// JsonOK: generic success (GET detail, actions)
func JsonOK(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "สำเร็จ"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"message":   message,
		"data":      data,
		"timestamp": timestamp(),
	})
}

// JsonCreated: success create (POST)
func JsonCreated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "สร้างข้อมูลสำเร็จ"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"message":   message,
		"data":      data,
		"timestamp": timestamp(),
	})
}

// JsonUpdated / JsonDeleted keep the same shape as JsonOK
func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "แก้ไขข้อมูลสำเร็จ"
	}
	return JsonOK(c, message, data)
}

func JsonDeleted(c *fiber.Ctx, message string, data any) error {
	if strings.TrimSpace(message) == "" {
		message = "ลบข้อมูลสำเร็จ"
	}
	return JsonOK(c, message, data)
}

// JsonList: list + pagination
func JsonList(c *fiber.Ctx, message string, data any, p Pagination) error {
	if strings.TrimSpace(message) == "" {
		message = "สำเร็จ"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    message,
		"data":       data,
		"pagination": p,
		"timestamp":  timestamp(),
	})
}
