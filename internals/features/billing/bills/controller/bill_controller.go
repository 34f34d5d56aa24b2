// file: internals/features/billing/bills/controller/bill_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nitihub_backend/internals/constants"
	"nitihub_backend/internals/features/billing/bills/dto"
	"nitihub_backend/internals/features/billing/bills/model"
	"nitihub_backend/internals/features/billing/bills/service"
	roomDTO "nitihub_backend/internals/features/billing/billrooms/dto"
	roomModel "nitihub_backend/internals/features/billing/billrooms/model"
	masters "nitihub_backend/internals/features/masters/service"
	notif "nitihub_backend/internals/features/notifications/service"
	helper "nitihub_backend/internals/helpers"
	authz "nitihub_backend/internals/middlewares/auth"
)

type BillHandler struct {
	DB *gorm.DB
}

func NewBillHandler(db *gorm.DB) *BillHandler {
	return &BillHandler{DB: db}
}

func billOrderClause(sortBy, order string) string {
	allowed := map[string]string{
		"create_date": "create_date",
		"expire_date": "expire_date",
		"send_date":   "send_date",
		"bill_no":     "bill_no",
		"status":      "status",
	}
	col, ok := allowed[strings.ToLower(sortBy)]
	if !ok {
		col = "create_date"
	}
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	return fmt.Sprintf("%s %s", col, dir)
}

// -----------------------------------------
// List (GET /bills)
// Filters: status, bill_type_id, q (title), expire_from, expire_to
// -----------------------------------------
func (h *BillHandler) List(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	paging := helper.ResolvePaging(c, 20, 200)

	q := h.DB.Model(&model.BillModel{}).
		Where("customer_id = ? AND status <> ?", customerID, constants.StatusDeleted)

	if v := c.Query("status"); v != "" {
		q = q.Where("status = ?", c.QueryInt("status"))
	}
	if v := c.QueryInt("bill_type_id"); v > 0 {
		q = q.Where("bill_type_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("title ILIKE ?", "%"+v+"%")
	}
	if v := c.Query("expire_from"); v != "" {
		if t, err := dto.ParseExpireDate(v); err == nil {
			q = q.Where("expire_date >= ?", t)
		}
	}
	if v := c.Query("expire_to"); v != "" {
		if t, err := dto.ParseExpireDate(v); err == nil {
			q = q.Where("expire_date <= ?", t)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	var list []model.BillModel
	if err := q.
		Order(billOrderClause(c.Query("sort_by"), c.Query("order"))).
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	return helper.JsonList(c, "", dto.ToBillResponses(list), helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// -----------------------------------------
// Detail (GET /bills/:id): with the audit trail
// -----------------------------------------
func (h *BillHandler) Detail(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสบิลไม่ถูกต้อง")
	}

	bill, err := h.findLive(customerID, id)
	if err != nil {
		return h.renderLookupError(c, err)
	}

	var audits []model.BillAuditModel
	if err := h.DB.
		Where("bill_id = ?", bill.ID).
		Order("create_date ASC, id ASC").
		Find(&audits).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	return helper.JsonOK(c, "", fiber.Map{
		"bill":   dto.ToBillResponse(bill),
		"audits": dto.ToBillAuditResponses(audits),
	})
}

// -----------------------------------------
// Create (POST /bills): draft or sent; allocates bill_no
// -----------------------------------------
func (h *BillHandler) Create(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}

	var in dto.BillCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}
	expire, err := dto.ParseExpireDate(in.ExpireDate)
	if err != nil {
		return helper.JsonValidationError(c, map[string]string{"expire_date": "date"})
	}

	var bill model.BillModel
	err = withDocNoRetry(func() error {
		return h.DB.Transaction(func(tx *gorm.DB) error {
			now := time.Now().UTC()
			billNo, err := service.NextBillNo(tx, customerID, helper.NowLocal())
			if err != nil {
				return err
			}
			bill = model.BillModel{
				BillNo:     billNo,
				Title:      in.Title,
				Detail:     in.Detail,
				BillTypeID: in.BillTypeID,
				ExpireDate: expire,
				CustomerID: customerID,
				Remark:     in.Remark,
				Status:     in.Status,
				CreateDate: now,
				CreateBy:   uid,
			}
			if in.Status == constants.BillStatusSent {
				bill.SendDate = &now
			}
			if err := tx.Create(&bill).Error; err != nil {
				return err
			}
			return service.AppendAudit(tx, bill.ID, bill.Status, uid)
		})
	})
	if err != nil {
		if service.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeConflictRetryable,
				"มีการออกเลขที่เอกสารพร้อมกัน กรุณาลองใหม่อีกครั้ง")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	return helper.JsonCreated(c, "สร้างบิลสำเร็จ", dto.ToBillResponse(&bill))
}

// -----------------------------------------
// Update (PATCH /bills/:id)
// Allowed while status ∈ {0,1,3}; audit row only when status changes.
// -----------------------------------------
func (h *BillHandler) Update(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสบิลไม่ถูกต้อง")
	}

	var in dto.BillUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รูปแบบข้อมูลไม่ถูกต้อง")
	}
	if err := helper.Validate().Struct(&in); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}
	var newExpire *time.Time
	if in.ExpireDate != nil {
		t, err := dto.ParseExpireDate(*in.ExpireDate)
		if err != nil {
			return helper.JsonValidationError(c, map[string]string{"expire_date": "date"})
		}
		newExpire = &t
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var bill model.BillModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND customer_id = ? AND status <> ?", id, customerID, constants.StatusDeleted).
			First(&bill).Error; err != nil {
			return err
		}
		if !service.CanUpdate(bill.Status) {
			return &service.StatePreconditionError{Op: "update", Observed: bill.Status}
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"update_date": now,
			"update_by":   uid,
		}
		if in.Title != nil {
			updates["title"] = *in.Title
		}
		if in.Detail != nil {
			updates["detail"] = *in.Detail
		}
		if in.BillTypeID != nil {
			updates["bill_type_id"] = *in.BillTypeID
		}
		if in.Remark != nil {
			updates["remark"] = *in.Remark
		}
		if newExpire != nil {
			updates["expire_date"] = *newExpire
		}

		statusChanged := in.Status != nil && *in.Status != bill.Status
		if statusChanged {
			updates["status"] = *in.Status
			if *in.Status == constants.BillStatusSent && bill.SendDate == nil {
				updates["send_date"] = now
			}
		}

		if err := tx.Model(&bill).Updates(updates).Error; err != nil {
			return err
		}
		if statusChanged {
			if err := service.AppendAudit(tx, bill.ID, *in.Status, uid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return h.renderLookupError(c, err)
	}

	bill, err := h.findLive(customerID, id)
	if err != nil {
		return h.renderLookupError(c, err)
	}
	return helper.JsonUpdated(c, "", dto.ToBillResponse(bill))
}

// -----------------------------------------
// Send (POST /bills/:id/send): 0|3 → 1, notifies residents
// -----------------------------------------
func (h *BillHandler) Send(c *fiber.Ctx) error {
	return h.transitionWithNotify(c, "send")
}

// CancelSend (POST /bills/:id/cancel-send): 1 → 3, clears send_date
func (h *BillHandler) CancelSend(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสบิลไม่ถูกต้อง")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var bill model.BillModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND customer_id = ? AND status <> ?", id, customerID, constants.StatusDeleted).
			First(&bill).Error; err != nil {
			return err
		}
		return service.CancelSend(tx, &bill, uid)
	})
	if err != nil {
		return h.renderLookupError(c, err)
	}

	bill, err := h.findLive(customerID, id)
	if err != nil {
		return h.renderLookupError(c, err)
	}
	return helper.JsonUpdated(c, "ยกเลิกการส่งบิลแล้ว", dto.ToBillResponse(bill))
}

// Delete (DELETE /bills/:id): soft delete
func (h *BillHandler) Delete(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสบิลไม่ถูกต้อง")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var bill model.BillModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND customer_id = ? AND status <> ?", id, customerID, constants.StatusDeleted).
			First(&bill).Error; err != nil {
			return err
		}
		return service.SoftDelete(tx, &bill, uid)
	})
	if err != nil {
		return h.renderLookupError(c, err)
	}
	return helper.JsonDeleted(c, "", fiber.Map{"id": id})
}

// -----------------------------------------
// Rooms (GET /bills/:id/rooms): lines of one bill
// -----------------------------------------
func (h *BillHandler) Rooms(c *fiber.Ctx) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสบิลไม่ถูกต้อง")
	}

	bill, err := h.findLive(customerID, id)
	if err != nil {
		return h.renderLookupError(c, err)
	}

	paging := helper.ResolvePaging(c, 50, 500)

	q := h.DB.Model(&roomModel.BillRoomModel{}).
		Where("bill_id = ? AND status <> ?", bill.ID, constants.StatusDeleted)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	var rooms []roomModel.BillRoomModel
	if err := q.Order("house_no ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	resp := roomDTO.ToBillRoomResponses(rooms, bill.ExpireDate, helper.Today())
	return helper.JsonList(c, "", resp, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

/* ---------- shared bits ---------- */

func (h *BillHandler) findLive(customerID string, id uuid.UUID) (*model.BillModel, error) {
	var bill model.BillModel
	err := h.DB.
		Where("id = ? AND customer_id = ? AND status <> ?", id, customerID, constants.StatusDeleted).
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (h *BillHandler) renderLookupError(c *fiber.Ctx, err error) error {
	var pre *service.StatePreconditionError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, constants.ErrCodeNotFound, "ไม่พบบิล")
	case errors.As(err, &pre):
		return helper.JsonErrorWith(c, fiber.StatusBadRequest, constants.ErrCodeStatePrecondition,
			"สถานะบิลไม่ถูกต้องสำหรับการทำรายการนี้", fiber.Map{"observed_status": pre.Observed})
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}
}

// transitionWithNotify handles send: member resolution runs before the
// transaction so no business lock spans the doc-store call.
func (h *BillHandler) transitionWithNotify(c *fiber.Ctx, op string) error {
	customerID, err := authz.GetCustomerID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "ไม่พบรหัสนิติบุคคล")
	}
	uid, err := authz.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, constants.ErrCodeUnauthorized, "กรุณาเข้าสู่ระบบ")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, constants.ErrCodeValidation, "รหัสบิลไม่ถูกต้อง")
	}

	bill, err := h.findLive(customerID, id)
	if err != nil {
		return h.renderLookupError(c, err)
	}
	if !service.CanSend(bill.Status) {
		return h.renderLookupError(c, &service.StatePreconditionError{Op: op, Observed: bill.Status})
	}

	var rooms []roomModel.BillRoomModel
	if err := h.DB.
		Where("bill_id = ? AND status <> ?", bill.ID, constants.StatusDeleted).
		Find(&rooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.ErrCodeInternal, err.Error())
	}

	members := resolveMembers(c, customerID, rooms)

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var locked model.BillModel
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND customer_id = ? AND status <> ?", id, customerID, constants.StatusDeleted).
			First(&locked).Error; err != nil {
			return err
		}
		if err := service.Send(tx, &locked, uid); err != nil {
			return err
		}
		return notif.EmitBillSent(tx, &locked, rooms, members, uid)
	})
	if err != nil {
		return h.renderLookupError(c, err)
	}

	bill, err = h.findLive(customerID, id)
	if err != nil {
		return h.renderLookupError(c, err)
	}
	return helper.JsonUpdated(c, "ส่งบิลแล้ว", dto.ToBillResponse(bill))
}

func resolveMembers(c *fiber.Ctx, customerID string, rooms []roomModel.BillRoomModel) []masters.Member {
	houses := make([]string, 0, len(rooms))
	seen := map[string]struct{}{}
	for _, r := range rooms {
		if _, ok := seen[r.HouseNo]; !ok {
			seen[r.HouseNo] = struct{}{}
			houses = append(houses, r.HouseNo)
		}
	}
	members, err := masters.MembersByHouses(c.UserContext(), customerID, houses)
	if err != nil {
		// best-effort: a doc-store outage must not block the send
		return nil
	}
	return members
}
