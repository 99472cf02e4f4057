package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

func (h *Handler) ListRecurringAssignments(w http.ResponseWriter, r *http.Request) {
	shiftTypeID, err := strconv.ParseInt(r.URL.Query().Get("shiftTypeID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "班次ID无效")
		return
	}

	dayOfWeek, err := strconv.ParseInt(r.URL.Query().Get("dayOfWeek"), 10, 32)
	if err != nil || dayOfWeek < 0 || dayOfWeek > 6 {
		h.errorResponse(w, r, "星期几无效")
		return
	}

	assignments, err := h.repository.ListRecurringAssignments(shiftTypeID, int32(dayOfWeek))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取固定排班列表成功", assignments)
}

func (h *Handler) CreateRecurringAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OfficerID        int64   `json:"officerID" validate:"required"`
		DayOfWeek        int32   `json:"dayOfWeek" validate:"min=0,max=6"`
		ShiftTypeID      int64   `json:"shiftTypeID" validate:"required"`
		Position         string  `json:"position"`
		Unit             string  `json:"unit"`
		StartDate        string  `json:"startDate" validate:"required"`
		EndDate          *string `json:"endDate"`
		IsPartnership    bool    `json:"isPartnership"`
		PartnerOfficerID *int64  `json:"partnerOfficerID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.errorResponse(w, r, "起始日期格式错误")
		return
	}

	var endDate *time.Time
	if req.EndDate != nil {
		ed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			h.errorResponse(w, r, "结束日期格式错误")
			return
		}
		if ed.Before(startDate) {
			h.errorResponse(w, r, "结束日期不能早于起始日期")
			return
		}
		endDate = &ed
	}

	if req.IsPartnership && req.PartnerOfficerID == nil {
		h.errorResponse(w, r, "搭档排班必须指定搭档警员")
		return
	}

	ra := &domain.RecurringAssignment{
		OfficerID:        req.OfficerID,
		DayOfWeek:        req.DayOfWeek,
		ShiftTypeID:      req.ShiftTypeID,
		Position:         req.Position,
		Unit:             req.Unit,
		StartDate:        startDate,
		EndDate:          endDate,
		IsPartnership:    req.IsPartnership,
		PartnerOfficerID: req.PartnerOfficerID,
	}

	if err := h.repository.CreateRecurringAssignment(ra); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateShiftTypeScheduleCache(ra.ShiftTypeID)
	h.successResponse(w, r, "固定排班创建成功", ra)
}

// CloseRecurringAssignment 写入 end_date 做软移除，
// 之后的日期不再产生有效排班，历史日期不受影响
func (h *Handler) CloseRecurringAssignment(w http.ResponseWriter, r *http.Request) {
	ra := r.Context().Value(RecurringAssignmentCtx).(*domain.RecurringAssignment)

	var req struct {
		EndDate string `json:"endDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		h.errorResponse(w, r, "结束日期格式错误")
		return
	}

	if endDate.Before(ra.StartDate) {
		h.errorResponse(w, r, "结束日期不能早于起始日期")
		return
	}

	if err := h.repository.CloseRecurringAssignment(ra, endDate); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateShiftTypeScheduleCache(ra.ShiftTypeID)
	h.successResponse(w, r, "固定排班已关闭", ra)
}
