package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
	"github.com/blueline-dev/patrol-roster/backend/internal/roster"
)

func (h *Handler) ListScheduleExceptions(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		h.errorResponse(w, r, "日期格式错误")
		return
	}

	shiftTypeID, err := strconv.ParseInt(r.URL.Query().Get("shiftTypeID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "班次ID无效")
		return
	}

	exceptions, err := h.repository.ListScheduleExceptions(date, shiftTypeID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取例外记录列表成功", exceptions)
}

func (h *Handler) GetScheduleException(w http.ResponseWriter, r *http.Request) {
	exc := r.Context().Value(ScheduleExceptionCtx).(*domain.ScheduleException)
	h.successResponse(w, r, "获取例外记录成功", exc)
}

// CreateScheduleException 创建单日例外：请假（isOff=true）的例外会经过
// 余额核算引擎，例外插入和余额扣减在同一个工作单元里完成
func (h *Handler) CreateScheduleException(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OfficerID            int64   `json:"officerID" validate:"required"`
		Date                 string  `json:"date" validate:"required"`
		ShiftTypeID          int64   `json:"shiftTypeID" validate:"required"`
		IsOff                bool    `json:"isOff"`
		StartTime            *string `json:"startTime"`
		EndTime              *string `json:"endTime"`
		Position             *string `json:"position"`
		Unit                 *string `json:"unit"`
		Notes                *string `json:"notes"`
		IsPartnership        bool    `json:"isPartnership"`
		PartnerOfficerID     *int64  `json:"partnerOfficerID"`
		PartnershipSuspended bool    `json:"partnershipSuspended"`
		PTOType              string  `json:"ptoType"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		h.errorResponse(w, r, "日期格式错误")
		return
	}

	if req.IsOff && req.PTOType == "" {
		h.errorResponse(w, r, "休假例外必须指定假期类型")
		return
	}

	exc := &domain.ScheduleException{
		OfficerID:            req.OfficerID,
		Date:                 date,
		ShiftTypeID:          req.ShiftTypeID,
		IsOff:                req.IsOff,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		Position:             req.Position,
		Unit:                 req.Unit,
		Notes:                req.Notes,
		IsPartnership:        req.IsPartnership,
		PartnerOfficerID:     req.PartnerOfficerID,
		PartnershipSuspended: req.PartnershipSuspended,
		PTOType:              req.PTOType,
	}

	if exc.IsOff {
		deduction, err := h.engine.DeductLeave(exc)
		if err != nil {
			h.handleEngineError(w, r, err)
			return
		}

		h.invalidateScheduleCache(date, exc.ShiftTypeID)
		h.notifyScheduleChanged(exc, fmt.Sprintf("休假（%s，扣减 %.1f 小时）", deduction.PTOType, deduction.HoursDeducted))
		h.successResponse(w, r, "休假例外创建成功", exc)
		return
	}

	if err := h.repository.CreateScheduleException(exc); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateScheduleCache(date, exc.ShiftTypeID)
	h.notifyScheduleChanged(exc, "单日调整")
	h.successResponse(w, r, "例外记录创建成功", exc)
}

// UpdateScheduleException 修改单日例外的岗位信息，
// 不允许切换 isOff：休假状态的变更必须走销假加重新请假，否则余额会失准
func (h *Handler) UpdateScheduleException(w http.ResponseWriter, r *http.Request) {
	exc := r.Context().Value(ScheduleExceptionCtx).(*domain.ScheduleException)

	if exc.IsOff {
		h.errorResponse(w, r, "休假例外不能直接修改，请先销假再重新请假")
		return
	}

	var req struct {
		StartTime            *string `json:"startTime"`
		EndTime              *string `json:"endTime"`
		Position             *string `json:"position"`
		Unit                 *string `json:"unit"`
		Notes                *string `json:"notes"`
		IsPartnership        *bool   `json:"isPartnership"`
		PartnerOfficerID     *int64  `json:"partnerOfficerID"`
		PartnershipSuspended *bool   `json:"partnershipSuspended"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.StartTime != nil {
		exc.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		exc.EndTime = req.EndTime
	}
	if req.Position != nil {
		exc.Position = req.Position
	}
	if req.Unit != nil {
		exc.Unit = req.Unit
	}
	if req.Notes != nil {
		exc.Notes = req.Notes
	}
	if req.IsPartnership != nil {
		exc.IsPartnership = *req.IsPartnership
	}
	if req.PartnerOfficerID != nil {
		exc.PartnerOfficerID = req.PartnerOfficerID
	}
	if req.PartnershipSuspended != nil {
		exc.PartnershipSuspended = *req.PartnershipSuspended
	}

	if exc.IsPartnership && exc.PartnerOfficerID == nil {
		h.errorResponse(w, r, "搭档例外必须指定搭档警员")
		return
	}

	if err := h.repository.UpdateScheduleException(exc); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateScheduleCache(exc.Date, exc.ShiftTypeID)
	h.notifyScheduleChanged(exc, "单日调整已更新")
	h.successResponse(w, r, "例外记录更新成功", exc)
}

// DeleteScheduleException 撤销单日例外：休假例外走销假流程，
// 余额加回和记录删除是同一个工作单元
func (h *Handler) DeleteScheduleException(w http.ResponseWriter, r *http.Request) {
	exc := r.Context().Value(ScheduleExceptionCtx).(*domain.ScheduleException)

	if exc.IsOff {
		restoration, err := h.engine.RestoreLeave(exc.ID)
		if err != nil {
			h.handleEngineError(w, r, err)
			return
		}

		h.invalidateScheduleCache(exc.Date, exc.ShiftTypeID)
		h.notifyLeaveRestored(exc, restoration)
		h.successResponse(w, r, "销假成功，余额已加回", restoration)
		return
	}

	if err := h.repository.DeleteScheduleException(exc.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateScheduleCache(exc.Date, exc.ShiftTypeID)
	h.notifyScheduleChanged(exc, "单日调整已撤销")
	h.successResponse(w, r, "例外记录删除成功", nil)
}

// handleEngineError 把排班核心的类型化错误映射成用户可见的提示
func (h *Handler) handleEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *roster.NotFoundError
	var invalidState *roster.InvalidStateError
	var ambiguous *roster.AmbiguousOverrideError

	switch {
	case errors.As(err, &notFound):
		h.errorResponse(w, r, notFound.Error())
	case errors.As(err, &invalidState):
		h.errorResponse(w, r, invalidState.Error())
	case errors.As(err, &ambiguous):
		h.errorResponse(w, r, ambiguous.Error())
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) notifyScheduleChanged(exc *domain.ScheduleException, change string) {
	officer, err := h.repository.GetOfficerByID(exc.OfficerID)
	if err != nil {
		return
	}

	shiftName := strconv.FormatInt(exc.ShiftTypeID, 10)
	if st, err := h.repository.GetShiftType(exc.ShiftTypeID); err == nil {
		shiftName = st.Name
	}

	h.publishNotification(domain.NotificationMessage{
		Type: "schedule_changed",
		To:   officer.Email,
		Data: domain.ScheduleChangedMailData{
			OfficerName: officer.FullName,
			Date:        exc.Date.Format("2006-01-02"),
			ShiftName:   shiftName,
			Change:      change,
		},
	})
}

func (h *Handler) notifyLeaveRestored(exc *domain.ScheduleException, restoration *domain.LeaveRestoration) {
	officer, err := h.repository.GetOfficerByID(exc.OfficerID)
	if err != nil {
		return
	}

	h.publishNotification(domain.NotificationMessage{
		Type: "leave_restored",
		To:   officer.Email,
		Data: domain.LeaveRestoredMailData{
			OfficerName:   officer.FullName,
			Date:          exc.Date.Format("2006-01-02"),
			PTOType:       restoration.PTOType,
			HoursRestored: restoration.HoursRestored,
		},
	})
}
