package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

func (h *Handler) GetAllShiftTypes(w http.ResponseWriter, r *http.Request) {
	shiftTypes, err := h.repository.GetAllShiftTypes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取班次列表成功", shiftTypes)
}

func (h *Handler) GetShiftType(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "班次ID无效")
		return
	}

	st, err := h.repository.GetShiftType(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "班次不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取班次成功", st)
}

func (h *Handler) CreateShiftType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name" validate:"required"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 检查默认起止时间的格式，结束时间必须晚于开始时间
	startTime, err := time.Parse("15:04:05", req.StartTime)
	if err != nil {
		h.errorResponse(w, r, "班次开始时间格式错误")
		return
	}
	endTime, err := time.Parse("15:04:05", req.EndTime)
	if err != nil {
		h.errorResponse(w, r, "班次结束时间格式错误")
		return
	}
	if !endTime.After(startTime) {
		h.errorResponse(w, r, "班次结束时间必须晚于开始时间")
		return
	}

	st := &domain.ShiftType{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := h.repository.CreateShiftType(st); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "班次创建成功", st)
}
