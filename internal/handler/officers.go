package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
	"github.com/blueline-dev/patrol-roster/backend/internal/utils"
)

func (h *Handler) GetAllOfficers(w http.ResponseWriter, r *http.Request) {
	officers, err := h.repository.GetAllOfficers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取警员列表成功", officers)
}

func (h *Handler) GetOfficer(w http.ResponseWriter, r *http.Request) {
	officer := r.Context().Value(OfficerInfoCtx).(*domain.Officer)
	h.successResponse(w, r, "获取警员信息成功", officer)
}

func (h *Handler) CreateOfficer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		FullName string `json:"fullName" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Rank     string `json:"rank" validate:"required"`
		Role     string `json:"role" validate:"required,oneof=officer supervisor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 生成随机密码
	password := utils.GenerateRandomPassword(h.config.NewOfficer.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	officer := &domain.Officer{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Email:        req.Email,
		Rank:         domain.Rank(req.Rank),
		Role:         domain.Role(req.Role),
	}

	if err := h.repository.CreateOfficer(officer); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "officers_username_key":
				h.badRequest(w, r, errors.New("用户名已存在"))
			case pgErr.ConstraintName == "officers_email_key":
				h.badRequest(w, r, errors.New("邮箱已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// 账户信息通过邮件发给新警员
	h.publishNotification(domain.NotificationMessage{
		Type: "create_officer",
		To:   officer.Email,
		Data: domain.CreateOfficerMailData{
			FullName: req.FullName,
			Username: req.Username,
			Password: password,
		},
	})

	h.successResponse(w, r, "警员创建成功", officer)
}

func (h *Handler) UpdateOfficer(w http.ResponseWriter, r *http.Request) {
	officer := r.Context().Value(OfficerInfoCtx).(*domain.Officer)

	var req struct {
		Email    *string `json:"email" validate:"omitempty,email"`
		Rank     *string `json:"rank"`
		Role     *string `json:"role" validate:"omitempty,oneof=officer supervisor"`
		IsActive *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Email != nil {
		officer.Email = *req.Email
	}
	if req.Rank != nil {
		officer.Rank = domain.Rank(*req.Rank)
	}
	if req.Role != nil {
		officer.Role = domain.Role(*req.Role)
	}
	if req.IsActive != nil {
		officer.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateOfficer(officer); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "警员信息更新成功", officer)
}

func (h *Handler) DeleteOfficer(w http.ResponseWriter, r *http.Request) {
	officer := r.Context().Value(OfficerInfoCtx).(*domain.Officer)

	if err := h.repository.DeleteOfficer(officer.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "警员删除成功", nil)
}

func (h *Handler) GetOfficerLeaveBalances(w http.ResponseWriter, r *http.Request) {
	officer := r.Context().Value(OfficerInfoCtx).(*domain.Officer)

	balances, err := h.repository.GetLeaveBalances(officer.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取假期余额成功", balances)
}
