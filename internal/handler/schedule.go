package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

// ScheduleView 是某天某班次的完整视图：
// 值勤名单、请假名单和搭档校验的告警
type ScheduleView struct {
	Date        string                       `json:"date"`
	ShiftTypeID int64                        `json:"shiftTypeID"`
	Assignments []domain.EffectiveAssignment `json:"assignments"`
	Leave       []domain.EffectiveAssignment `json:"leave"`
	Issues      []domain.PartnershipIssue    `json:"issues"`
}

// GetSchedule 解析某天某班次的有效排班，结果带 redis 读穿缓存，
// 任何影响该 (日期, 班次) 的写操作都会让缓存失效
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
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

	cacheKey := scheduleCacheKey(date, shiftTypeID)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	if cached, err := h.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		view := &ScheduleView{}
		if err := json.Unmarshal([]byte(cached), view); err == nil {
			h.successResponse(w, r, "获取排班成功", view)
			return
		}
	} else if err != redis.Nil {
		// 缓存不可用不阻塞解析，降级为直接查询
		slog.Error("读取排班缓存失败", "key", cacheKey, "error", err)
	}

	full, err := h.engine.ResolveFull(date, shiftTypeID)
	if err != nil {
		h.handleEngineError(w, r, err)
		return
	}

	issues, err := h.engine.ValidatePartnerships(full)
	if err != nil {
		h.handleEngineError(w, r, err)
		return
	}

	view := &ScheduleView{
		Date:        date.Format("2006-01-02"),
		ShiftTypeID: shiftTypeID,
		Assignments: make([]domain.EffectiveAssignment, 0, len(full)),
		Leave:       make([]domain.EffectiveAssignment, 0),
		Issues:      issues,
	}

	for _, ea := range full {
		if ea.IsOff {
			view.Leave = append(view.Leave, ea)
			continue
		}
		view.Assignments = append(view.Assignments, ea)
	}

	if body, err := json.Marshal(view); err == nil {
		expiration := time.Duration(h.config.Engine.ScheduleCacheExpiration) * time.Second
		if err := h.redisClient.Set(ctx, cacheKey, body, expiration).Err(); err != nil {
			slog.Error("写入排班缓存失败", "key", cacheKey, "error", err)
		}
	}

	h.successResponse(w, r, "获取排班成功", view)
}
