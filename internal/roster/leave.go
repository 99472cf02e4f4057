package roster

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

// DefaultLeaveHours 是无法确定班次时长时使用的兜底值，
// 宁可多还 8 小时也不能让假期悄悄丢失
const DefaultLeaveHours = 8.0

// RestoreLeave 撤销一条休假例外：把当初扣掉的小时数原样加回余额，
// 并删除例外记录，两步在仓库层的同一个事务中完成
func (e *Engine) RestoreLeave(exceptionID int64) (*domain.LeaveRestoration, error) {
	exc, err := e.store.GetScheduleException(exceptionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "例外记录", ID: exceptionID}
		}
		return nil, &StoreFailure{Op: "GetScheduleException", Err: err}
	}

	if !exc.IsOff {
		return nil, &InvalidStateError{Reason: fmt.Sprintf("例外记录 %d 不是休假记录，不能销假", exceptionID)}
	}

	hours := e.leaveHours(exc)

	release, err := e.locker.Acquire(leaveLockKey(exc.OfficerID, exc.PTOType))
	if err != nil {
		return nil, &StoreFailure{Op: "AcquireLeaveLock", Err: err}
	}
	defer release()

	if err := e.store.RestoreLeave(exc.ID, exc.OfficerID, exc.PTOType, hours); err != nil {
		// 读取之后、事务提交之前例外被别的请求销掉了，假已经还过
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "例外记录", ID: exc.ID}
		}
		return nil, &StoreFailure{Op: "RestoreLeave", Err: err}
	}

	return &domain.LeaveRestoration{
		OfficerID:     exc.OfficerID,
		PTOType:       exc.PTOType,
		HoursRestored: hours,
	}, nil
}

// DeductLeave 创建一条休假例外并从余额中扣减对应的小时数，
// 小时数的算法和 RestoreLeave 完全一致，保证先扣后还正好归零
func (e *Engine) DeductLeave(exc *domain.ScheduleException) (*domain.LeaveDeduction, error) {
	if !exc.IsOff {
		return nil, &InvalidStateError{Reason: "只有休假例外才会产生余额扣减"}
	}

	hours := e.leaveHours(exc)

	release, err := e.locker.Acquire(leaveLockKey(exc.OfficerID, exc.PTOType))
	if err != nil {
		return nil, &StoreFailure{Op: "AcquireLeaveLock", Err: err}
	}
	defer release()

	if err := e.store.DeductLeave(exc, hours); err != nil {
		return nil, &StoreFailure{Op: "DeductLeave", Err: err}
	}

	return &domain.LeaveDeduction{
		OfficerID:     exc.OfficerID,
		PTOType:       exc.PTOType,
		HoursDeducted: hours,
		ExceptionID:   exc.ID,
	}, nil
}

func leaveLockKey(officerID int64, ptoType string) string {
	return fmt.Sprintf("leave-lock:%d:%s", officerID, ptoType)
}

// leaveHours 计算一条休假例外对应的小时数：
// 优先使用例外上的自定义起止时间，其次是班次的默认起止时间，
// 任何一步失败都回落到 8 小时并记录日志，兜底是业务决定而不是吞异常
func (e *Engine) leaveHours(exc *domain.ScheduleException) float64 {
	if exc.StartTime != nil || exc.EndTime != nil {
		if exc.StartTime == nil || exc.EndTime == nil {
			slog.Warn("例外记录的自定义时间不完整，按默认时长处理",
				"exceptionID", exc.ID, "hours", DefaultLeaveHours)
			return DefaultLeaveHours
		}

		hours, err := hoursBetween(*exc.StartTime, *exc.EndTime)
		if err != nil {
			slog.Warn("例外记录的自定义时间无效，按默认时长处理",
				"exceptionID", exc.ID, "startTime", *exc.StartTime, "endTime", *exc.EndTime,
				"error", err, "hours", DefaultLeaveHours)
			return DefaultLeaveHours
		}
		return hours
	}

	shiftType, err := e.store.GetShiftType(exc.ShiftTypeID)
	if err != nil {
		slog.Warn("无法获取例外记录对应的班次，按默认时长处理",
			"exceptionID", exc.ID, "shiftTypeID", exc.ShiftTypeID, "error", err, "hours", DefaultLeaveHours)
		return DefaultLeaveHours
	}

	hours, err := hoursBetween(shiftType.StartTime, shiftType.EndTime)
	if err != nil {
		slog.Warn("班次的默认时间无效，按默认时长处理",
			"exceptionID", exc.ID, "shiftTypeID", exc.ShiftTypeID, "error", err, "hours", DefaultLeaveHours)
		return DefaultLeaveHours
	}

	return hours
}

// hoursBetween 按分钟差计算时长，时间格式为 HH:MM:SS 或 HH:MM
func hoursBetween(startTime string, endTime string) (float64, error) {
	start, err := parseTimeOfDay(startTime)
	if err != nil {
		return 0, err
	}
	end, err := parseTimeOfDay(endTime)
	if err != nil {
		return 0, err
	}

	minutes := end.Sub(start).Minutes()
	if minutes <= 0 {
		return 0, fmt.Errorf("结束时间 %s 不晚于开始时间 %s", endTime, startTime)
	}

	return minutes / 60, nil
}

func parseTimeOfDay(value string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", value); err == nil {
		return t, nil
	}
	return time.Parse("15:04", value)
}
