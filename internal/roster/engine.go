package roster

import (
	"time"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

// Store 是排班核心依赖的持久层读写面，由 repository 实现
//
// 除了这里列出的方法之外，任何代码都不允许直接读取固定排班表和例外表，
// 保证"例外永远优先"这条规则只存在于一处
type Store interface {
	ListRecurringAssignments(shiftTypeID int64, dayOfWeek int32) ([]*domain.RecurringAssignment, error)
	ListScheduleExceptions(date time.Time, shiftTypeID int64) ([]*domain.ScheduleException, error)
	GetScheduleException(id int64) (*domain.ScheduleException, error)
	GetShiftType(id int64) (*domain.ShiftType, error)
	GetOfficersByIDs(ids []int64) ([]*domain.Officer, error)

	// RestoreLeave 在同一个事务中给余额加回小时数并删除对应的例外记录
	RestoreLeave(exceptionID int64, officerID int64, ptoType string, hours float64) error
	// DeductLeave 在同一个事务中插入休假例外并从余额中扣减小时数
	DeductLeave(exc *domain.ScheduleException, hours float64) error
}

// Engine 对外暴露 Resolve / ValidatePartnerships / RestoreLeave / DeductLeave，
// 自身不持有跨调用的内存状态，可以被并发使用
type Engine struct {
	store  Store
	locker Locker
}

func NewEngine(store Store, locker Locker) *Engine {
	if locker == nil {
		locker = NewLocalLocker()
	}

	return &Engine{
		store:  store,
		locker: locker,
	}
}
