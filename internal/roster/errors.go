package roster

import (
	"fmt"
	"time"
)

// NotFoundError 表示引用的记录不存在
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d 不存在", e.Resource, e.ID)
}

// InvalidStateError 表示操作对当前记录状态不合法，
// 比如对非休假例外执行销假
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string {
	return e.Reason
}

// AmbiguousOverrideError 表示同一个 (警员, 日期, 班次) 上存在多条例外记录，
// 这是数据完整性问题，解析器不允许擅自挑选其中一条
type AmbiguousOverrideError struct {
	OfficerID    int64
	Date         time.Time
	ShiftTypeID  int64
	ExceptionIDs []int64
}

func (e *AmbiguousOverrideError) Error() string {
	return fmt.Sprintf("警员 %d 在 %s 的班次 %d 上存在多条冲突的例外记录 %v",
		e.OfficerID, e.Date.Format("2006-01-02"), e.ShiftTypeID, e.ExceptionIDs)
}

// StoreFailure 包装持久层的 I/O 错误
type StoreFailure struct {
	Op  string
	Err error
}

func (e *StoreFailure) Error() string {
	return fmt.Sprintf("持久层操作 %s 失败: %v", e.Op, e.Err)
}

func (e *StoreFailure) Unwrap() error {
	return e.Err
}
