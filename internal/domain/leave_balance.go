package domain

import "time"

// LeaveBalance 是警员在某一假期类型下的小时余额，
// 只允许通过带符号的增量来修改，禁止绝对覆盖
type LeaveBalance struct {
	OfficerID int64     `json:"officerID"`
	PTOType   string    `json:"ptoType"`
	Hours     float64   `json:"hours"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LeaveRestoration 是一次销假操作的结果
type LeaveRestoration struct {
	OfficerID     int64   `json:"officerID"`
	PTOType       string  `json:"ptoType"`
	HoursRestored float64 `json:"hoursRestored"`
}

// LeaveDeduction 是一次休假扣减操作的结果
type LeaveDeduction struct {
	OfficerID     int64   `json:"officerID"`
	PTOType       string  `json:"ptoType"`
	HoursDeducted float64 `json:"hoursDeducted"`
	ExceptionID   int64   `json:"exceptionID"`
}
