package domain

import "time"

// ScheduleException 表示对固定排班的单日覆盖，
// 同一个 (警员, 日期, 班次类型) 上例外记录永远优先于固定排班
type ScheduleException struct {
	ID                   int64     `json:"id"`
	OfficerID            int64     `json:"officerID"`
	Date                 time.Time `json:"date"`
	ShiftTypeID          int64     `json:"shiftTypeID"`
	IsOff                bool      `json:"isOff"` // true = 请假/休假，false = 修改后的工作安排
	StartTime            *string   `json:"startTime"`
	EndTime              *string   `json:"endTime"`
	Position             *string   `json:"position"`
	Unit                 *string   `json:"unit"`
	Notes                *string   `json:"notes"`
	IsPartnership        bool      `json:"isPartnership"`
	PartnerOfficerID     *int64    `json:"partnerOfficerID"`
	PartnershipSuspended bool      `json:"partnershipSuspended"`
	PTOType              string    `json:"ptoType"`
	CreatedAt            time.Time `json:"createdAt"`
	Version              int32     `json:"-"`
}
