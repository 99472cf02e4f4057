package domain

import "time"

type AssignmentSource string

const (
	SourceRecurring AssignmentSource = "recurring"
	SourceException AssignmentSource = "exception"
)

// OverrideKind 表示例外记录相对固定排班的覆盖类型，
// 在合并时根据是否存在匹配的固定排班推导出来
type OverrideKind string

const (
	OverrideAddition     OverrideKind = "addition"     // 没有固定排班，临时加班
	OverrideModification OverrideKind = "modification" // 覆盖了已有的固定排班
	OverrideRemoval      OverrideKind = "removal"      // is_off，把警员从当天名单中移除
)

// EffectiveAssignment 是某个日期和班次上合并后的有效排班记录
type EffectiveAssignment struct {
	OfficerID            int64            `json:"officerID"`
	Date                 time.Time        `json:"date"`
	ShiftTypeID          int64            `json:"shiftTypeID"`
	Position             string           `json:"position"`
	Unit                 string           `json:"unit"`
	StartTime            string           `json:"startTime"`
	EndTime              string           `json:"endTime"`
	IsOff                bool             `json:"isOff"`
	IsPartnership        bool             `json:"isPartnership"`
	PartnerOfficerID     *int64           `json:"partnerOfficerID"`
	PartnershipSuspended bool             `json:"partnershipSuspended"`
	PTOType              string           `json:"ptoType,omitempty"`
	Source               AssignmentSource `json:"source"`
	Kind                 OverrideKind     `json:"kind,omitempty"` // 仅当 Source 为 exception 时有值
}
