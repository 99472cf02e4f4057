package domain

import "time"

// RecurringAssignment 表示每周重复的固定排班
// （警员 × 星期几 × 班次类型），在 [StartDate, EndDate] 区间内有效，
// EndDate 为 nil 表示开放区间
//
// 固定排班不会被硬删除，只能通过关闭 EndDate 来软移除
type RecurringAssignment struct {
	ID               int64      `json:"id"`
	OfficerID        int64      `json:"officerID"`
	DayOfWeek        int32      `json:"dayOfWeek"` // 0 = 周日，6 = 周六
	ShiftTypeID      int64      `json:"shiftTypeID"`
	Position         string     `json:"position"`
	Unit             string     `json:"unit"`
	StartDate        time.Time  `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	IsPartnership    bool       `json:"isPartnership"`
	PartnerOfficerID *int64     `json:"partnerOfficerID"`
	CreatedAt        time.Time  `json:"createdAt"`
	Version          int32      `json:"-"`
}

// ContainsDate 判断固定排班的有效区间是否包含指定日期（按日比较）
func (ra *RecurringAssignment) ContainsDate(date time.Time) bool {
	day := truncateToDay(date)

	if truncateToDay(ra.StartDate).After(day) {
		return false
	}
	if ra.EndDate != nil && truncateToDay(*ra.EndDate).Before(day) {
		return false
	}

	return true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
