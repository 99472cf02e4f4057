package domain

import "time"

// ShiftType 是静态的班次参考数据，对排班核心来说是只读的
type ShiftType struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartTime string    `json:"startTime"` // HH:MM:SS
	EndTime   string    `json:"endTime"`   // HH:MM:SS
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
