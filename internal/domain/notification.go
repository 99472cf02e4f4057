package domain

// NotificationMessage 是投递到消息队列、由 notifier worker 消费的通知
type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateOfficerMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ScheduleChangedMailData struct {
	OfficerName string `json:"officerName"`
	Date        string `json:"date"`
	ShiftName   string `json:"shiftName"`
	Change      string `json:"change"`
}

type LeaveRestoredMailData struct {
	OfficerName   string  `json:"officerName"`
	Date          string  `json:"date"`
	PTOType       string  `json:"ptoType"`
	HoursRestored float64 `json:"hoursRestored"`
}
