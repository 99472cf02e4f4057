package handler

type ContextKey string

var (
	RoleCtxKey             ContextKey = "role"
	SubCtxKey              ContextKey = "sub"
	MyInfoCtx              ContextKey = "myInfo"
	OfficerInfoCtx         ContextKey = "officerInfo"
	RecurringAssignmentCtx ContextKey = "recurringAssignment"
	ScheduleExceptionCtx   ContextKey = "scheduleException"
)
