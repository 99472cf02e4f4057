package roster_test

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
	"github.com/blueline-dev/patrol-roster/backend/internal/roster"
)

func newLeaveStore(t *testing.T) *fakeStore {
	t.Helper()
	store := newResolverStore()
	return store
}

func leaveException(t *testing.T, officerID int64, ptoType string) *domain.ScheduleException {
	t.Helper()
	return &domain.ScheduleException{
		OfficerID:   officerID,
		Date:        mustDate(t, "2024-03-04"),
		ShiftTypeID: dayShiftID,
		IsOff:       true,
		PTOType:     ptoType,
	}
}

func TestRestoreLeaveShiftDefaultHours(t *testing.T) {
	store := newLeaveStore(t)
	exc := store.addException(leaveException(t, 1, "vacation"))

	engine := roster.NewEngine(store, nil)

	// Day 班 07:00-15:00，折算 8 小时
	restoration, err := engine.RestoreLeave(exc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), restoration.OfficerID)
	assert.Equal(t, "vacation", restoration.PTOType)
	assert.InDelta(t, 8.0, restoration.HoursRestored, 1e-9)

	assert.InDelta(t, 8.0, store.balance(1, "vacation"), 1e-9)

	// 例外记录已随事务删除
	_, err = store.GetScheduleException(exc.ID)
	require.Error(t, err)
}

func TestRestoreLeaveCustomTimes(t *testing.T) {
	store := newLeaveStore(t)
	exc := leaveException(t, 1, "sick")
	exc.StartTime = strPtr("09:00:00")
	exc.EndTime = strPtr("13:30:00")
	store.addException(exc)

	engine := roster.NewEngine(store, nil)

	restoration, err := engine.RestoreLeave(exc.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, restoration.HoursRestored, 1e-9)
	assert.InDelta(t, 4.5, store.balance(1, "sick"), 1e-9)
}

func TestRestoreLeaveNotFound(t *testing.T) {
	store := newLeaveStore(t)
	engine := roster.NewEngine(store, nil)

	_, err := engine.RestoreLeave(404)
	require.Error(t, err)

	var notFound *roster.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(404), notFound.ID)
}

func TestRestoreLeaveNotOff(t *testing.T) {
	store := newLeaveStore(t)
	exc := store.addException(&domain.ScheduleException{
		OfficerID:   1,
		Date:        mustDate(t, "2024-03-04"),
		ShiftTypeID: dayShiftID,
		Position:    strPtr("Desk"),
	})

	engine := roster.NewEngine(store, nil)

	_, err := engine.RestoreLeave(exc.ID)
	require.Error(t, err)

	var invalid *roster.InvalidStateError
	require.ErrorAs(t, err, &invalid)
}

func TestLeaveDefaultHoursFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		startTime *string
		endTime   *string
		shiftID   int64
	}{
		{name: "只有开始时间", startTime: strPtr("09:00:00"), shiftID: dayShiftID},
		{name: "只有结束时间", endTime: strPtr("17:00:00"), shiftID: dayShiftID},
		{name: "时间格式无效", startTime: strPtr("早上九点"), endTime: strPtr("下午五点"), shiftID: dayShiftID},
		{name: "结束早于开始", startTime: strPtr("15:00:00"), endTime: strPtr("07:00:00"), shiftID: dayShiftID},
		{name: "班次不存在", shiftID: 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newLeaveStore(t)
			exc := leaveException(t, 1, "vacation")
			exc.ShiftTypeID = tt.shiftID
			exc.StartTime = tt.startTime
			exc.EndTime = tt.endTime
			store.addException(exc)

			engine := roster.NewEngine(store, nil)

			restoration, err := engine.RestoreLeave(exc.ID)
			require.NoError(t, err)
			assert.InDelta(t, roster.DefaultLeaveHours, restoration.HoursRestored, 1e-9)
		})
	}
}

// vanishedStore 模拟例外在读取之后、事务提交之前被别的请求销掉的情况
type vanishedStore struct {
	*fakeStore
}

func (s *vanishedStore) RestoreLeave(exceptionID int64, officerID int64, ptoType string, hours float64) error {
	return sql.ErrNoRows
}

func TestRestoreLeaveExceptionVanishedBetweenReadAndCommit(t *testing.T) {
	store := newLeaveStore(t)
	exc := store.addException(leaveException(t, 1, "vacation"))

	engine := roster.NewEngine(&vanishedStore{fakeStore: store}, nil)

	_, err := engine.RestoreLeave(exc.ID)
	require.Error(t, err)

	// 属于"已经还过假"的良性情况，应当映射成记录不存在而不是内部错误
	var notFound *roster.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, exc.ID, notFound.ID)
}

func TestDeductThenRestoreRoundTrip(t *testing.T) {
	store := newLeaveStore(t)
	store.balances[balanceKey(1, "vacation")] = 80

	engine := roster.NewEngine(store, nil)

	deduction, err := engine.DeductLeave(leaveException(t, 1, "vacation"))
	require.NoError(t, err)
	assert.InDelta(t, 8.0, deduction.HoursDeducted, 1e-9)
	assert.InDelta(t, 72.0, store.balance(1, "vacation"), 1e-9)

	restoration, err := engine.RestoreLeave(deduction.ExceptionID)
	require.NoError(t, err)

	// 先扣后还，余额回到原点
	assert.InDelta(t, deduction.HoursDeducted, restoration.HoursRestored, 1e-9)
	assert.InDelta(t, 80.0, store.balance(1, "vacation"), 1e-9)
}

func TestDeductLeaveRequiresOff(t *testing.T) {
	store := newLeaveStore(t)
	engine := roster.NewEngine(store, nil)

	_, err := engine.DeductLeave(&domain.ScheduleException{
		OfficerID:   1,
		Date:        mustDate(t, "2024-03-04"),
		ShiftTypeID: dayShiftID,
		Position:    strPtr("Desk"),
	})
	require.Error(t, err)

	var invalid *roster.InvalidStateError
	require.ErrorAs(t, err, &invalid)
}

func TestConcurrentRestoreLeaveSerialized(t *testing.T) {
	store := newLeaveStore(t)
	// 放大存储层读改写之间的竞态窗口，
	// 没有引擎侧的锁时两次恢复会互相覆盖
	store.writeDelay = 20 * time.Millisecond

	const workers = 8

	excIDs := make([]int64, 0, workers)
	for i := 0; i < workers; i++ {
		exc := store.addException(leaveException(t, 1, "vacation"))
		excIDs = append(excIDs, exc.ID)
	}

	engine := roster.NewEngine(store, roster.NewLocalLocker())

	var wg sync.WaitGroup
	for _, id := range excIDs {
		wg.Add(1)
		go func(exceptionID int64) {
			defer wg.Done()
			_, err := engine.RestoreLeave(exceptionID)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	assert.InDelta(t, float64(workers)*8.0, store.balance(1, "vacation"), 1e-9)
}
