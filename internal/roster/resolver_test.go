package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
	"github.com/blueline-dev/patrol-roster/backend/internal/roster"
)

const dayShiftID = int64(1)

func newResolverStore() *fakeStore {
	store := newFakeStore()
	store.shiftTypes[dayShiftID] = &domain.ShiftType{
		ID:        dayShiftID,
		Name:      "Day",
		StartTime: "07:00:00",
		EndTime:   "15:00:00",
	}
	return store
}

func TestResolveExceptionPrecedence(t *testing.T) {
	store := newResolverStore()
	// 2024-03-04 是周一
	date := mustDate(t, "2024-03-04")

	store.recurring = append(store.recurring, &domain.RecurringAssignment{
		ID:          1,
		OfficerID:   1,
		DayOfWeek:   1,
		ShiftTypeID: dayShiftID,
		Position:    "Patrol",
		Unit:        "1A",
		StartDate:   mustDate(t, "2024-01-01"),
	})
	store.addException(&domain.ScheduleException{
		OfficerID:   1,
		Date:        date,
		ShiftTypeID: dayShiftID,
		Position:    strPtr("Desk"),
		StartTime:   strPtr("09:00:00"),
		EndTime:     strPtr("17:00:00"),
	})

	engine := roster.NewEngine(store, nil)

	assignments, err := engine.Resolve(date, dayShiftID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)

	ea := assignments[0]
	assert.Equal(t, domain.SourceException, ea.Source)
	assert.Equal(t, domain.OverrideModification, ea.Kind)
	assert.Equal(t, "Desk", ea.Position)
	assert.Equal(t, "09:00:00", ea.StartTime)
	assert.Equal(t, "17:00:00", ea.EndTime)
	// 例外没有给出 unit，回落到固定排班
	assert.Equal(t, "1A", ea.Unit)
}

func TestResolveOffDayRemoval(t *testing.T) {
	store := newResolverStore()
	date := mustDate(t, "2024-03-04")

	store.recurring = append(store.recurring, &domain.RecurringAssignment{
		ID:          1,
		OfficerID:   1,
		DayOfWeek:   1,
		ShiftTypeID: dayShiftID,
		StartDate:   mustDate(t, "2024-01-01"),
	})
	store.addException(&domain.ScheduleException{
		OfficerID:   1,
		Date:        date,
		ShiftTypeID: dayShiftID,
		IsOff:       true,
		PTOType:     "vacation",
	})

	engine := roster.NewEngine(store, nil)

	assignments, err := engine.Resolve(date, dayShiftID)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	// 完整合并结果里请假记录保留，供搭档校验使用
	full, err := engine.ResolveFull(date, dayShiftID)
	require.NoError(t, err)
	require.Len(t, full, 1)
	assert.True(t, full[0].IsOff)
	assert.Equal(t, domain.OverrideRemoval, full[0].Kind)
	assert.Equal(t, "vacation", full[0].PTOType)
}

func TestResolveValidityBounds(t *testing.T) {
	store := newResolverStore()
	date := mustDate(t, "2024-03-04")

	// end_date 是前一天，不再产生有效排班
	store.recurring = append(store.recurring, &domain.RecurringAssignment{
		ID:          1,
		OfficerID:   1,
		DayOfWeek:   1,
		ShiftTypeID: dayShiftID,
		StartDate:   mustDate(t, "2024-01-01"),
		EndDate:     datePtr(mustDate(t, "2024-03-03")),
	})
	// end_date 正好是当天，仍然有效
	store.recurring = append(store.recurring, &domain.RecurringAssignment{
		ID:          2,
		OfficerID:   2,
		DayOfWeek:   1,
		ShiftTypeID: dayShiftID,
		StartDate:   mustDate(t, "2024-01-01"),
		EndDate:     datePtr(date),
	})
	// start_date 在未来，还未生效
	store.recurring = append(store.recurring, &domain.RecurringAssignment{
		ID:          3,
		OfficerID:   3,
		DayOfWeek:   1,
		ShiftTypeID: dayShiftID,
		StartDate:   mustDate(t, "2024-04-01"),
	})

	engine := roster.NewEngine(store, nil)

	assignments, err := engine.Resolve(date, dayShiftID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, int64(2), assignments[0].OfficerID)
	assert.Equal(t, domain.SourceRecurring, assignments[0].Source)
}

func TestResolveAdHocAddition(t *testing.T) {
	store := newResolverStore()
	date := mustDate(t, "2024-03-04")

	store.addException(&domain.ScheduleException{
		OfficerID:   7,
		Date:        date,
		ShiftTypeID: dayShiftID,
		Position:    strPtr("Traffic"),
	})

	engine := roster.NewEngine(store, nil)

	assignments, err := engine.Resolve(date, dayShiftID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, domain.SourceException, assignments[0].Source)
	assert.Equal(t, domain.OverrideAddition, assignments[0].Kind)
	// 没有自定义时间时使用班次默认时间
	assert.Equal(t, "07:00:00", assignments[0].StartTime)
	assert.Equal(t, "15:00:00", assignments[0].EndTime)
}

func TestResolveAmbiguousOverride(t *testing.T) {
	store := newResolverStore()
	date := mustDate(t, "2024-03-04")

	store.addException(&domain.ScheduleException{
		ID:          11,
		OfficerID:   1,
		Date:        date,
		ShiftTypeID: dayShiftID,
	})
	store.addException(&domain.ScheduleException{
		ID:          12,
		OfficerID:   1,
		Date:        date,
		ShiftTypeID: dayShiftID,
		IsOff:       true,
	})

	engine := roster.NewEngine(store, nil)

	_, err := engine.Resolve(date, dayShiftID)
	require.Error(t, err)

	var ambiguous *roster.AmbiguousOverrideError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, int64(1), ambiguous.OfficerID)
	assert.Len(t, ambiguous.ExceptionIDs, 2)
}

func TestResolveSortedByOfficerID(t *testing.T) {
	store := newResolverStore()
	date := mustDate(t, "2024-03-04")

	for _, officerID := range []int64{5, 3, 9, 1} {
		store.recurring = append(store.recurring, &domain.RecurringAssignment{
			ID:          officerID,
			OfficerID:   officerID,
			DayOfWeek:   1,
			ShiftTypeID: dayShiftID,
			StartDate:   mustDate(t, "2024-01-01"),
		})
	}

	engine := roster.NewEngine(store, nil)

	assignments, err := engine.Resolve(date, dayShiftID)
	require.NoError(t, err)
	require.Len(t, assignments, 4)

	ids := make([]int64, 0, len(assignments))
	for _, ea := range assignments {
		ids = append(ids, ea.OfficerID)
	}
	assert.Equal(t, []int64{1, 3, 5, 9}, ids)
}

func TestResolveWrongDayOfWeekExcluded(t *testing.T) {
	store := newResolverStore()
	// 2024-03-05 是周二
	date := mustDate(t, "2024-03-05")

	store.recurring = append(store.recurring, &domain.RecurringAssignment{
		ID:          1,
		OfficerID:   1,
		DayOfWeek:   1, // 周一
		ShiftTypeID: dayShiftID,
		StartDate:   mustDate(t, "2024-01-01"),
	})

	engine := roster.NewEngine(store, nil)

	assignments, err := engine.Resolve(date, dayShiftID)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}
