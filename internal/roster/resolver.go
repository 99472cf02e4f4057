package roster

import (
	"sort"
	"time"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

// Resolve 计算指定日期和班次上的值勤名单：
// 合并当天生效的固定排班和例外记录，例外按警员 ID 覆盖固定排班，
// is_off 的警员会被从结果中移除
//
// 结果按警员 ID 升序排列，除此之外不保证顺序稳定
func (e *Engine) Resolve(date time.Time, shiftTypeID int64) ([]domain.EffectiveAssignment, error) {
	full, err := e.ResolveFull(date, shiftTypeID)
	if err != nil {
		return nil, err
	}

	assignments := make([]domain.EffectiveAssignment, 0, len(full))
	for _, ea := range full {
		if ea.IsOff {
			continue
		}
		assignments = append(assignments, ea)
	}

	return assignments, nil
}

// ResolveFull 返回完整的合并结果，请假（is_off）的记录也保留在内，
// 搭档校验需要用它来区分"搭档请假"和"搭档缺失"
func (e *Engine) ResolveFull(date time.Time, shiftTypeID int64) ([]domain.EffectiveAssignment, error) {
	shiftType, err := e.store.GetShiftType(shiftTypeID)
	if err != nil {
		return nil, &StoreFailure{Op: "GetShiftType", Err: err}
	}

	dayOfWeek := int32(date.Weekday())

	recurring, err := e.store.ListRecurringAssignments(shiftTypeID, dayOfWeek)
	if err != nil {
		return nil, &StoreFailure{Op: "ListRecurringAssignments", Err: err}
	}

	exceptions, err := e.store.ListScheduleExceptions(date, shiftTypeID)
	if err != nil {
		return nil, &StoreFailure{Op: "ListScheduleExceptions", Err: err}
	}

	return Merge(date, shiftType, recurring, exceptions)
}

// Merge 是纯函数形式的合并核心，不做任何 I/O
func Merge(date time.Time, shiftType *domain.ShiftType, recurring []*domain.RecurringAssignment, exceptions []*domain.ScheduleException) ([]domain.EffectiveAssignment, error) {
	// 当天生效的固定排班，按警员 ID 索引
	recurringByOfficer := make(map[int64]*domain.RecurringAssignment)
	for _, ra := range recurring {
		if !ra.ContainsDate(date) {
			continue
		}
		recurringByOfficer[ra.OfficerID] = ra
	}

	// 同一个警员在同一 (日期, 班次) 上出现多条例外属于数据完整性问题
	excByOfficer := make(map[int64]*domain.ScheduleException)
	for _, exc := range exceptions {
		if prev, exists := excByOfficer[exc.OfficerID]; exists {
			return nil, &AmbiguousOverrideError{
				OfficerID:    exc.OfficerID,
				Date:         date,
				ShiftTypeID:  shiftType.ID,
				ExceptionIDs: []int64{prev.ID, exc.ID},
			}
		}
		excByOfficer[exc.OfficerID] = exc
	}

	result := make([]domain.EffectiveAssignment, 0, len(recurringByOfficer)+len(excByOfficer))

	for officerID, exc := range excByOfficer {
		ea := domain.EffectiveAssignment{
			OfficerID:            officerID,
			Date:                 date,
			ShiftTypeID:          shiftType.ID,
			StartTime:            shiftType.StartTime,
			EndTime:              shiftType.EndTime,
			IsOff:                exc.IsOff,
			IsPartnership:        exc.IsPartnership,
			PartnerOfficerID:     exc.PartnerOfficerID,
			PartnershipSuspended: exc.PartnershipSuspended,
			PTOType:              exc.PTOType,
			Source:               domain.SourceException,
		}

		if exc.StartTime != nil {
			ea.StartTime = *exc.StartTime
		}
		if exc.EndTime != nil {
			ea.EndTime = *exc.EndTime
		}
		if exc.Position != nil {
			ea.Position = *exc.Position
		}
		if exc.Unit != nil {
			ea.Unit = *exc.Unit
		}

		ra, hasRecurring := recurringByOfficer[officerID]
		switch {
		case exc.IsOff:
			ea.Kind = domain.OverrideRemoval
		case hasRecurring:
			ea.Kind = domain.OverrideModification
		default:
			ea.Kind = domain.OverrideAddition
		}

		// 例外没有给出的岗位信息回落到固定排班
		if hasRecurring {
			if exc.Position == nil {
				ea.Position = ra.Position
			}
			if exc.Unit == nil {
				ea.Unit = ra.Unit
			}
		}

		result = append(result, ea)
	}

	// 只出现在固定排班中的警员原样带入
	for officerID, ra := range recurringByOfficer {
		if _, overridden := excByOfficer[officerID]; overridden {
			continue
		}

		result = append(result, domain.EffectiveAssignment{
			OfficerID:        officerID,
			Date:             date,
			ShiftTypeID:      shiftType.ID,
			Position:         ra.Position,
			Unit:             ra.Unit,
			StartTime:        shiftType.StartTime,
			EndTime:          shiftType.EndTime,
			IsPartnership:    ra.IsPartnership,
			PartnerOfficerID: ra.PartnerOfficerID,
			Source:           domain.SourceRecurring,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].OfficerID < result[j].OfficerID
	})

	return result, nil
}
