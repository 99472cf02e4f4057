package roster_test

import (
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

// fakeStore 是测试用的内存存储，实现 roster.Store，
// 余额的读改写故意不做原子化，用来验证引擎侧的串行化
type fakeStore struct {
	mu sync.Mutex

	shiftTypes map[int64]*domain.ShiftType
	recurring  []*domain.RecurringAssignment
	exceptions map[int64]*domain.ScheduleException
	officers   map[int64]*domain.Officer
	balances   map[string]float64

	nextExceptionID int64

	// 写操作之间引入的人为延迟，放大竞态窗口
	writeDelay time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		shiftTypes:      make(map[int64]*domain.ShiftType),
		exceptions:      make(map[int64]*domain.ScheduleException),
		officers:        make(map[int64]*domain.Officer),
		balances:        make(map[string]float64),
		nextExceptionID: 1,
	}
}

func balanceKey(officerID int64, ptoType string) string {
	return fmt.Sprintf("%d:%s", officerID, ptoType)
}

func (s *fakeStore) ListRecurringAssignments(shiftTypeID int64, dayOfWeek int32) ([]*domain.RecurringAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.RecurringAssignment, 0)
	for _, ra := range s.recurring {
		if ra.ShiftTypeID == shiftTypeID && ra.DayOfWeek == dayOfWeek {
			result = append(result, ra)
		}
	}
	return result, nil
}

func (s *fakeStore) ListScheduleExceptions(date time.Time, shiftTypeID int64) ([]*domain.ScheduleException, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.ScheduleException, 0)
	for _, exc := range s.exceptions {
		if exc.ShiftTypeID == shiftTypeID && sameDay(exc.Date, date) {
			result = append(result, exc)
		}
	}
	return result, nil
}

func (s *fakeStore) GetScheduleException(id int64) (*domain.ScheduleException, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exc, exists := s.exceptions[id]
	if !exists {
		return nil, sql.ErrNoRows
	}
	return exc, nil
}

func (s *fakeStore) GetShiftType(id int64) (*domain.ShiftType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, exists := s.shiftTypes[id]
	if !exists {
		return nil, sql.ErrNoRows
	}
	return st, nil
}

func (s *fakeStore) GetOfficersByIDs(ids []int64) ([]*domain.Officer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Officer, 0, len(ids))
	for _, id := range ids {
		if o, exists := s.officers[id]; exists {
			result = append(result, o)
		}
	}
	return result, nil
}

func (s *fakeStore) RestoreLeave(exceptionID int64, officerID int64, ptoType string, hours float64) error {
	s.mu.Lock()
	if _, exists := s.exceptions[exceptionID]; !exists {
		s.mu.Unlock()
		return sql.ErrNoRows
	}
	key := balanceKey(officerID, ptoType)
	current := s.balances[key]
	s.mu.Unlock()

	// 模拟非原子的读改写
	if s.writeDelay > 0 {
		time.Sleep(s.writeDelay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[key] = current + hours
	delete(s.exceptions, exceptionID)
	return nil
}

func (s *fakeStore) DeductLeave(exc *domain.ScheduleException, hours float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exc.ID = s.nextExceptionID
	s.nextExceptionID++
	s.exceptions[exc.ID] = exc

	key := balanceKey(exc.OfficerID, exc.PTOType)
	s.balances[key] -= hours
	return nil
}

func (s *fakeStore) addException(exc *domain.ScheduleException) *domain.ScheduleException {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exc.ID == 0 {
		exc.ID = s.nextExceptionID
		s.nextExceptionID++
	} else if exc.ID >= s.nextExceptionID {
		s.nextExceptionID = exc.ID + 1
	}
	s.exceptions[exc.ID] = exc
	return exc
}

func (s *fakeStore) balance(officerID int64, ptoType string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[balanceKey(officerID, ptoType)]
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("解析日期 %s 失败: %v", value, err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func datePtr(d time.Time) *time.Time { return &d }
