package seed

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func slotKey(s exceptionSlot) string {
	return fmt.Sprintf("%d:%s:%d", s.officerID, s.date.Format("2006-01-02"), s.shiftTypeID)
}

// 同一 (警员, 日期, 班次) 上出现两条例外会被解析器拒绝，
// 随机挑选必须保证组合不重复
func TestUniqueExceptionSlots(t *testing.T) {
	officerIDs := []int64{1, 2, 3}
	shiftTypeIDs := []int64{10, 11}
	from := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		slots := uniqueExceptionSlots(officerIDs, shiftTypeIDs, from, 5, 12)
		assert.Len(t, slots, 12)

		seen := make(map[string]bool)
		for _, slot := range slots {
			key := slotKey(slot)
			assert.False(t, seen[key], "组合 %s 重复", key)
			seen[key] = true

			assert.Contains(t, officerIDs, slot.officerID)
			assert.Contains(t, shiftTypeIDs, slot.shiftTypeID)
			assert.False(t, slot.date.Before(from))
			assert.True(t, slot.date.Before(from.AddDate(0, 0, 5)))
		}
	}
}
