package handler

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 固定排班变更时按模式批量失效缓存，
// 模式必须覆盖该班次所有日期的 key，且不能误删其它班次的
func TestScheduleCacheKeyPattern(t *testing.T) {
	pattern := scheduleCacheKeyPattern(3)

	dates := []time.Time{
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, date := range dates {
		matched, err := filepath.Match(pattern, scheduleCacheKey(date, 3))
		require.NoError(t, err)
		assert.True(t, matched, "应当匹配 %s", scheduleCacheKey(date, 3))
	}

	date := dates[0]
	for _, otherShiftTypeID := range []int64{1, 13, 30, 33} {
		key := scheduleCacheKey(date, otherShiftTypeID)
		matched, err := filepath.Match(pattern, key)
		require.NoError(t, err)
		assert.False(t, matched, "不应匹配 %s", key)
	}
}
