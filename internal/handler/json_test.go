package handler

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, body []byte) Envelope {
	t.Helper()
	env := Envelope{}
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestResponseEnvelope(t *testing.T) {
	h := &Handler{}
	r := httptest.NewRequest("GET", "/schedule", nil)

	t.Run("成功响应", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.successResponse(w, r, "获取排班成功", map[string]int{"count": 3})

		assert.Equal(t, 200, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		assert.Equal(t, "获取排班成功", env.Message)
		assert.NotNil(t, env.Data)
	})

	t.Run("业务失败仍返回 200", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.errorResponse(w, r, "日期格式错误")

		assert.Equal(t, 200, w.Code)

		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.Equal(t, "日期格式错误", env.Message)
		assert.Nil(t, env.Data)
	})

	t.Run("内部错误返回 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.internalServerError(w, r, errors.New("connection refused"))

		assert.Equal(t, 500, w.Code)

		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		// 内部细节不暴露给客户端
		assert.Equal(t, "服务器内部错误", env.Message)
	})
}

func TestBadRequestNonValidationError(t *testing.T) {
	h := &Handler{}
	r := httptest.NewRequest("POST", "/exceptions", nil)
	w := httptest.NewRecorder()

	h.badRequest(w, r, errors.New("用户名已存在"))

	assert.Equal(t, 200, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Success)
	assert.Equal(t, "用户名已存在", env.Message)
}
