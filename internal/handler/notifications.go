package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/blueline-dev/patrol-roster/backend/internal/domain"
)

// publishNotification 把通知投递到消息队列，由 notifier worker 消费，
// 通知失败不阻塞主流程，只记录日志
func (h *Handler) publishNotification(msg domain.NotificationMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		slog.Error("通知序列化失败", "type", msg.Type, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("通知投递失败", "type", msg.Type, "error", err)
	}
}

// invalidateScheduleCache 在任何影响某天某班次排班的写操作之后调用，
// 让缓存的解析结果失效
func (h *Handler) invalidateScheduleCache(date time.Time, shiftTypeID int64) {
	key := scheduleCacheKey(date, shiftTypeID)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, key).Err(); err != nil {
		slog.Error("排班缓存失效失败", "key", key, "error", err)
	}
}

// invalidateShiftTypeScheduleCache 在固定排班创建或关闭后调用。
// 固定排班影响该班次匹配星期几的所有日期，单个 key 删不干净，
// 按模式扫描该班次的全部缓存并删除
func (h *Handler) invalidateShiftTypeScheduleCache(shiftTypeID int64) {
	pattern := scheduleCacheKeyPattern(shiftTypeID)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	iter := h.redisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := h.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Error("排班缓存失效失败", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		slog.Error("扫描排班缓存失败", "pattern", pattern, "error", err)
	}
}

func scheduleCacheKey(date time.Time, shiftTypeID int64) string {
	return fmt.Sprintf("schedule:%s:%d", date.Format("2006-01-02"), shiftTypeID)
}

func scheduleCacheKeyPattern(shiftTypeID int64) string {
	return fmt.Sprintf("schedule:*:%d", shiftTypeID)
}
