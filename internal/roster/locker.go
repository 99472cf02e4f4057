package roster

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker 用于串行化同一 (警员, 假期类型) 上的余额读改写，
// 丢更新是正确性问题，不是可以接受的竞态
type Locker interface {
	// Acquire 阻塞直到拿到 key 对应的锁，返回释放函数
	Acquire(key string) (func(), error)
}

// RedisLocker 基于 SET NX 实现跨实例的锁
type RedisLocker struct {
	client      *redis.Client
	expiration  time.Duration
	acquireWait time.Duration
}

func NewRedisLocker(client *redis.Client, expiration time.Duration, acquireWait time.Duration) *RedisLocker {
	return &RedisLocker{
		client:      client,
		expiration:  expiration,
		acquireWait: acquireWait,
	}
}

func (l *RedisLocker) Acquire(key string) (func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.acquireWait)
	defer cancel()

	for {
		ok, err := l.client.SetNX(ctx, key, 1, l.expiration).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				l.client.Del(context.Background(), key)
			}
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// localLocker 是进程内的按 key 互斥锁，单实例部署和测试时使用
type localLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocalLocker() Locker {
	return &localLocker{
		locks: make(map[string]*sync.Mutex),
	}
}

func (l *localLocker) Acquire(key string) (func(), error) {
	l.mu.Lock()
	m, exists := l.locks[key]
	if !exists {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
