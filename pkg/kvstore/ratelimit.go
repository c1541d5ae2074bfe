package kvstore

import (
	"context"
	"sync"
	"time"
)

type hitLog struct {
	times  []time.Time
	window time.Duration
}

// MemoryLimiter 进程内滑动窗口限流器，Redis 不可用时使用
// 窗口已过的 key 会被定期清理，内存占用只与活跃客户端数量相关。
type MemoryLimiter struct {
	mu        sync.Mutex
	hits      map[string]*hitLog
	nextSweep time.Time
	now       func() time.Time
}

// NewMemoryLimiter 创建进程内限流器
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{hits: make(map[string]*hitLog), now: time.Now}
}

// CheckRateLimit 窗口内请求数未超过 limit 时返回 true
func (l *MemoryLimiter) CheckRateLimit(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if !now.Before(l.nextSweep) {
		l.sweepLocked(now)
	}

	log, ok := l.hits[key]
	if !ok {
		log = &hitLog{}
		l.hits[key] = log
	}
	log.window = window

	cutoff := now.Add(-window)
	kept := log.times[:0]
	for _, t := range log.times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	log.times = append(kept, now)

	return len(log.times) <= limit, nil
}

// Len 当前跟踪的 key 数量
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}

// sweepLocked 删除最后一次请求已滑出窗口的 key，调用方须持有锁
func (l *MemoryLimiter) sweepLocked(now time.Time) {
	for k, log := range l.hits {
		if n := len(log.times); n == 0 || !log.times[n-1].After(now.Add(-log.window)) {
			delete(l.hits, k)
		}
	}
	l.nextSweep = now.Add(sweepInterval)
}
