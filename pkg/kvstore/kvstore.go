// Package kvstore 提供轻量的键值存储抽象。
// 生产环境由 Redis 实现，本地开发或 Redis 不可用时退化为进程内存储。
package kvstore

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound 键不存在或已过期
var ErrNotFound = errors.New("键不存在")

// Store 键值存储接口
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	// Set ttl <= 0 表示永不过期
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type item struct {
	value    string
	expireAt time.Time
}

// sweepInterval 进程内存储清理过期键的最小间隔
const sweepInterval = time.Minute

// Memory 进程内键值存储，并发安全
// 过期键在读取时惰性删除，另外每次写入最多每 sweepInterval 全量清理一次，
// 避免只写不读的键（如已注销的 jti）常驻内存。
type Memory struct {
	mu        sync.RWMutex
	items     map[string]item
	nextSweep time.Time
	now       func() time.Time
}

// NewMemory 创建进程内存储
func NewMemory() *Memory {
	return &Memory{items: make(map[string]item), now: time.Now}
}

func (it item) expired(now time.Time) bool {
	return !it.expireAt.IsZero() && !now.Before(it.expireAt)
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	now := m.now()
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}
	if it.expired(now) {
		m.evictIfExpired(key, now)
		return "", ErrNotFound
	}
	return it.value, nil
}

// evictIfExpired 在写锁下重新确认后删除过期键；
// 释放读锁到取得写锁之间，同一 key 可能已被 Set 重新写入。
func (m *Memory) evictIfExpired(key string, now time.Time) {
	m.mu.Lock()
	if cur, ok := m.items[key]; ok && cur.expired(now) {
		delete(m.items, key)
	}
	m.mu.Unlock()
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	now := m.now()
	it := item{value: value}
	if ttl > 0 {
		it.expireAt = now.Add(ttl)
	}
	m.mu.Lock()
	m.items[key] = it
	if !now.Before(m.nextSweep) {
		m.sweepLocked(now)
	}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Len 当前持有的键数量（含尚未清理的过期键）
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// sweepLocked 删除所有过期键，调用方须持有写锁
func (m *Memory) sweepLocked(now time.Time) {
	for k, it := range m.items {
		if it.expired(now) {
			delete(m.items, k)
		}
	}
	m.nextSweep = now.Add(sweepInterval)
}
