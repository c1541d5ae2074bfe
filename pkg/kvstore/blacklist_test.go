package kvstore

import (
	"context"
	"testing"
	"time"
)

func TestBlacklist(t *testing.T) {
	ctx := context.Background()
	b := NewBlacklist(NewMemory())

	if ok, _ := b.IsBlacklisted(ctx, "jti-1"); ok {
		t.Fatal("新 JTI 不应在黑名单中")
	}
	if err := b.BlacklistToken(ctx, "jti-1", time.Minute); err != nil {
		t.Fatalf("BlacklistToken 失败: %v", err)
	}
	if ok, _ := b.IsBlacklisted(ctx, "jti-1"); !ok {
		t.Error("JTI 应在黑名单中")
	}

	// 已过期的 Token 不写入
	_ = b.BlacklistToken(ctx, "jti-2", 0)
	if ok, _ := b.IsBlacklisted(ctx, "jti-2"); ok {
		t.Error("ttl<=0 时不应写入黑名单")
	}
}

func TestMemoryLimiter(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if ok, _ := l.CheckRateLimit(ctx, "ip", 3, time.Minute); !ok {
			t.Fatalf("第 %d 次请求不应被限流", i+1)
		}
	}
	if ok, _ := l.CheckRateLimit(ctx, "ip", 3, time.Minute); ok {
		t.Error("第 4 次请求应被限流")
	}
	if ok, _ := l.CheckRateLimit(ctx, "other", 3, time.Minute); !ok {
		t.Error("不同 key 应独立计数")
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := l.CheckRateLimit(ctx, "ip", 3, time.Minute); !ok {
		t.Error("窗口过后应恢复")
	}
}

func TestMemoryLimiter_SweepsIdleKeys(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for _, ip := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		_, _ = l.CheckRateLimit(ctx, ip, 10, time.Minute)
	}
	if l.Len() != 3 {
		t.Fatalf("期望跟踪 3 个 key，实际 %d", l.Len())
	}

	now = now.Add(2 * sweepInterval)
	_, _ = l.CheckRateLimit(ctx, "4.4.4.4", 10, time.Minute)

	if l.Len() != 1 {
		t.Errorf("窗口外的 key 应被清理，剩余 %d 个", l.Len())
	}
	if _, ok := l.hits["1.1.1.1"]; ok {
		t.Error("1.1.1.1 已无窗口内请求，不应保留")
	}
}
