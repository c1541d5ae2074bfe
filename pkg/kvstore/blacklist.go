package kvstore

import (
	"context"
	"errors"
	"time"
)

const blacklistPrefix = "token:blacklist:"

// Blacklist 基于 Store 的 JWT 黑名单
type Blacklist struct {
	store Store
}

// NewBlacklist 创建 Token 黑名单
func NewBlacklist(store Store) *Blacklist {
	return &Blacklist{store: store}
}

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (b *Blacklist) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return b.store.Set(ctx, blacklistPrefix+jti, "1", ttl)
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (b *Blacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	_, err := b.store.Get(ctx, blacklistPrefix+jti)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
