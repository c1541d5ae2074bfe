package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/kvstore"
)

func intPtr(i int) *int { return &i }

func TestReminderService_Defaults(t *testing.T) {
	svc := NewReminderService(kvstore.NewMemory(), zap.NewNop())

	got, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if *got != DefaultReminderSettings() {
		t.Errorf("未设置时应返回默认值，实际 %+v", got)
	}
	if got.PreferredStart != "18:00" || got.LeadMinutes != 15 || got.Timezone != "Asia/Kolkata" || got.Enabled {
		t.Errorf("默认值错误: %+v", got)
	}
}

func TestReminderService_Update(t *testing.T) {
	store := kvstore.NewMemory()
	svc := NewReminderService(store, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Update(ctx, "user-1", &dto.UpdateReminderRequest{
		Enabled:        boolPtr(true),
		PreferredStart: strPtr("06:30"),
	})
	if err != nil {
		t.Fatalf("Update 失败: %v", err)
	}

	got, _ := svc.Get(ctx, "user-1")
	if !got.Enabled || got.PreferredStart != "06:30" || got.LeadMinutes != 15 {
		t.Errorf("部分更新应保留其余字段，实际 %+v", got)
	}

	raw, err := store.Get(ctx, "reminder:settings:user-1")
	if err != nil || raw == "" {
		t.Errorf("设置应以 JSON 写入键值存储: %v", err)
	}

	// 其他用户互不影响
	other, _ := svc.Get(ctx, "user-2")
	if other.Enabled {
		t.Error("其他用户应为默认设置")
	}
}

func TestReminderService_UpdateErrors(t *testing.T) {
	svc := NewReminderService(kvstore.NewMemory(), zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name string
		req  *dto.UpdateReminderRequest
		want error
	}{
		{"时间格式错误", &dto.UpdateReminderRequest{PreferredStart: strPtr("25:00")}, ErrInvalidStartTime},
		{"提前分钟越界", &dto.UpdateReminderRequest{LeadMinutes: intPtr(721)}, ErrInvalidLeadMinutes},
		{"负数提前分钟", &dto.UpdateReminderRequest{LeadMinutes: intPtr(-1)}, ErrInvalidLeadMinutes},
		{"时区无效", &dto.UpdateReminderRequest{Timezone: strPtr("Mars/Olympus")}, ErrInvalidTimezone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Update(ctx, "user-1", tt.req); !errors.Is(err, tt.want) {
				t.Errorf("期望 %v，实际: %v", tt.want, err)
			}
		})
	}
}

func TestReminderService_CorruptData(t *testing.T) {
	store := kvstore.NewMemory()
	_ = store.Set(context.Background(), "reminder:settings:user-1", "{not json", 0)
	svc := NewReminderService(store, zap.NewNop())

	got, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("损坏数据不应报错: %v", err)
	}
	if *got != DefaultReminderSettings() {
		t.Errorf("损坏数据应回退默认值，实际 %+v", got)
	}
}
