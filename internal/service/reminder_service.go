package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/kvstore"
)

// ── 提醒模块业务错误 ──

var (
	ErrInvalidStartTime   = errors.New("开始时间格式应为 HH:MM")
	ErrInvalidLeadMinutes = errors.New("提前提醒分钟数必须在 0-720 之间")
	ErrInvalidTimezone    = errors.New("时区无效")
)

const (
	reminderKeyPrefix = "reminder:settings:"

	defaultPreferredStart = "18:00"
	defaultLeadMinutes    = 15
	defaultReminderTZ     = "Asia/Kolkata"
	maxLeadMinutes        = 720
)

// ReminderService 学习提醒设置业务接口，设置保存在外部键值存储中
type ReminderService interface {
	Get(ctx context.Context, userID string) (*dto.ReminderSettings, error)
	Update(ctx context.Context, userID string, req *dto.UpdateReminderRequest) (*dto.ReminderSettings, error)
}

type reminderService struct {
	store  kvstore.Store
	logger *zap.Logger
}

// NewReminderService 创建 ReminderService 实例
func NewReminderService(store kvstore.Store, logger *zap.Logger) ReminderService {
	return &reminderService{store: store, logger: logger}
}

// DefaultReminderSettings 未设置时的默认值
func DefaultReminderSettings() dto.ReminderSettings {
	return dto.ReminderSettings{
		Enabled:        false,
		PreferredStart: defaultPreferredStart,
		LeadMinutes:    defaultLeadMinutes,
		Timezone:       defaultReminderTZ,
	}
}

func (s *reminderService) Get(ctx context.Context, userID string) (*dto.ReminderSettings, error) {
	settings := DefaultReminderSettings()

	raw, err := s.store.Get(ctx, reminderKeyPrefix+userID)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return &settings, nil
		}
		s.logger.Error("读取提醒设置失败", zap.Error(err))
		return nil, err
	}

	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.logger.Warn("提醒设置数据损坏，使用默认值", zap.String("user_id", userID), zap.Error(err))
		settings = DefaultReminderSettings()
	}
	return &settings, nil
}

func (s *reminderService) Update(ctx context.Context, userID string, req *dto.UpdateReminderRequest) (*dto.ReminderSettings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Enabled != nil {
		settings.Enabled = *req.Enabled
	}
	if req.PreferredStart != nil {
		start := strings.TrimSpace(*req.PreferredStart)
		if _, err := parseClock(start); err != nil {
			return nil, err
		}
		settings.PreferredStart = start
	}
	if req.LeadMinutes != nil {
		if *req.LeadMinutes < 0 || *req.LeadMinutes > maxLeadMinutes {
			return nil, ErrInvalidLeadMinutes
		}
		settings.LeadMinutes = *req.LeadMinutes
	}
	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if _, err := time.LoadLocation(tz); err != nil || tz == "" {
			return nil, ErrInvalidTimezone
		}
		settings.Timezone = tz
	}

	data, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(ctx, reminderKeyPrefix+userID, string(data), 0); err != nil {
		s.logger.Error("保存提醒设置失败", zap.Error(err))
		return nil, err
	}
	return settings, nil
}

// parseClock 解析 HH:MM，返回自零点起的偏移
func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidStartTime
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
