package dto

// ── 提醒设置 DTO ──

// ReminderSettings 学习提醒设置（亦为存储格式）
type ReminderSettings struct {
	Enabled        bool   `json:"enabled"`
	PreferredStart string `json:"preferred_start"` // HH:MM
	LeadMinutes    int    `json:"lead_minutes"`
	Timezone       string `json:"timezone"`
}

// UpdateReminderRequest 更新提醒设置，未提供的字段保持不变
type UpdateReminderRequest struct {
	Enabled        *bool   `json:"enabled"`
	PreferredStart *string `json:"preferred_start" binding:"omitempty,len=5"`
	LeadMinutes    *int    `json:"lead_minutes"    binding:"omitempty,min=0,max=720"`
	Timezone       *string `json:"timezone"        binding:"omitempty,max=64"`
}
