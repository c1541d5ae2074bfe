package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email        string `json:"email"          binding:"required,email"`
	Password     string `json:"password"       binding:"required,min=8,max=64"`
	Name         string `json:"name"           binding:"required,min=2,max=100"`
	TargetExamID string `json:"target_exam_id" binding:"omitempty,max=64"`
	Grade        string `json:"grade"          binding:"omitempty,max=32"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest 登出请求，refresh_token 可选，一并注销
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}
