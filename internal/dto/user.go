package dto

// ── 用户模块 DTO ──

// UpdateProfileRequest 更新个人资料请求
// version 为客户端读取时的版本号，用于乐观锁
type UpdateProfileRequest struct {
	Name         *string `json:"name"           binding:"omitempty,min=2,max=100"`
	TargetExamID *string `json:"target_exam_id" binding:"omitempty,max=64"`
	Grade        *string `json:"grade"          binding:"omitempty,max=32"`
	Version      int     `json:"version"        binding:"required,min=1"`
}
