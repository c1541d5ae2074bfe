package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/service"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/response"
)

// ReminderHandler 学习提醒设置 HTTP 处理器
type ReminderHandler struct {
	reminderSvc service.ReminderService
}

// NewReminderHandler 创建 ReminderHandler
func NewReminderHandler(reminderSvc service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderSvc: reminderSvc}
}

// Get 获取提醒设置
// GET /api/v1/reminders
func (h *ReminderHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.reminderSvc.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleReminderError(c, err)
		return
	}

	response.OK(c, result)
}

// Update 部分更新提醒设置
// PUT /api/v1/reminders
func (h *ReminderHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateReminderRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.reminderSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleReminderError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *ReminderHandler) handleReminderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidStartTime):
		response.BadRequest(c, 17001, "开始时间格式应为 HH:MM")
	case errors.Is(err, service.ErrInvalidLeadMinutes):
		response.BadRequest(c, 17002, "提前提醒分钟数必须在 0-720 之间")
	case errors.Is(err, service.ErrInvalidTimezone):
		response.BadRequest(c, 17003, "时区无效")
	default:
		response.InternalError(c)
	}
}
