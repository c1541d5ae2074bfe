package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/service"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/response"
)

// ProgressHandler 学习进度 HTTP 处理器
type ProgressHandler struct {
	progressSvc service.ProgressService
}

// NewProgressHandler 创建 ProgressHandler
func NewProgressHandler(progressSvc service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc}
}

// Toggle 标记某天某主题完成 / 未完成
// PUT /api/v1/plans/:id/progress
func (h *ProgressHandler) Toggle(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ToggleProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.progressSvc.Toggle(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		h.handleProgressError(c, err)
		return
	}

	response.OK(c, result)
}

// Summary 进度汇总
// GET /api/v1/plans/:id/progress
func (h *ProgressHandler) Summary(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.progressSvc.Summary(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleProgressError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *ProgressHandler) handleProgressError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProgressEntryNotFound) {
		response.NotFound(c, 15001, "计划中不存在该天的该主题")
		return
	}
	handlePlanError(c, err)
}
