package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/service"
	pkgerrors "github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/errors"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/response"
)

// UserHandler 个人资料 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetCurrentUser 获取当前用户
// GET /api/v1/users/me
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.userSvc.GetMe(c.Request.Context(), userID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateCurrentUser 更新当前用户资料
// PUT /api/v1/users/me
func (h *UserHandler) UpdateCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.userSvc.UpdateMe(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 12002, "资料已被修改，请刷新后重试")
	case errors.Is(err, catalog.ErrExamNotFound):
		response.BadRequest(c, 13001, "目标考试不存在")
	default:
		response.InternalError(c)
	}
}
