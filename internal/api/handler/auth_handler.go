package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/service"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, result)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// RefreshToken 刷新 Token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout 用户登出
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	// 请求体可选
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), GetClaims(c), req.RefreshToken); err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, "邮箱或密码错误")
	case errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, 11002, "邮箱已被注册")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		response.Unauthorized(c, 11003, "刷新令牌无效")
	case errors.Is(err, service.ErrTokenRevoked):
		response.Unauthorized(c, 11004, "令牌已注销")
	case errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, 11005, "用户不存在")
	case errors.Is(err, catalog.ErrExamNotFound):
		response.BadRequest(c, 13001, "目标考试不存在")
	default:
		response.InternalError(c)
	}
}
