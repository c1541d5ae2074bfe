package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/api/middleware"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/jwt"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// GetClaims 提取 JWTAuth 注入的完整声明，不存在时返回 nil
func GetClaims(c *gin.Context) *jwt.Claims {
	v, exists := c.Get(middleware.ClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// bindJSON 绑定并校验 JSON 请求体，失败时写入 400 / 413 响应
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			return false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return false
	}
	return true
}
