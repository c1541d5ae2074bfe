package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/jwt"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/response"
)

// ClaimsKey 上下文中保存完整 JWT 声明的键（登出时使用）
const ClaimsKey = "jwt_claims"

// TokenChecker Token 黑名单查询
type TokenChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth JWT 认证中间件
// 只接受 Access Token；blacklist 为 nil 或查询出错时跳过黑名单检查
func JWTAuth(jwtMgr *jwt.Manager, blacklist TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Unauthorized(c, 10002, "缺少或无效的认证头")
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, 10002, "Token 无效或已过期")
			return
		}
		if claims.TokenType != jwt.TokenTypeAccess {
			response.Unauthorized(c, 10002, "Token 类型无效")
			return
		}

		if blacklist != nil {
			if revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && revoked {
				response.Unauthorized(c, 10002, "Token 已注销")
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set(ClaimsKey, claims)

		c.Next()
	}
}

// bearerToken 解析 "Bearer <token>"，scheme 不区分大小写
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
