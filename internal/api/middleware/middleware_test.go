package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/config"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/jwt"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/kvstore"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWT() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
}

func protectedEngine(mgr *jwt.Manager, blacklist TokenChecker) *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuth(mgr, blacklist), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	mgr := newTestJWT()
	blacklist := kvstore.NewBlacklist(kvstore.NewMemory())
	r := protectedEngine(mgr, blacklist)

	access, _ := mgr.GenerateAccessToken("user-1", "student")
	refresh, _ := mgr.GenerateRefreshToken("user-1", "student")

	if w := doGet(r, "/me", access); w.Code != http.StatusOK || w.Body.String() != "user-1" {
		t.Errorf("有效 Token 应通过，实际 %d %s", w.Code, w.Body.String())
	}
	if w := doGet(r, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("缺少认证头应返回 401，实际 %d", w.Code)
	}
	if w := doGet(r, "/me", refresh); w.Code != http.StatusUnauthorized {
		t.Errorf("refresh token 不能访问接口，实际 %d", w.Code)
	}

	claims, _ := mgr.ParseToken(access)
	_ = blacklist.BlacklistToken(context.Background(), claims.ID, time.Minute)
	if w := doGet(r, "/me", access); w.Code != http.StatusUnauthorized {
		t.Errorf("已注销 Token 应返回 401，实际 %d", w.Code)
	}
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.GET("/login", RateLimit(kvstore.NewMemoryLimiter(), 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		if w := doGet(r, "/login", ""); w.Code != http.StatusOK {
			t.Fatalf("第 %d 次请求应通过，实际 %d", i+1, w.Code)
		}
	}
	if w := doGet(r, "/login", ""); w.Code != http.StatusTooManyRequests {
		t.Errorf("超出限制应返回 429，实际 %d", w.Code)
	}
}

func TestRateLimit_NilLimiter(t *testing.T) {
	r := gin.New()
	r.GET("/login", RateLimit(nil, 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 3; i++ {
		if w := doGet(r, "/login", ""); w.Code != http.StatusOK {
			t.Fatalf("limiter 为 nil 时应放行，实际 %d", w.Code)
		}
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc-123" || w.Body.String() != "abc-123" {
		t.Errorf("应沿用请求头中的 ID，实际 %s", w.Header().Get("X-Request-ID"))
	}

	w = doGet(r, "/", "")
	if len(w.Header().Get("X-Request-ID")) != 36 {
		t.Errorf("缺省时应生成 UUID，实际 %q", w.Header().Get("X-Request-ID"))
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "bad id\nforged=1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") == "bad id\nforged=1" {
		t.Error("含非法字符的 ID 应被替换")
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("预检请求应返回 204，实际 %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Error("允许的来源应回写 Access-Control-Allow-Origin")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("未允许的来源不应回写 Access-Control-Allow-Origin")
	}
	if w.Code != http.StatusOK {
		t.Errorf("普通请求应放行，实际 %d", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/api/v1/plans", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doGet(r, "/api/v1/plans", "")
	if w.Header().Get("Cache-Control") != "no-store" {
		t.Error("API 响应应禁止缓存")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("缺少 X-Frame-Options")
	}
	if w := doGet(r, "/health", ""); w.Header().Get("Cache-Control") != "" {
		t.Error("健康检查不应设置 Cache-Control")
	}
}
