package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/config"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/model"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/repository"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/jwt"
)

var (
	ErrInvalidCredentials  = errors.New("邮箱或密码错误")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailExists         = errors.New("邮箱已被注册")
	ErrInvalidRefreshToken = errors.New("刷新令牌无效")
	ErrTokenRevoked        = errors.New("令牌已注销")
)

// TokenBlacklist Token 黑名单
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Refresh 轮换 Token 对，旧 refresh token 加入黑名单
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	// Logout 注销当前 access token，可选一并注销 refresh token
	Logout(ctx context.Context, access *jwt.Claims, refreshToken string) error
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	catalog   *catalog.Catalog
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	cat *catalog.Catalog,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		catalog:   cat,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := normalizeEmail(req.Email)

	// 1. 邮箱唯一性
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 目标考试必须在目录中
	targetExam, err := s.resolveTargetExam(req.TargetExamID)
	if err != nil {
		return nil, err
	}

	// 3. 密码哈希
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost())
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		Role:         model.RoleStudent,
		TargetExamID: targetExam,
		Grade:        optionalString(req.Grade),
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("新用户注册", zap.String("user_id", user.UserID))
	return s.issueTokens(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 生成 Token 对
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrInvalidRefreshToken
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Warn("查询 Token 黑名单失败", zap.Error(err))
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	if err := s.blacklist.BlacklistToken(ctx, claims.ID, claims.Remaining()); err != nil {
		s.logger.Warn("旧 RefreshToken 加入黑名单失败", zap.Error(err))
	}

	return s.issueTokens(user)
}

func (s *authService) Logout(ctx context.Context, access *jwt.Claims, refreshToken string) error {
	if access != nil {
		if err := s.blacklist.BlacklistToken(ctx, access.ID, access.Remaining()); err != nil {
			s.logger.Warn("AccessToken 加入黑名单失败", zap.Error(err))
		}
	}

	if refreshToken == "" {
		return nil
	}
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return ErrInvalidRefreshToken
	}
	if access != nil && claims.UserID != access.UserID {
		return ErrInvalidRefreshToken
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, claims.Remaining()); err != nil {
		s.logger.Warn("RefreshToken 加入黑名单失败", zap.Error(err))
	}
	return nil
}

// ── 辅助函数 ──

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         toUserResponse(user),
	}, nil
}

func (s *authService) resolveTargetExam(examID string) (*string, error) {
	examID = strings.TrimSpace(examID)
	if examID == "" {
		return nil, nil
	}
	if _, err := s.catalog.GetExam(examID); err != nil {
		return nil, err
	}
	return &examID, nil
}

func (s *authService) bcryptCost() int {
	cost := s.cfg.Auth.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
