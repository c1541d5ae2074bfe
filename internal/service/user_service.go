package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/model"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/repository"
	pkgerrors "github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/errors"
)

// UserService 个人资料业务接口
type UserService interface {
	GetMe(ctx context.Context, userID string) (*dto.UserResponse, error)
	// UpdateMe 版本号与存储不一致时返回 ErrOptimisticLock
	UpdateMe(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type userService struct {
	repo    *repository.Repository
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, cat *catalog.Catalog, logger *zap.Logger) UserService {
	return &userService{repo: repo, catalog: cat, logger: logger}
}

func (s *userService) GetMe(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateMe(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Version != user.Version {
		return nil, pkgerrors.ErrOptimisticLock
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.TargetExamID != nil {
		examID := strings.TrimSpace(*req.TargetExamID)
		if examID == "" {
			user.TargetExamID = nil
		} else {
			if _, err := s.catalog.GetExam(examID); err != nil {
				return nil, err
			}
			user.TargetExamID = &examID
		}
	}
	if req.Grade != nil {
		user.Grade = optionalString(*req.Grade)
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, err
		}
		s.logger.Error("更新用户失败", zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) getUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func toUserResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:      u.UserID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Version: u.Version,
	}
	if u.TargetExamID != nil {
		resp.TargetExamID = *u.TargetExamID
	}
	if u.Grade != nil {
		resp.Grade = *u.Grade
	}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
