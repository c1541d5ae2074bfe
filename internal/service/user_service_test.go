package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/model"
	pkgerrors "github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/errors"
)

func strPtr(s string) *string { return &s }

func newUserFixture(t *testing.T) (UserService, *model.User) {
	t.Helper()
	repos := newTestRepos()
	user := &model.User{Email: "asha@example.com", Name: "Asha", Role: model.RoleStudent}
	_ = repos.users.Create(context.Background(), user)
	return NewUserService(repos.repo, newTestCatalog(t), zap.NewNop()), user
}

func TestUserService_GetMe(t *testing.T) {
	svc, user := newUserFixture(t)

	resp, err := svc.GetMe(context.Background(), user.UserID)
	if err != nil {
		t.Fatalf("GetMe 失败: %v", err)
	}
	if resp.Email != "asha@example.com" || resp.Version != 1 {
		t.Errorf("用户信息错误: %+v", resp)
	}

	if _, err := svc.GetMe(context.Background(), "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestUserService_UpdateMe(t *testing.T) {
	svc, user := newUserFixture(t)
	ctx := context.Background()

	resp, err := svc.UpdateMe(ctx, user.UserID, &dto.UpdateProfileRequest{
		Name:         strPtr("Asha K"),
		TargetExamID: strPtr("mock-exam"),
		Grade:        strPtr("12"),
		Version:      1,
	})
	if err != nil {
		t.Fatalf("UpdateMe 失败: %v", err)
	}
	if resp.Name != "Asha K" || resp.TargetExamID != "mock-exam" || resp.Grade != "12" {
		t.Errorf("更新结果错误: %+v", resp)
	}
	if resp.Version != 2 {
		t.Errorf("期望 version=2，实际 %d", resp.Version)
	}

	// 清空目标考试
	resp, err = svc.UpdateMe(ctx, user.UserID, &dto.UpdateProfileRequest{TargetExamID: strPtr(""), Version: 2})
	if err != nil {
		t.Fatalf("清空目标考试失败: %v", err)
	}
	if resp.TargetExamID != "" {
		t.Error("目标考试应被清空")
	}
}

func TestUserService_UpdateMeErrors(t *testing.T) {
	svc, user := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateMe(ctx, user.UserID, &dto.UpdateProfileRequest{Name: strPtr("X Y"), Version: 7})
	if !errors.Is(err, pkgerrors.ErrOptimisticLock) {
		t.Errorf("期望 ErrOptimisticLock，实际: %v", err)
	}

	_, err = svc.UpdateMe(ctx, user.UserID, &dto.UpdateProfileRequest{TargetExamID: strPtr("nope"), Version: 1})
	if !errors.Is(err, catalog.ErrExamNotFound) {
		t.Errorf("期望 ErrExamNotFound，实际: %v", err)
	}
}
