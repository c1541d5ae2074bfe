package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/dto"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/service"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/response"
)

// StudyPlanHandler 学习计划 HTTP 处理器
type StudyPlanHandler struct {
	planSvc service.StudyPlanService
}

// NewStudyPlanHandler 创建 StudyPlanHandler
func NewStudyPlanHandler(planSvc service.StudyPlanService) *StudyPlanHandler {
	return &StudyPlanHandler{planSvc: planSvc}
}

// Preview 预览每日安排（不保存）
// POST /api/v1/plans/preview
func (h *StudyPlanHandler) Preview(c *gin.Context) {
	var req dto.GeneratePlanRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.planSvc.Preview(c.Request.Context(), &req)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	response.OK(c, result)
}

// Create 生成并保存学习计划
// POST /api/v1/plans
func (h *StudyPlanHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.GeneratePlanRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.planSvc.Generate(c.Request.Context(), &req, userID)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	response.Created(c, result)
}

// List 我的学习计划列表
// GET /api/v1/plans?page=1&page_size=20
func (h *StudyPlanHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.PlanListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, total, err := h.planSvc.ListMine(c.Request.Context(), userID, &req)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Get 学习计划详情（含完成状态）
// GET /api/v1/plans/:id
func (h *StudyPlanHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.planSvc.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handlePlanError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除学习计划
// DELETE /api/v1/plans/:id
func (h *StudyPlanHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.planSvc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handlePlanError(c, err)
		return
	}

	response.OK(c, nil)
}

// handlePlanError 计划、进度、导出共用的计划类错误映射
func handlePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNoTopics):
		response.BadRequest(c, 14001, "请至少选择一个主题")
	case errors.Is(err, service.ErrInvalidDailyHours):
		response.BadRequest(c, 14002, "每日学习时长超出允许范围")
	case errors.Is(err, service.ErrInvalidDaysPerWeek):
		response.BadRequest(c, 14003, "每周学习天数必须在 1-7 之间")
	case errors.Is(err, service.ErrPlanNotFound):
		response.NotFound(c, 14004, "学习计划不存在")
	case errors.Is(err, service.ErrPlanInvalidTopicHrs):
		response.BadRequest(c, 14005, "主题预计学时无效")
	case errors.Is(err, catalog.ErrExamNotFound):
		response.NotFound(c, 13001, "考试不存在")
	case errors.Is(err, catalog.ErrTopicNotFound):
		response.BadRequest(c, 13002, "所选主题不属于该考试")
	default:
		response.InternalError(c)
	}
}
