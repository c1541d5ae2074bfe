package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/catalog"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/service"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/response"
)

// CatalogHandler 考试目录 HTTP 处理器
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler 创建 CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ListExams 考试列表
// GET /api/v1/exams
func (h *CatalogHandler) ListExams(c *gin.Context) {
	response.OK(c, h.catalogSvc.ListExams(c.Request.Context()))
}

// GetExam 考试详情（含主题）
// GET /api/v1/exams/:id
func (h *CatalogHandler) GetExam(c *gin.Context) {
	result, err := h.catalogSvc.GetExam(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrExamNotFound) {
			response.NotFound(c, 13001, "考试不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
