package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/internal/service"
	"github.com/JKKN-Institutions/horizons-ai-guide-app-sub006/pkg/response"
)

const (
	contentTypeICS  = "text/calendar; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportICS 导出日历文件
// GET /api/v1/plans/:id/export/ics?start=07:30
func (h *ExportHandler) ExportICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportICS(c.Request.Context(), c.Param("id"), userID, c.Query("start"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, filename, contentTypeICS, buf)
}

// ExportXLSX 导出 Excel 表格
// GET /api/v1/plans/:id/export/xlsx
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	writeAttachment(c, filename, contentTypeXLSX, buf)
}

func writeAttachment(c *gin.Context, filename, contentType string, buf *bytes.Buffer) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportEmptyPlan):
		response.BadRequest(c, 16001, "计划中没有可导出的学习日")
	case errors.Is(err, service.ErrInvalidStartTime):
		response.BadRequest(c, 16002, "start 格式应为 HH:MM")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		handlePlanError(c, err)
	}
}
