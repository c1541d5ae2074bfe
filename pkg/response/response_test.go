package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestOKPage_TotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{40, 20, 2},
		{41, 20, 3},
		{10, 0, 0},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		OKPage(c, []string{}, tt.total, 1, tt.pageSize)

		var body struct {
			Data PageData `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("解析响应失败: %v", err)
		}
		if body.Data.Pagination.TotalPages != tt.want {
			t.Errorf("total=%d size=%d 期望 %d 页，实际 %d", tt.total, tt.pageSize, tt.want, body.Data.Pagination.TotalPages)
		}
	}
}

func TestError_AbortsWithRequestID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "rid-1")

	NotFound(c, 14004, "学习计划不存在")

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际 %d", w.Code)
	}
	if !c.IsAborted() {
		t.Error("错误响应应中止后续处理")
	}
	var resp Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Code != 14004 || resp.RequestID != "rid-1" {
		t.Errorf("响应内容不符合预期: %+v", resp)
	}
}

func TestInternalError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	InternalError(c)

	var resp Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	if w.Code != http.StatusInternalServerError || resp.Code != CodeInternal {
		t.Errorf("期望 500/%d，实际 %d/%d", CodeInternal, w.Code, resp.Code)
	}
}
