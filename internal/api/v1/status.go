package v1

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"proforma/internal/model"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Version        uint64   `json:"version"`        // 参数版本，每次编辑递增
	ModifiedCount  int      `json:"modifiedCount"`  // 被编辑过的参数数
	ModifiedKeys   []string `json:"modifiedKeys"`   // 被编辑过的参数键
	ParameterCount int      `json:"parameterCount"` // 参数总数
	OutputCount    int      `json:"outputCount"`    // 派生指标数
	ExportCount    int      `json:"exportCount"`    // 导出次数
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	exportCount := 0
	if h.logs != nil {
		n, err := h.logs.CountExportLogs()
		if err != nil {
			log.Printf("统计导出记录失败: %v", err)
		} else {
			exportCount = n
		}
	}

	c.JSON(http.StatusOK, StatusResponse{
		Version:        h.params.Version(),
		ModifiedCount:  h.params.ModifiedCount(),
		ModifiedKeys:   h.params.ModifiedKeys(),
		ParameterCount: len(model.DefaultParameterSet().Values),
		OutputCount:    len(model.OutputKeys()),
		ExportCount:    exportCount,
	})
}
