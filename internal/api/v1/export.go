package v1

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"proforma/internal/exporter"
	"proforma/internal/model"
)

// ExportCSV 导出当前快照为 CSV
// GET /api/export/csv
func (h *Handler) ExportCSV(c *gin.Context) {
	snapshot, outputs := h.engine.Calculate()
	logID := h.startExportLog(model.ExportFormatCSV, snapshot.Version)

	sections := exporter.BuildSections(snapshot, outputs)
	var buf bytes.Buffer
	if err := exporter.WriteCSV(&buf, sections); err != nil {
		h.finishExportLog(logID, 0, 0, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败: " + err.Error()})
		return
	}
	h.finishExportLog(logID, countRows(sections), int64(buf.Len()), nil)

	c.Header("Content-Disposition", buildExportContentDisposition("csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ListExports 导出记录
// GET /api/exports?limit=50
func (h *Handler) ListExports(c *gin.Context) {
	if h.logs == nil {
		c.JSON(http.StatusOK, gin.H{"items": []*model.ExportLog{}})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit 必须为正整数"})
			return
		}
		limit = n
	}

	items, err := h.logs.ListExportLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []*model.ExportLog{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// startExportLog 记录失败不影响导出
func (h *Handler) startExportLog(format string, version uint64) string {
	if h.logs == nil {
		return ""
	}
	id, err := h.logs.CreateExportLog(format, version)
	if err != nil {
		log.Printf("创建导出记录失败: %v", err)
		return ""
	}
	return id
}

func (h *Handler) finishExportLog(id string, rows int, size int64, exportErr error) {
	if h.logs == nil || id == "" {
		return
	}
	status, msg := model.ExportStatusSuccess, ""
	if exportErr != nil {
		status, msg = model.ExportStatusFailed, exportErr.Error()
	}
	if err := h.logs.CompleteExportLog(id, rows, size, status, msg); err != nil {
		log.Printf("更新导出记录失败: %v", err)
	}
}

func countRows(sections []exporter.Section) int {
	n := 0
	for _, s := range sections {
		n += len(s.Rows)
	}
	return n
}

func buildExportContentDisposition(ext string) string {
	name := fmt.Sprintf("proforma_%s.%s", time.Now().Format("20060102_150405"), ext)
	return fmt.Sprintf("attachment; filename=%q", name)
}
