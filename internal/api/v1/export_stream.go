package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"proforma/internal/exporter"
	"proforma/internal/model"
)

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// ExportStream 导出 Excel（SSE 进度 + 完成后提供一次性下载地址）
// POST /api/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}
	fail := func(logID, message string, err error) {
		h.finishExportLog(logID, 0, 0, err)
		send(exportProgressEvent{
			Type:      "error",
			Message:   message + ": " + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
	}

	snapshot, outputs := h.engine.Calculate()
	logID := h.startExportLog(model.ExportFormatXLSX, snapshot.Version)

	send(exportProgressEvent{
		Type:      "start",
		Message:   "开始导出",
		Data:      map[string]any{"version": snapshot.Version, "exportId": logID},
		Timestamp: time.Now(),
	})

	lastPercent := -1
	progressFn := func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		send(exportProgressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: time.Now(),
		})
	}

	file, err := h.exporter.Export(snapshot, outputs, progressFn)
	if err != nil {
		fail(logID, "导出失败", err)
		return
	}
	defer file.Close()

	dir := h.exportDir
	if dir == "" {
		dir = os.TempDir()
	}
	tempPath := filepath.Join(dir, fmt.Sprintf("proforma_export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := file.SaveAs(tempPath); err != nil {
		_ = os.Remove(tempPath)
		fail(logID, "写入导出文件失败", err)
		return
	}

	var size int64
	if st, err := os.Stat(tempPath); err == nil {
		size = st.Size()
	}
	h.finishExportLog(logID, countRows(exporter.BuildSections(snapshot, outputs)), size, nil)

	token := h.downloads.put(tempPath, h.downloadTTL)
	send(exportProgressEvent{
		Type:    "done",
		Message: "导出完成",
		Data: map[string]any{
			"percent":     100,
			"downloadUrl": "/api/export/download/" + token,
		},
		Timestamp: time.Now(),
	})
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}
	defer os.Remove(item.filePath)

	if _, err := os.Stat(item.filePath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition("xlsx"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)
}
