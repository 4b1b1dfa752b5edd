package model

import "time"

// 导出格式
const (
	ExportFormatCSV  = "csv"
	ExportFormatXLSX = "xlsx"
)

// 导出状态
const (
	ExportStatusProcessing = "processing"
	ExportStatusSuccess    = "success"
	ExportStatusFailed     = "failed"
)

// ExportLog 导出记录
type ExportLog struct {
	ID           string     `json:"id"`
	Format       string     `json:"format"`
	ParamVersion uint64     `json:"paramVersion"`
	RowCount     int        `json:"rowCount"`
	ByteSize     int64      `json:"byteSize"`
	Status       string     `json:"status"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}
