package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"proforma/internal/exporter"
	"proforma/internal/service/calculator"
	paramstore "proforma/internal/service/store"
	"proforma/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	params      *paramstore.MemoryStore
	engine      *calculator.Engine
	adjuster    *calculator.Adjuster
	logs        *store.Store
	exporter    *exporter.Exporter
	downloads   *exportDownloadStore
	downloadTTL time.Duration
	exportDir   string
}

// Options 处理器依赖
type Options struct {
	// Logs 导出记录库，可为 nil（不记录）
	Logs         *store.Store
	TemplatePath string
	DownloadTTL  time.Duration
	// ExportDir 临时导出文件目录，为空时使用系统临时目录
	ExportDir string
}

// NewHandler 创建 V1 API 处理器
func NewHandler(params *paramstore.MemoryStore, opts Options) *Handler {
	ttl := opts.DownloadTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	engine := calculator.NewEngine(params)
	return &Handler{
		params:      params,
		engine:      engine,
		adjuster:    calculator.NewAdjuster(params, engine),
		logs:        opts.Logs,
		exporter:    exporter.NewExporter(opts.TemplatePath),
		downloads:   newExportDownloadStore(),
		downloadTTL: ttl,
		exportDir:   opts.ExportDir,
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 输入参数
	router.GET("/parameters", h.ListParameters)
	router.PATCH("/parameters", h.UpdateParameters)
	router.POST("/parameters/reset", h.ResetParameters)

	// 派生指标
	router.GET("/outputs", h.ListOutputs)
	router.GET("/outputs/dependencies", h.GetDependencies)
	router.GET("/proforma", h.GetProforma)
	router.POST("/goal-seek", h.GoalSeek)

	// 数据导出
	router.GET("/export/csv", h.ExportCSV)
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
	router.GET("/exports", h.ListExports)
}
