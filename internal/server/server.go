package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"proforma/internal/api/v1"
	"proforma/internal/config"
	paramstore "proforma/internal/service/store"
	"proforma/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	http   *http.Server
	params *paramstore.MemoryStore
	store  *store.Store
	v1     *v1.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	// 导出记录库
	sqliteStore, err := store.Open(filepath.Join(dataDir, "proforma.db"))
	if err != nil {
		return nil, fmt.Errorf("初始化数据库失败: %w", err)
	}

	// 参数仅保存在内存中，进程退出即丢弃
	params := paramstore.NewMemoryStore()

	v1Handler := v1.NewHandler(params, v1.Options{
		Logs:         sqliteStore,
		TemplatePath: cfg.Export.TemplatePath,
		DownloadTTL:  cfg.DownloadTTLDuration(),
		ExportDir:    filepath.Join(dataDir, "exports"),
	})

	s := &Server{
		router: gin.Default(),
		params: params,
		store:  sqliteStore,
		v1:     v1Handler,
	}
	s.setupRoutes()
	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: s.router,
	}

	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		s.v1.RegisterRoutes(api)
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "接口不存在"})
	})
}

// Handler 返回路由（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 在配置端口上启动服务器，Shutdown 后返回 nil
func (s *Server) Run() error {
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 停止接收请求并关闭数据库
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.store.Close(); err != nil {
		log.Printf("关闭数据库失败: %v", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
