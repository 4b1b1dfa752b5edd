package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"proforma/internal/config"
	"proforma/internal/server"
)

var (
	port       = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode    = flag.Bool("dev", false, "开发模式")
	dataDir    = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	configPath = flag.String("config", "", "配置文件路径 (默认为可执行文件同目录的 config.toml)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Proforma - 碳封存项目财务测算")
	fmt.Println("==========================================")

	// 加载配置
	var (
		cfg  *config.AppConfig
		info config.LoadConfigInfo
		err  error
	)
	if *configPath != "" {
		cfg, info, err = config.LoadConfigFrom(*configPath)
	} else {
		cfg, info, err = config.LoadConfigWithInfo()
	}
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("初始化服务失败: %v", err)
	}
	fmt.Printf("数据目录: %s\n", config.ResolveDataDir(cfg))

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()
	fmt.Printf("API 地址: http://localhost:%d/api\n", cfg.Server.Port)
	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("关闭服务失败: %v", err)
	}
}
