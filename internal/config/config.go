package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Export ExportConfig `toml:"export"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置（仅存放导出记录库与临时导出文件）
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// ExportConfig 导出相关配置
type ExportConfig struct {
	// TemplatePath 可选的 xlsx 模板
	TemplatePath string `toml:"template_path"`
	// DownloadTTL 下载链接有效期，如 "10m"
	DownloadTTL string `toml:"download_ttl"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
	Path          string
}

const defaultDownloadTTL = 10 * time.Minute

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Export: ExportConfig{
			DownloadTTL: defaultDownloadTTL.String(),
		},
	}
}

// DownloadTTLDuration 解析下载有效期，非法或非正值时使用默认值
func (c *AppConfig) DownloadTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.Export.DownloadTTL)
	if err != nil || d <= 0 {
		return defaultDownloadTTL
	}
	return d
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverMap, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return LoadConfigFrom(filepath.Join(exeDir, "config.toml"))
}

// LoadConfigFrom 从指定路径加载配置；文件不存在时使用默认配置。环境变量优先于文件
func LoadConfigFrom(configPath string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: configPath}
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	applyEnv(config)
	return config, info, nil
}

// applyEnv 环境变量覆盖
func applyEnv(config *AppConfig) {
	if v := os.Getenv("PROFORMA_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("PROFORMA_EXPORT_TTL"); v != "" {
		config.Export.DownloadTTL = v
	}
	if v := os.Getenv("PROFORMA_XLSX_TEMPLATE"); v != "" {
		config.Export.TemplatePath = v
	}
}

// ResolveDataDir 数据目录的绝对位置；相对路径以可执行文件目录为基准
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir 确保数据目录及导出子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
