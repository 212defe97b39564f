package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"ceanalyzer/internal/calculator"
	"ceanalyzer/internal/model"
)

// AppConfig 应用配置
type AppConfig struct {
	Server      ServerConfig       `toml:"server"`
	Data        DataConfig         `toml:"data"`
	Sensitivity SensitivityConfig  `toml:"sensitivity"`
	Utilities   UtilitiesConfig    `toml:"utilities"`
	Model       map[string]float64 `toml:"model"` // 可选：覆盖 8 个基准参数
}

// ServerConfig 报告服务配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据目录配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// SensitivityConfig 敏感性分析扰动系数配置
type SensitivityConfig struct {
	LowerMultiplier float64 `toml:"lower_multiplier"`
	UpperMultiplier float64 `toml:"upper_multiplier"`
}

// UtilitiesConfig 健康效用常量配置
type UtilitiesConfig struct {
	NoMACE float64 `toml:"no_mace"`
	MACE   float64 `toml:"mace"`
	Dead   float64 `toml:"dead"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20352,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Sensitivity: SensitivityConfig{
			LowerMultiplier: 0.8,
			UpperMultiplier: 1.2,
		},
		Utilities: UtilitiesConfig{
			NoMACE: 0.85,
			MACE:   0.70,
			Dead:   0,
		},
	}
}

// Bounds 配置对应的扰动系数
func (c *AppConfig) Bounds() calculator.SensitivityBounds {
	return calculator.SensitivityBounds{
		Lower: c.Sensitivity.LowerMultiplier,
		Upper: c.Sensitivity.UpperMultiplier,
	}
}

// ModelUtilities 配置对应的效用常量
func (c *AppConfig) ModelUtilities() model.Utilities {
	return model.Utilities{
		NoMACE: c.Utilities.NoMACE,
		MACE:   c.Utilities.MACE,
		Dead:   c.Utilities.Dead,
	}
}

// BuildParameters 以基准参数为底，应用 [model] 段覆盖值
func (c *AppConfig) BuildParameters() (model.ParameterSet, error) {
	params := model.DefaultParameters()
	for name, value := range c.Model {
		key := model.ParameterKey(name)
		if _, ok := model.Meta(key); !ok {
			return nil, fmt.Errorf("配置了未知参数: %s", name)
		}
		params[key] = value
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Validate 校验配置取值
func (c *AppConfig) Validate() error {
	if err := c.Bounds().Validate(); err != nil {
		return err
	}
	if _, err := c.BuildParameters(); err != nil {
		return err
	}
	return nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// parseConfig 解析 config.toml 内容（默认值打底）
func parseConfig(data []byte) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{PortSpecified: isPortSpecifiedInToml(data)}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			return DefaultConfig(), info, nil
		}
		return nil, info, err
	}

	config, info, err := parseConfig(data)
	if err != nil {
		return nil, info, err
	}

	// 环境变量覆盖导出目录（用于 E2E / 本地运行）
	if v := os.Getenv("CEA_EXPORT_DIR"); v != "" {
		config.Data.DataDir = v
	}

	return config, info, nil
}

// LoadConfig 从 config.toml 加载配置
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// EnsureDataDir 确保数据目录及导出子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// GetDataPath 获取数据文件路径
func GetDataPath(config *AppConfig, subdir, filename string) string {
	exeDir, _ := GetExeDir()
	if exeDir == "" {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir, subdir, filename)
}
