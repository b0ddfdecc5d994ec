// Package config 提供 ormcfg 命令行自身的配置。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. CLI flags - 仅当用户显式设置时覆盖
//
// 数据库映射配置本身由 pkg/ormcfg 解析，不在此处。
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
)

// 输出格式。
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config 命令行配置。
type Config struct {
	Dir      string `json:"dir"       desc:"项目目录，查找配置文件、package.json 与 .env 的起点"`
	Context  string `json:"context"   desc:"要解析的 context 名称"`
	Format   string `json:"format"    desc:"输出格式 (json / yaml)"`
	Verbose  bool   `json:"verbose"   desc:"输出调试日志"`
	NoDotenv bool   `json:"no-dotenv" desc:"不读取 .env 文件"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Dir:     ".",
		Context: "default",
		Format:  FormatJSON,
	}
}

// Validate 校验配置取值。
func (c *Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want %s or %s)", c.Format, FormatJSON, FormatYAML)
	}
}

// Load 以默认值为基础，叠加用户显式设置的 CLI flags。
//
// flag 名称即 json tag，例如 no-dotenv → --no-dotenv。
func Load(cmd *cli.Command) (*Config, error) {
	values, err := toMap(DefaultConfig())
	if err != nil {
		return nil, err
	}

	typ := reflect.TypeFor[Config]()
	for i := range typ.NumField() {
		field := typ.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" || !cmd.IsSet(name) {
			continue
		}

		switch field.Type.Kind() {
		case reflect.String:
			values[name] = cmd.String(name)
		case reflect.Bool:
			values[name] = cmd.Bool(name)
		default:
			// 不支持的类型，忽略
		}
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &cfg, TagName: "json"})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Format = strings.ToLower(cfg.Format)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func toMap(cfg Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal default config: %w", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshal default config: %w", err)
	}

	return out, nil
}
