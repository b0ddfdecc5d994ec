// Package command 提供 ormcfg 子命令共享的 flags、前置钩子与输出。
package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/config"
	"github.com/lwmacct/251218-go-pkg-ormcfg/pkg/ormcfg"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// Version 由构建时 -ldflags "-X" 注入。
var Version = "dev"

// ConfigFlag 是显式配置路径的 flag 名称，可通过 ORM_CONFIG_ARG_NAME 修改。
//
// 名称在启动时从进程环境读取，.env 中的 ORM_CONFIG_ARG_NAME 对 flag 名称无效。
var ConfigFlag = ormcfg.ConfigArgName(ormcfg.Environ())

// Flags 返回子命令共享的 flags，每次调用都创建新实例。
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Value:   Defaults.Dir,
			Usage:   "项目目录",
		},
		&cli.StringFlag{
			Name:  "context",
			Value: Defaults.Context,
			Usage: "要解析的 context 名称",
		},
		&cli.StringFlag{
			Name:  ConfigFlag,
			Usage: "显式指定配置文件路径，跳过候选路径查找 (flag 名称仅取自进程环境的 ORM_CONFIG_ARG_NAME，.env 中的设置无效)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   Defaults.Format,
			Usage:   "输出格式 (json / yaml)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Value: Defaults.Verbose,
			Usage: "输出调试日志",
		},
		&cli.BoolFlag{
			Name:  "no-dotenv",
			Value: Defaults.NoDotenv,
			Usage: "不读取 .env 文件",
		},
	}
}

// Before 在子命令执行前调整日志级别并校验 @orm/* 包版本。
func Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return ctx, err
	}

	env, err := Snapshot(cfg)
	if err != nil {
		return ctx, err
	}
	if verbose, _ := ormcfg.ParseBool(env.Get(ormcfg.EnvCLIVerbose)); cfg.Verbose || verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	guard := &ormcfg.VersionGuard{Manifest: ormcfg.ReadManifest(cfg.Dir)}
	version, err := guard.Check(env)
	if err != nil {
		return ctx, err
	}
	slog.Debug("Version check passed", "core", version)

	return ctx, nil
}

// Snapshot 返回进程环境快照，并按需补齐 .env 中的变量。
func Snapshot(cfg *config.Config) (ormcfg.Env, error) {
	env := ormcfg.Environ()
	if cfg.NoDotenv {
		return env, nil
	}

	path := env.Get(ormcfg.EnvDotenvPath)
	if path == "" {
		path = ".env"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Dir, path)
	}

	return env.WithDotenv(path)
}

// ResolveOptions 把命令行配置转换为解析选项。
func ResolveOptions(cfg *config.Config, cmd *cli.Command) []ormcfg.Option {
	opts := []ormcfg.Option{
		ormcfg.WithBaseDir(cfg.Dir),
		ormcfg.WithContextName(cfg.Context),
		ormcfg.WithConfigPath(cmd.String(ConfigFlag)),
	}
	if cfg.NoDotenv {
		opts = append(opts, ormcfg.WithoutDotenv())
	}

	return opts
}

// Render 按格式输出 v；YAML 输出沿用 json tag 作为 key。
func Render(w io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	if format != config.FormatYAML {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("convert output: %w", err)
	}
	enc := yamlv3.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return enc.Close()
}
