package ormcfg

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// Result 是一次解析得到的最终配置。
type Result struct {
	// Path 是被加载的配置文件绝对路径，仅由环境变量构成时为空。
	Path string
	// ContextName 是请求的 context 名称。
	ContextName string
	// Paths 是按顺序检查过的候选路径。
	Paths []string
	// Settings 是本次解析使用的 CLI 设置。
	Settings Settings
	// Config 是合并后的配置。
	Config Object
}

// Decode 把合并后的配置解码到结构体（使用 json tag）。
func (r *Result) Decode(out any) error {
	if err := decodeMap(r.Config, out); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return nil
}

// Resolve 解析生效配置。
//
// 合并顺序（后者覆盖前者）：
//  1. {contextName}
//  2. {entityGenerator: {esmImport: true}}（项目清单声明 "type": "module" 时）
//  3. 配置文件中选出的对象
//  4. 调用方选项（[WithOptions]）
//  5. 环境变量选项（ORM_*）
//
// 没有任何配置文件时，只要环境变量提供了选项就返回 1、4、5 的合并结果，
// 否则返回列出全部候选路径的 [ErrNotFound]。
//
// 示例：
//
//	res, err := ormcfg.Resolve(ctx, ormcfg.WithContextName("tenant"))
//	if err != nil {
//	    return err
//	}
//	var cfg AppConfig
//	err = res.Decode(&cfg)
func Resolve(ctx context.Context, opts ...Option) (*Result, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	snapshot := o.env
	if !o.NoDotenv {
		dotenv := snapshot.Get(EnvDotenvPath)
		if dotenv == "" {
			dotenv = filepath.Join(o.BaseDir, ".env")
		}
		if snapshot, err = snapshot.WithDotenv(absolutePath(o.BaseDir, dotenv)); err != nil {
			return nil, err
		}
	}

	manifest := ReadManifest(o.BaseDir)
	settings, err := ResolveSettings(manifest, snapshot)
	if err != nil {
		return nil, err
	}

	envOpts, err := DecodeEnv(snapshot, o.Drivers)
	if err != nil {
		return nil, err
	}

	loaders := o.Loaders
	if loaders == nil {
		loaders = DefaultLoaders(snapshot, !o.NoTemplateExpansion)
	}
	mode := settings.LoaderMode()

	cliPath := o.ConfigPath
	if cliPath == "" {
		cliPath = ConfigArg(o.Args, ConfigArgName(snapshot))
	}
	paths := ConfigPaths(PathInput{
		Settings:           settings,
		Env:                snapshot,
		BaseDir:            o.BaseDir,
		Name:               o.ConfigName,
		CLIPath:            cliPath,
		CompiledExtensions: o.CompiledExtensions,
		TSSupported:        loaders.SupportsTS(mode),
	})
	slog.Debug("Config candidates", "paths", paths, "loader", mode)

	path, export, found, err := FindConfig(ctx, o.BaseDir, paths, loaders, mode)
	if err != nil {
		return nil, err
	}

	base := Object{ContextNameKey: o.ContextName}
	res := &Result{
		Path:        path,
		ContextName: o.ContextName,
		Paths:       paths,
		Settings:    settings,
	}

	if !found {
		if len(envOpts) == 0 {
			return nil, errNotFound(paths)
		}
		slog.Debug("No config file found, using environment", "keys", len(envOpts))
		res.Config = Merge(base, o.Options, envOpts)

		return res, nil
	}

	selected, err := Select(ctx, export, o.ContextName, path)
	if err != nil {
		return nil, err
	}
	// contextName: null 不覆盖请求的名称
	if _, ok := selected.ContextName(); !ok {
		selected = Merge(selected)
		delete(selected, ContextNameKey)
	}

	var esm Object
	if manifest.IsModule() {
		esm = Object{"entityGenerator": map[string]any{"esmImport": true}}
	}
	res.Config = Merge(base, esm, selected, o.Options, envOpts)

	level := slog.LevelDebug
	if settings.Verbose {
		level = slog.LevelInfo
	}
	slog.Log(ctx, level, "Resolved config", "path", path, "context", o.ContextName)

	return res, nil
}

// MustResolve 与 [Resolve] 相同，但失败时 panic。
func MustResolve(ctx context.Context, opts ...Option) *Result {
	res, err := Resolve(ctx, opts...)
	if err != nil {
		panic("ormcfg: failed to resolve config: " + err.Error())
	}

	return res
}
