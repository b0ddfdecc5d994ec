package ormcfg

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-json"
)

// ManifestFile 是项目清单文件名。
const ManifestFile = "package.json"

// SettingsKey 是清单中存放 CLI 设置的 key。
const SettingsKey = "orm"

// Manifest 是项目清单中与配置解析相关的部分。
type Manifest struct {
	// Dir 是清单所在目录，未找到清单时为空。
	Dir string `json:"-"`

	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Type            string            `json:"type"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Settings        map[string]any    `json:"orm"`
}

// IsModule 报告项目是否声明为 ES module。
func (m Manifest) IsModule() bool {
	return m.Type == "module"
}

// ReadManifest 从 dir 开始逐级向上查找并读取清单。
//
// 找到文件但无法解析时返回空清单；到达文件系统根仍未找到时同样返回空清单。
// 父目录经 EvalSymlinks 解析后与当前目录相同即视为到达根。
func ReadManifest(dir string) Manifest {
	current, err := filepath.Abs(dir)
	if err != nil {
		return Manifest{}
	}

	for {
		path := filepath.Join(current, ManifestFile)
		if _, err := os.Stat(path); err == nil {
			m, err := readManifestFile(path)
			if err != nil {
				slog.Debug("Ignoring unreadable manifest", "path", path, "error", err)
				return Manifest{}
			}
			m.Dir = current

			return m
		}

		parent, err := filepath.EvalSymlinks(filepath.Dir(current))
		if err != nil || parent == current {
			return Manifest{}
		}
		current = parent
	}
}

func readManifestFile(path string) (Manifest, error) {
	content, err := os.ReadFile(path) //nolint:gosec // manifest path is derived from the project dir
	if err != nil {
		return Manifest{}, err
	}

	var m Manifest
	if err := json.Unmarshal(content, &m); err != nil {
		return Manifest{}, err
	}

	return m, nil
}

// Settings 是 CLI 层面的解析设置，来自清单的 "orm" 字段与环境变量。
type Settings struct {
	TSConfigPath  string   `json:"tsConfigPath"`
	Verbose       bool     `json:"verbose"`
	UseTSNode     *bool    `json:"useTsNode"`
	AlwaysAllowTS bool     `json:"alwaysAllowTs"`
	Loader        string   `json:"loader"`
	ConfigPaths   []string `json:"configPaths"`
	Runtime       string   `json:"runtime"`
}

// LoaderMode 返回生效的加载模式，未设置时为 [LoaderAuto]。
func (s Settings) LoaderMode() LoaderMode {
	if s.Loader == "" {
		return LoaderAuto
	}

	return ParseLoaderMode(s.Loader)
}

// TSDisabled 报告是否显式关闭了 TypeScript 支持。
func (s Settings) TSDisabled() bool {
	return (s.UseTSNode != nil && !*s.UseTSNode) || s.LoaderMode() == LoaderDisabled
}

// settingsEnv 是覆盖 [Settings] 的环境变量。
type settingsEnv struct {
	TSConfigPath  string `env:"CLI_TS_CONFIG_PATH"`
	AlwaysAllowTS string `env:"CLI_ALWAYS_ALLOW_TS"`
	UseTSNode     string `env:"CLI_USE_TS_NODE"`
	Verbose       string `env:"CLI_VERBOSE"`
	Loader        string `env:"CLI_LOADER"`
	Runtime       string `env:"CLI_RUNTIME"`
}

// ResolveSettings 合并清单设置与环境变量，环境变量优先。
func ResolveSettings(m Manifest, snapshot Env) (Settings, error) {
	var s Settings
	if len(m.Settings) > 0 {
		if err := decodeMap(m.Settings, &s); err != nil {
			return Settings{}, fmt.Errorf("decode %s settings in %s: %w", SettingsKey, ManifestFile, err)
		}
	}

	if snapshot == nil {
		snapshot = Env{}
	}
	var vars settingsEnv
	if err := env.ParseWithOptions(&vars, env.Options{Environment: snapshot, Prefix: EnvPrefix}); err != nil {
		return Settings{}, fmt.Errorf("parse environment: %w", err)
	}

	if vars.TSConfigPath != "" {
		s.TSConfigPath = vars.TSConfigPath
	}
	if vars.Runtime != "" {
		s.Runtime = vars.Runtime
	}
	// 布尔与加载器变量以“是否存在”判断，空字符串属于假值集合
	if _, ok := snapshot.Lookup(EnvCLIAlwaysAllowTS); ok {
		s.AlwaysAllowTS, _ = ParseBool(vars.AlwaysAllowTS)
	}
	if _, ok := snapshot.Lookup(EnvCLIVerbose); ok {
		s.Verbose, _ = ParseBool(vars.Verbose)
	}
	if _, ok := snapshot.Lookup(EnvCLIUseTSNode); ok {
		b, _ := ParseBool(vars.UseTSNode)
		s.UseTSNode = &b
	}
	if _, ok := snapshot.Lookup(EnvCLILoader); ok {
		s.Loader = string(ParseLoaderMode(vars.Loader))
	}

	return s, nil
}
