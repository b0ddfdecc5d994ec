package ormcfg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lwmacct/251218-go-pkg-ormcfg/pkg/templexp"
)

//go:generate mockgen -source=loader.go -destination=../../internal/mock/loader_mock.go -package=mock

// Loader 把配置文件导入为原始导出值。
//
// 具体的导入机制（转译、执行脚本等）由实现方负责，本包只决定导入哪个路径。
type Loader interface {
	Import(ctx context.Context, path string) (Export, error)
}

// LoaderFunc 让普通函数实现 [Loader]。
type LoaderFunc func(ctx context.Context, path string) (Export, error)

// Import 调用 f。
func (f LoaderFunc) Import(ctx context.Context, path string) (Export, error) {
	return f(ctx, path)
}

// LoaderMode 选择 TypeScript 配置的加载方式。
type LoaderMode string

const (
	// LoaderAuto 使用首个注册的 TS 加载器，没有时退回扩展名加载器。
	LoaderAuto LoaderMode = "auto"
	// LoaderNative 只使用按扩展名注册的加载器。
	LoaderNative LoaderMode = "native"
	// LoaderDisabled 禁用 TS 加载。
	LoaderDisabled LoaderMode = "off"
)

// ParseLoaderMode 解析加载器选项。
//
// 真值集合映射为 [LoaderAuto]，假值集合（含空字符串）映射为 [LoaderDisabled]，
// 其余字符串原样作为加载器名称。
func ParseLoaderMode(s string) LoaderMode {
	if b, ok := ParseBool(s); ok {
		if b {
			return LoaderAuto
		}
		return LoaderDisabled
	}

	return LoaderMode(strings.TrimSpace(s))
}

var tsExtensions = []string{".ts", ".mts", ".cts"}

// IsTSPath 报告路径是否为 TypeScript 源文件。
func IsTSPath(path string) bool {
	return slices.Contains(tsExtensions, strings.ToLower(filepath.Ext(path)))
}

type namedLoader struct {
	name   string
	loader Loader
}

// Loaders 按扩展名与名称组织加载器。
type Loaders struct {
	byExt map[string]Loader
	ts    []namedLoader
}

// NewLoaders 创建空的加载器集合。
func NewLoaders() *Loaders {
	return &Loaders{byExt: make(map[string]Loader)}
}

// DefaultLoaders 返回内置 JSON / YAML 数据加载器。
//
// expand 为 true 时对字符串值执行 ${...} 展开，变量来自 env。
func DefaultLoaders(env Env, expand bool) *Loaders {
	data := &DataLoader{Env: env, Expand: expand}

	return NewLoaders().
		Register(".json", data).
		Register(".yaml", data).
		Register(".yml", data)
}

// Register 按扩展名（如 ".json"）注册加载器，已存在时覆盖。
func (l *Loaders) Register(ext string, loader Loader) *Loaders {
	l.byExt[strings.ToLower(ext)] = loader
	return l
}

// RegisterTS 注册具名 TypeScript 加载器，注册顺序决定 auto 模式的选择。
func (l *Loaders) RegisterTS(name string, loader Loader) *Loaders {
	l.ts = append(l.ts, namedLoader{name: name, loader: loader})
	return l
}

// Pick 按扩展名与加载模式选择加载器。
func (l *Loaders) Pick(path string, mode LoaderMode) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsTSPath(path) {
		if loader, ok := l.byExt[ext]; ok {
			return loader, nil
		}

		return nil, errLoaderUnavailable(path, fmt.Sprintf("no loader registered for %q", ext))
	}

	switch mode {
	case LoaderDisabled:
		return nil, errLoaderUnavailable(path, "TypeScript loading is disabled")
	case LoaderNative:
		if loader, ok := l.byExt[ext]; ok {
			return loader, nil
		}
	case "", LoaderAuto:
		if len(l.ts) > 0 {
			return l.ts[0].loader, nil
		}
		if loader, ok := l.byExt[ext]; ok {
			return loader, nil
		}
	default:
		for _, named := range l.ts {
			if named.name == string(mode) {
				return named.loader, nil
			}
		}
	}

	return nil, errLoaderUnavailable(path, fmt.Sprintf("no TypeScript loader for mode %q", mode))
}

// SupportsTS 报告当前模式下是否有可用的 TypeScript 加载器。
func (l *Loaders) SupportsTS(mode LoaderMode) bool {
	_, err := l.Pick("probe.ts", mode)
	return err == nil
}

// DataLoader 导入 JSON / YAML 数据文件。
//
// 根为映射时得到对象导出，根为映射数组时得到列表导出。
type DataLoader struct {
	Env    Env
	Expand bool
}

// Import 读取并解析数据文件。
func (d *DataLoader) Import(_ context.Context, path string) (Export, error) {
	content, err := os.ReadFile(path) //nolint:gosec // path comes from candidate discovery
	if err != nil {
		return Export{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	raw, err := parseConfigBytes(path, content)
	if err != nil {
		return Export{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if d.Expand {
		env := d.Env
		if env == nil {
			env = Env{}
		}
		if raw, err = templexp.ExpandValues(raw, env); err != nil {
			return Export{}, fmt.Errorf("expand template in %s: %w", path, err)
		}
	}

	export, ok := exportFromValue(raw)
	if !ok {
		return Export{}, fmt.Errorf("parse config file %s: %w", path, errBadRoot)
	}

	return export, nil
}

var errBadRoot = errors.New("config root must be an object or an array of objects")

// FindConfig 按顺序检查路径是否存在，导入首个存在的文件。
//
// 只检查存在性，不会导入不存在的路径；全部不存在时 found 为 false。
// 相对路径基于 baseDir 解析，返回的 path 为绝对路径。
func FindConfig(ctx context.Context, baseDir string, paths []string, loaders *Loaders, mode LoaderMode) (path string, export Export, found bool, err error) {
	for _, candidate := range paths {
		abs := absolutePath(baseDir, candidate)
		if _, statErr := os.Stat(abs); statErr != nil {
			continue
		}

		loader, err := loaders.Pick(abs, mode)
		if err != nil {
			return abs, Export{}, true, err
		}

		export, err := loader.Import(ctx, abs)
		if err != nil {
			return abs, Export{}, true, fmt.Errorf("import config %s: %w", abs, err)
		}
		slog.Debug("Loaded config from file", "path", abs, "kind", export.Kind())

		return abs, export, true, nil
	}

	return "", Export{}, false, nil
}

func absolutePath(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(baseDir, path)
}
