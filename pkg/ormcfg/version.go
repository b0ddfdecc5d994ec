package ormcfg

import (
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// 配套包命名。
const (
	PackageNamespace = "@orm/"
	CorePackage      = "@orm/core"
	ModulesDir       = "node_modules"
)

// DefaultVersionExceptions 是不要求与核心版本一致的配套包。
var DefaultVersionExceptions = []string{
	"@orm/nestjs",
	"@orm/sql-highlighter",
	"@orm/eslint-plugin",
}

// VersionGuard 校验已安装的配套包与核心包版本完全一致。
type VersionGuard struct {
	// Manifest 提供依赖列表，Manifest.Dir 决定 node_modules 位置。
	Manifest Manifest
	// CoreVersion 为空时从 node_modules/@orm/core/package.json 读取。
	CoreVersion string
	// Exceptions 为 nil 时使用 [DefaultVersionExceptions]。
	Exceptions []string
}

// Check 返回核心版本；任一配套包版本不同则返回 [ErrVersionMismatch]。
//
// ORM_ALLOW_VERSION_MISMATCH 为真值时跳过检查。
// 无法读取版本的配套包会被忽略；核心版本未知时不做比较。
func (g *VersionGuard) Check(snapshot Env) (string, error) {
	core := g.CoreVersion
	if core == "" {
		core = g.installedVersion(CorePackage)
	}

	if raw, ok := snapshot.Lookup(EnvAllowVersionMismatch); ok {
		if allow, _ := ParseBool(raw); allow {
			slog.Debug("Skipping version check", "env", EnvAllowVersionMismatch)
			return core, nil
		}
	}
	if core == "" {
		slog.Debug("Core version unknown, skipping version check", "package", CorePackage)
		return core, nil
	}

	for _, pkg := range g.companions() {
		version := g.installedVersion(pkg)
		if version == "" {
			continue
		}
		if version != core {
			return core, errVersionMismatch(pkg, version, core)
		}
	}

	return core, nil
}

// companions 返回需要校验的配套包（升序）。
func (g *VersionGuard) companions() []string {
	exceptions := g.Exceptions
	if exceptions == nil {
		exceptions = DefaultVersionExceptions
	}

	deps := maps.Clone(g.Manifest.Dependencies)
	if deps == nil {
		deps = map[string]string{}
	}
	maps.Copy(deps, g.Manifest.DevDependencies)

	var out []string
	for _, name := range slices.Sorted(maps.Keys(deps)) {
		if !strings.HasPrefix(name, PackageNamespace) || name == CorePackage || slices.Contains(exceptions, name) {
			continue
		}
		out = append(out, name)
	}

	return out
}

func (g *VersionGuard) installedVersion(pkg string) string {
	if g.Manifest.Dir == "" {
		return ""
	}

	path := filepath.Join(g.Manifest.Dir, ModulesDir, filepath.FromSlash(pkg), ManifestFile)
	m, err := readManifestFile(path)
	if err != nil {
		slog.Debug("Package version unavailable", "package", pkg, "error", err)
		return ""
	}

	return m.Version
}

func namespaceOf(pkg string) string {
	if scope, _, ok := strings.Cut(pkg, "/"); ok {
		return scope + "/"
	}

	return pkg
}
