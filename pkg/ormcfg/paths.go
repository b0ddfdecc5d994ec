package ormcfg

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigName 是默认配置文件基础名，对应 orm.config.<ext>。
const DefaultConfigName = "orm"

// DefaultCompiledExtensions 是无需 TypeScript 加载器即可加载的候选扩展名，按优先级排列。
var DefaultCompiledExtensions = []string{".js", ".json", ".yaml", ".yml"}

// buildDirs 是编译产物目录的探测顺序，均不存在时退回 "src"。
var buildDirs = []string{"dist", "build"}

// PathInput 是候选路径计算的输入。
type PathInput struct {
	Settings Settings
	Env      Env
	// BaseDir 用于探测 dist / build 目录。
	BaseDir string
	// Name 是配置基础名，空时为 [DefaultConfigName]。
	Name string
	// CLIPath 是命令行参数显式给出的路径，非空时直接返回。
	CLIPath string
	// CompiledExtensions 空时为 [DefaultCompiledExtensions]。
	CompiledExtensions []string
	// TSSupported 表示检测到了可用的 TypeScript 加载器。
	TSSupported bool
}

// ConfigPaths 返回去重后的候选配置路径，越具体越靠前。
//
// 顺序：
//  1. 命令行参数路径（存在时只返回它）
//  2. 环境变量 ORM_CLI_CONFIG
//  3. 清单中的 configPaths
//  4. ./src/<name>.config.ts、./<name>.config.ts（未显式关闭 TS，或强制允许）
//  5. ./<buildDir>/<name>.config<ext>、./<name>.config<ext>
//
// 最后过滤：TS 路径只在检测到 TS 加载器或强制允许时保留。
// 强制允许：alwaysAllowTs，或 ORM_CLI_CONFIG 以 .ts 结尾，或运行时为 bun。
func ConfigPaths(in PathInput) []string {
	if in.CLIPath != "" {
		return []string{in.CLIPath}
	}

	name := in.Name
	if name == "" {
		name = DefaultConfigName
	}
	exts := in.CompiledExtensions
	if len(exts) == 0 {
		exts = DefaultCompiledExtensions
	}

	envPath := in.Env.Get(EnvCLIConfig)
	forceTS := forceAllowTS(in.Settings, envPath)

	var paths []string
	if envPath != "" {
		paths = append(paths, envPath)
	}
	paths = append(paths, in.Settings.ConfigPaths...)

	if !in.Settings.TSDisabled() || forceTS {
		paths = append(paths,
			"./src/"+name+".config.ts",
			"./"+name+".config.ts",
		)
	}

	buildDir := detectBuildDir(in.BaseDir)
	for _, ext := range exts {
		paths = append(paths,
			"./"+buildDir+"/"+name+".config"+ext,
			"./"+name+".config"+ext,
		)
	}

	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}

		if IsTSPath(p) && !in.TSSupported && !forceTS {
			continue
		}
		out = append(out, p)
	}

	return out
}

func forceAllowTS(s Settings, envPath string) bool {
	return s.AlwaysAllowTS ||
		strings.HasSuffix(strings.ToLower(envPath), ".ts") ||
		strings.EqualFold(s.Runtime, "bun")
}

func detectBuildDir(baseDir string) string {
	for _, dir := range buildDirs {
		if info, err := os.Stat(filepath.Join(baseDir, dir)); err == nil && info.IsDir() {
			return dir
		}
	}

	return "src"
}

// ConfigArgName 返回命令行配置路径参数名，可通过 ORM_CONFIG_ARG_NAME 修改。
func ConfigArgName(snapshot Env) string {
	if name := snapshot.Get(EnvConfigArgName); name != "" {
		return name
	}

	return "config"
}

// ConfigArg 从命令行参数中取出 --<name>=path 或 --<name> path。
func ConfigArg(args []string, name string) string {
	flag := "--" + name
	for i, arg := range args {
		if value, ok := strings.CutPrefix(arg, flag+"="); ok {
			return value
		}
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
	}

	return ""
}
