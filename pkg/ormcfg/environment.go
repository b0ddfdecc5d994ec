package ormcfg

import (
	"fmt"
	"maps"
	"os"

	"github.com/joho/godotenv"

	"github.com/lwmacct/251218-go-pkg-ormcfg/pkg/templexp"
)

// 环境变量名称。
const (
	EnvPrefix = "ORM_"

	EnvCLIConfig            = "ORM_CLI_CONFIG"
	EnvCLITSConfigPath      = "ORM_CLI_TS_CONFIG_PATH"
	EnvCLIAlwaysAllowTS     = "ORM_CLI_ALWAYS_ALLOW_TS"
	EnvCLIUseTSNode         = "ORM_CLI_USE_TS_NODE"
	EnvCLIVerbose           = "ORM_CLI_VERBOSE"
	EnvCLILoader            = "ORM_CLI_LOADER"
	EnvCLIRuntime           = "ORM_CLI_RUNTIME"
	EnvConfigArgName        = "ORM_CONFIG_ARG_NAME"
	EnvDotenvPath           = "ORM_ENV"
	EnvAllowVersionMismatch = "ORM_ALLOW_VERSION_MISMATCH"
)

// Env 是环境变量的只读快照。
//
// 解析流程只读取注入的快照，不访问也不修改进程环境，
// 因此并发调用之间互不影响。
type Env map[string]string

// Environ 返回当前进程环境的快照。
func Environ() Env {
	return Env(templexp.Environ())
}

// Lookup 返回变量值及其是否存在。
func (e Env) Lookup(key string) (string, bool) {
	val, ok := e[key]
	return val, ok
}

// Get 返回变量值，不存在时为空字符串。
func (e Env) Get(key string) string {
	return e[key]
}

// Clone 返回快照的副本。
func (e Env) Clone() Env {
	if e == nil {
		return Env{}
	}

	return maps.Clone(e)
}

// WithDotenv 读取 dotenv 文件并返回合并后的新快照。
//
// 只补齐缺失的变量：快照中已存在的值（包括空字符串）保持不变。
// 文件不存在时原样返回副本。
func (e Env) WithDotenv(path string) (Env, error) {
	out := e.Clone()
	if _, err := os.Stat(path); err != nil {
		return out, nil //nolint:nilerr // 缺失的 .env 不是错误
	}

	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read dotenv %s: %w", path, err)
	}
	for key, val := range vars {
		if _, exists := out[key]; !exists {
			out[key] = val
		}
	}

	return out, nil
}
