// Package paths 提供列出候选配置路径的命令。
package paths

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command"
)

// Command 候选路径命令
var Command = &cli.Command{
	Name:   "paths",
	Usage:  "按查找顺序列出候选配置路径",
	Flags:  command.Flags(),
	Before: command.Before,
	Action: action,
}
