// Package resolve 提供解析生效配置的命令。
package resolve

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command"
)

// Command 解析命令
var Command = &cli.Command{
	Name:   "resolve",
	Usage:  "解析并输出生效配置",
	Flags:  command.Flags(),
	Before: command.Before,
	Action: action,
}
