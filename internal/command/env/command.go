// Package env 提供输出环境变量覆盖项的命令。
package env

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command"
)

// Command 环境变量命令
var Command = &cli.Command{
	Name:   "env",
	Usage:  "输出由 ORM_* 环境变量解码的选项",
	Flags:  command.Flags(),
	Before: command.Before,
	Action: action,
}
