// Package check 提供 @orm/* 包版本一致性检查命令。
package check

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command"
)

// Command 版本检查命令
var Command = &cli.Command{
	Name:   "check-version",
	Usage:  "检查已安装的 @orm/* 包与核心包版本是否一致",
	Flags:  command.Flags(),
	Action: action,
}
