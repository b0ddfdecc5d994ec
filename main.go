package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command"
	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command/check"
	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command/env"
	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command/paths"
	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command/resolve"
)

func main() {
	app := &cli.Command{
		Name:    "ormcfg",
		Usage:   "数据库映射配置解析工具",
		Version: command.Version,
		Commands: []*cli.Command{
			resolve.Command,
			paths.Command,
			env.Command,
			check.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
