package main

import (
	"context"
	"log/slog"
	"os"

	app "github.com/lwmacct/251218-go-pkg-ormcfg/internal/command/resolve"
)

func main() {
	if err := app.Command.Run(context.Background(), os.Args); err != nil {
		slog.Error("配置解析失败", "error", err)
		os.Exit(1)
	}
}
