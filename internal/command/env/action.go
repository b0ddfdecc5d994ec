package env

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command"
	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/config"
	"github.com/lwmacct/251218-go-pkg-ormcfg/pkg/ormcfg"
)

func action(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}
	snapshot, err := command.Snapshot(cfg)
	if err != nil {
		return err
	}

	opts, err := ormcfg.DecodeEnv(snapshot, nil)
	if err != nil {
		return err
	}

	return command.Render(cmd.Root().Writer, cfg.Format, opts)
}
