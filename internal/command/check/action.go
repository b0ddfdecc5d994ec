package check

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command"
	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/config"
	"github.com/lwmacct/251218-go-pkg-ormcfg/pkg/ormcfg"
)

type report struct {
	Core     string `json:"core"`
	Manifest string `json:"manifest,omitempty"`
}

func action(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}
	env, err := command.Snapshot(cfg)
	if err != nil {
		return err
	}

	manifest := ormcfg.ReadManifest(cfg.Dir)
	guard := &ormcfg.VersionGuard{Manifest: manifest}
	core, err := guard.Check(env)
	if err != nil {
		return err
	}

	return command.Render(cmd.Root().Writer, cfg.Format, report{Core: core, Manifest: manifest.Dir})
}
