package resolve

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command"
	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/config"
	"github.com/lwmacct/251218-go-pkg-ormcfg/pkg/ormcfg"
)

type output struct {
	Path    string        `json:"path,omitempty"`
	Context string        `json:"contextName"`
	Config  ormcfg.Object `json:"config"`
}

func action(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	res, err := ormcfg.Resolve(ctx, command.ResolveOptions(cfg, cmd)...)
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}

	return command.Render(cmd.Root().Writer, cfg.Format, output{
		Path:    res.Path,
		Context: res.ContextName,
		Config:  res.Config,
	})
}
