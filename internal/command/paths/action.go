package paths

import (
	"context"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command"
	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/config"
	"github.com/lwmacct/251218-go-pkg-ormcfg/pkg/ormcfg"
)

type candidate struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
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

	settings, err := ormcfg.ResolveSettings(ormcfg.ReadManifest(cfg.Dir), env)
	if err != nil {
		return err
	}
	loaders := ormcfg.DefaultLoaders(env, true)

	paths := ormcfg.ConfigPaths(ormcfg.PathInput{
		Settings:    settings,
		Env:         env,
		BaseDir:     cfg.Dir,
		CLIPath:     cmd.String(command.ConfigFlag),
		TSSupported: loaders.SupportsTS(settings.LoaderMode()),
	})

	out := make([]candidate, 0, len(paths))
	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cfg.Dir, p)
		}
		_, statErr := os.Stat(abs)
		out = append(out, candidate{Path: p, Exists: statErr == nil})
	}

	return command.Render(cmd.Root().Writer, cfg.Format, out)
}
