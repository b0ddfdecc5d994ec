package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/config"
)

func newCommand(action cli.ActionFunc) *cli.Command {
	d := config.DefaultConfig()

	return &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: d.Dir},
			&cli.StringFlag{Name: "context", Value: d.Context},
			&cli.StringFlag{Name: "format", Value: d.Format},
			&cli.BoolFlag{Name: "verbose", Value: d.Verbose},
			&cli.BoolFlag{Name: "no-dotenv", Value: d.NoDotenv},
		},
		Action: action,
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    config.Config
		wantErr bool
	}{
		{
			name: "defaults",
			want: config.DefaultConfig(),
		},
		{
			name: "explicit flags override",
			args: []string{"--dir", "/srv/app", "--context", "tenant", "--format", "YAML", "--no-dotenv", "--verbose"},
			want: config.Config{Dir: "/srv/app", Context: "tenant", Format: config.FormatYAML, Verbose: true, NoDotenv: true},
		},
		{
			name:    "unsupported format",
			args:    []string{"--format", "toml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *config.Config
			var loadErr error
			cmd := newCommand(func(_ context.Context, c *cli.Command) error {
				got, loadErr = config.Load(c)
				return nil
			})

			require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, tt.args...)))
			if tt.wantErr {
				require.Error(t, loadErr)
				return
			}
			require.NoError(t, loadErr)
			assert.Equal(t, tt.want, *got)
		})
	}
}
