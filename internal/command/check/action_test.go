package check_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command/check"
	"github.com/lwmacct/251218-go-pkg-ormcfg/pkg/ormcfg"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCheckCommand_Mismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "package.json"), `{"dependencies": {"@orm/core": "6.4.0", "@orm/mysql": "6.3.0"}}`)
	writeFile(t, filepath.Join(dir, "node_modules", "@orm", "core", "package.json"), `{"version": "6.4.0"}`)
	writeFile(t, filepath.Join(dir, "node_modules", "@orm", "mysql", "package.json"), `{"version": "6.3.0"}`)

	app := &cli.Command{Name: "ormcfg", Commands: []*cli.Command{check.Command}}
	err := app.Run(context.Background(), []string{"ormcfg", "check-version", "--dir", dir, "--no-dotenv"})
	require.ErrorIs(t, err, ormcfg.ErrVersionMismatch)
}
