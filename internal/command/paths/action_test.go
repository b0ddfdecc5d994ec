package paths_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/command/paths"
)

func TestPathsCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dist"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orm.config.yml"), []byte("dbName: app\n"), 0o644))

	var buf bytes.Buffer
	app := &cli.Command{Name: "ormcfg", Writer: &buf, Commands: []*cli.Command{paths.Command}}
	require.NoError(t, app.Run(context.Background(), []string{"ormcfg", "paths", "--dir", dir, "--format", "yaml", "--no-dotenv"}))

	assert.Equal(t, `- exists: false
  path: ./dist/orm.config.js
- exists: false
  path: ./orm.config.js
- exists: false
  path: ./dist/orm.config.json
- exists: false
  path: ./orm.config.json
- exists: false
  path: ./dist/orm.config.yaml
- exists: false
  path: ./orm.config.yaml
- exists: false
  path: ./dist/orm.config.yml
- exists: true
  path: ./orm.config.yml
`, buf.String())
}
