package ormcfg_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lwmacct/251218-go-pkg-ormcfg/internal/mock"
	"github.com/lwmacct/251218-go-pkg-ormcfg/pkg/ormcfg"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindConfig_FirstExistingWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "orm.config.js"), "module.exports = {}")
	writeFile(t, filepath.Join(dir, "dist", "orm.config.js"), "module.exports = {}")

	loader := mock.NewMockLoader(ctrl)
	want := filepath.Join(dir, "dist", "orm.config.js")
	// 只允许导入首个存在的文件
	loader.EXPECT().Import(gomock.Any(), want).Return(ormcfg.ObjectExport(ormcfg.Object{"dbName": "x"}), nil)

	loaders := ormcfg.NewLoaders().Register(".js", loader)
	paths := []string{"./missing.js", "./dist/orm.config.js", "./orm.config.js"}

	path, export, found, err := ormcfg.FindConfig(context.Background(), dir, paths, loaders, ormcfg.LoaderAuto)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, path)
	assert.Equal(t, ormcfg.ExportObject, export.Kind())
}

func TestFindConfig_NoneExist(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// 不存在的路径不得被导入
	loader := mock.NewMockLoader(ctrl)
	loader.EXPECT().Import(gomock.Any(), gomock.Any()).Times(0)

	loaders := ormcfg.NewLoaders().Register(".js", loader)
	_, _, found, err := ormcfg.FindConfig(context.Background(), t.TempDir(), []string{"./a.js", "./b.js"}, loaders, ormcfg.LoaderAuto)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindConfig_ImportError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "orm.config.js"), "syntax error")

	boom := errors.New("unexpected token")
	loader := mock.NewMockLoader(ctrl)
	loader.EXPECT().Import(gomock.Any(), gomock.Any()).Return(ormcfg.Export{}, boom)

	loaders := ormcfg.NewLoaders().Register(".js", loader)
	_, _, found, err := ormcfg.FindConfig(context.Background(), dir, []string{"./orm.config.js"}, loaders, ormcfg.LoaderAuto)
	assert.True(t, found)
	require.ErrorIs(t, err, boom)
}

func TestFindConfig_LoaderUnavailable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "orm.config.ts"), "export default {}")

	_, _, _, err := ormcfg.FindConfig(context.Background(), dir, []string{"./orm.config.ts"}, ormcfg.NewLoaders(), ormcfg.LoaderAuto)
	require.ErrorIs(t, err, ormcfg.ErrLoaderUnavailable)
}

func TestLoaders_Pick(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	js := mock.NewMockLoader(ctrl)
	native := mock.NewMockLoader(ctrl)
	tsx := mock.NewMockLoader(ctrl)
	jiti := mock.NewMockLoader(ctrl)

	loaders := ormcfg.NewLoaders().
		Register(".js", js).
		Register(".ts", native).
		RegisterTS("tsx", tsx).
		RegisterTS("jiti", jiti)

	tests := []struct {
		name    string
		path    string
		mode    ormcfg.LoaderMode
		want    ormcfg.Loader
		wantErr bool
	}{
		{name: "non-ts ignores mode", path: "a.js", mode: ormcfg.LoaderDisabled, want: js},
		{name: "auto picks first ts loader", path: "a.ts", mode: ormcfg.LoaderAuto, want: tsx},
		{name: "empty mode is auto", path: "a.mts", mode: "", want: tsx},
		{name: "named loader", path: "a.ts", mode: "jiti", want: jiti},
		{name: "native uses extension loader", path: "a.ts", mode: ormcfg.LoaderNative, want: native},
		{name: "disabled rejects ts", path: "a.ts", mode: ormcfg.LoaderDisabled, wantErr: true},
		{name: "unknown named loader", path: "a.ts", mode: "swc", wantErr: true},
		{name: "unknown extension", path: "a.toml", mode: ormcfg.LoaderAuto, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loaders.Pick(tt.path, tt.mode)
			if tt.wantErr {
				require.ErrorIs(t, err, ormcfg.ErrLoaderUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}

	assert.True(t, loaders.SupportsTS(ormcfg.LoaderAuto))
	assert.False(t, loaders.SupportsTS(ormcfg.LoaderDisabled))
	assert.False(t, ormcfg.DefaultLoaders(nil, false).SupportsTS(ormcfg.LoaderAuto))
}

func TestParseLoaderMode(t *testing.T) {
	tests := []struct {
		in   string
		want ormcfg.LoaderMode
	}{
		{in: "true", want: ormcfg.LoaderAuto},
		{in: "1", want: ormcfg.LoaderAuto},
		{in: "false", want: ormcfg.LoaderDisabled},
		{in: "", want: ormcfg.LoaderDisabled},
		{in: "native", want: ormcfg.LoaderNative},
		{in: "tsx", want: "tsx"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ormcfg.ParseLoaderMode(tt.in))
		})
	}
}

func TestDataLoader_Import(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	env := ormcfg.Env{"DB_NAME": "from-env"}

	t.Run("yaml object with expansion", func(t *testing.T) {
		path := filepath.Join(dir, "orm.config.yaml")
		writeFile(t, path, "dbName: ${DB_NAME}\nport: ${DB_PORT:-5432}\nmigrations:\n  path: ./migrations\n")

		export, err := (&ormcfg.DataLoader{Env: env, Expand: true}).Import(ctx, path)
		require.NoError(t, err)
		obj, ok := export.Object()
		require.True(t, ok)
		assert.Equal(t, "from-env", obj["dbName"])
		assert.Equal(t, "5432", obj["port"])
		assert.Equal(t, map[string]any{"path": "./migrations"}, obj["migrations"])
	})

	t.Run("expansion disabled", func(t *testing.T) {
		path := filepath.Join(dir, "raw.yml")
		writeFile(t, path, "dbName: ${DB_NAME}\n")

		export, err := (&ormcfg.DataLoader{Env: env}).Import(ctx, path)
		require.NoError(t, err)
		obj, _ := export.Object()
		assert.Equal(t, "${DB_NAME}", obj["dbName"])
	})

	t.Run("json array becomes list", func(t *testing.T) {
		path := filepath.Join(dir, "orm.config.json")
		writeFile(t, path, `[{"contextName":"a"},{"contextName":"b"}]`)

		export, err := (&ormcfg.DataLoader{}).Import(ctx, path)
		require.NoError(t, err)
		items, ok := export.List()
		require.True(t, ok)
		assert.Len(t, items, 2)
	})

	t.Run("scalar root rejected", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		writeFile(t, path, `42`)

		_, err := (&ormcfg.DataLoader{}).Import(ctx, path)
		require.Error(t, err)
	})

	t.Run("required variable missing", func(t *testing.T) {
		path := filepath.Join(dir, "required.yaml")
		writeFile(t, path, "password: ${DB_PASSWORD:?password required}\n")

		_, err := (&ormcfg.DataLoader{Env: env, Expand: true}).Import(ctx, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password required")
	})
}
