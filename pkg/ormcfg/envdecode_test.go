package ormcfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251218-go-pkg-ormcfg/pkg/ormcfg"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		in     string
		want   bool
		wantOK bool
	}{
		{in: "true", want: true, wantOK: true},
		{in: "T", want: true, wantOK: true},
		{in: "1", want: true, wantOK: true},
		{in: "YES", want: true, wantOK: true},
		{in: "y", want: true, wantOK: true},
		{in: " True ", want: true, wantOK: true},
		{in: "false", want: false, wantOK: true},
		{in: "F", want: false, wantOK: true},
		{in: "0", want: false, wantOK: true},
		{in: "No", want: false, wantOK: true},
		{in: "n", want: false, wantOK: true},
		{in: "", want: false, wantOK: true},
		{in: "maybe", want: false, wantOK: false},
		{in: "2", want: false, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ormcfg.ParseBool(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestDecodeEnv_Coercion(t *testing.T) {
	tests := []struct {
		name string
		env  ormcfg.Env
		key  string
		want any
	}{
		{name: "string identity", env: ormcfg.Env{"ORM_DB_NAME": "app"}, key: "dbName", want: "app"},
		{name: "batch size is integer", env: ormcfg.Env{"ORM_BATCH_SIZE": "42"}, key: "batchSize", want: 42},
		{name: "port is integer", env: ormcfg.Env{"ORM_PORT": " 5432 "}, key: "port", want: 5432},
		{name: "truthy bool", env: ormcfg.Env{"ORM_STRICT": "YES"}, key: "strict", want: true},
		{name: "falsy bool", env: ormcfg.Env{"ORM_DEBUG": "No"}, key: "debug", want: false},
		{name: "empty bool is false", env: ormcfg.Env{"ORM_VALIDATE": ""}, key: "validate", want: false},
		{name: "unknown bool is false", env: ormcfg.Env{"ORM_COLORS": "sometimes"}, key: "colors", want: false},
		{name: "array is split and trimmed", env: ormcfg.Env{"ORM_ENTITIES": " dist/a.js , dist/b.js"}, key: "entities", want: []string{"dist/a.js", "dist/b.js"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ormcfg.DecodeEnv(tt.env, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts[tt.key])
		})
	}
}

func TestDecodeEnv_EmptyValuesAreUnset(t *testing.T) {
	tests := []struct {
		name string
		env  ormcfg.Env
		key  string
	}{
		{name: "empty string", env: ormcfg.Env{"ORM_HOST": ""}, key: "host"},
		{name: "empty port", env: ormcfg.Env{"ORM_PORT": ""}, key: "port"},
		{name: "blank batch size", env: ormcfg.Env{"ORM_BATCH_SIZE": "  "}, key: "batchSize"},
		{name: "empty array", env: ormcfg.Env{"ORM_ENTITIES": ""}, key: "entities"},
		{name: "empty driver", env: ormcfg.Env{"ORM_TYPE": ""}, key: "driver"},
		{name: "empty sub-namespace value", env: ormcfg.Env{"ORM_MIGRATIONS_PATH": ""}, key: "migrations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ormcfg.DecodeEnv(tt.env, nil)
			require.NoError(t, err)
			assert.NotContains(t, opts, tt.key)
		})
	}
}

func TestDecodeEnv_BoolSetsAreTotal(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "t", "1", "yes", "Y"} {
		opts, err := ormcfg.DecodeEnv(ormcfg.Env{"ORM_ENSURE_INDEXES": s}, nil)
		require.NoError(t, err)
		assert.Equal(t, true, opts["ensureIndexes"], s)
	}
	for _, s := range []string{"false", "FALSE", "f", "0", "no", "N", ""} {
		opts, err := ormcfg.DecodeEnv(ormcfg.Env{"ORM_ENSURE_INDEXES": s}, nil)
		require.NoError(t, err)
		assert.Equal(t, false, opts["ensureIndexes"], s)
	}
}

func TestDecodeEnv_SubNamespaces(t *testing.T) {
	opts, err := ormcfg.DecodeEnv(ormcfg.Env{
		"ORM_MIGRATIONS_PATH":          "./migrations",
		"ORM_MIGRATIONS_TRANSACTIONAL": "false",
		"ORM_SEEDER_DEFAULT_SEEDER":    "DatabaseSeeder",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, ormcfg.Object{"path": "./migrations", "transactional": false}, opts["migrations"])
	assert.Equal(t, ormcfg.Object{"defaultSeeder": "DatabaseSeeder"}, opts["seeder"])
	assert.NotContains(t, opts, "discovery", "empty sub-namespace must be pruned")
	assert.NotContains(t, opts, "schemaGenerator", "empty sub-namespace must be pruned")
}

func TestDecodeEnv_Empty(t *testing.T) {
	opts, err := ormcfg.DecodeEnv(ormcfg.Env{"UNRELATED": "1", "ORM_UNKNOWN_OPTION": "x"}, nil)
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestDecodeEnv_IgnoresProcessEnv(t *testing.T) {
	t.Setenv("ORM_HOST", "from-process")

	opts, err := ormcfg.DecodeEnv(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestDecodeEnv_Driver(t *testing.T) {
	opts, err := ormcfg.DecodeEnv(ormcfg.Env{"ORM_TYPE": "postgresql"}, nil)
	require.NoError(t, err)

	driver, ok := opts["driver"].(ormcfg.Driver)
	require.True(t, ok, "driver should decode to ormcfg.Driver, got %T", opts["driver"])
	assert.Equal(t, "PostgreSqlDriver", driver.Implementation)
	assert.Equal(t, "@orm/postgresql", driver.Module)
}

func TestDecodeEnv_UnknownDriver(t *testing.T) {
	_, err := ormcfg.DecodeEnv(ormcfg.Env{"ORM_TYPE": "oracle"}, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ormcfg.ErrLookupFailure)
	assert.Contains(t, err.Error(), "oracle")
}

func TestDecodeEnv_PluginDriver(t *testing.T) {
	drivers := ormcfg.DefaultDrivers()
	require.NoError(t, drivers.Register(ormcfg.Driver{Name: "oracle", Implementation: "OracleDriver", Module: "@orm/oracledb"}))

	opts, err := ormcfg.DecodeEnv(ormcfg.Env{"ORM_TYPE": "oracle"}, drivers)
	require.NoError(t, err)
	assert.Equal(t, "OracleDriver", opts["driver"].(ormcfg.Driver).Implementation)
}

func TestDecodeEnv_InvalidInteger(t *testing.T) {
	_, err := ormcfg.DecodeEnv(ormcfg.Env{"ORM_BATCH_SIZE": "lots"}, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ormcfg.ErrInvalidValue)

	var cfgErr *ormcfg.Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "ORM_BATCH_SIZE", cfgErr.Name)
}
