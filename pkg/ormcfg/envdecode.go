package ormcfg

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envOptions 是可由环境变量覆盖的选项白名单。
//
// env tag 给出变量名（拼接 [EnvPrefix] 与 envPrefix），json tag 给出选项 key，
// coerce tag 给出类型转换：空为字符串，另有 bool / int / array / driver。
type envOptions struct {
	BaseDir                string `env:"BASE_DIR"                     json:"baseDir"`
	Driver                 string `env:"TYPE"                         json:"driver"                coerce:"driver"`
	Entities               string `env:"ENTITIES"                     json:"entities"              coerce:"array"`
	EntitiesTS             string `env:"ENTITIES_TS"                  json:"entitiesTs"            coerce:"array"`
	ClientURL              string `env:"CLIENT_URL"                   json:"clientUrl"`
	Host                   string `env:"HOST"                         json:"host"`
	Port                   string `env:"PORT"                         json:"port"                  coerce:"int"`
	User                   string `env:"USER"                         json:"user"`
	Password               string `env:"PASSWORD"                     json:"password"`
	DBName                 string `env:"DB_NAME"                      json:"dbName"`
	Schema                 string `env:"SCHEMA"                       json:"schema"`
	LoadStrategy           string `env:"LOAD_STRATEGY"                json:"loadStrategy"`
	BatchSize              string `env:"BATCH_SIZE"                   json:"batchSize"             coerce:"int"`
	UseBatchInserts        string `env:"USE_BATCH_INSERTS"            json:"useBatchInserts"       coerce:"bool"`
	UseBatchUpdates        string `env:"USE_BATCH_UPDATES"            json:"useBatchUpdates"       coerce:"bool"`
	Strict                 string `env:"STRICT"                       json:"strict"                coerce:"bool"`
	Validate               string `env:"VALIDATE"                     json:"validate"              coerce:"bool"`
	AllowGlobalContext     string `env:"ALLOW_GLOBAL_CONTEXT"         json:"allowGlobalContext"    coerce:"bool"`
	AutoJoinOneToOneOwner  string `env:"AUTO_JOIN_ONE_TO_ONE_OWNER"   json:"autoJoinOneToOneOwner" coerce:"bool"`
	PopulateAfterFlush     string `env:"POPULATE_AFTER_FLUSH"         json:"populateAfterFlush"    coerce:"bool"`
	ForceEntityConstructor string `env:"FORCE_ENTITY_CONSTRUCTOR"     json:"forceEntityConstructor" coerce:"bool"`
	ForceUndefined         string `env:"FORCE_UNDEFINED"              json:"forceUndefined"        coerce:"bool"`
	ForceUTCTimezone       string `env:"FORCE_UTC_TIMEZONE"           json:"forceUtcTimezone"      coerce:"bool"`
	Timezone               string `env:"TIMEZONE"                     json:"timezone"`
	EnsureIndexes          string `env:"ENSURE_INDEXES"               json:"ensureIndexes"         coerce:"bool"`
	ImplicitTransactions   string `env:"IMPLICIT_TRANSACTIONS"        json:"implicitTransactions"  coerce:"bool"`
	Debug                  string `env:"DEBUG"                        json:"debug"                 coerce:"bool"`
	Colors                 string `env:"COLORS"                       json:"colors"                coerce:"bool"`

	Discovery       envDiscovery       `envPrefix:"DISCOVERY_"        json:"discovery"`
	Migrations      envMigrations      `envPrefix:"MIGRATIONS_"       json:"migrations"`
	SchemaGenerator envSchemaGenerator `envPrefix:"SCHEMA_GENERATOR_" json:"schemaGenerator"`
	Seeder          envSeeder          `envPrefix:"SEEDER_"           json:"seeder"`
}

type envDiscovery struct {
	WarnWhenNoEntities       string `env:"WARN_WHEN_NO_ENTITIES"       json:"warnWhenNoEntities"       coerce:"bool"`
	RequireEntitiesArray     string `env:"REQUIRE_ENTITIES_ARRAY"      json:"requireEntitiesArray"     coerce:"bool"`
	AlwaysAnalyseProperties  string `env:"ALWAYS_ANALYSE_PROPERTIES"   json:"alwaysAnalyseProperties"  coerce:"bool"`
	DisableDynamicFileAccess string `env:"DISABLE_DYNAMIC_FILE_ACCESS" json:"disableDynamicFileAccess" coerce:"bool"`
}

type envMigrations struct {
	TableName          string `env:"TABLE_NAME"           json:"tableName"`
	Path               string `env:"PATH"                 json:"path"`
	PathTS             string `env:"PATH_TS"              json:"pathTs"`
	Glob               string `env:"GLOB"                 json:"glob"`
	Transactional      string `env:"TRANSACTIONAL"        json:"transactional"      coerce:"bool"`
	DisableForeignKeys string `env:"DISABLE_FOREIGN_KEYS" json:"disableForeignKeys" coerce:"bool"`
	AllOrNothing       string `env:"ALL_OR_NOTHING"       json:"allOrNothing"       coerce:"bool"`
	DropTables         string `env:"DROP_TABLES"          json:"dropTables"         coerce:"bool"`
	Safe               string `env:"SAFE"                 json:"safe"               coerce:"bool"`
	Silent             string `env:"SILENT"               json:"silent"             coerce:"bool"`
	Emit               string `env:"EMIT"                 json:"emit"`
	Snapshot           string `env:"SNAPSHOT"             json:"snapshot"           coerce:"bool"`
	SnapshotName       string `env:"SNAPSHOT_NAME"        json:"snapshotName"`
}

type envSchemaGenerator struct {
	DisableForeignKeys          string `env:"DISABLE_FOREIGN_KEYS"           json:"disableForeignKeys"          coerce:"bool"`
	CreateForeignKeyConstraints string `env:"CREATE_FOREIGN_KEY_CONSTRAINTS" json:"createForeignKeyConstraints" coerce:"bool"`
}

type envSeeder struct {
	Path          string `env:"PATH"           json:"path"`
	PathTS        string `env:"PATH_TS"        json:"pathTs"`
	Glob          string `env:"GLOB"           json:"glob"`
	Emit          string `env:"EMIT"           json:"emit"`
	DefaultSeeder string `env:"DEFAULT_SEEDER" json:"defaultSeeder"`
}

// DecodeEnv 把白名单内的环境变量解码为嵌套的选项映射。
//
// 转换规则：
//   - bool: 大小写不敏感，真值 true/t/1/yes/y，假值 false/f/0/no/n/""，其余字符串视为 false
//   - int: 十进制整数，无法解析时返回 [ErrInvalidValue]
//   - array: 逗号分隔并去除首尾空白
//   - driver: 通过 drivers 查找，未知名称返回 [ErrLookupFailure]
//
// 值为空（或仅含空白）的变量视为未设置，bool 除外：空串按假值解码。
// discovery / migrations / schemaGenerator / seeder 子映射没有任何 key 时不会出现在结果中。
// drivers 为 nil 时使用 [DefaultDrivers]。
func DecodeEnv(snapshot Env, drivers *Drivers) (Object, error) {
	if snapshot == nil {
		snapshot = Env{}
	}
	if drivers == nil {
		drivers = DefaultDrivers()
	}

	var vars envOptions
	if err := env.ParseWithOptions(&vars, env.Options{
		Environment: snapshot,
		Prefix:      EnvPrefix,
	}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	d := envDecoder{snapshot: snapshot, drivers: drivers}

	return d.decodeStruct(reflect.ValueOf(vars), EnvPrefix)
}

type envDecoder struct {
	snapshot Env
	drivers  *Drivers
}

func (d envDecoder) decodeStruct(val reflect.Value, prefix string) (Object, error) {
	typ := val.Type()
	out := Object{}

	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configTagName(field)
		if key == "" {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			child, err := d.decodeStruct(val.Field(i), prefix+field.Tag.Get("envPrefix"))
			if err != nil {
				return nil, err
			}
			// 空子映射整体省略
			if len(child) > 0 {
				out[key] = child
			}

			continue
		}

		name := prefix + field.Tag.Get("env")
		kind := field.Tag.Get("coerce")
		raw := val.Field(i).String()
		if !d.present(name, raw, kind) {
			continue
		}

		value, err := d.coerce(name, raw, kind)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}

	return out, nil
}

// present 报告变量是否参与解码。raw 是 env 库填入的值：
// 空值只对 bool 有意义（"" 属于假值集合），其余类型视为未设置。
func (d envDecoder) present(name, raw, kind string) bool {
	if kind != "bool" {
		return strings.TrimSpace(raw) != ""
	}
	_, ok := d.snapshot.Lookup(name)

	return ok
}

func (d envDecoder) coerce(name, raw, kind string) (any, error) {
	switch kind {
	case "bool":
		b, ok := ParseBool(raw)
		if !ok {
			slog.Warn("Unrecognized boolean value, using false", "env", name, "value", raw)
		}

		return b, nil
	case "int":
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, errInvalidValue(name, raw, err)
		}

		return n, nil
	case "array":
		return splitList(raw), nil
	case "driver":
		return d.drivers.Lookup(strings.TrimSpace(raw))
	default:
		return raw, nil
	}
}

// ParseBool 按固定真值/假值集合解析布尔字符串（大小写不敏感）。
//
// ok 表示 s 属于其中一个集合；不属于时返回 (false, false)。
func ParseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "1", "yes", "y":
		return true, true
	case "false", "f", "0", "no", "n", "":
		return false, true
	default:
		return false, false
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}
