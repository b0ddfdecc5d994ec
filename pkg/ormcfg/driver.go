package ormcfg

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"

	_ "github.com/go-sql-driver/mysql" // database/sql "mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql "pgx"
	_ "github.com/mattn/go-sqlite3"    // database/sql "sqlite3"
)

// Driver 描述一个数据库驱动实现。
//
// Name 是环境变量 ORM_TYPE 使用的短名称；SQLDriver 非空时表示
// 该驱动可通过 database/sql 打开连接。
type Driver struct {
	Name           string `json:"name"`
	Implementation string `json:"implementation"`
	Module         string `json:"module"`
	SQLDriver      string `json:"sqlDriver,omitempty"`
}

// Open 返回延迟连接的 *sql.DB，不会立即建立连接。
func (d Driver) Open(dsn string) (*sql.DB, error) {
	if d.SQLDriver == "" {
		return nil, fmt.Errorf("driver %s has no database/sql implementation", d.Name)
	}
	if !slices.Contains(sql.Drivers(), d.SQLDriver) {
		return nil, fmt.Errorf("database/sql driver %q is not linked", d.SQLDriver)
	}

	return sql.Open(d.SQLDriver, dsn)
}

// builtinDrivers 是固定的短名称查找表。
var builtinDrivers = []Driver{
	{Name: "mongo", Implementation: "MongoDriver", Module: "@orm/mongodb"},
	{Name: "mysql", Implementation: "MySqlDriver", Module: "@orm/mysql", SQLDriver: "mysql"},
	{Name: "mssql", Implementation: "MsSqlDriver", Module: "@orm/mssql"},
	{Name: "mariadb", Implementation: "MariaDbDriver", Module: "@orm/mariadb", SQLDriver: "mysql"},
	{Name: "postgresql", Implementation: "PostgreSqlDriver", Module: "@orm/postgresql", SQLDriver: "pgx"},
	{Name: "sqlite", Implementation: "SqliteDriver", Module: "@orm/sqlite", SQLDriver: "sqlite3"},
	{Name: "better-sqlite", Implementation: "BetterSqliteDriver", Module: "@orm/better-sqlite", SQLDriver: "sqlite3"},
	{Name: "libsql", Implementation: "LibSqlDriver", Module: "@orm/libsql"},
}

// Drivers 是短名称到驱动的注册表，可并发使用。
type Drivers struct {
	mu      sync.RWMutex
	drivers map[string]Driver
}

// NewDrivers 创建空注册表。
func NewDrivers() *Drivers {
	return &Drivers{drivers: make(map[string]Driver)}
}

// DefaultDrivers 返回预置内置驱动的新注册表。
func DefaultDrivers() *Drivers {
	r := NewDrivers()
	for _, d := range builtinDrivers {
		r.drivers[d.Name] = d
	}

	return r
}

// Register 注册插件驱动，名称重复时返回错误。
func (r *Drivers) Register(d Driver) error {
	if d.Name == "" {
		return errors.New("driver name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[d.Name]; exists {
		return fmt.Errorf("driver %s already registered", d.Name)
	}
	r.drivers[d.Name] = d

	return nil
}

// Lookup 按短名称查找驱动，未知名称返回 [ErrLookupFailure]。
func (r *Drivers) Lookup(name string) (Driver, error) {
	r.mu.RLock()
	d, ok := r.drivers[name]
	r.mu.RUnlock()

	if !ok {
		return Driver{}, errLookup(name)
	}

	return d, nil
}

// Names 返回已注册的短名称（升序）。
func (r *Drivers) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
