package ormcfg

import (
	"errors"
	"fmt"
	"strings"
)

// Kind 标识解析失败的类别，配合 [errors.Is] 与哨兵错误使用。
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindAmbiguous         Kind = "ambiguous"
	KindNotFoundInSet     Kind = "not_found_in_set"
	KindShapeMismatch     Kind = "shape_mismatch"
	KindVersionMismatch   Kind = "version_mismatch"
	KindLookupFailure     Kind = "lookup_failure"
	KindInvalidValue      Kind = "invalid_value"
	KindLoaderUnavailable Kind = "loader_unavailable"
)

// 哨兵错误，errors.Is(err, ErrNotFound) 按 Kind 匹配。
var (
	// ErrNotFound 所有候选路径都不存在，且环境变量没有提供任何选项。
	ErrNotFound = &Error{Kind: KindNotFound}
	// ErrAmbiguous 数组导出中有多个条目匹配同一 context 名称。
	ErrAmbiguous = &Error{Kind: KindAmbiguous}
	// ErrNotFoundInSet 数组导出中没有匹配条目，工厂函数也未给出合法结果。
	ErrNotFoundInSet = &Error{Kind: KindNotFoundInSet}
	// ErrShapeMismatch 单对象或工厂结果的 contextName 与请求不符。
	ErrShapeMismatch = &Error{Kind: KindShapeMismatch}
	// ErrVersionMismatch 配套包版本与核心包版本不一致。
	ErrVersionMismatch = &Error{Kind: KindVersionMismatch}
	// ErrLookupFailure 驱动短名称不在注册表中。
	ErrLookupFailure = &Error{Kind: KindLookupFailure}
	// ErrInvalidValue 环境变量的值无法转换为目标类型（例如非十进制整数）。
	ErrInvalidValue = &Error{Kind: KindInvalidValue}
	// ErrLoaderUnavailable 文件存在，但没有可处理该扩展名的加载器。
	ErrLoaderUnavailable = &Error{Kind: KindLoaderUnavailable}
)

// Error 是解析过程返回的结构化错误。
//
// 除 Kind 与 Message 外，其余字段按类别选择性填充，便于调用方程序化处理。
type Error struct {
	Kind    Kind
	Message string

	Path     string   // 配置文件路径
	Context  string   // 请求的 context 名称
	Tried    []string // NotFound: 尝试过的全部路径
	First    int      // Ambiguous: 首个匹配下标
	Last     int      // Ambiguous: 最后一个匹配下标
	Package  string   // VersionMismatch: 配套包名
	Version  string   // VersionMismatch: 配套包版本
	Expected string   // VersionMismatch: 期望版本（核心版本）
	Name     string   // LookupFailure / InvalidValue: 名称或变量名

	Err error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is 按 Kind 比较，使哨兵错误可用于 errors.Is。
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Kind == e.Kind
}

func errNotFound(tried []string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("config file not found in ['%s']", strings.Join(tried, "', '")),
		Tried:   tried,
	}
}

func errAmbiguous(contextName, path string, first, last int) *Error {
	return &Error{
		Kind: KindAmbiguous,
		Message: fmt.Sprintf(
			"config '%s' is not unique within the array exported by '%s' (first occurrence index: %d; last occurrence index: %d)",
			contextName, path, first, last),
		Path:    path,
		Context: contextName,
		First:   first,
		Last:    last,
	}
}

func errNotFoundInSet(contextName, path string) *Error {
	return &Error{
		Kind: KindNotFoundInSet,
		Message: fmt.Sprintf(
			"config '%s' was not found within the config file '%s'; add a config with this name to the array, "+
				"or a factory that returns a config without a name or with this name",
			contextName, path),
		Path:    path,
		Context: contextName,
	}
}

func errShapeMismatch(contextName, path, what string) *Error {
	return &Error{
		Kind:    KindShapeMismatch,
		Message: fmt.Sprintf("config '%s' was not what the %s exported from '%s' provided", contextName, what, path),
		Path:    path,
		Context: contextName,
	}
}

func errVersionMismatch(pkg, version, expected string) *Error {
	return &Error{
		Kind: KindVersionMismatch,
		Message: fmt.Sprintf(
			"bad %s version %s; all %s packages need to be on the exact same version (expected %s), set %s=true to skip this check",
			pkg, version, namespaceOf(pkg), expected, EnvAllowVersionMismatch),
		Package:  pkg,
		Version:  version,
		Expected: expected,
	}
}

func errLookup(name string) *Error {
	return &Error{
		Kind:    KindLookupFailure,
		Message: fmt.Sprintf("unknown driver '%s'", name),
		Name:    name,
	}
}

func errInvalidValue(variable, value string, err error) *Error {
	return &Error{
		Kind:    KindInvalidValue,
		Message: fmt.Sprintf("invalid value %q for %s", value, variable),
		Name:    variable,
		Err:     err,
	}
}

func errLoaderUnavailable(path, detail string) *Error {
	return &Error{
		Kind:    KindLoaderUnavailable,
		Message: fmt.Sprintf("no loader available for '%s' (%s)", path, detail),
		Path:    path,
	}
}
