package ormcfg

// ContextNameKey 是配置对象中用于区分多份配置的 key。
const ContextNameKey = "contextName"

// DefaultContextName 是未指定 context 时使用的名称。
const DefaultContextName = "default"

// Object 是一份配置：选项名到值的映射。
type Object map[string]any

// ContextName 返回对象自身声明的 contextName。
//
// ok=false 表示对象没有该字段或值为 null；字段存在但不是字符串时 name 为空。
func (o Object) ContextName() (name string, ok bool) {
	raw := o[ContextNameKey]
	if raw == nil {
		return "", false
	}
	name, _ = raw.(string)

	return name, true
}

// matches 报告对象是否命中请求的 context：
// 有 contextName 时要求相等，没有时只命中 "default"。
func (o Object) matches(contextName string) bool {
	if name, ok := o.ContextName(); ok {
		return name == contextName
	}

	return contextName == DefaultContextName
}

// acceptsFactoryResult 报告工厂返回的对象是否可用：
// 没有 contextName，或与请求相等。
func (o Object) acceptsFactoryResult(contextName string) bool {
	name, ok := o.ContextName()
	return !ok || name == contextName
}

// Merge 按从低到高的优先级深度合并多层配置，返回新的映射。
//
// 合并规则：
//   - 后面的层覆盖前面的层
//   - 两侧都是映射时按 key 递归合并
//   - 其他值（包括 slice）整体替换，不做拼接
//
// 输入层不会被修改；结果中的映射与 slice 均为副本。
func Merge(layers ...Object) Object {
	out := make(map[string]any)
	for _, layer := range layers {
		mergeMaps(out, layer)
	}

	return out
}

func mergeMaps(dst, src map[string]any) {
	for key, value := range src {
		if srcMap, ok := asMap(value); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				mergeMaps(dstMap, srcMap)
				continue
			}
		}

		dst[key] = cloneValue(value)
	}
}

// asMap 把 map[string]any 与 Object 统一视为映射。
func asMap(val any) (map[string]any, bool) {
	switch typed := val.(type) {
	case map[string]any:
		return typed, true
	case Object:
		return typed, true
	default:
		return nil, false
	}
}

func cloneValue(val any) any {
	if m, ok := asMap(val); ok {
		out := make(map[string]any, len(m))
		for key, item := range m {
			out[key] = cloneValue(item)
		}

		return out
	}

	switch typed := val.(type) {
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}

		return out
	case []string:
		return append([]string(nil), typed...)
	default:
		return val
	}
}
