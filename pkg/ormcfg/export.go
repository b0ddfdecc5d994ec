package ormcfg

import "context"

// ExportKind 标识 [Export] 的分支。
type ExportKind int

const (
	ExportInvalid ExportKind = iota
	ExportObject
	ExportList
	ExportFactory
)

func (k ExportKind) String() string {
	switch k {
	case ExportObject:
		return "object"
	case ExportList:
		return "list"
	case ExportFactory:
		return "factory"
	default:
		return "invalid"
	}
}

// Factory 按请求的 context 名称生成配置（单对象或列表）。
type Factory func(ctx context.Context, contextName string) (Export, error)

// Export 是加载器导入配置文件得到的原始导出值。
//
// 三个分支互斥：单个配置对象、有序列表（元素为对象或工厂）、工厂函数。
// 通过 [ObjectExport] / [ListExport] / [FactoryExport] 构造，零值无效。
type Export struct {
	kind    ExportKind
	object  Object
	list    []Export
	factory Factory
}

// ObjectExport 构造单对象导出。
func ObjectExport(o Object) Export {
	return Export{kind: ExportObject, object: o}
}

// ListExport 构造列表导出。
func ListExport(items ...Export) Export {
	return Export{kind: ExportList, list: items}
}

// FactoryExport 构造工厂导出。
func FactoryExport(f Factory) Export {
	return Export{kind: ExportFactory, factory: f}
}

// Kind 返回导出的分支。
func (e Export) Kind() ExportKind { return e.kind }

// Object 返回对象分支的值。
func (e Export) Object() (Object, bool) {
	return e.object, e.kind == ExportObject
}

// List 返回列表分支的元素。
func (e Export) List() ([]Export, bool) {
	return e.list, e.kind == ExportList
}

// Factory 返回工厂分支的函数。
func (e Export) Factory() (Factory, bool) {
	return e.factory, e.kind == ExportFactory
}

// exportFromValue 把解码后的数据文件内容转换为导出：
// 映射为对象，映射数组为列表。
func exportFromValue(val any) (Export, bool) {
	if m, ok := asMap(val); ok {
		return ObjectExport(m), true
	}

	items, ok := val.([]any)
	if !ok {
		return Export{}, false
	}
	list := make([]Export, 0, len(items))
	for _, item := range items {
		m, ok := asMap(item)
		if !ok {
			return Export{}, false
		}
		list = append(list, ObjectExport(m))
	}

	return ListExport(list...), true
}
