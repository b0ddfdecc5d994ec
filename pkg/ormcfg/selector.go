package ormcfg

import (
	"context"
	"fmt"
)

// Select 把原始导出收敛为恰好一份配置对象。
//
// 规则：
//   - 列表：收集 contextName 命中的对象条目（无 contextName 的条目只命中 "default"）。
//     恰好一个时选中；多于一个返回 [ErrAmbiguous]；
//     没有时按顺序调用列表中的工厂，首个返回可用对象的结果被选中，否则返回 [ErrNotFoundInSet]。
//   - 工厂：调用后结果的 contextName 必须缺失或相等，否则返回 [ErrShapeMismatch]；
//     返回列表时按列表规则继续选择。
//   - 对象：contextName 必须命中，否则返回 [ErrShapeMismatch]。
//
// path 仅用于错误信息。
func Select(ctx context.Context, export Export, contextName, path string) (Object, error) {
	switch export.Kind() {
	case ExportList:
		items, _ := export.List()
		return selectFromList(ctx, items, contextName, path)

	case ExportFactory:
		factory, _ := export.Factory()
		result, err := factory(ctx, contextName)
		if err != nil {
			return nil, fmt.Errorf("config factory exported from '%s': %w", path, err)
		}
		if items, ok := result.List(); ok {
			return selectFromList(ctx, items, contextName, path)
		}
		obj, ok := result.Object()
		if !ok || !obj.acceptsFactoryResult(contextName) {
			return nil, errShapeMismatch(contextName, path, "function")
		}

		return obj, nil

	case ExportObject:
		obj, _ := export.Object()
		if !obj.matches(contextName) {
			return nil, errShapeMismatch(contextName, path, "default export")
		}

		return obj, nil

	default:
		return nil, fmt.Errorf("invalid config export from '%s'", path)
	}
}

func selectFromList(ctx context.Context, items []Export, contextName, path string) (Object, error) {
	first, last, count := -1, -1, 0
	for i, item := range items {
		obj, ok := item.Object()
		if !ok || !obj.matches(contextName) {
			continue
		}
		if first == -1 {
			first = i
		}
		last = i
		count++
	}

	switch {
	case count == 1:
		obj, _ := items[first].Object()
		return obj, nil
	case count > 1:
		return nil, errAmbiguous(contextName, path, first, last)
	}

	// 没有静态匹配，尝试列表中的工厂
	for _, item := range items {
		factory, ok := item.Factory()
		if !ok {
			continue
		}
		result, err := factory(ctx, contextName)
		if err != nil {
			return nil, fmt.Errorf("config factory in array exported from '%s': %w", path, err)
		}
		obj, ok := result.Object()
		if !ok || !obj.acceptsFactoryResult(contextName) {
			continue
		}

		return obj, nil
	}

	return nil, errNotFoundInSet(contextName, path)
}
