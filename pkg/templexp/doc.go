// Package templexp 提供配置字符串的 Shell 参数展开。
//
// 该包仅处理 ${...} 语法，用于 YAML/JSON 数据型配置文件中的轻量替换。
// 不执行命令、不引入模板引擎；变量来源是调用方注入的环境快照，
// 不直接读取也不修改进程环境。
//
// # 语义说明
//
//  1. 仅做字符串层面的替换（不解析 $VAR）
//  2. 支持嵌套展开与 "$$" 字面量
//  3. ":=" 赋值仅作用于当前展开过程，不回写快照
//  4. 无法识别的表达式保持原样
//
// # 快速开始
//
//	env := map[string]string{"DB_HOST": "db.internal"}
//	out, err := templexp.Expand(`host: "${DB_HOST:-localhost}"`, env)
//
// 展开解码后的整棵配置树：
//
//	tree, err := templexp.ExpandValues(decoded, env)
package templexp
