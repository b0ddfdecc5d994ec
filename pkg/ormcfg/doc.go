// Package ormcfg 为数据库映射工具包解析生效配置。
//
// 在候选配置文件中定位配置来源，按 context 名称从多份配置中选出一份，
// 再与调用方选项、ORM_* 环境变量逐层深度合并；另外校验 @orm/* 配套包与核心包版本一致。
//
// # 合并优先级 (从低到高)
//
//  1. {contextName: <请求的名称>}
//  2. {entityGenerator: {esmImport: true}} - 仅当项目清单声明 "type": "module"
//  3. 配置文件 - 从候选路径中首个存在的文件选出
//  4. 调用方选项 - 通过 [WithOptions] 传入
//  5. 环境变量 - 见 [DecodeEnv]，最高优先级
//
// 映射按 key 递归合并，slice 与标量整体替换。
//
// # 快速开始
//
//	res, err := ormcfg.Resolve(ctx,
//	    ormcfg.WithContextName("tenant"),
//	    ormcfg.WithArgs(os.Args[1:]),
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Path, res.Config["dbName"])
//
// # 候选路径
//
// [ConfigPaths] 按以下顺序生成（去重，越具体越靠前）：
//   - --config 命令行参数（存在时只使用它）
//   - ORM_CLI_CONFIG
//   - 项目清单 package.json 中 "orm".configPaths
//   - ./src/orm.config.ts, ./orm.config.ts
//   - ./<dist|build|src>/orm.config.<ext>, ./orm.config.<ext>
//
// TypeScript 路径只在有可用的 TS 加载器（见 [Loaders.RegisterTS]）
// 或设置了 alwaysAllowTs / ORM_CLI_RUNTIME=bun 时保留。
//
// # 多份配置
//
// 配置文件可以导出单个对象、对象与工厂组成的列表，或工厂函数（见 [Export]）。
// 选择规则见 [Select]。
//
// # 环境变量
//
// 所有组件只读取注入的 [Env] 快照，不修改进程环境：
//
//	env := ormcfg.Env{"ORM_TYPE": "postgresql", "ORM_PORT": "5432"}
//	opts, err := ormcfg.DecodeEnv(env, nil)
//	// opts["port"] == 5432
//
// .env 文件只补齐快照中缺失的变量，已有值优先。
//
// # 错误
//
// 解析失败返回 [*Error]，可用 errors.Is 与哨兵错误按类别比较：
//
//	if errors.Is(err, ormcfg.ErrNotFound) { ... }
package ormcfg
