package ormcfg

import (
	"fmt"
	"os"

	"dario.cat/mergo"
)

// options 配置解析选项。
//
// 字段导出是为了让 mergo 填充默认值，类型本身不对外暴露。
type options struct {
	ContextName         string
	BaseDir             string
	ConfigName          string
	ConfigPath          string   // 命令行显式路径，优先级最高
	Args                []string // 未给出 ConfigPath 时从中提取 --config
	CompiledExtensions  []string
	Options             Object // 调用方传入的选项
	Loaders             *Loaders
	Drivers             *Drivers
	NoDotenv            bool
	NoTemplateExpansion bool

	env    Env
	envSet bool
}

// Option 配置解析选项函数。
type Option func(*options)

func defaultOptions() (options, error) {
	wd, err := os.Getwd()
	if err != nil {
		return options{}, fmt.Errorf("get working directory: %w", err)
	}

	return options{
		ContextName:        DefaultContextName,
		BaseDir:            wd,
		ConfigName:         DefaultConfigName,
		CompiledExtensions: DefaultCompiledExtensions,
		Drivers:            DefaultDrivers(),
	}, nil
}

func newOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	defaults, err := defaultOptions()
	if err != nil {
		return nil, err
	}
	// 仅填充未设置的字段
	if err := mergo.Merge(o, defaults); err != nil {
		return nil, fmt.Errorf("apply default options: %w", err)
	}

	if !o.envSet {
		o.env = Environ()
	}
	if o.env == nil {
		o.env = Env{}
	}

	return o, nil
}

// WithContextName 设置要选择的 context 名称，默认 "default"。
func WithContextName(name string) Option {
	return func(o *options) {
		o.ContextName = name
	}
}

// WithBaseDir 设置项目目录：相对候选路径、dist/build 探测、清单查找与 .env 都基于它。
//
// 默认为当前工作目录。
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.BaseDir = dir
	}
}

// WithEnv 注入环境变量快照，替代进程环境。
//
// 传入 nil 等价于空快照。
func WithEnv(env Env) Option {
	return func(o *options) {
		o.env = env.Clone()
		o.envSet = true
	}
}

// WithConfigPath 显式指定配置文件路径，跳过其余候选路径。
func WithConfigPath(path string) Option {
	return func(o *options) {
		o.ConfigPath = path
	}
}

// WithArgs 传入命令行参数，从中提取 --config（参数名见 [ConfigArgName]）。
func WithArgs(args []string) Option {
	return func(o *options) {
		o.Args = args
	}
}

// WithOptions 传入调用方选项，优先级高于配置文件、低于环境变量。
func WithOptions(opts Object) Option {
	return func(o *options) {
		o.Options = opts
	}
}

// WithLoaders 替换加载器集合，默认为 [DefaultLoaders]。
func WithLoaders(loaders *Loaders) Option {
	return func(o *options) {
		o.Loaders = loaders
	}
}

// WithDrivers 替换驱动注册表，默认为 [DefaultDrivers]。
func WithDrivers(drivers *Drivers) Option {
	return func(o *options) {
		o.Drivers = drivers
	}
}

// WithConfigName 修改配置文件基础名，默认 "orm"（orm.config.ts 等）。
func WithConfigName(name string) Option {
	return func(o *options) {
		o.ConfigName = name
	}
}

// WithCompiledExtensions 修改编译产物候选扩展名，默认 [DefaultCompiledExtensions]。
func WithCompiledExtensions(exts ...string) Option {
	return func(o *options) {
		o.CompiledExtensions = exts
	}
}

// WithoutDotenv 不读取 .env 文件。
func WithoutDotenv() Option {
	return func(o *options) {
		o.NoDotenv = true
	}
}

// WithoutTemplateExpansion 禁用默认数据加载器的 ${...} 展开。
func WithoutTemplateExpansion() Option {
	return func(o *options) {
		o.NoTemplateExpansion = true
	}
}
