package xintegration

import "errors"

// 配置校验与装配相关的错误。
var (
	// ErrEmptyOriginPatterns 表示源模式列表为空或缺失。
	// 这是致命的配置错误，在构造时同步返回，任何装配都不会发生。
	ErrEmptyOriginPatterns = errors.New("xintegration: origin patterns must not be empty")

	// ErrNilHubFunc 表示当前 Hub 访问器为 nil
	ErrNilHubFunc = errors.New("xintegration: current hub func must not be nil")

	// ErrNilIntegration 表示集成实例为 nil
	ErrNilIntegration = errors.New("xintegration: integration must not be nil")
)

// 配置加载相关的错误。
var (
	// ErrEmptyPath 表示配置文件路径为空
	ErrEmptyPath = errors.New("xintegration: empty config path")

	// ErrUnsupportedFormat 表示不支持的配置格式
	ErrUnsupportedFormat = errors.New("xintegration: unsupported config format")

	// ErrLoadFailed 表示配置加载失败
	ErrLoadFailed = errors.New("xintegration: failed to load config")

	// ErrParseFailed 表示配置解析失败
	ErrParseFailed = errors.New("xintegration: failed to parse config")

	// ErrUnmarshalFailed 表示配置反序列化失败
	ErrUnmarshalFailed = errors.New("xintegration: failed to unmarshal config")
)
