package xintercept

import "errors"

// 拦截器装配相关的错误。
var (
	// ErrNilHubFunc 表示当前 Hub 访问器为 nil
	ErrNilHubFunc = errors.New("xintercept: current hub func must not be nil")

	// ErrNilEligible 表示白名单判定函数为 nil
	ErrNilEligible = errors.New("xintercept: eligible func must not be nil")
)
