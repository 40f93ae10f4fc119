package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/tracekit/pkg/trace/xintegration"
)

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示参数错误，映射到退出码 2。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createCheckCommand(),
		createPatternsCommand(),
		createValidateCommand(),
	}
}

// createCheckCommand 创建 check 子命令（白名单判定）。
func createCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Aliases:   []string{"k"},
		Usage:     "判定 URL 是否命中配置的源白名单",
		ArgsUsage: "<url>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdCheck(os.Stdout, cmd.String("config"), cmd.Args().Slice())
		},
	}
}

// createPatternsCommand 创建 patterns 子命令。
func createPatternsCommand() *cli.Command {
	return &cli.Command{
		Name:    "patterns",
		Aliases: []string{"p"},
		Usage:   "列出配置编译后的源模式",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdPatterns(os.Stdout, cmd.String("config"))
		},
	}
}

// createValidateCommand 创建 validate 子命令。
func createValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "校验配置文件",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdValidate(os.Stdout, cmd.String("config"))
		},
	}
}

// loadIntegration 加载配置并构建集成实例。
// 加载与校验失败都视为参数错误（退出码 2）。
func loadIntegration(configPath string) (*xintegration.Integration, error) {
	if configPath == "" {
		return nil, &usageError{err: fmt.Errorf("需要通过 --config 指定配置文件")}
	}

	cfg, err := xintegration.LoadConfig(configPath)
	if err != nil {
		return nil, &usageError{err: err}
	}

	integ, err := xintegration.New(cfg)
	if err != nil {
		return nil, &usageError{err: err}
	}
	return integ, nil
}

// cmdCheck 判定 URL 是否命中白名单。
// 设计决策: 未命中时返回退出码 1（通过 exitError），
// 使脚本能直接用退出码判断追踪传播是否会发生。
func cmdCheck(w io.Writer, configPath string, args []string) error {
	if len(args) != 1 {
		return &usageError{err: fmt.Errorf("check 命令需要且仅需要一个 URL 参数")}
	}

	integ, err := loadIntegration(configPath)
	if err != nil {
		return err
	}
	defer integ.Close()

	rawURL := args[0]
	if integ.Eligible(rawURL) {
		fmt.Fprintf(w, "命中: %s\n", rawURL)
		return nil
	}

	fmt.Fprintf(w, "未命中: %s\n", rawURL)
	return &exitError{code: 1}
}

// cmdPatterns 列出编译后的源模式。
func cmdPatterns(w io.Writer, configPath string) error {
	integ, err := loadIntegration(configPath)
	if err != nil {
		return err
	}
	defer integ.Close()

	for _, p := range integ.Patterns() {
		fmt.Fprintln(w, p.String())
	}
	return nil
}

// cmdValidate 校验配置文件。
func cmdValidate(w io.Writer, configPath string) error {
	integ, err := loadIntegration(configPath)
	if err != nil {
		return err
	}
	defer integ.Close()

	fmt.Fprintf(w, "配置有效: %d 个源模式\n", len(integ.Patterns()))
	return nil
}
