package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var legalLogLevels = []string{"debug", "info", "warn", "error"}

// GenerateOptions 单次运行的命令行选项
type GenerateOptions struct {
	Settings

	DryRun   bool
	LogLevel string

	fs  afero.Fs
	log *logrus.Logger
}

// DefaultGenerateOptions 默认选项，使用本地文件系统
func DefaultGenerateOptions() *GenerateOptions {
	return &GenerateOptions{
		Settings: DefaultSettings(),
		LogLevel: "info",
		fs:       afero.NewOsFs(),
	}
}

func main() {
	if err := NewGenerateCommand(DefaultGenerateOptions()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewGenerateCommand 创建根命令
func NewGenerateCommand(o *GenerateOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config-gen",
		Short: "根据模板生成配置文件和构建脚本",
		Long: `用数据库配置替换模板中的 $NAME 占位符并输出。

  --gen_switch=0  build_scripts/install/*
  --gen_switch=1  DevTestConf.tmpl.xml 以及 import/*_DEBUG.* 或 import/*_NONDEBUG.*
  --gen_switch=2  build_scripts/docker/*`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

// Bind 注册所有命令行参数
func (o *GenerateOptions) Bind(fs *pflag.FlagSet) {
	o.Settings.Bind(fs)
	fs.BoolVar(&o.DryRun, "dry_run", o.DryRun, "只渲染模板并输出日志，不写入文件")
	fs.StringVar(&o.LogLevel, "log_level", o.LogLevel, fmt.Sprintf("日志级别: (%s)", strings.Join(legalLogLevels, ", ")))
}

// Complete 初始化日志
func (o *GenerateOptions) Complete(cmd *cobra.Command, args []string) error {
	if o.log == nil {
		o.log = logrus.New()
		o.log.SetOutput(cmd.ErrOrStderr())
	}
	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	return nil
}

// Validate 校验参数
func (o *GenerateOptions) Validate(args []string) error {
	if !slices.Contains(legalLogLevels, o.LogLevel) {
		return fmt.Errorf("日志级别必须是 (%s) 之一", strings.Join(legalLogLevels, ", "))
	}
	return nil
}

// Run 按生成模式渲染模板
func (o *GenerateOptions) Run() error {
	level, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		return err
	}
	o.log.SetLevel(level)

	if o.EraseFirst != "" {
		o.log.Debugf("忽略参数 --erase_first=%s", o.EraseFirst)
	}

	// 解析完成后固定配置
	settings := o.Settings
	log := o.log.WithField("mode", settings.Mode().String())

	processor := NewTemplateProcessor(settings, NewFileOperator(o.fs), log, o.DryRun)
	if err := Generate(processor, settings, log); err != nil {
		return err
	}

	log.Info("生成完成")
	return nil
}
