package main

import (
	"errors"
	"fmt"
)

// Mode 生成模式
type Mode int

const (
	ModeInstallScripts Mode = 0
	ModeConfigFiles    Mode = 1
	ModeDockerScripts  Mode = 2
)

// String 日志中显示的模式名
func (m Mode) String() string {
	switch m {
	case ModeConfigFiles:
		return "config-files"
	case ModeDockerScripts:
		return "docker-scripts"
	case ModeInstallScripts:
		return "install-scripts"
	default:
		return fmt.Sprintf("install-scripts(%d)", int(m))
	}
}

var (
	// ErrTemplateNotFound 找不到指定模板
	ErrTemplateNotFound = errors.New("模板不存在")
	// ErrUnresolvedPlaceholder 替换表中没有该占位符
	ErrUnresolvedPlaceholder = errors.New("未知占位符")
	// ErrInvalidPlaceholder $ 后既不是转义也不是占位符
	ErrInvalidPlaceholder = errors.New("非法占位符")
	// ErrInvalidEncoding 模板内容不是合法的 UTF-8
	ErrInvalidEncoding = errors.New("模板不是合法的 UTF-8")
)

// Substitutions 占位符名到替换文本的映射
type Substitutions map[string]string

// TemplateFile 模板文件信息
type TemplateFile struct {
	SourcePath string // 源模板文件路径
	TargetPath string // 目标文件路径
	Content    string // 文件内容，处理后为渲染结果
}

// TemplateProcessor 模板处理器接口
type TemplateProcessor interface {
	// RenderConfigFile 渲染名为 templateName 的单个模板
	RenderConfigFile(templateName, outputName string) error

	// RenderScripts 渲染 subdir1/subdir2 下匹配 pattern 的所有模板
	RenderScripts(subdir1, subdir2, pattern string) error
}

// FileOperator 文件操作接口
type FileOperator interface {
	// CreateDirectory 创建单层目录
	CreateDirectory(path string) error

	// WriteFile 写入文件
	WriteFile(path, content string) error

	// FileExists 检查文件是否存在
	FileExists(path string) bool

	// ReadFile 读取文件内容
	ReadFile(path string) (string, error)

	// ListDirectory 列出目录中的文件
	ListDirectory(dir string) ([]string, error)

	// Glob 匹配目录中的非隐藏文件
	Glob(dir, pattern string) ([]string, error)
}
