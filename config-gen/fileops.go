package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// DefaultFileOperator 基于 afero 的文件操作实现
type DefaultFileOperator struct {
	fs afero.Fs
}

// NewFileOperator 创建新的文件操作器
func NewFileOperator(fs afero.Fs) FileOperator {
	return &DefaultFileOperator{fs: fs}
}

// CreateDirectory 创建目录，不创建缺失的上级目录
func (f *DefaultFileOperator) CreateDirectory(path string) error {
	parent := filepath.Dir(path)
	if !f.FileExists(parent) {
		return fmt.Errorf("创建目录失败 %s: 上级目录不存在 %s", path, parent)
	}
	if err := f.fs.Mkdir(path, 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return fmt.Errorf("创建目录失败 %s: %w", path, err)
	}
	return nil
}

// WriteFile 写入文件，已存在则覆盖
func (f *DefaultFileOperator) WriteFile(path, content string) error {
	if err := afero.WriteFile(f.fs, path, []byte(content), 0644); err != nil {
		return fmt.Errorf("写入文件失败 %s: %w", path, err)
	}
	return nil
}

// FileExists 检查文件是否存在
func (f *DefaultFileOperator) FileExists(path string) bool {
	_, err := f.fs.Stat(path)
	return err == nil
}

// ReadFile 读取模板内容，必须是合法的 UTF-8
func (f *DefaultFileOperator) ReadFile(path string) (string, error) {
	content, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return "", fmt.Errorf("读取文件失败 %s: %w", path, err)
	}

	text, _, err := transform.String(encoding.UTF8Validator, string(content))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidEncoding)
	}
	return text, nil
}

// ListDirectory 列出目录下的文件名（跟随符号链接），按名称排序
func (f *DefaultFileOperator) ListDirectory(dir string) ([]string, error) {
	entries, err := afero.ReadDir(f.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败 %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		// ReadDir 不跟随符号链接，这里重新 Stat
		info, err := f.fs.Stat(filepath.Join(dir, entry.Name()))
		if err != nil || info.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Glob 在 dir 中匹配 pattern
func (f *DefaultFileOperator) Glob(dir, pattern string) ([]string, error) {
	info, err := f.fs.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("读取目录失败 %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("不是目录: %s", dir)
	}

	matches, err := afero.Glob(f.fs, filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("匹配模式错误 %q: %w", pattern, err)
	}

	var files []string
	for _, match := range matches {
		// * 不匹配隐藏文件
		if strings.HasPrefix(filepath.Base(match), ".") {
			continue
		}
		info, err := f.fs.Stat(match)
		if err != nil {
			return nil, fmt.Errorf("获取文件信息失败 %s: %w", match, err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, match)
	}
	return files, nil
}
