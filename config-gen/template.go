package main

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DefaultTemplateProcessor 默认模板处理器实现
type DefaultTemplateProcessor struct {
	fileOp       FileOperator
	log          logrus.FieldLogger
	templateDir  string
	outputDir    string
	configValues Substitutions
	scriptValues Substitutions
	dryRun       bool
}

// NewTemplateProcessor 创建新的模板处理器
func NewTemplateProcessor(settings Settings, fileOp FileOperator, log logrus.FieldLogger, dryRun bool) TemplateProcessor {
	return &DefaultTemplateProcessor{
		fileOp:       fileOp,
		log:          log,
		templateDir:  settings.TemplatesDirectory,
		outputDir:    settings.OutputDirectory,
		configValues: settings.ConfigSubstitutions(),
		scriptValues: settings.ScriptSubstitutions(),
		dryRun:       dryRun,
	}
}

// RenderConfigFile 渲染配置文件模板到输出根目录，outputName 为空时输出为 __<templateName>
func (t *DefaultTemplateProcessor) RenderConfigFile(templateName, outputName string) error {
	names, err := t.fileOp.ListDirectory(t.templateDir)
	if err != nil {
		return err
	}

	for _, name := range names {
		if name != templateName {
			t.log.Debugf("跳过文件: %s", name)
			continue
		}

		if outputName == "" {
			outputName = "__" + name
		}

		template := TemplateFile{
			SourcePath: filepath.Join(t.templateDir, name),
			TargetPath: filepath.Join(t.outputDir, outputName),
		}
		template, err = t.ProcessTemplate(template, t.configValues)
		if err != nil {
			return err
		}

		if err := t.ensureDirectory(t.outputDir); err != nil {
			return err
		}
		return t.writeTemplate(template)
	}

	return fmt.Errorf("%w: %s (目录 %s)", ErrTemplateNotFound, templateName, t.templateDir)
}

// RenderScripts 渲染 subdir1[/subdir2] 下匹配 pattern 的脚本模板，输出到相同的子目录
func (t *DefaultTemplateProcessor) RenderScripts(subdir1, subdir2, pattern string) error {
	if pattern == "" {
		pattern = "*"
	}

	sourceDir := filepath.Join(t.templateDir, subdir1, subdir2)
	targetDir := filepath.Join(t.outputDir, subdir1, subdir2)

	sources, err := t.fileOp.Glob(sourceDir, pattern)
	if err != nil {
		return err
	}

	if len(sources) == 0 {
		t.log.Infof("目录 %s 中没有匹配 %s 的模板", sourceDir, pattern)
		return nil
	}

	created := false
	for _, sourcePath := range sources {
		template := TemplateFile{
			SourcePath: sourcePath,
			TargetPath: filepath.Join(targetDir, filepath.Base(sourcePath)),
		}
		template, err = t.ProcessTemplate(template, t.scriptValues)
		if err != nil {
			return err
		}

		if !created {
			if err := t.ensureDirectory(targetDir); err != nil {
				return err
			}
			created = true
		}

		if err := t.writeTemplate(template); err != nil {
			return err
		}
	}

	return nil
}

// ProcessTemplate 处理单个模板文件
func (t *DefaultTemplateProcessor) ProcessTemplate(template TemplateFile, values Substitutions) (TemplateFile, error) {
	content, err := t.fileOp.ReadFile(template.SourcePath)
	if err != nil {
		return template, err
	}

	rendered, err := Substitute(content, values)
	if err != nil {
		return template, fmt.Errorf("渲染模板失败 %s: %w", template.SourcePath, err)
	}

	template.Content = rendered
	return template, nil
}

// ensureDirectory 目录不存在时创建（单层）
func (t *DefaultTemplateProcessor) ensureDirectory(dir string) error {
	if t.fileOp.FileExists(dir) {
		return nil
	}
	if t.dryRun {
		t.log.Infof("试运行: 将创建目录 %s", dir)
		return nil
	}
	t.log.Debugf("创建目录: %s", dir)
	return t.fileOp.CreateDirectory(dir)
}

func (t *DefaultTemplateProcessor) writeTemplate(template TemplateFile) error {
	if t.dryRun {
		t.log.Infof("试运行: 将生成 %s -> %s", template.SourcePath, template.TargetPath)
		return nil
	}
	if err := t.fileOp.WriteFile(template.TargetPath, template.Content); err != nil {
		return err
	}
	t.log.Infof("生成文件: %s -> %s", template.SourcePath, template.TargetPath)
	return nil
}
