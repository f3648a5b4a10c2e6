package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Generate 按生成模式渲染，遇到错误立即返回
func Generate(processor TemplateProcessor, settings Settings, log logrus.FieldLogger) error {
	mode := settings.Mode()
	log.Infof("开始生成: %s", mode)

	switch mode {
	case ModeConfigFiles:
		if err := processor.RenderConfigFile(ConfigTemplateName, settings.ConfigFileName); err != nil {
			return fmt.Errorf("生成配置文件失败: %w", err)
		}
		if err := processor.RenderScripts("import", "", settings.ImportFilter()); err != nil {
			return fmt.Errorf("生成导入脚本失败: %w", err)
		}
	case ModeDockerScripts:
		if err := processor.RenderScripts("build_scripts", "docker", "*"); err != nil {
			return fmt.Errorf("生成 docker 脚本失败: %w", err)
		}
	default:
		if err := processor.RenderScripts("build_scripts", "install", "*"); err != nil {
			return fmt.Errorf("生成安装脚本失败: %w", err)
		}
	}

	return nil
}
