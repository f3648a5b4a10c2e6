package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// ConfigTemplateName 配置文件模式使用的模板
	ConfigTemplateName = "DevTestConf.tmpl.xml"

	defaultConfigFileName = "MoquiGenConf.xml"
	defaultDBPort         = 5432
	defaultDBUser         = "postgres"
	defaultDBPassword     = "postgres"
	defaultDBHost         = "localhost"
)

// Settings 单次运行的配置，命令行解析后不再修改
type Settings struct {
	GenSwitch          int    // 生成模式，见 Mode
	DB                 string // 数据库名
	DBPort             int    // 数据库端口
	DBUser             string // 数据库用户
	DBPassword         string // 数据库密码
	DBHost             string // 数据库主机
	ConfigFileName     string // 生成的配置文件名，为空时自动命名
	TemplatesDirectory string // 模板根目录
	OutputDirectory    string // 输出根目录
	Debug              int    // 为 1 时生成 *_DEBUG 导入脚本
	EraseFirst         string // 兼容旧命令行，不使用
}

// DefaultSettings 默认配置，目录相对于可执行文件所在位置
func DefaultSettings() Settings {
	base := executableDir()
	return Settings{
		GenSwitch:          int(ModeInstallScripts),
		DB:                 "",
		DBPort:             defaultDBPort,
		DBUser:             defaultDBUser,
		DBPassword:         defaultDBPassword,
		DBHost:             defaultDBHost,
		ConfigFileName:     defaultConfigFileName,
		TemplatesDirectory: filepath.Join(base, "..", "..", "runtime", "conf", "templates"),
		OutputDirectory:    filepath.Join(base, "..", "..", "runtime", "conf", "generated"),
		Debug:              0,
	}
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// decimalInt 只按十进制解析的整数参数，05432 为 5432
type decimalInt int

func newDecimalInt(p *int) *decimalInt {
	return (*decimalInt)(p)
}

func (d *decimalInt) Set(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*d = decimalInt(v)
	return nil
}

func (d *decimalInt) String() string {
	return strconv.Itoa(int(*d))
}

func (d *decimalInt) Type() string {
	return "int"
}

// Bind 注册命令行参数
func (s *Settings) Bind(fs *pflag.FlagSet) {
	fs.Var(newDecimalInt(&s.GenSwitch), "gen_switch", "生成模式: 0 安装脚本, 1 配置文件, 2 docker 脚本")
	fs.StringVar(&s.DB, "db", s.DB, "数据库名")
	fs.Var(newDecimalInt(&s.DBPort), "db_port", "数据库端口")
	fs.StringVar(&s.DBUser, "db_user", s.DBUser, "数据库用户")
	fs.StringVar(&s.DBPassword, "db_pwd", s.DBPassword, "数据库密码")
	fs.StringVar(&s.DBHost, "db_host", s.DBHost, "数据库主机")
	fs.StringVar(&s.ConfigFileName, "config_file_name", s.ConfigFileName, "生成的配置文件名 (为空时为 __<模板名>)")
	fs.Var(newDecimalInt(&s.Debug), "debug", "为 1 时生成 *_DEBUG 导入脚本，否则生成 *_NONDEBUG")
	fs.StringVar(&s.TemplatesDirectory, "templates_directory", s.TemplatesDirectory, "模板根目录")
	fs.StringVar(&s.OutputDirectory, "output_directory", s.OutputDirectory, "输出根目录")
	fs.StringVar(&s.EraseFirst, "erase_first", s.EraseFirst, "忽略")
	_ = fs.MarkHidden("erase_first")
}

// Mode 当前生成模式
func (s Settings) Mode() Mode {
	return Mode(s.GenSwitch)
}

// ConfigSubstitutions 配置文件模板的替换表
func (s Settings) ConfigSubstitutions() Substitutions {
	return Substitutions{
		"MOQUI_DB":      s.DB,
		"MOQUI_DB_PORT": strconv.Itoa(s.DBPort),
		"MOQUI_DB_USER": s.DBUser,
		"MOQUI_DB_PWD":  s.DBPassword,
		"MOQUI_DB_HOST": s.DBHost,
	}
}

// ScriptSubstitutions 脚本模板的替换表
func (s Settings) ScriptSubstitutions() Substitutions {
	return Substitutions{
		"db": s.DB,
	}
}

// ImportFilter 按调试标志选择导入脚本
func (s Settings) ImportFilter() string {
	if s.Debug == 1 {
		return "*_DEBUG.*"
	}
	return "*_NONDEBUG.*"
}
