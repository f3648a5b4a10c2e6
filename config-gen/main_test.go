package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, fs afero.Fs, args ...string) error {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	o := DefaultGenerateOptions()
	o.fs = fs
	o.log = logger

	cmd := NewGenerateCommand(o)
	cmd.SetArgs(append([]string{"--templates_directory=/tpl", "--output_directory=/out"}, args...))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func seedTemplates(t *testing.T, fs afero.Fs) {
	t.Helper()
	writeFile(t, fs, "/tpl/DevTestConf.tmpl.xml", []byte(configTemplate))
	writeFile(t, fs, "/tpl/import/a_DEBUG.sh", []byte("psql $db -f debug.sql\n"))
	writeFile(t, fs, "/tpl/import/a_NONDEBUG.sh", []byte("psql $db -f data.sql\n"))
	writeFile(t, fs, "/tpl/build_scripts/install/install.sh", []byte("createdb $db\n"))
	writeFile(t, fs, "/tpl/build_scripts/docker/build.sh", []byte("docker build -t ${db} .\n"))
	writeFile(t, fs, "/tpl/build_scripts/docker/compose.yml", []byte("POSTGRES_DB: $db\n"))
	require.NoError(t, fs.MkdirAll("/out/build_scripts", 0755))
}

func listFiles(t *testing.T, fs afero.Fs, root string) []string {
	t.Helper()
	var files []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestCommand_InvalidIntegerFlags(t *testing.T) {
	for _, flag := range []string{"gen_switch", "db_port", "debug"} {
		t.Run(flag, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			seedTemplates(t, fs)

			err := runCommand(t, fs, "--gen_switch=1", "--"+flag+"=abc")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid argument")
			assert.Empty(t, listFiles(t, fs, "/out"))
		})
	}
}

func TestCommand_IntegerFlagsAreDecimal(t *testing.T) {
	testCases := []struct {
		port     string
		expected string
	}{
		{port: "05432", expected: "localhost:5432/"},
		{port: "08080", expected: "localhost:8080/"},
		{port: " 5433", expected: "localhost:5433/"},
	}

	for _, tc := range testCases {
		t.Run(tc.port, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			seedTemplates(t, fs)

			require.NoError(t, runCommand(t, fs, "--gen_switch=01", "--debug=01", "--db_port="+tc.port))
			assert.Contains(t, readFile(t, fs, "/out/MoquiGenConf.xml"), "jdbc:postgresql://"+tc.expected)
			exists, err := afero.Exists(fs, "/out/import/a_DEBUG.sh")
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}
}

func TestCommand_EraseFirstAcceptsAnyValue(t *testing.T) {
	for _, value := range []string{"1", "yes", "true", ""} {
		t.Run(value, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			seedTemplates(t, fs)

			require.NoError(t, runCommand(t, fs, "--db=shop", "--erase_first="+value))
			assert.Equal(t, "createdb shop\n", readFile(t, fs, "/out/build_scripts/install/install.sh"))
		})
	}
}

func TestCommand_ArgumentErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"--db_name=x"}},
		{name: "flag without value", args: []string{"--db"}},
		{name: "positional argument", args: []string{"--db=x", "extra"}},
		{name: "bad log level", args: []string{"--log_level=loud"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			seedTemplates(t, fs)

			assert.Error(t, runCommand(t, fs, tc.args...))
			assert.Empty(t, listFiles(t, fs, "/out"))
		})
	}
}

func TestCommand_ConfigMode(t *testing.T) {
	fs := afero.NewMemMapFs()
	seedTemplates(t, fs)

	err := runCommand(t, fs,
		"--gen_switch=1", "--db=mydb", "--db_port=5433", "--db_user=u",
		"--db_pwd=p", "--db_host=h", "--debug=1", "--erase_first=1")
	require.NoError(t, err)

	assert.Equal(t, configOutput, readFile(t, fs, "/out/MoquiGenConf.xml"))
	assert.Equal(t, "psql mydb -f debug.sql\n", readFile(t, fs, "/out/import/a_DEBUG.sh"))
	assert.ElementsMatch(t, []string{"/out/MoquiGenConf.xml", "/out/import/a_DEBUG.sh"}, listFiles(t, fs, "/out"))
}

func TestCommand_ConfigModeDerivedName(t *testing.T) {
	fs := afero.NewMemMapFs()
	seedTemplates(t, fs)

	require.NoError(t, runCommand(t, fs, "--gen_switch", "1", "--config_file_name="))

	exists, err := afero.Exists(fs, "/out/__DevTestConf.tmpl.xml")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "psql  -f data.sql\n", readFile(t, fs, "/out/import/a_NONDEBUG.sh"))
}

func TestCommand_DockerMode(t *testing.T) {
	fs := afero.NewMemMapFs()
	seedTemplates(t, fs)

	require.NoError(t, runCommand(t, fs, "--gen_switch=2", "--db=shop"))

	assert.ElementsMatch(t, []string{
		"/out/build_scripts/docker/build.sh",
		"/out/build_scripts/docker/compose.yml",
	}, listFiles(t, fs, "/out"))
	assert.Equal(t, "docker build -t shop .\n", readFile(t, fs, "/out/build_scripts/docker/build.sh"))
	assert.Equal(t, "POSTGRES_DB: shop\n", readFile(t, fs, "/out/build_scripts/docker/compose.yml"))
}

func TestCommand_DefaultMode(t *testing.T) {
	fs := afero.NewMemMapFs()
	seedTemplates(t, fs)

	require.NoError(t, runCommand(t, fs, "--db=shop"))

	assert.Equal(t, []string{"/out/build_scripts/install/install.sh"}, listFiles(t, fs, "/out"))
	assert.Equal(t, "createdb shop\n", readFile(t, fs, "/out/build_scripts/install/install.sh"))
}

func TestCommand_RenderErrorIsReturned(t *testing.T) {
	fs := afero.NewMemMapFs()
	seedTemplates(t, fs)
	writeFile(t, fs, "/tpl/build_scripts/install/zz.sh", []byte("$db $owner"))

	err := runCommand(t, fs)
	require.ErrorIs(t, err, ErrUnresolvedPlaceholder)
	assert.True(t, strings.HasPrefix(err.Error(), "生成安装脚本失败:"))
}

func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, ModeInstallScripts, settings.Mode())
	assert.Equal(t, "", settings.DB)
	assert.Equal(t, 5432, settings.DBPort)
	assert.Equal(t, "postgres", settings.DBUser)
	assert.Equal(t, "postgres", settings.DBPassword)
	assert.Equal(t, "localhost", settings.DBHost)
	assert.Equal(t, "MoquiGenConf.xml", settings.ConfigFileName)
	assert.Equal(t, 0, settings.Debug)
	assert.Equal(t, filepath.Join("runtime", "conf", "templates"), lastSegments(settings.TemplatesDirectory, 3))
	assert.Equal(t, filepath.Join("runtime", "conf", "generated"), lastSegments(settings.OutputDirectory, 3))
	assert.Equal(t, "5432", settings.ConfigSubstitutions()["MOQUI_DB_PORT"])
	assert.Equal(t, Substitutions{"db": ""}, settings.ScriptSubstitutions())
}

func lastSegments(path string, n int) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) > n {
		parts = parts[len(parts)-n:]
	}
	return filepath.Join(parts...)
}
