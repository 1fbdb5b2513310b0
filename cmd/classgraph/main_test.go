package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	require.NoError(t, initConfig())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConfigDefaults(t *testing.T) {
	viper.Reset()
	require.NoError(t, initConfig())

	assert.Equal(t, defaultSource, viper.GetString(sourceKey))
	assert.Equal(t, defaultFormat, viper.GetString(formatKey))
	assert.Equal(t, defaultDebounce, viper.GetDuration(watchDebounceKey))
	assert.True(t, viper.GetBool(colorKey))
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("CLASSGRAPH_FORMAT", "yaml")
	t.Setenv("CLASSGRAPH_WATCH_DEBOUNCE", "2s")
	viper.Reset()
	require.NoError(t, initConfig())

	assert.Equal(t, "yaml", viper.GetString(formatKey))
	assert.Equal(t, "2s", viper.GetDuration(watchDebounceKey).String())
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "A.java", "package p;\npublic class A {}\n")

	stdout, _, err := run(t, "parse", "-f", "line", file)
	require.NoError(t, err)
	assert.Equal(t, "class\tp.A\tpublic\t-\n", stdout)
}

func TestParseCommandRejectsOtherFiles(t *testing.T) {
	file := writeFile(t, t.TempDir(), "A.txt", "class A {}")

	_, _, err := run(t, "parse", file)
	assert.ErrorContains(t, err, "unsupported file extension")
}

func TestParseCommandReportsFailure(t *testing.T) {
	file := writeFile(t, t.TempDir(), "A.java", "package p;\nclass { }\n")

	stdout, stderr, err := run(t, "--no-color", "parse", file)
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "A.java:2:7: error:")
	assert.Contains(t, stderr, "   2 | class { }")
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "p/A.java", "package p;\nimport q.C;\npublic class A { C c; }\n")
	writeFile(t, dir, "q/C.java", "package q;\npublic class C {}\n")
	writeFile(t, dir, "README.md", "not java")

	stdout, stderr, err := run(t, "scan", "-f", "symbols", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
	assert.Empty(t, stderr)
	assert.Empty(t, stdout)

	stdout, _, err = run(t, "scan", "-f", "refs", dir)
	require.NoError(t, err)
	assert.Equal(t, "p.A\tC\tpath\tq.C\n", stdout)
}

func TestScanCommandPartialFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.java", "package p;\npublic class A {}\n")
	writeFile(t, dir, "B.java", "package p;\npublic class B {\n")

	stdout, stderr, err := run(t, "--no-color", "scan", "-f", "line", dir)
	assert.EqualError(t, err, "1 of 2 files failed to parse")
	assert.Equal(t, "class\tp.A\tpublic\t-\n", stdout)
	assert.Contains(t, stderr, "B.java:")
	assert.Contains(t, stderr, "error:")
}

func TestScanCommandUsesConfiguredSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.java", "package p;\npublic class A {}\n")
	t.Setenv("CLASSGRAPH_SOURCE", dir)

	stdout, _, err := run(t, "scan", "-f", "line")
	require.NoError(t, err)
	assert.Equal(t, "class\tp.A\tpublic\t-\n", stdout)
}

func TestSymbolsCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.java", "package p;\nclass A<T> extends Missing { T item; }\n")

	stdout, _, err := run(t, "symbols", dir)
	require.NoError(t, err)
	assert.Equal(t, "p.A\tMissing\tunresolved\t-\np.A\tT\tgeneric\tT\n", stdout)

	stdout, _, err = run(t, "symbols", "--unresolved", dir)
	require.NoError(t, err)
	assert.Equal(t, "p.A\tMissing\tunresolved\t-\n", stdout)
}

func TestConfigReadFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "classgraph.yaml", "format: [json\n")
	t.Chdir(dir)
	viper.Reset()

	err := initConfig()
	assert.ErrorContains(t, err, "read config")
	assert.Equal(t, defaultFormat, viper.GetString(formatKey))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "classgraph.yaml", "format: line\nwatch:\n  debounce: 1s\n")
	writeFile(t, dir, "src/A.java", "package p;\npublic class A {}\n")
	t.Chdir(dir)

	stdout, stderr, err := run(t, "scan", filepath.Join(dir, "src"))
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Equal(t, "class\tp.A\tpublic\t-\n", stdout)
	assert.Equal(t, "1s", viper.GetDuration(watchDebounceKey).String())
}
