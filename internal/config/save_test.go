package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetValue_CreatesNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SetValue(path, "ui.theme", "light"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ui:\n  theme: light\n", string(data))
}

func TestSetValue_PreservesCommentsAndOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# relens configuration
service:
  url: http://example.test # remote
ui:
  theme: dark # initial theme
  copy_feedback: 900ms
`
	require.NoError(t, os.WriteFile(path, []byte(initial), 0o644))

	require.NoError(t, SetValue(path, "ui.theme", "light"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# relens configuration")
	assert.Contains(t, content, "url: http://example.test # remote")
	assert.Contains(t, content, "theme: light # initial theme")
	assert.Contains(t, content, "copy_feedback: 900ms")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	assert.Equal(t, "light", v.GetString("ui.theme"))
}

func TestSetValue_AddsNestedKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: dark\n"), 0o644))

	require.NoError(t, SetValue(path, "service.cache.ttl", "1m"))

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	got, ok := LookupValue(doc, []string{"service", "cache", "ttl"})
	require.True(t, ok)
	assert.Equal(t, "1m", got)
	got, ok = LookupValue(doc, []string{"ui", "theme"})
	require.True(t, ok)
	assert.Equal(t, "dark", got)
}

func TestSetValue_RejectsNonScalarTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  theme: dark\n"), 0o644))

	err := SetValue(path, "ui", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui is not a scalar")

	err = SetValue(path, "ui.theme.name", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.theme is not a mapping")
}

func TestSetValue_InvalidKey(t *testing.T) {
	err := SetValue(filepath.Join(t.TempDir(), "c.yaml"), "ui..theme", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid key")
}

func TestSetValue_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: [unclosed"), 0o644))

	err := SetValue(path, "ui.theme", "light")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLookupValue_Missing(t *testing.T) {
	doc, err := ReadDocument(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	_, ok := LookupValue(doc, []string{"ui", "theme"})
	assert.False(t, ok)
}

func TestWriteFileAtomic_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.yaml")

	require.NoError(t, WriteFileAtomic(path, []byte("a: 1\n")))
	require.NoError(t, WriteFileAtomic(path, []byte("a: 2\n")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a: 2\n", string(data))
}
