package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clif-consortium/clifdict/pkg/clifdict"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, clifdict.DictionaryConfigFile), []byte(content), 0644))
	return dir
}

func TestLoad_AllFields(t *testing.T) {
	dir := writeConfig(t, `version: "2.1"
schema: schema/clif.sql
vocabulary: mCIDE
output: output/clif_2_1_data_dict.yaml
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "2.1", cfg.Version)
	assert.Equal(t, "schema/clif.sql", cfg.Schema)
	assert.Equal(t, "mCIDE", cfg.Vocabulary)
	assert.Equal(t, "output/clif_2_1_data_dict.yaml", cfg.Output)
}

func TestLoad_MinimalYAML(t *testing.T) {
	dir := writeConfig(t, `version: "2.0"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "2.0", cfg.Version)
	assert.Empty(t, cfg.Schema)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := writeConfig(t, "version: [unclosed\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, clifdict.ErrInvalidConfig)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := writeConfig(t, `version: "2.0"
schema: schema/clif.sql
`)
	t.Setenv("CLIFDICT_VERSION", "2.1")
	t.Setenv("CLIFDICT_SCHEMA", "schema/next.sql")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "2.1", cfg.Version)
	assert.Equal(t, "schema/next.sql", cfg.Schema)
}
