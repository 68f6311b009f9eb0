package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 1200\noutput_dir: charts\nsheet: Data\n"), 0644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, "charts", cfg.OutputDir)
	assert.Equal(t, "Data", cfg.Sheet)
}

func TestLoadDotDirectoryAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(".sheetchart", 0755))
	require.NoError(t, os.WriteFile(filepath.Join(".sheetchart", "config.yaml"), []byte("port: 9000\n"), 0644))
	t.Setenv("SHEETCHART_HEIGHT", "300")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, uint(9000), cfg.Port)
	assert.Equal(t, 300, cfg.Height)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 0\n"), 0644))
	_, err = Load(viper.New(), path)
	assert.Error(t, err)
}
