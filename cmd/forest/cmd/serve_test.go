package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/bforest/pkg/config"
	"github.com/ssargent/bforest/pkg/di"
)

func TestServeCommandBootstrapAndConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "forest_serve_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dataDir := filepath.Join(tmpDir, "data")
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Run("bootstrap and config creation", func(t *testing.T) {
		container := di.NewContainer()
		SetContainer(container)

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		require.NoError(t, err)

		assert.True(t, config.ConfigExists(configPath))

		loadedConfig, err := config.LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, dataDir, loadedConfig.DataDir)
		assert.Equal(t, cfg.BranchCapacity, loadedConfig.BranchCapacity)
		assert.Equal(t, cfg.Port, loadedConfig.Port)
	})

	t.Run("load existing config", func(t *testing.T) {
		existingConfig := &config.Config{
			DataDir:        dataDir,
			Port:           9000,
			Bind:           "0.0.0.0",
			BranchCapacity: 64,
			Logging:        config.Logging{Level: "debug"},
		}

		err := config.SaveConfig(existingConfig, configPath)
		require.NoError(t, err)

		loadedConfig, err := config.LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, 9000, loadedConfig.Port)
		assert.Equal(t, 64, loadedConfig.BranchCapacity)
	})
}
