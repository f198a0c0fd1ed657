package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Data:    DataConfig{BasePath: "/some/path"},
		Uploads: UploadConfig{MaxSize: defaultMaxUploadSize},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AllLogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"INFO", true}, // case insensitive
		{"verbose", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Data.BasePath = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadUploadSize(t *testing.T) {
	cfg := validConfig()
	cfg.Uploads.MaxSize = 0
	assert.Error(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	expanded, err := expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", expanded)

	expanded, err = expandPath("/a/../b", "")
	require.NoError(t, err)
	assert.Equal(t, "/b", expanded)
}

func TestDerivedPaths(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, filepath.Join("/some/path", "db"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join("/some/path", "search"), cfg.SearchIndexPath())
	assert.Equal(t, filepath.Join("/some/path", "uploads"), cfg.UploadsPath())
	assert.Equal(t, filepath.Join("/some/path", "auth.key"), cfg.KeyFilePath())
}
