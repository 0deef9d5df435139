package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useConfigPath points ConfigPath at a file under a temp dir for the test's duration
func useConfigPath(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	original := ConfigPath
	ConfigPath = func() string {
		return path
	}
	t.Cleanup(func() {
		ConfigPath = original
	})
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Store != StoreFile {
		t.Errorf("Expected Store to be %q, got %q", StoreFile, cfg.Store)
	}
	if cfg.StorePath == "" {
		t.Error("Expected StorePath to be set")
	}
	if cfg.WordWrap != 100 {
		t.Errorf("Expected WordWrap to be 100, got %d", cfg.WordWrap)
	}
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "memory store needs nothing else",
			config:  &Config{Store: StoreMemory},
			wantErr: false,
		},
		{
			name:    "file store without path",
			config:  &Config{Store: StoreFile},
			wantErr: true,
		},
		{
			name:    "redis store without url",
			config:  &Config{Store: StoreRedis},
			wantErr: true,
		},
		{
			name:    "redis store with url",
			config:  &Config{Store: StoreRedis, RedisURL: "redis://localhost:6379/0"},
			wantErr: false,
		},
		{
			name:    "unknown store",
			config:  &Config{Store: "sqlite"},
			wantErr: true,
		},
		{
			name:    "bad log level",
			config:  &Config{Store: StoreMemory, LogLevel: "trace"},
			wantErr: true,
		},
		{
			name:    "negative cache ttl",
			config:  &Config{Store: StoreMemory, CacheTTL: -time.Second},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	testConfigPath := useConfigPath(t, "config.json")

	testCfg := &Config{
		Store:     StoreRedis,
		StorePath: "/tmp/guides-test.json",
		RedisURL:  "redis://localhost:6379/2",
		CacheTTL:  90 * time.Second,
		LogFile:   "/tmp/guidemark-test.log",
		LogLevel:  "debug",
		WordWrap:  80,
	}

	require.NoError(t, testCfg.Save(), "Failed to save config")

	if _, err := os.Stat(testConfigPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loadedCfg, err := Load()
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, testCfg, loadedCfg)
}

func TestLoadNonExistentConfig(t *testing.T) {
	useConfigPath(t, "nonexistent.json")

	// Load should return default config when file doesn't exist
	cfg, err := Load()
	require.NoError(t, err, "Load() should not error on missing file")
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := useConfigPath(t, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"store":"memory"}`), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 100, cfg.WordWrap)
	assert.Zero(t, cfg.CacheTTL)
}

func TestLoadInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed json", `{"store":`, "failed to parse config"},
		{"bad duration", `{"store":"memory","cache_ttl":"soon"}`, "invalid cache_ttl format"},
		{"bad store", `{"store":"tape"}`, "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := useConfigPath(t, "config.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "tilde expansion",
			input: "~/test",
			want:  filepath.Join(homeDir, "test"),
		},
		{
			name:  "tilde only",
			input: "~",
			want:  homeDir,
		},
		{
			name:  "absolute path",
			input: "/tmp/test",
			want:  "/tmp/test",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("expandPath() error = %v", err)
			}
			if result != tt.want {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.want)
			}
		})
	}
}

func TestConfigPathsExpanded(t *testing.T) {
	useConfigPath(t, "config.json")

	testCfg := &Config{
		Store:     StoreFile,
		StorePath: "~/.guidemark/guides.json",
		LogFile:   "~/guidemark.log",
	}

	require.NoError(t, testCfg.Save(), "Failed to save config")

	loadedCfg, err := Load()
	require.NoError(t, err, "Failed to load config")

	if loadedCfg.StorePath[0] == '~' {
		t.Error("StorePath was not expanded")
	}
	if loadedCfg.LogFile[0] == '~' {
		t.Error("LogFile was not expanded")
	}
}
