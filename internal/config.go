package internal

import (
	"encoding/json"
	"fmt"
	"minui/internal/fileutil"
	"minui/internal/logging"
	"minui/internal/pathutil"
	"path/filepath"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
)

type Config struct {
	SDCardPath     string   `json:"sdcard_path,omitempty" yaml:"sdcard_path"`
	Platform       string   `json:"platform,omitempty" yaml:"platform"`
	ArchTag        string   `json:"arch_tag,omitempty" yaml:"arch_tag"`
	RowCount       int      `json:"row_count" yaml:"row_count"`
	MaxPathLength  int      `json:"max_path_length" yaml:"max_path_length"`
	AliasCacheSize int      `json:"alias_cache_size" yaml:"alias_cache_size"`
	SimpleMode     bool     `json:"simple_mode,omitempty" yaml:"simple_mode"`
	UseGamelist    bool     `json:"use_gamelist" yaml:"use_gamelist"`
	PlayLog        bool     `json:"play_log" yaml:"play_log"`
	TempDir        string   `json:"temp_dir,omitempty" yaml:"temp_dir"`
	LogLevel       LogLevel `json:"log_level,omitempty" yaml:"log_level"`
	Language       string   `json:"language,omitempty" yaml:"language"`
}

func DefaultConfig() *Config {
	config := &Config{UseGamelist: true, PlayLog: true}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.Platform == "" {
		c.Platform = DefaultPlatform
	}
	if c.RowCount <= 0 {
		c.RowCount = DefaultRowCount
	}
	if c.MaxPathLength <= 0 {
		c.MaxPathLength = pathutil.DefaultMaxPath
	}
	if c.AliasCacheSize <= 0 {
		c.AliasCacheSize = DefaultAliasCacheSize
	}
	if c.TempDir == "" {
		c.TempDir = DefaultTempDir
	}
	if !c.LogLevel.Valid() {
		c.LogLevel = LogLevelError
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
}

func (c Config) ToLoggable() any {
	return map[string]any{
		"sdcard_path":      c.SDCardPath,
		"platform":         c.Platform,
		"arch_tag":         c.ArchTag,
		"row_count":        c.RowCount,
		"max_path_length":  c.MaxPathLength,
		"alias_cache_size": c.AliasCacheSize,
		"simple_mode":      c.SimpleMode,
		"use_gamelist":     c.UseGamelist,
		"play_log":         c.PlayLog,
		"temp_dir":         c.TempDir,
		"log_level":        c.LogLevel,
		"language":         c.Language,
	}
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(afero.NewOsFs(), ".")
}

// LoadConfigFrom reads config.json from dir, falling back to a legacy
// config.yml which is rewritten as JSON once parsed.
func LoadConfigFrom(fs afero.Fs, dir string) (*Config, error) {
	jsonPath := filepath.Join(dir, ConfigFile)
	yamlPath := filepath.Join(dir, LegacyConfigFile)

	var config Config

	data, err := afero.ReadFile(fs, jsonPath)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", ConfigFile, err)
		}
	case fileutil.FileExists(fs, yamlPath):
		data, err = afero.ReadFile(fs, yamlPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", LegacyConfigFile, err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", LegacyConfigFile, err)
		}

		logging.Get().Info("Migrating config to JSON")
		config.applyDefaults()
		if err := SaveConfigTo(fs, dir, &config); err != nil {
			return nil, err
		}
		_ = fileutil.RemoveIfExists(fs, yamlPath)
	default:
		return nil, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}

	config.applyDefaults()
	return &config, nil
}

func SaveConfig(config *Config) error {
	return SaveConfigTo(afero.NewOsFs(), ".", config)
}

func SaveConfigTo(fs afero.Fs, dir string, config *Config) error {
	config.applyDefaults()

	pretty, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		logging.Get().Error("Failed to marshal config to JSON", "error", err)
		return err
	}

	if err := fileutil.AtomicWriteFile(fs, filepath.Join(dir, ConfigFile), pretty, 0644); err != nil {
		logging.Get().Error("Failed to write config file", "error", err)
		return err
	}

	return nil
}
