/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override file values,
// e.g. MINIDB_DATA_DIR or MINIDB_LOGGING_LEVEL
const EnvPrefix = "MINIDB"

// Config represents the MiniDB configuration
type Config struct {
	DataDir  string   `yaml:"data_dir" mapstructure:"data_dir"`
	Port     int      `yaml:"port" mapstructure:"port"`
	Bind     string   `yaml:"bind" mapstructure:"bind"`
	Security Security `yaml:"security" mapstructure:"security"`
	Logging  Logging  `yaml:"logging" mapstructure:"logging"`
	Output   Output   `yaml:"output" mapstructure:"output"`
	Reader   Reader   `yaml:"reader" mapstructure:"reader"`
}

// Security contains security-related configuration
type Security struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"` // empty disables authentication
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// Output controls how the CLI prints rows
type Output struct {
	Format string `yaml:"format" mapstructure:"format"` // table or json
	Color  bool   `yaml:"color" mapstructure:"color"`
}

// Reader tunes file access
type Reader struct {
	BufferSize int `yaml:"buffer_size" mapstructure:"buffer_size"` // 0 uses the default
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Security: Security{
			APIKey: "",
		},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Output: Output{
			Format: "table",
			Color:  true,
		},
		Reader: Reader{
			BufferSize: 0,
		},
	}
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "table", "json":
	default:
		return fmt.Errorf("invalid output format %q (want table or json)", c.Output.Format)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format %q (want text or json)", c.Logging.Format)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Reader.BufferSize < 0 {
		return fmt.Errorf("invalid reader buffer size %d", c.Reader.BufferSize)
	}
	return nil
}

// newViper returns a viper instance seeded with defaults and environment overrides
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("port", d.Port)
	v.SetDefault("bind", d.Bind)
	v.SetDefault("security.api_key", d.Security.APIKey)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("reader.buffer_size", d.Reader.BufferSize)
	return v
}

// LoadConfig loads configuration from the specified path. Values missing from
// the file fall back to DefaultConfig and MINIDB_* environment variables
// override both.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return decode(v)
}

// LoadEnv builds a configuration from defaults and environment variables only
func LoadEnv() (*Config, error) {
	return decode(newViper())
}

func decode(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file may hold the API key
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig writes a new configuration with a generated API key
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	apiKey, err := GenerateSecureKey(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Security.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./minidb.yaml"
	}

	// ~/.config/minidb/config.yaml
	configDir := filepath.Join(homeDir, ".config", "minidb")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
