package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// Exit codes
	ExitSuccess = iota
	ExitGeneralError
	ExitInvalidArguments
	ExitPathNotFound
	ExitConfigurationError
	ExitTransferFailed
)

const (
	ConfigName = "swapfs"
	EnvPrefix  = "SWAPFS"

	DefaultAppName  = "swapfs"
	DefaultLogLevel = "info"
)

// Backend selects which file system implementation the provider builds.
type Backend string

const (
	BackendDisk   Backend = "disk"
	BackendMemory Backend = "memory"
)

// ParseBackend accepts the canonical names plus a few aliases.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "disk", "real", "os":
		return BackendDisk, nil
	case "memory", "mem", "virtual":
		return BackendMemory, nil
	default:
		return "", fmt.Errorf("unknown backend %q (expected disk or memory)", s)
	}
}

// Config represents the swapfs configuration
type Config struct {
	Backend      Backend      `mapstructure:"backend"`
	AppName      string       `mapstructure:"app_name"`
	UserDataPath string       `mapstructure:"user_data_path"`
	LogLevel     string       `mapstructure:"log_level"`
	Fixture      string       `mapstructure:"fixture"`
	Export       ExportConfig `mapstructure:"export"`
}

// ExportConfig represents defaults for the export and import commands
type ExportConfig struct {
	Overwrite bool `mapstructure:"overwrite"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Backend:  BackendDisk,
		AppName:  DefaultAppName,
		LogLevel: DefaultLogLevel,
	}
}

func backendHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != reflect.TypeOf(Backend("")) || from.Kind() != reflect.String {
		return data, nil
	}
	return ParseBackend(reflect.ValueOf(data).String())
}

func newViper(dir string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(ConfigName)
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}
	if globalDir, err := GetGlobalConfigDir(); err == nil {
		v.AddConfigPath(globalDir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("backend", string(d.Backend))
	v.SetDefault("app_name", d.AppName)
	v.SetDefault("user_data_path", d.UserDataPath)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("fixture", d.Fixture)
	v.SetDefault("export.overwrite", d.Export.Overwrite)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	return v, nil
}

// Load reads swapfs.yaml from dir, falling back to the global config
// directory, and applies SWAPFS_* environment overrides. A missing file is
// not an error.
func Load(dir string) (*Config, error) {
	v, err := newViper(dir)
	if err != nil {
		return nil, err
	}

	var config Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		backendHook,
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&config, hook); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if config.Fixture != "" && !filepath.IsAbs(config.Fixture) && v.ConfigFileUsed() != "" {
		config.Fixture = filepath.Join(filepath.Dir(v.ConfigFileUsed()), config.Fixture)
	}

	return &config, nil
}

// Save saves configuration to swapfs.yaml in dir.
// Uses yaml.v3 directly to preserve keys it does not know about.
func Save(dir string, config *Config) error {
	configPath := filepath.Join(dir, ConfigName+".yaml")

	// Read existing config if it exists (to preserve any manual edits)
	var existing map[string]interface{}
	if content, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(content, &existing); err != nil {
			return fmt.Errorf("parsing existing config: %w", err)
		}
	}

	if existing == nil {
		existing = make(map[string]interface{})
	}

	if config.Backend != "" {
		existing["backend"] = string(config.Backend)
	}
	if config.AppName != "" {
		existing["app_name"] = config.AppName
	}
	if config.UserDataPath != "" {
		existing["user_data_path"] = config.UserDataPath
	}
	if config.LogLevel != "" {
		existing["log_level"] = config.LogLevel
	}
	if config.Fixture != "" {
		existing["fixture"] = config.Fixture
	}

	if existingExport, ok := existing["export"].(map[string]interface{}); ok {
		existingExport["overwrite"] = config.Export.Overwrite
	} else if config.Export.Overwrite {
		existing["export"] = map[string]interface{}{"overwrite": true}
	}

	content, err := yaml.Marshal(existing)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// GetGlobalConfigDir returns the global config directory
func GetGlobalConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, ConfigName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, ".config", ConfigName), nil
}
