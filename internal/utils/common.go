package utils

import (
	"fmt"
	"os"
	"strings"

	"webprint/pkg/scanner"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ConfigOptions holds configuration loading options
type ConfigOptions struct {
	ConfigPath  string
	ConfigName  string
	ConfigType  string
	EnvPrefix   string
	DefaultsMap map[string]interface{}
}

// NewViperConfig loads the named scan tool configuration from the standard
// search paths
func NewViperConfig(configName string) (*viper.Viper, error) {
	return NewViperConfigWithOptions(ConfigOptions{
		ConfigPath: GetConfigPath(),
		ConfigName: configName,
		ConfigType: "yaml",
		EnvPrefix:  "WEBPRINT",
	})
}

// NewViperConfigWithOptions creates a Viper configuration with custom options
func NewViperConfigWithOptions(opts ConfigOptions) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigType(opts.ConfigType)

	configPaths := []string{opts.ConfigPath}
	if opts.ConfigPath != "./config" {
		configPaths = append(configPaths, "./config")
	}
	configPaths = append(configPaths, "/etc/webprint", "$HOME/.webprint")

	for _, path := range configPaths {
		v.AddConfigPath(path)
	}

	v.SetConfigName(opts.ConfigName)

	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	}

	for key, value := range opts.DefaultsMap {
		v.SetDefault(key, value)
	}

	log.Debugf("Searching for config file: %s in paths: %v", opts.ConfigName, configPaths)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file '%s' not found in paths: %v", opts.ConfigName, configPaths)
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	log.Infof("Loaded config file: %s", v.ConfigFileUsed())
	return v, nil
}

// LoadDriverConfig loads and unmarshals the named scan tool configuration
func LoadDriverConfig(configName string) (*scanner.DriverConfig, error) {
	v, err := NewViperConfig(configName)
	if err != nil {
		return nil, err
	}

	var cfg scanner.DriverConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tool config '%s': %w", configName, err)
	}

	if cfg.Tool.Command == "" {
		return nil, fmt.Errorf("tool command not set in config '%s'", configName)
	}

	return &cfg, nil
}

// GetConfigPath returns the path where config files are expected to be found
func GetConfigPath() string {
	if path := os.Getenv("WEBPRINT_CONFIG_PATH"); path != "" {
		return path
	}
	return "./config"
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0755)
	}
	return nil
}
