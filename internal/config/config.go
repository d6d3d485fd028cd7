package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// HomeEnv overrides the directory holding the config file and database
const HomeEnv = "JOBTRACK_HOME"

// Keys accepted by Set
var Keys = []string{"database_path", "log_file", "debug", "no_color"}

// Config holds the application configuration
type Config struct {
	DatabasePath string `mapstructure:"database_path"`
	LogFile      string `mapstructure:"log_file"` // empty disables file logging
	Debug        bool   `mapstructure:"debug"`
	NoColor      bool   `mapstructure:"no_color"`
}

var AppConfig *Config

// Dir returns the jobtrack home directory
func Dir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".jobtrack"), nil
}

// Initialize loads or creates the configuration file
func Initialize() error {
	configDir, err := Dir()
	if err != nil {
		return err
	}
	configFile := filepath.Join(configDir, "config.yaml")

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create default config if it doesn't exist
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err := createDefaultConfig(configFile); err != nil {
			return err
		}
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("JOBTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("database_path", filepath.Join(configDir, "jobtrack.db"))
	v.SetDefault("log_file", "")
	v.SetDefault("debug", false)
	v.SetDefault("no_color", false)

	// Read config
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal into struct
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(configDir, "jobtrack.db")
	}

	AppConfig = cfg
	return nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig(path string) error {
	defaultConfig := `# jobtrack configuration
# database_path: where the job list is stored (defaults to jobtrack.db next to this file)
database_path: ""

# Logging: set log_file to keep a rotated diagnostic log, debug for verbose output
log_file: ""
debug: false

# Disable coloured output
no_color: false
`
	return os.WriteFile(path, []byte(defaultConfig), 0600)
}

// ValidKey reports whether key can be set
func ValidKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set updates a configuration value and writes the file. Only the file's own
// keys are written back, so environment overrides never end up persisted.
func Set(key, value string) error {
	if !ValidKey(key) {
		return fmt.Errorf("invalid key %q: must be one of %v", key, Keys)
	}

	fv := viper.New()
	fv.SetConfigFile(GetConfigPath())
	fv.SetConfigType("yaml")
	if err := fv.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch key {
	case "debug", "no_color":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false: %w", key, err)
		}
		fv.Set(key, b)
	default:
		fv.Set(key, value)
	}
	return fv.WriteConfig()
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
