// Package config resolves nanotodo settings from flags, environment
// variables and an optional config file.
//
// Precedence, highest first:
//  1. Command line flags
//  2. Environment variables (NANOTODO_*)
//  3. Config file (--config, $NANOTODO_CONFIG, ./nanotodo.*, ~/.nanotodo/nanotodo.*)
//  4. Defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys. They double as flag names.
const (
	KeyStore       = "store"
	KeyLogLevel    = "log-level"
	KeyNoColor     = "no-color"
	KeyMetricsFile = "metrics-file"
)

// EnvPrefix is prepended to every environment variable
const EnvPrefix = "NANOTODO"

// Config holds the resolved settings
type Config struct {
	StorePath   string
	LogLevel    string
	NoColor     bool
	MetricsFile string
}

// New returns a viper instance wired for nanotodo. configFile overrides
// file discovery; when empty, $NANOTODO_CONFIG is consulted and then the
// default locations. A missing default file is not an error, a missing
// explicit one is.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()

	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("nanotodo")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.nanotodo")
	}

	v.SetEnvPrefix(EnvPrefix)
	// --log-level -> NANOTODO_LOG_LEVEL
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyStore, DefaultStorePath())
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyNoColor, false)
	v.SetDefault(KeyMetricsFile, "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

// BindFlags binds the global flags present in flags to v
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyStore, KeyLogLevel, KeyNoColor, KeyMetricsFile} {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}

// Load reads the resolved settings out of v
func Load(v *viper.Viper) Config {
	return Config{
		StorePath:   expandHome(v.GetString(KeyStore)),
		LogLevel:    strings.ToLower(v.GetString(KeyLogLevel)),
		NoColor:     v.GetBool(KeyNoColor),
		MetricsFile: expandHome(v.GetString(KeyMetricsFile)),
	}
}

// DefaultStorePath returns the XDG data location of the todo file
func DefaultStorePath() string {
	return filepath.Join(dataDir(), "todos.json")
}

func dataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "nanotodo")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "nanotodo")
	}

	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir, "Library", "Application Support", "nanotodo")
	}
	return filepath.Join(homeDir, ".local", "share", "nanotodo")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}
