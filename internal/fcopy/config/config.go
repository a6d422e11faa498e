package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

const (
	appName   = "fcopy"
	fileName  = "config"
	fileType  = "yaml"
	envPrefix = "FCOPY"
)

// Setting keys. Flags of the same name are bound to these keys.
const (
	KeyForce      = "force"
	KeyVerbose    = "verbose"
	KeyWorkers    = "workers"
	KeyIgnoreFile = "ignore_file"
	KeyLock       = "lock"
)

// Settings are the effective defaults after file, environment and flags.
type Settings struct {
	Force      bool   `mapstructure:"force" yaml:"force"`
	Verbose    bool   `mapstructure:"verbose" yaml:"verbose"`
	Workers    int    `mapstructure:"workers" yaml:"workers"`
	IgnoreFile string `mapstructure:"ignore_file" yaml:"ignore_file"`
	Lock       bool   `mapstructure:"lock" yaml:"lock"`
}

// Dir returns the fcopy config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "."+appName)
	}
	return filepath.Join(home, ".config", appName)
}

// FilePath returns the default config file path.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// New returns a viper instance with fcopy defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyForce, false)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyWorkers, runtime.NumCPU())
	v.SetDefault(KeyIgnoreFile, "")
	v.SetDefault(KeyLock, true)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and returns the effective settings.
// An explicit path must exist; the default path is optional.
func Load(v *viper.Viper, path string) (Settings, error) {
	explicit := path != ""
	if !explicit {
		path = FilePath()
	}

	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding config: %w", err)
	}
	if s.Workers < 1 {
		s.Workers = 1
	}
	return s, nil
}
