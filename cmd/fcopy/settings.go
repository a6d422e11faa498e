package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/gingerrexayers/fcopy-go/internal/fcopy/config"
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/lib"
	"github.com/spf13/cobra"
)

const configFlag = "config"

// settingKeys are the config keys a command may expose as flags. The flag
// name is the key with dashes instead of underscores.
var settingKeys = []string{
	config.KeyForce,
	config.KeyVerbose,
	config.KeyWorkers,
	config.KeyIgnoreFile,
	config.KeyLock,
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// loadSettings resolves the effective settings for cmd. Only the running
// command's flags are bound, so subcommands sharing a flag name do not
// shadow each other. It also installs the CLI logger.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	v := config.New()
	for _, key := range settingKeys {
		if f := cmd.Flags().Lookup(flagName(key)); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return config.Settings{}, err
			}
		}
	}

	var path string
	if f := cmd.Flag(configFlag); f != nil {
		path = f.Value.String()
	}
	s, err := config.Load(v, path)
	if err != nil {
		return config.Settings{}, err
	}

	setupLogging(cmd.ErrOrStderr(), s.Verbose)
	return s, nil
}

// setupLogging sends lib's records to w as text; notices only show with
// --verbose.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	lib.SetLogger(slog.New(handler).With("component", "fcopy"))
}
