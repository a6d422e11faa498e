// Package config loads fcopy defaults from $XDG_CONFIG_HOME/fcopy/config.yaml
// and FCOPY_* environment variables.
package config
