package main

import (
	"fmt"

	"github.com/gingerrexayers/fcopy-go/internal/fcopy/config"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

// NewConfigCommand creates the 'config' command, which prints the settings
// that apply after the config file and FCOPY_* variables are read. The
// output is valid config file content.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			path := config.FilePath()
			if f := cmd.Flag(configFlag); f != nil && f.Value.String() != "" {
				path = f.Value.String()
			}

			out, err := yaml.Marshal(settings)
			if err != nil {
				return fmt.Errorf("marshaling settings as YAML: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# config file: %s\n%s", path, out)
			return nil
		},
	}
}
