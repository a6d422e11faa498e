package main

import (
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/commands"
	"github.com/spf13/cobra"
)

// NewVerifyCommand creates the 'verify' command.
func NewVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file-a> <file-b>",
		Short: "Check that two files have the same content.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadSettings(cmd); err != nil {
				return err
			}
			_, err := commands.Verify(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], args[1])
			return err
		},
	}
}
