package main

import (
	"fmt"
	"os"

	"github.com/Songmu/prompter"
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/commands"
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/config"
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/types"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// NewFileCommand creates the 'file' command, which copies one regular file
// or symlink.
func NewFileCommand() *cobra.Command {
	var interactive bool
	var verify bool

	cmd := &cobra.Command{
		Use:   "file <source> <destination>",
		Short: "Copy a single file or symlink.",
		Long: `Copies a regular file or a symlink to the destination path, creating
missing parent directories. An existing destination is only replaced with
--force, and a symlink is never copied over an existing destination. The
source's permission bits, and its owner when running as root, are applied
to the copy.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			req := types.CopyRequest{
				Source:      args[0],
				Destination: args[1],
				Force:       settings.Force,
				Verbose:     settings.Verbose,
			}
			opts := commands.FileOptions{Verify: verify}
			if interactive && isTerminal(os.Stdin) {
				opts.Confirm = func(path string) bool {
					return prompter.YN(fmt.Sprintf("%s already exists. Overwrite?", path), false)
				}
			}

			_, err = commands.CopyOne(cmd.OutOrStdout(), cmd.ErrOrStderr(), req, opts)
			return err
		},
	}

	cmd.Flags().BoolP(flagName(config.KeyForce), "f", false, "Replace an existing destination file")
	cmd.Flags().BoolP(flagName(config.KeyVerbose), "v", false, "Print a notice when the destination already exists")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Ask before replacing an existing destination")
	cmd.Flags().BoolVar(&verify, "verify", false, "Compare source and copy chunk by chunk afterwards")

	return cmd
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
