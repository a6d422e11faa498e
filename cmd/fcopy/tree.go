package main

import (
	"errors"
	"os"

	"github.com/gingerrexayers/fcopy-go/internal/fcopy/commands"
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/config"
	"github.com/spf13/cobra"
)

// NewTreeCommand creates the 'tree' command, which copies a directory tree
// with a pool of workers.
func NewTreeCommand() *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "tree <source-dir> <destination-dir>",
		Short: "Copy every file and symlink below a directory.",
		Long: `Copies each regular file and symlink below the source directory to the
same relative path below the destination, then applies the source
directories' modes. Entries matched by the source's .fcopyignore are
skipped, as are devices, sockets and pipes. A failing entry is reported
and the copy continues; the exit status is 1 if any entry failed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			opts := commands.TreeOptions{
				Force:      settings.Force,
				Verbose:    settings.Verbose,
				Workers:    settings.Workers,
				IgnoreFile: settings.IgnoreFile,
				Lock:       settings.Lock,
			}
			out := cmd.OutOrStdout()
			result, err := commands.Tree(cmd.Context(), out, cmd.ErrOrStderr(), args[0], args[1], opts)
			if err != nil && !errors.Is(err, commands.ErrReported) {
				return err
			}

			if summary || isTerminal(os.Stdout) {
				if werr := commands.WriteSummary(out, result); werr != nil {
					return werr
				}
			}
			return err
		},
	}

	cmd.Flags().BoolP(flagName(config.KeyForce), "f", false, "Replace existing destination files")
	cmd.Flags().BoolP(flagName(config.KeyVerbose), "v", false, "Print every copied entry")
	cmd.Flags().IntP(flagName(config.KeyWorkers), "j", 0, "Number of files copied at once (default: number of CPUs)")
	cmd.Flags().String(flagName(config.KeyIgnoreFile), "", "Ignore file to use instead of <source-dir>/.fcopyignore")
	cmd.Flags().Bool(flagName(config.KeyLock), true, "Lock the destination against concurrent tree copies")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print a summary table even when stdout is not a terminal")

	return cmd
}
