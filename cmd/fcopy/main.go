package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gingerrexayers/fcopy-go/internal/fcopy/commands"
	"github.com/gingerrexayers/fcopy-go/internal/fcopy/lib"
	"github.com/spf13/cobra"
)

// newRootCommand builds the command tree. Commands print their own failure
// lines, so cobra's error and usage output is silenced.
func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fcopy",
		Short:         "Copy files and symlinks, keeping their mode and ownership.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String(configFlag, "", "config file (default $XDG_CONFIG_HOME/fcopy/config.yaml)")

	rootCmd.AddCommand(NewFileCommand())
	rootCmd.AddCommand(NewTreeCommand())
	rootCmd.AddCommand(NewVerifyCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewCompletionCommand())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, commands.ErrReported) {
			fmt.Fprintln(os.Stderr, "*** "+err.Error())
		}
		os.Exit(lib.Status(err))
	}
}
