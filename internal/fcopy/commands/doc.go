// Package commands implements the fcopy subcommands on top of lib. Each
// command prints its own progress and failure lines to the writer it is
// given, so callers only decide the exit status.
package commands
