package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdiff/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree writing to stdout and stderr.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "vdiff",
		Short: "Incremental tree diff and reconcile",
		Long: `vdiff compares two trees and produces the minimal operations that
turn one into the other, applies those operations to rendered trees,
and serves both over HTTP and WebSocket.

Trees are JSON documents:

  {"tag": "div", "key": "k", "attributes": {"class": "x"},
   "children": [{"content": "text"}, null]}`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to vdiff.json (default: nearest in the working directory or its parents)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&opts.identityAttr, "identity-attr", "", "Attribute that identifies elements across renders")

	rootCmd.AddCommand(
		diffCmd(opts),
		applyCmd(opts),
		renderCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)
	return rootCmd
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
