package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdiff/internal/errors"
	"github.com/vango-dev/vdiff/pkg/protocol"
)

func diffCmd(opts *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff <prev> <next>",
		Short: "Print the operations turning one tree into another",
		Long: `Compare two trees and print the operations that turn prev into next.

Trees are JSON files or HTML fragments (.html). "-" reads standard input.

Formats:
  json    a JSON array of operations (default)
  text    one "type path" line per operation
  binary  a protocol operations frame

Examples:
  vdiff diff before.json after.json
  vdiff diff --format=text before.html after.html`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, err := readTree(args[0])
			if err != nil {
				return err
			}
			next, err := readTree(args[1])
			if err != nil {
				return err
			}

			ops := opts.matcher().Diff(prev, next)
			opts.logger.Debug("diff computed", "operations", len(ops))

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if ops == nil {
					return enc.Encode([]any{})
				}
				return enc.Encode(ops)

			case "text":
				for _, op := range ops {
					fmt.Fprintln(out, op.String())
				}
				return nil

			case "binary":
				frame, err := (&protocol.OperationsFrame{Seq: 1, Ops: ops}).Frame()
				if err != nil {
					return err
				}
				_, err = out.Write(frame.Encode())
				return err

			default:
				return errors.Newf(errors.CategoryCLI, "unknown format %q", format).
					WithSuggestion("Use json, text or binary")
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, text or binary")

	return cmd
}
