package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdiff/pkg/host"
	"github.com/vango-dev/vdiff/pkg/reconcile"
	"github.com/vango-dev/vdiff/pkg/render"
)

func applyCmd(opts *globalOptions) *cobra.Command {
	var showOps, verify bool

	cmd := &cobra.Command{
		Use:   "apply <prev> <next>",
		Short: "Patch a rendered tree and print the result",
		Long: `Build prev, apply the operations that turn it into next, and print
the patched tree as HTML.

prev is a JSON tree or an HTML fragment (.html) taken as already
rendered. next is a JSON tree or an HTML fragment.

With --verify (or diff.verify in the config file) the patched tree is
compared with a fresh build of next and replaced by it on mismatch.

Examples:
  vdiff apply page.html next.json
  vdiff apply --ops before.json after.json
  vdiff apply --verify before.json after.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := reconcile.New(nil)

			root, prev, err := loadMounted(r, args[0])
			if err != nil {
				return err
			}
			next, err := readTree(args[1])
			if err != nil {
				return err
			}

			ops := opts.matcher().Diff(prev, next)
			if showOps {
				for _, op := range ops {
					fmt.Fprintln(cmd.ErrOrStderr(), op.String())
				}
			}

			if verify || opts.config.Diff.Verify {
				var rebuilt bool
				root, rebuilt, err = r.ApplyVerified(root, ops, next)
				if err != nil {
					return err
				}
				if rebuilt {
					opts.logger.Warn("patched tree differs from next, rebuilt", "operations", len(ops))
				}
			} else if root, err = r.Apply(root, ops); err != nil {
				return err
			}
			opts.logger.Debug("operations applied", "operations", len(ops))

			return writeHTML(cmd.OutOrStdout(), opts.renderConfig(), root)
		},
	}

	cmd.Flags().BoolVar(&showOps, "ops", false, "Print the applied operations to stderr")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check the result against next and rebuild on mismatch")

	return cmd
}

func writeHTML(w io.Writer, cfg render.Config, root *host.Node) error {
	if err := render.NewRenderer(cfg).RenderToWriter(w, root); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
