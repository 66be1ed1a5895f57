package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/vdiff/pkg/host"
	"github.com/vango-dev/vdiff/pkg/render"
)

func renderCmd(opts *globalOptions) *cobra.Command {
	var (
		page  bool
		title string
	)

	cmd := &cobra.Command{
		Use:   "render <tree>",
		Short: "Render a tree as HTML",
		Long: `Materialize a tree and print it as HTML.

Examples:
  vdiff render tree.json
  vdiff render --page --title=Report tree.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := readTree(args[0])
			if err != nil {
				return err
			}

			var root *host.Node
			if tree != nil {
				if root, err = host.NewBuilder().Materialize(tree); err != nil {
					return err
				}
			}

			if !page {
				return writeHTML(cmd.OutOrStdout(), opts.renderConfig(), root)
			}
			return render.NewRenderer(opts.renderConfig()).RenderPage(cmd.OutOrStdout(), render.PageData{
				Body:  root,
				Title: title,
			})
		},
	}

	cmd.Flags().BoolVar(&page, "page", false, "Wrap the tree in a complete HTML document")
	cmd.Flags().StringVar(&title, "title", "", "Document title (with --page)")

	return cmd
}
