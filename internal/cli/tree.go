package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/panes/pkg/render/tree"
)

// treeCommand prints the laid-out container hierarchy.
func (c *CLI) treeCommand() *cobra.Command {
	var flags layoutFlags
	var opts tree.Options

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Print the laid-out container hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			doc, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			res, err := runner.Layout(ctx, doc, flags.opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), tree.Render(res, opts))
			return err
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&opts.Frames, "frames", false, "show frame rectangles")
	cmd.Flags().BoolVar(&opts.Hidden, "hidden", false, "include hidden elements")
	return cmd
}
