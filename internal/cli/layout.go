package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/panes/pkg/pipeline"
)

// layoutCommand creates the layout command, which writes computed frames as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags
	var output string

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Lay out a document and write its frames as JSON",
		Long: `Lay out a document at a viewport and write the resulting frames as JSON.

Size classes default to what the viewport implies (compact below 600pt on an
axis); --horizontal and --vertical force them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(logger)
			doc, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			res, hit, err := runner.LayoutWithCacheInfo(ctx, doc, flags.opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Laid out %d frames", len(res.Frames)))

			data, err := pipeline.MarshalResult(res)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Layout written")
			printStats(len(res.Frames), res.Traits, hit)
			printFile(output)
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
