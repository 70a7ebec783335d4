package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/panes/pkg/render"
	"github.com/matzehuels/panes/pkg/render/svg"
)

// renderCommand creates the render command for generating visual outputs.
func (c *CLI) renderCommand() *cobra.Command {
	var flags layoutFlags
	var output, formatsStr string

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Lay out a document and render it",
		Long: `Lay out a document and render the result in one or more formats:

  svg      frames drawn as rectangles, scroll content clipped
  dot      container hierarchy as Graphviz source
  dot.svg  container hierarchy rendered by Graphviz
  json     frames as JSON
  tree     container hierarchy as text`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.opts.Formats = parseFormats(formatsStr)
			if err := render.ValidateFormats(flags.opts.Formats); err != nil {
				return err
			}
			if output == "-" && len(flags.opts.Formats) != 1 {
				return fmt.Errorf("writing to stdout needs exactly one format")
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			spinner := newSpinnerWithContext(ctx, "Rendering "+args[0]+"...")
			spinner.Start()
			result, err := runner.ExecuteFile(ctx, args[0], flags.opts)
			if err != nil {
				spinner.StopWithError("Render failed")
				return err
			}
			spinner.Stop()

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(result.Artifacts[flags.opts.Formats[0]])
				return err
			}

			base := basePath(output, args[0])
			var written []string
			for _, format := range flags.opts.Formats {
				path := outputPath(output, base, format, len(flags.opts.Formats))
				if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				written = append(written, path)
			}

			printSuccess("Rendered %s", args[0])
			printStats(result.Stats.FrameCount, result.Layout.Traits, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
			for _, path := range written {
				printFile(path)
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple) or - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(render.Formats, ", ")+" (comma-separated, default svg)")
	cmd.Flags().StringVar(&flags.opts.Style, "style", svg.DefaultStyle, "svg style: "+strings.Join(svg.StyleNames(), ", "))
	cmd.Flags().BoolVar(&flags.opts.Labels, "labels", false, "label leaf frames")
	cmd.Flags().BoolVar(&flags.opts.Details, "details", false, "add policies and sizes to labels")
	cmd.Flags().BoolVar(&flags.opts.Hidden, "hidden", false, "include hidden elements")
	return cmd
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. A known format
// extension on output is stripped as well.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	longest := ""
	for _, f := range render.Formats {
		if ext := render.Extension(f); strings.HasSuffix(output, ext) && len(ext) > len(longest) {
			longest = ext
		}
	}
	return strings.TrimSuffix(output, longest)
}

// outputPath picks the file for one format. A single format written to an
// explicit output path keeps that path unchanged.
func outputPath(output, base, format string, count int) string {
	if count == 1 && output != "" {
		return output
	}
	return base + render.Extension(format)
}
