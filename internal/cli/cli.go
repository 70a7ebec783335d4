package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/panes/pkg/buildinfo"
	"github.com/matzehuels/panes/pkg/cache"
	"github.com/matzehuels/panes/pkg/pipeline"
	"github.com/matzehuels/panes/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "panes"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Panes lays out declarative pane documents",
		Long:         `Panes is a CLI tool for computing single-pass layouts of declarative pane documents (partitions, scroll views and trait-conditional groups) and rendering them as SVG, Graphviz or text.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.validateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/panes/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the flags shared by every command that lays out a document.
type layoutFlags struct {
	opts    pipeline.Options
	noCache bool
}

func (f *layoutFlags) bind(cmd *cobra.Command) {
	f.opts.Width = pipeline.DefaultWidth
	f.opts.Height = pipeline.DefaultHeight
	cmd.Flags().Float64Var(&f.opts.Width, "width", f.opts.Width, "viewport width")
	cmd.Flags().Float64Var(&f.opts.Height, "height", f.opts.Height, "viewport height")
	cmd.Flags().Float64Var(&f.opts.Scale, "scale", 0, "display scale for hairline snapping (default: document or 2)")
	cmd.Flags().StringVar(&f.opts.Horizontal, "horizontal", "", "force the horizontal size class: compact, regular")
	cmd.Flags().StringVar(&f.opts.Vertical, "vertical", "", "force the vertical size class: compact, regular")
	cmd.Flags().BoolVar(&f.opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the on-disk cache")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	return strings.Split(s, ",")
}
