package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/panes/pkg/render"
	"github.com/matzehuels/panes/pkg/render/svg"
)

// documentExts are the file extensions a document argument completes to.
var documentExts = []string{"toml", "json"}

var sizeClasses = []string{"compact", "regular"}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for panes.

Document arguments complete to .toml and .json files. --format completes each
comma-separated entry, and --style, --horizontal and --vertical complete their
accepted values.

  $ source <(panes completion bash)
  $ panes completion zsh > "${fpath[1]}/_panes"
  $ panes completion fish > ~/.config/fish/completions/panes.fish
  PS> panes completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
	return cmd
}

// registerCompletions attaches document and flag completions to every
// subcommand of root that takes them.
func registerCompletions(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		if strings.HasSuffix(cmd.Use, "[file]") && cmd.ValidArgsFunction == nil {
			cmd.ValidArgsFunction = completeDocuments
		}
		flags := map[string]cobra.CompletionFunc{
			"format":     completeFormats,
			"style":      fixedCompletion(svg.StyleNames()),
			"horizontal": fixedCompletion(sizeClasses),
			"vertical":   fixedCompletion(sizeClasses),
		}
		for name, fn := range flags {
			if cmd.Flags().Lookup(name) != nil {
				_ = cmd.RegisterFlagCompletionFunc(name, fn)
			}
		}
	}
}

func completeDocuments(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return documentExts, cobra.ShellCompDirectiveFilterFileExt
}

func fixedCompletion(values []string) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, v := range values {
			if strings.HasPrefix(v, toComplete) {
				out = append(out, v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeFormats completes the last entry of a comma-separated format list,
// skipping formats already named.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	done, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		done, last = toComplete[:i+1], toComplete[i+1:]
	}
	seen := make(map[string]bool)
	for _, f := range strings.Split(done, ",") {
		seen[strings.TrimSpace(f)] = true
	}
	var out []string
	for _, f := range render.Formats {
		if !seen[f] && strings.HasPrefix(f, last) {
			out = append(out, done+f)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
