package cli

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteFormats(t *testing.T) {
	tests := map[string]struct {
		in   string
		want []string
	}{
		"empty":        {"", []string{"svg", "dot", "dot.svg", "json", "tree"}},
		"prefix":       {"do", []string{"dot", "dot.svg"}},
		"second entry": {"svg,t", []string{"svg,tree"}},
		"skips named":  {"svg,dot,", []string{"svg,dot,dot.svg", "svg,dot,json", "svg,dot,tree"}},
		"no match":     {"png", nil},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, dir := completeFormats(nil, nil, tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("completeFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if dir&cobra.ShellCompDirectiveNoSpace == 0 {
				t.Errorf("directive %v should keep the cursor on the entry", dir)
			}
		})
	}
}

func TestCompleteDocuments(t *testing.T) {
	got, dir := completeDocuments(nil, nil, "")
	if !reflect.DeepEqual(got, []string{"toml", "json"}) || dir != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("first argument = %v %v, want toml/json file filter", got, dir)
	}
	if got, dir := completeDocuments(nil, []string{"a.toml"}, ""); got != nil || dir != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second argument = %v %v, want no completion", got, dir)
	}
}

func TestCompletionRegisteredOnCommands(t *testing.T) {
	tests := map[string]struct {
		args []string
		want []string
	}{
		"document":   {[]string{"__complete", "layout", ""}, []string{"toml", "json"}},
		"format":     {[]string{"__complete", "render", "doc.toml", "--format", "svg,d"}, []string{"svg,dot", "svg,dot.svg"}},
		"size class": {[]string{"__complete", "tree", "doc.toml", "--horizontal", "c"}, []string{"compact"}},
		"style":      {[]string{"__complete", "render", "doc.toml", "--style", ""}, nil},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("complete error: %v", err)
			}
			lines := strings.Split(strings.TrimSpace(out), "\n")
			got := lines[:len(lines)-1]
			if !strings.HasPrefix(lines[len(lines)-1], ":") {
				t.Fatalf("output %q should end with a directive line", out)
			}
			if tt.want == nil {
				if len(got) == 0 {
					t.Errorf("no completions in %q", out)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("completions = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out, "panes") {
				t.Errorf("%s script does not mention panes", shell)
			}
		})
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}
