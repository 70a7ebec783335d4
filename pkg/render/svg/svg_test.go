package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/panes/pkg/document"
)

func sampleResult() *document.Result {
	return &document.Result{
		Name:   "mail & co",
		Width:  400,
		Height: 300,
		Scale:  2,
		Frames: []document.Frame{
			{ID: "root", Kind: "partition", X: 0, Y: 0, Width: 400, Height: 300},
			{ID: "sidebar", Kind: "leaf", Parent: "root", Depth: 1, Policy: "fixed(100)", Width: 100, Height: 300},
			{ID: "list", Kind: "scroll", Parent: "root", Depth: 1, Policy: "equal", X: 100, Width: 300, Height: 300, ContentHeight: 600},
			{ID: "row-1", Kind: "leaf", Parent: "list", Depth: 2, Policy: "fixed(300)", X: 100, Width: 300, Height: 300},
			{ID: "row-2", Kind: "leaf", Parent: "list", Depth: 2, Policy: "fixed(300)", X: 100, Y: 300, Width: 300, Height: 300},
			{ID: "ghost", Kind: "leaf", Parent: "root", Depth: 1, Hidden: true},
		},
	}
}

func TestRender(t *testing.T) {
	out := string(Render(sampleResult()))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400.0 300.0" width="400" height="300">`) {
		t.Errorf("unexpected header: %.100s", out)
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("missing closing tag")
	}
	if !strings.Contains(out, "<title>mail &amp; co</title>") {
		t.Error("title not escaped")
	}
	for _, id := range []string{"root", "sidebar", "list", "row-1", "row-2"} {
		if !strings.Contains(out, `id="frame-`+id+`"`) {
			t.Errorf("frame %q not drawn", id)
		}
	}
	if strings.Contains(out, "frame-ghost") {
		t.Error("hidden frame drawn without WithHidden")
	}
	if strings.Contains(out, "<text") {
		t.Error("labels drawn without WithLabels")
	}
}

func TestRenderClipsScrollChildren(t *testing.T) {
	out := string(Render(sampleResult()))

	clip := strings.Index(out, `<clipPath id="clip-1">`)
	group := strings.Index(out, `<g clip-path="url(#clip-1)">`)
	row := strings.Index(out, `id="frame-row-2"`)
	end := strings.LastIndex(out, "</g>")
	if clip < 0 || group < 0 {
		t.Fatalf("scroll clip missing:\n%s", out)
	}
	if !(clip < group && group < row && row < end) {
		t.Errorf("scroll children not inside clip group:\n%s", out)
	}
	if strings.Contains(out[:group], `id="frame-row-1"`) {
		t.Error("scroll child drawn before its clip group")
	}
}

func TestRenderOptions(t *testing.T) {
	t.Run("labels", func(t *testing.T) {
		out := string(Render(sampleResult(), WithLabels()))
		if !strings.Contains(out, `data-frame="sidebar"`) {
			t.Error("leaf label missing")
		}
		if strings.Contains(out, `data-frame="root"`) {
			t.Error("container labelled")
		}
	})

	t.Run("details", func(t *testing.T) {
		out := string(Render(sampleResult(), WithDetails()))
		if !strings.Contains(out, `data-frame="row-1"`) {
			t.Error("detailed label missing")
		}
	})

	t.Run("hidden", func(t *testing.T) {
		res := sampleResult()
		res.Frames[5].Width, res.Frames[5].Height = 50, 50
		out := string(Render(res, WithHidden()))
		if !strings.Contains(out, `id="frame-ghost"`) || !strings.Contains(out, "stroke-dasharray") {
			t.Error("hidden frame not drawn dashed")
		}
	})

	t.Run("filled", func(t *testing.T) {
		out := string(Render(sampleResult(), WithStyle(Filled{})))
		if !strings.Contains(out, `fill="#dfe9f3"`) {
			t.Error("depth fill missing")
		}
	})
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "outline", false},
		{"outline", "outline", false},
		{"filled", "filled", false},
		{"handdrawn", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseStyle(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStyle(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err == nil && s.Name() != tt.want {
				t.Errorf("ParseStyle(%q) = %q, want %q", tt.name, s.Name(), tt.want)
			}
		})
	}
}

func TestTruncateLabel(t *testing.T) {
	b := Box{Label: "a-rather-long-identifier", W: 40, H: 20}
	got := TruncateLabel(b)
	if len(got) >= len(b.Label) || !strings.HasSuffix(got, "..") {
		t.Errorf("TruncateLabel() = %q, want shortened label", got)
	}

	b = Box{Label: "ok", W: 200, H: 40}
	if got := TruncateLabel(b); got != "ok" {
		t.Errorf("TruncateLabel() = %q, want %q", got, "ok")
	}
}

func TestTinyFramesHaveNoLabel(t *testing.T) {
	var buf bytes.Buffer
	renderLabel(&buf, Box{ID: "x", Label: "x", W: 3, H: 3})
	if buf.Len() != 0 {
		t.Errorf("label drawn for 3x3 box: %s", buf.String())
	}
}
