package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/panes/pkg/document"
	"github.com/matzehuels/panes/pkg/errors"
	"github.com/matzehuels/panes/pkg/render"
	"github.com/matzehuels/panes/pkg/render/dot"
	"github.com/matzehuels/panes/pkg/render/svg"
	"github.com/matzehuels/panes/pkg/render/tree"
)

// Render generates output artifacts in the requested formats. It does not
// touch any cache.
func Render(ctx context.Context, res *document.Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case render.FormatSVG:
			data, err = renderSVG(res, opts)
		case render.FormatDOT:
			data = []byte(dot.ToDOT(res, dot.Options{Detailed: opts.Details}))
		case render.FormatDOTSVG:
			data, err = dot.RenderSVG(ctx, dot.ToDOT(res, dot.Options{Detailed: opts.Details}))
		case render.FormatJSON:
			data, err = MarshalResult(res)
		case render.FormatTree:
			data = []byte(tree.Render(res, tree.Options{Frames: opts.Details, Hidden: opts.Hidden}))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderSVG(res *document.Result, opts Options) ([]byte, error) {
	style, err := svg.ParseStyle(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []svg.Option{svg.WithStyle(style)}
	if opts.Labels {
		svgOpts = append(svgOpts, svg.WithLabels())
	}
	if opts.Details {
		svgOpts = append(svgOpts, svg.WithDetails())
	}
	if opts.Hidden {
		svgOpts = append(svgOpts, svg.WithHidden())
	}
	return svg.Render(res, svgOpts...), nil
}

// MarshalResult encodes res as indented JSON.
func MarshalResult(res *document.Result) ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}

// UnmarshalResult decodes a result encoded by MarshalResult.
func UnmarshalResult(data []byte) (*document.Result, error) {
	var res document.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
