// Package pipeline provides the load → layout → render pipeline for panes.
//
// This package implements the complete pipeline that the CLI and the HTTP
// server share, so both entry points cache, log and validate the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode and validate a layout document (TOML or JSON)
//  2. Layout: Build the engine tree, lay it out at a viewport with a traits
//     snapshot and export the frames as a [document.Result]
//  3. Render: Generate outputs (SVG, DOT, JSON, text tree)
//
// Layout results and rendered artifacts are cached under keys derived from
// the document's content hash and the options that affect each stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	doc, err := runner.Load(ctx, "mail.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Width:   1024,
//	    Height:  768,
//	    Formats: []string{"svg", "tree"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/panes/pkg/cache"
	"github.com/matzehuels/panes/pkg/document"
	"github.com/matzehuels/panes/pkg/errors"
	"github.com/matzehuels/panes/pkg/geom"
	"github.com/matzehuels/panes/pkg/layout"
	"github.com/matzehuels/panes/pkg/render"
	"github.com/matzehuels/panes/pkg/render/svg"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default viewport width in points.
	DefaultWidth = 1024.0

	// DefaultHeight is the default viewport height in points.
	DefaultHeight = 768.0

	// DefaultStyle is the default SVG style.
	DefaultStyle = svg.DefaultStyle
)

// DefaultFormats are rendered when no format is requested.
var DefaultFormats = []string{render.FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	// Scale overrides the document's display scale when positive.
	Scale float64 `json:"scale,omitempty"`
	// Horizontal and Vertical force a size class ("compact" or "regular").
	// Empty classes are derived from the viewport.
	Horizontal string `json:"horizontal,omitempty"`
	Vertical   string `json:"vertical,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Labels  bool     `json:"labels,omitempty"`
	Details bool     `json:"details,omitempty"`
	Hidden  bool     `json:"hidden,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the laid-out document.
	Document *document.Document

	// DocHash is the content hash of the canonical document.
	DocHash string

	// Layout holds the exported frames.
	Layout *document.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FrameCount int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidViewport, "viewport %gx%g must be positive", o.Width, o.Height)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g must not be negative", o.Scale)
	}
	for _, c := range []string{o.Horizontal, o.Vertical} {
		if _, err := layout.ParseSizeClass(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid size class")
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if err := render.ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := svg.ParseStyle(o.Style); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Viewport returns the layout viewport.
func (o *Options) Viewport() geom.Size {
	return geom.Size{Width: o.Width, Height: o.Height}
}

// Traits returns the traits the layout runs with: forced size classes where
// set, otherwise classified from the viewport.
func (o *Options) Traits() layout.Traits {
	t := layout.ClassifySize(o.Viewport())
	if c, err := layout.ParseSizeClass(o.Horizontal); err == nil && c != layout.SizeClassUnspecified {
		t.Horizontal = c
	}
	if c, err := layout.ParseSizeClass(o.Vertical); err == nil && c != layout.SizeClassUnspecified {
		t.Vertical = c
	}
	return t
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		Scale:  o.Scale,
		Traits: o.Traits().String(),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Style:   o.Style,
		Labels:  o.Labels,
		Details: o.Details,
		Hidden:  o.Hidden,
	}
}
