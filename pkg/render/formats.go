package render

import (
	"slices"

	"github.com/matzehuels/panes/pkg/errors"
)

// Output formats.
const (
	FormatSVG    = "svg"     // Frames as SVG
	FormatDOT    = "dot"     // Hierarchy as Graphviz source
	FormatDOTSVG = "dot.svg" // Hierarchy rendered by Graphviz
	FormatJSON   = "json"    // The Result itself
	FormatTree   = "tree"    // Hierarchy as a text tree
)

// Formats lists every supported output format.
var Formats = []string{FormatSVG, FormatDOT, FormatDOTSVG, FormatJSON, FormatTree}

// ValidateFormats checks that every entry is a supported format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(Formats, f) {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (valid: %v)", f, Formats)
		}
	}
	return nil
}

// Extension returns the file extension, including the dot, for format.
func Extension(format string) string {
	switch format {
	case FormatTree:
		return ".txt"
	case FormatDOTSVG:
		return ".dot.svg"
	default:
		return "." + format
	}
}
