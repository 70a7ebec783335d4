package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/panes/pkg/errors"
	"github.com/matzehuels/panes/pkg/geom"
)

// Node kinds.
const (
	KindPartition   = "partition"
	KindScroll      = "scroll"
	KindConditional = "conditional"
	KindLeaf        = "leaf"
)

// Defaults applied to documents that leave the values unset.
const (
	DefaultAdvance    = 8.0
	DefaultLineHeight = 16.0
)

// Document is a layout document.
type Document struct {
	Name  string  `toml:"name,omitempty" json:"name,omitempty"`
	Scale float64 `toml:"scale,omitempty" json:"scale,omitempty"`

	// Advance and LineHeight size the monospaced grid text leaves are
	// measured on.
	Advance    float64 `toml:"advance,omitempty" json:"advance,omitempty"`
	LineHeight float64 `toml:"line_height,omitempty" json:"line_height,omitempty"`

	Root Node `toml:"root" json:"root"`
}

// Node is one element of a document tree.
type Node struct {
	ID     string  `toml:"id,omitempty" json:"id,omitempty"`
	Kind   string  `toml:"kind" json:"kind"`
	Size   string  `toml:"size,omitempty" json:"size,omitempty"`
	Insets *Insets `toml:"insets,omitempty" json:"insets,omitempty"`
	Ref    string  `toml:"ref,omitempty" json:"ref,omitempty"`
	Hidden bool    `toml:"hidden,omitempty" json:"hidden,omitempty"`

	// Containers.
	Direction        string  `toml:"direction,omitempty" json:"direction,omitempty"`
	CompactDirection string  `toml:"compact_direction,omitempty" json:"compact_direction,omitempty"`
	Padding          *Insets `toml:"padding,omitempty" json:"padding,omitempty"`
	Children         []Node  `toml:"children,omitempty" json:"children,omitempty"`
	Groups           []Group `toml:"groups,omitempty" json:"groups,omitempty"`

	// Leaves.
	Width  float64 `toml:"width,omitempty" json:"width,omitempty"`
	Height float64 `toml:"height,omitempty" json:"height,omitempty"`
	Text   string  `toml:"text,omitempty" json:"text,omitempty"`
}

// Group is a predicate-guarded group of a conditional node.
type Group struct {
	Name     string `toml:"name,omitempty" json:"name"`
	When     string `toml:"when,omitempty" json:"when"`
	Children []Node `toml:"children,omitempty" json:"children,omitempty"`
}

// Insets are per-edge distances.
type Insets struct {
	Top    float64 `toml:"top,omitempty" json:"top,omitempty"`
	Left   float64 `toml:"left,omitempty" json:"left,omitempty"`
	Bottom float64 `toml:"bottom,omitempty" json:"bottom,omitempty"`
	Right  float64 `toml:"right,omitempty" json:"right,omitempty"`
}

// Geom converts e to engine insets. A nil receiver yields zero insets.
func (e *Insets) Geom() geom.Insets {
	if e == nil {
		return geom.Insets{}
	}
	return geom.Insets{Top: e.Top, Left: e.Left, Bottom: e.Bottom, Right: e.Right}
}

// Format is a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf guesses the format from a file extension, defaulting to TOML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatTOML
}

// ParseFormat parses "toml" or "json".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTOML, FormatJSON:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", s)
}

// Decode reads a document in the given format. Unknown keys are rejected.
// The document is not validated; call [Validate] or [Build].
func Decode(r io.Reader, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json")
		}
	case FormatTOML, "":
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown keys: %s", strings.Join(keys, ", "))
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", format)
	}
	return &doc, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*Document, error) {
	return Decode(bytes.NewReader(data), format)
}

// Load reads the document at path, picking the format from the extension.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Parse(data, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Encode writes doc in the given format.
func Encode(w io.Writer, doc *Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatTOML, "":
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", format)
}

// Canonical returns the compact JSON encoding of doc, used for hashing.
func Canonical(doc *Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

func (d *Document) advance() float64 {
	if d.Advance > 0 {
		return d.Advance
	}
	return DefaultAdvance
}

func (d *Document) lineHeight() float64 {
	if d.LineHeight > 0 {
		return d.LineHeight
	}
	return DefaultLineHeight
}
