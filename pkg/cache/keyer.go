package cache

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey is the key of a laid-out result computed from the document
	// with the given content hash.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey is the key of a rendered artifact of the layout with the
	// given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
	Traits string  `json:"traits"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Style   string `json:"style,omitempty"`
	Labels  bool   `json:"labels,omitempty"`
	Details bool   `json:"details,omitempty"`
	Hidden  bool   `json:"hidden,omitempty"`
}

// DefaultKeyer produces "layout:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
