package cache

// Keyer builds cache keys. Keys are namespaced by kind so different entry
// types never collide.
type Keyer interface {
	// LayoutKey identifies a resolved layout.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered output file.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes the resolved layout.
type LayoutKeyOpts struct {
	// OptionsHash is a hash of the serialized render options.
	OptionsHash string `json:"options_hash"`
	Seed        uint64 `json:"seed"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact of a
// given layout.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Engine string  `json:"engine"`
	Scale  float64 `json:"scale"`
	Title  string  `json:"title,omitempty"`
}

// DefaultKeyer produces keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:" followed by a hash of the inputs.
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey returns "artifact:" followed by a hash of the inputs.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
