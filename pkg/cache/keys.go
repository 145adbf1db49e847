package cache

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for the positions computed for a diagram.
	LayoutKey(diagramHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for a rendered artifact of a laid-out
	// diagram.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the settings that change a layout result.
type LayoutKeyOpts struct {
	Algorithm string  `json:"algorithm"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	// ConfigHash identifies the algorithm parameters in effect.
	ConfigHash string `json:"config_hash,omitempty"`
}

// ArtifactKeyOpts are the settings that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(diagramHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", diagramHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
