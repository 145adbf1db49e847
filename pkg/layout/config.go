package layout

// Config carries the tunable parameters of every algorithm. Zero values mean
// "use the default", so a partially filled config file is enough.
type Config struct {
	Grid         GridConfig         `toml:"grid" json:"grid"`
	Hierarchical HierarchicalConfig `toml:"hierarchical" json:"hierarchical"`
	Force        ForceConfig        `toml:"force" json:"force"`
}

// GridConfig parameterizes the grid packer.
type GridConfig struct {
	CellWidth  float64 `toml:"cell_width" json:"cell_width,omitempty"`
	CellHeight float64 `toml:"cell_height" json:"cell_height,omitempty"`
	Margin     float64 `toml:"margin" json:"margin,omitempty"`
}

// HierarchicalConfig parameterizes the layered layout.
type HierarchicalConfig struct {
	HorizontalSpacing float64 `toml:"horizontal_spacing" json:"horizontal_spacing,omitempty"`
	VerticalSpacing   float64 `toml:"vertical_spacing" json:"vertical_spacing,omitempty"`
	NodeWidth         float64 `toml:"node_width" json:"node_width,omitempty"`
	Margin            float64 `toml:"margin" json:"margin,omitempty"`
	// AlignIterations is the number of parent/child centering passes.
	AlignIterations int `toml:"align_iterations" json:"align_iterations,omitempty"`
	// AlignBlend is the fraction each pass moves a node toward its
	// relatives' mean x.
	AlignBlend float64 `toml:"align_blend" json:"align_blend,omitempty"`
}

// ForceConfig parameterizes the physics simulation.
type ForceConfig struct {
	Iterations int `toml:"iterations" json:"iterations,omitempty"`
	// K is the ideal spring length; repulsion is K²/d and attraction d/K.
	K               float64 `toml:"k" json:"k,omitempty"`
	Gravity         float64 `toml:"gravity" json:"gravity,omitempty"`
	Damping         float64 `toml:"damping" json:"damping,omitempty"`
	MaxVelocity     float64 `toml:"max_velocity" json:"max_velocity,omitempty"`
	Margin          float64 `toml:"margin" json:"margin,omitempty"`
	VerticalSpacing float64 `toml:"vertical_spacing" json:"vertical_spacing,omitempty"`
}

// Defaults.
const (
	DefaultCellWidth  = 250.0
	DefaultCellHeight = 200.0
	DefaultMargin     = 50.0

	DefaultHorizontalSpacing = 200.0
	DefaultVerticalSpacing   = 150.0
	DefaultNodeWidth         = 200.0
	DefaultAlignIterations   = 3
	DefaultAlignBlend        = 0.3

	DefaultIterations  = 100
	DefaultK           = 100.0
	DefaultGravity     = 0.1
	DefaultDamping     = 0.9
	DefaultMaxVelocity = 10.0
)

// DefaultConfig returns a config with every default applied.
func DefaultConfig() Config {
	var c Config
	c.SetDefaults()
	return c
}

// SetDefaults fills zero fields with defaults.
func (c *Config) SetDefaults() {
	c.Grid.SetDefaults()
	c.Hierarchical.SetDefaults()
	c.Force.SetDefaults()
}

// SetDefaults fills zero fields with defaults.
func (c *GridConfig) SetDefaults() {
	setFloat(&c.CellWidth, DefaultCellWidth)
	setFloat(&c.CellHeight, DefaultCellHeight)
	setFloat(&c.Margin, DefaultMargin)
}

// SetDefaults fills zero fields with defaults.
func (c *HierarchicalConfig) SetDefaults() {
	setFloat(&c.HorizontalSpacing, DefaultHorizontalSpacing)
	setFloat(&c.VerticalSpacing, DefaultVerticalSpacing)
	setFloat(&c.NodeWidth, DefaultNodeWidth)
	setFloat(&c.Margin, DefaultMargin)
	setInt(&c.AlignIterations, DefaultAlignIterations)
	setFloat(&c.AlignBlend, DefaultAlignBlend)
}

// SetDefaults fills zero fields with defaults.
func (c *ForceConfig) SetDefaults() {
	setInt(&c.Iterations, DefaultIterations)
	setFloat(&c.K, DefaultK)
	setFloat(&c.Gravity, DefaultGravity)
	setFloat(&c.Damping, DefaultDamping)
	setFloat(&c.MaxVelocity, DefaultMaxVelocity)
	setFloat(&c.Margin, DefaultMargin)
	setFloat(&c.VerticalSpacing, DefaultVerticalSpacing)
}

func setFloat(p *float64, def float64) {
	if *p <= 0 {
		*p = def
	}
}

func setInt(p *int, def int) {
	if *p <= 0 {
		*p = def
	}
}
