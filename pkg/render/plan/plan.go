package plan

// Text anchors, as in the SVG text-anchor attribute.
const (
	AnchorStart  = "start"
	AnchorMiddle = "middle"
	AnchorEnd    = "end"
)

// Plan is a fully resolved drawing. It is produced by [ResolveGraph] or
// [ResolveBigraph] and is not modified afterwards.
type Plan struct {
	// Width and Height are the logical canvas size (the viewBox).
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Scale multiplies the rendered width and height.
	Scale float64 `json:"scale"`

	Directed  bool `json:"directed"`
	Bipartite bool `json:"bipartite"`
	// Rows is the number of row nodes of a bigraph. Row nodes come first in
	// Nodes, followed by the column nodes.
	Rows int `json:"rows,omitempty"`

	FontSize   float64 `json:"font_size"`
	NodeStroke string  `json:"node_stroke"`

	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	// Order lists node indices in drawing order, back to front.
	Order []int `json:"order"`
}

// Node is a resolved node.
type Node struct {
	Index       int     `json:"index"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Radius      float64 `json:"radius"`
	Fill        string  `json:"fill"`
	StrokeWidth float64 `json:"stroke_width"`
	Seed        bool    `json:"seed,omitempty"`

	Name       string  `json:"name,omitempty"`
	NameX      float64 `json:"name_x,omitempty"`
	NameY      float64 `json:"name_y,omitempty"`
	NameAnchor string  `json:"name_anchor,omitempty"`
}

// Edge is a resolved edge between two entries of [Plan.Nodes].
type Edge struct {
	Source  int     `json:"source"`
	Target  int     `json:"target"`
	Weight  float64 `json:"weight"`
	Width   float64 `json:"width"`
	Color   string  `json:"color"`
	Labeled bool    `json:"labeled,omitempty"`
}

// ScaledSize returns the rendered width and height.
func (p *Plan) ScaledSize() (float64, float64) {
	return p.Width * p.Scale, p.Height * p.Scale
}

// EdgeColors returns the distinct edge colors in first-use order.
func (p *Plan) EdgeColors() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range p.Edges {
		if !seen[e.Color] {
			seen[e.Color] = true
			out = append(out, e.Color)
		}
	}
	return out
}
