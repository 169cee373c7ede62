package plan

import (
	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphsvg/pkg/attr"
	"github.com/matzehuels/graphsvg/pkg/color"
	"github.com/matzehuels/graphsvg/pkg/errors"
	"github.com/matzehuels/graphsvg/pkg/layout"
)

// Name positions relative to the node.
const (
	NameRight = "right"
	NameLeft  = "left"
	NameAbove = "above"
	NameBelow = "below"
)

// ValidNamePositions lists the accepted values of [Style.NamePosition].
var ValidNamePositions = map[string]bool{
	NameRight: true,
	NameLeft:  true,
	NameAbove: true,
	NameBelow: true,
}

// Style holds the display settings shared by all graph kinds.
//
// Sizes are in SVG user units. Width and Height describe the drawing area;
// the canvas grows by the margin, the largest node radius and the space
// needed for names. A zero Height derives the height from the layout.
type Style struct {
	Width      float64 `json:"width" toml:"width"`
	Height     float64 `json:"height" toml:"height"`
	Margin     float64 `json:"margin" toml:"margin"`
	MarginText float64 `json:"margin_text" toml:"margin_text"`
	Scale      float64 `json:"scale" toml:"scale"`

	NodeSize          float64 `json:"node_size" toml:"node_size"`
	NodeSizeMin       float64 `json:"node_size_min" toml:"node_size_min"`
	NodeSizeMax       float64 `json:"node_size_max" toml:"node_size_max"`
	NodeWidth         float64 `json:"node_width" toml:"node_width"`
	NodeWidthMax      float64 `json:"node_width_max" toml:"node_width_max"`
	DisplayNodeWeight bool    `json:"display_node_weight" toml:"display_node_weight"`

	EdgeWidth         float64 `json:"edge_width" toml:"edge_width"`
	EdgeWidthMin      float64 `json:"edge_width_min" toml:"edge_width_min"`
	EdgeWidthMax      float64 `json:"edge_width_max" toml:"edge_width_max"`
	EdgeColor         string  `json:"edge_color" toml:"edge_color"`
	DisplayEdges      bool    `json:"display_edges" toml:"display_edges"`
	DisplayEdgeWeight bool    `json:"display_edge_weight" toml:"display_edge_weight"`

	FontSize     float64 `json:"font_size" toml:"font_size"`
	NamePosition string  `json:"name_position" toml:"name_position"`

	// LabelColors replaces (dense) or overrides entries of (sparse) the
	// default label palette.
	LabelColors attr.Attribute[string] `json:"label_colors" toml:"label_colors"`
}

// DefaultStyle returns the default display settings.
func DefaultStyle() Style {
	return Style{
		Width:             400,
		Height:            300,
		Margin:            20,
		MarginText:        3,
		Scale:             1,
		NodeSize:          7,
		NodeSizeMin:       1,
		NodeSizeMax:       20,
		NodeWidth:         1,
		NodeWidthMax:      3,
		EdgeWidth:         1,
		EdgeWidthMin:      0.5,
		EdgeWidthMax:      20,
		EdgeColor:         "black",
		DisplayEdges:      true,
		DisplayEdgeWeight: true,
		FontSize:          12,
		NamePosition:      NameRight,
	}
}

// Validate checks sizes, bounds, colors and the name position.
func (s Style) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"width", s.Width},
		{"height", s.Height},
		{"margin", s.Margin},
		{"margin_text", s.MarginText},
		{"scale", s.Scale},
		{"node_size", s.NodeSize},
		{"node_width", s.NodeWidth},
		{"edge_width", s.EdgeWidth},
		{"font_size", s.FontSize},
	} {
		if err := errors.ValidateNonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	if s.Scale == 0 {
		return errors.New(errors.ErrCodeInvalidAttribute, "scale must be positive")
	}
	if err := errors.ValidateBounds("node_size", s.NodeSizeMin, s.NodeSizeMax); err != nil {
		return err
	}
	if err := errors.ValidateBounds("node_width", s.NodeWidth, s.NodeWidthMax); err != nil {
		return err
	}
	if err := errors.ValidateBounds("edge_width", s.EdgeWidthMin, s.EdgeWidthMax); err != nil {
		return err
	}
	if err := color.Validate("edge_color", s.EdgeColor); err != nil {
		return err
	}
	if !ValidNamePositions[s.NamePosition] {
		return errors.New(errors.ErrCodeInvalidAttribute, "name_position must be one of right, left, above, below, got %q", s.NamePosition)
	}
	return nil
}

// EdgeLabel assigns a palette label to the edge Source -> Target. For a
// bigraph, Source is a row and Target a column.
type EdgeLabel struct {
	Source int `json:"source" toml:"source"`
	Target int `json:"target" toml:"target"`
	Label  int `json:"label" toml:"label"`
}

// Options configures the rendering of a graph or digraph.
type Options struct {
	Style

	Names       attr.Attribute[string]
	Labels      attr.Attribute[int]
	Scores      attr.Attribute[float64]
	Membership  mat.Matrix // n x k, non-negative
	Seeds       []int
	NodeWeights []float64
	NodeOrder   []int // draw order, a permutation of node indices
	NodeColor   string
	EdgeLabels  []EdgeLabel

	// Seed drives the spring layout when no positions are given.
	Seed       uint64
	Iterations int
}

// DefaultOptions returns options with every display default set.
func DefaultOptions() Options {
	return Options{
		Style:     DefaultStyle(),
		NodeColor: "gray",
		Seed:      layout.DefaultSeed,
	}
}

// BigraphOptions configures the rendering of a bipartite graph.
type BigraphOptions struct {
	Style

	NamesRow, NamesCol             attr.Attribute[string]
	LabelsRow, LabelsCol           attr.Attribute[int]
	ScoresRow, ScoresCol           attr.Attribute[float64]
	MembershipRow, MembershipCol   mat.Matrix
	SeedsRow, SeedsCol             []int
	NodeWeightsRow, NodeWeightsCol []float64
	PositionRow, PositionCol       mat.Matrix // both or neither
	ColorRow, ColorCol             string
	EdgeLabels                     []EdgeLabel

	// Reorder permutes each side to reduce edge crossings. Ignored when
	// positions are given.
	Reorder bool
}

// DefaultBigraphOptions returns bigraph options with every display default set.
func DefaultBigraphOptions() BigraphOptions {
	s := DefaultStyle()
	s.EdgeWidthMax = 10
	return BigraphOptions{
		Style:    s,
		ColorRow: "gray",
		ColorCol: "gray",
		Reorder:  true,
	}
}
