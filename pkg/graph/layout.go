package graph

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/graphsvg/pkg/errors"
	"github.com/matzehuels/graphsvg/pkg/render/plan"
)

// =============================================================================
// Layout - Resolved Drawing Format
// =============================================================================

// Layout is the serialization format for a resolved drawing: the document
// kind plus every node position, size and color computed by the resolver.
//
// Sinks can be driven from a Layout without resolving the document again;
// [Layout.Plan] returns the drawing plan it was built from.
type Layout struct {
	Kind string `json:"kind"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`

	// Rows is the number of row nodes of a bigraph.
	Rows       int     `json:"rows,omitempty"`
	FontSize   float64 `json:"font_size"`
	NodeStroke string  `json:"node_stroke"`

	Nodes []plan.Node `json:"nodes"`
	Edges []plan.Edge `json:"edges"`
	Order []int       `json:"order"`
}

// FromPlan converts a drawing plan to its serialization format.
func FromPlan(p *plan.Plan) Layout {
	kind := KindGraph
	switch {
	case p.Bipartite:
		kind = KindBigraph
	case p.Directed:
		kind = KindDigraph
	}
	return Layout{
		Kind:       kind,
		Width:      p.Width,
		Height:     p.Height,
		Scale:      p.Scale,
		Rows:       p.Rows,
		FontSize:   p.FontSize,
		NodeStroke: p.NodeStroke,
		Nodes:      p.Nodes,
		Edges:      p.Edges,
		Order:      p.Order,
	}
}

// Plan returns the drawing plan described by l.
func (l Layout) Plan() *plan.Plan {
	return &plan.Plan{
		Width:      l.Width,
		Height:     l.Height,
		Scale:      l.Scale,
		Directed:   l.Kind == KindDigraph,
		Bipartite:  l.Kind == KindBigraph,
		Rows:       l.Rows,
		FontSize:   l.FontSize,
		NodeStroke: l.NodeStroke,
		Nodes:      l.Nodes,
		Edges:      l.Edges,
		Order:      l.Order,
	}
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// It checks the kind, the scale and that edges and the draw order refer to
// existing nodes.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if !ValidKinds[l.Kind] {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "layout kind must be one of graph, digraph, bigraph, got %q", l.Kind)
	}
	if l.Scale <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidAttribute, "layout scale must be positive, got %g", l.Scale)
	}
	n := len(l.Nodes)
	for _, e := range l.Edges {
		if err := errors.ValidateIndex("layout edge source", e.Source, n); err != nil {
			return Layout{}, err
		}
		if err := errors.ValidateIndex("layout edge target", e.Target, n); err != nil {
			return Layout{}, err
		}
	}
	if err := errors.ValidateLength("layout order", len(l.Order), n); err != nil {
		return Layout{}, err
	}
	for _, i := range l.Order {
		if err := errors.ValidateIndex("layout order", i, n); err != nil {
			return Layout{}, err
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Layout{}, errors.New(errors.ErrCodeFileNotFound, "file not found: %s", path)
	}
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return UnmarshalLayout(data)
}
