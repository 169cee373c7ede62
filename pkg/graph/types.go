package graph

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphsvg/pkg/attr"
	"github.com/matzehuels/graphsvg/pkg/errors"
	"github.com/matzehuels/graphsvg/pkg/matrix"
	"github.com/matzehuels/graphsvg/pkg/render/plan"
)

// =============================================================================
// Constants
// =============================================================================

// Document kinds.
const (
	KindGraph   = "graph"
	KindDigraph = "digraph"
	KindBigraph = "bigraph"
)

// MaxNodes bounds the node count of a graph and of each side of a bigraph.
const MaxNodes = 5000

// ValidKinds lists the accepted values of [Document.Kind].
var ValidKinds = map[string]bool{
	KindGraph:   true,
	KindDigraph: true,
	KindBigraph: true,
}

// =============================================================================
// Document - Graph Input Format
// =============================================================================

// Document is the file and wire format for a graph and its node attributes.
//
// Graphs and digraphs use the unsuffixed attribute fields; bigraphs use the
// Row and Col variants. Attribute fields accept either an array (one value
// per node) or an object keyed by node index.
type Document struct {
	Kind string `json:"kind" toml:"kind"`

	// Nodes is the node count of a graph or digraph. When zero it is taken
	// from the positions, then from the largest edge endpoint.
	Nodes int `json:"nodes,omitempty" toml:"nodes"`
	// Rows and Cols are the node counts of a bigraph, inferred the same way.
	Rows int `json:"rows,omitempty" toml:"rows"`
	Cols int `json:"cols,omitempty" toml:"cols"`

	Edges []Edge `json:"edges,omitempty" toml:"edges"`

	Positions   [][]float64 `json:"positions,omitempty" toml:"positions"`
	PositionRow [][]float64 `json:"position_row,omitempty" toml:"position_row"`
	PositionCol [][]float64 `json:"position_col,omitempty" toml:"position_col"`

	Names       attr.Attribute[string]  `json:"names,omitzero" toml:"names"`
	Labels      attr.Attribute[int]     `json:"labels,omitzero" toml:"labels"`
	Scores      attr.Attribute[float64] `json:"scores,omitzero" toml:"scores"`
	Membership  [][]float64             `json:"membership,omitempty" toml:"membership"`
	Seeds       SeedSet                 `json:"seeds,omitempty" toml:"seeds"`
	NodeWeights []float64               `json:"node_weights,omitempty" toml:"node_weights"`
	NodeOrder   []int                   `json:"node_order,omitempty" toml:"node_order"`

	NamesRow       attr.Attribute[string]  `json:"names_row,omitzero" toml:"names_row"`
	NamesCol       attr.Attribute[string]  `json:"names_col,omitzero" toml:"names_col"`
	LabelsRow      attr.Attribute[int]     `json:"labels_row,omitzero" toml:"labels_row"`
	LabelsCol      attr.Attribute[int]     `json:"labels_col,omitzero" toml:"labels_col"`
	ScoresRow      attr.Attribute[float64] `json:"scores_row,omitzero" toml:"scores_row"`
	ScoresCol      attr.Attribute[float64] `json:"scores_col,omitzero" toml:"scores_col"`
	MembershipRow  [][]float64             `json:"membership_row,omitempty" toml:"membership_row"`
	MembershipCol  [][]float64             `json:"membership_col,omitempty" toml:"membership_col"`
	SeedsRow       SeedSet                 `json:"seeds_row,omitempty" toml:"seeds_row"`
	SeedsCol       SeedSet                 `json:"seeds_col,omitempty" toml:"seeds_col"`
	NodeWeightsRow []float64               `json:"node_weights_row,omitempty" toml:"node_weights_row"`
	NodeWeightsCol []float64               `json:"node_weights_col,omitempty" toml:"node_weights_col"`

	EdgeLabels []plan.EdgeLabel `json:"edge_labels,omitempty" toml:"edge_labels"`
}

// Edge is a weighted edge. For a bigraph Source is a row and Target a
// column. A missing weight counts as 1.
type Edge struct {
	Source int      `json:"source" toml:"source"`
	Target int      `json:"target" toml:"target"`
	Weight *float64 `json:"weight,omitempty" toml:"weight"`
}

// EdgeWeight returns the weight of e, defaulting to 1.
func (e Edge) EdgeWeight() float64 {
	if e.Weight == nil {
		return 1
	}
	return *e.Weight
}

// SeedSet lists seed node indices. It decodes from an array of indices or
// from an object mapping index to category, whose keys are the seeds.
type SeedSet []int

// UnmarshalJSON accepts an array of indices or an object keyed by index.
func (s *SeedSet) UnmarshalJSON(data []byte) error {
	if data = bytes.TrimSpace(data); len(data) > 0 && data[0] == '{' {
		var categories attr.Attribute[int]
		if err := categories.UnmarshalJSON(data); err != nil {
			return err
		}
		*s = slices.Sorted(maps.Keys(categories.Mapping()))
		return nil
	}
	var indices []int
	if err := json.Unmarshal(data, &indices); err != nil {
		return err
	}
	*s = indices
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (s *SeedSet) UnmarshalTOML(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.UnmarshalJSON(data)
}

// IsBipartite reports whether d describes a bigraph.
func (d *Document) IsBipartite() bool { return d.Kind == KindBigraph }

// IsDirected reports whether d describes a digraph.
func (d *Document) IsDirected() bool { return d.Kind == KindDigraph }

// NodeCount returns the number of nodes of a graph or digraph.
func (d *Document) NodeCount() int {
	if d.Nodes > 0 {
		return d.Nodes
	}
	if len(d.Positions) > 0 {
		return len(d.Positions)
	}
	return max(endpoint(d.Edges, true), endpoint(d.Edges, false))
}

// Shape returns the matrix dimensions: n x n for graphs, rows x cols for
// bigraphs.
func (d *Document) Shape() (int, int) {
	if !d.IsBipartite() {
		n := d.NodeCount()
		return n, n
	}
	rows, cols := d.Rows, d.Cols
	if rows == 0 {
		rows = len(d.PositionRow)
	}
	if rows == 0 {
		rows = endpoint(d.Edges, true)
	}
	if cols == 0 {
		cols = len(d.PositionCol)
	}
	if cols == 0 {
		cols = endpoint(d.Edges, false)
	}
	return rows, cols
}

// endpoint returns one more than the largest source (or target) index.
func endpoint(edges []Edge, source bool) int {
	n := 0
	for _, e := range edges {
		i := e.Target
		if source {
			i = e.Source
		}
		n = max(n, i+1)
	}
	return n
}

// =============================================================================
// Validation and Conversion
// =============================================================================

// Validate checks the kind, the node counts, the edges and the shape of every
// matrix-valued field. Attribute values are checked when the document is
// resolved into a plan.
func (d *Document) Validate() error {
	if !ValidKinds[d.Kind] {
		return errors.New(errors.ErrCodeInvalidInput, "kind must be one of graph, digraph, bigraph, got %q", d.Kind)
	}
	for _, c := range []struct {
		name string
		v    int
	}{{"nodes", d.Nodes}, {"rows", d.Rows}, {"cols", d.Cols}} {
		if c.v < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be non-negative, got %d", c.name, c.v)
		}
	}
	if _, err := d.Matrix(); err != nil {
		return err
	}
	rows, cols := d.Shape()
	if d.IsBipartite() {
		if (len(d.PositionRow) == 0) != (len(d.PositionCol) == 0) {
			return errors.New(errors.ErrCodeInvalidInput, "position_row and position_col must be given together")
		}
		for _, f := range []struct {
			name  string
			v     [][]float64
			n     int
			width int
		}{
			{"position_row", d.PositionRow, rows, 2},
			{"position_col", d.PositionCol, cols, 2},
			{"membership_row", d.MembershipRow, rows, 0},
			{"membership_col", d.MembershipCol, cols, 0},
		} {
			if _, err := dense(f.name, f.v, f.n, f.width); err != nil {
				return err
			}
		}
		return nil
	}
	if _, err := dense("positions", d.Positions, rows, 2); err != nil {
		return err
	}
	_, err := dense("membership", d.Membership, rows, 0)
	return err
}

// Matrix builds the adjacency (or biadjacency) matrix. Repeated edges are
// summed.
func (d *Document) Matrix() (*matrix.CSR, error) {
	rows, cols := d.Shape()
	if rows > MaxNodes || cols > MaxNodes {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph of %dx%d nodes exceeds the limit of %d per side", rows, cols, MaxNodes)
	}
	entries := make([]matrix.Entry, len(d.Edges))
	for i, e := range d.Edges {
		entries[i] = matrix.Entry{Row: e.Source, Col: e.Target, Weight: e.EdgeWeight()}
	}
	return matrix.New(rows, cols, entries)
}

// GraphOptions returns base with the document's node attributes applied.
// Fields the document leaves empty keep their value from base.
func (d *Document) GraphOptions(base plan.Options) (plan.Options, error) {
	if d.IsBipartite() {
		return base, errors.New(errors.ErrCodeInvalidInput, "bigraph document has no graph options")
	}
	n := d.NodeCount()
	opts := base
	if !d.Names.IsAbsent() {
		opts.Names = d.Names
	}
	if !d.Labels.IsAbsent() {
		opts.Labels = d.Labels
	}
	if !d.Scores.IsAbsent() {
		opts.Scores = d.Scores
	}
	if len(d.Membership) > 0 {
		m, err := dense("membership", d.Membership, n, 0)
		if err != nil {
			return base, err
		}
		opts.Membership = m
	}
	opts.Seeds = pick([]int(d.Seeds), base.Seeds)
	opts.NodeWeights = pick(d.NodeWeights, base.NodeWeights)
	opts.NodeOrder = pick(d.NodeOrder, base.NodeOrder)
	opts.EdgeLabels = pick(d.EdgeLabels, base.EdgeLabels)
	return opts, nil
}

// BigraphOptions returns base with the document's row and column attributes
// applied. Fields the document leaves empty keep their value from base.
func (d *Document) BigraphOptions(base plan.BigraphOptions) (plan.BigraphOptions, error) {
	if !d.IsBipartite() {
		return base, errors.New(errors.ErrCodeInvalidInput, "%s document has no bigraph options", d.Kind)
	}
	rows, cols := d.Shape()
	opts := base
	if !d.NamesRow.IsAbsent() {
		opts.NamesRow = d.NamesRow
	}
	if !d.NamesCol.IsAbsent() {
		opts.NamesCol = d.NamesCol
	}
	if !d.LabelsRow.IsAbsent() {
		opts.LabelsRow = d.LabelsRow
	}
	if !d.LabelsCol.IsAbsent() {
		opts.LabelsCol = d.LabelsCol
	}
	if !d.ScoresRow.IsAbsent() {
		opts.ScoresRow = d.ScoresRow
	}
	if !d.ScoresCol.IsAbsent() {
		opts.ScoresCol = d.ScoresCol
	}

	var err error
	if len(d.MembershipRow) > 0 {
		if opts.MembershipRow, err = dense("membership_row", d.MembershipRow, rows, 0); err != nil {
			return base, err
		}
	}
	if len(d.MembershipCol) > 0 {
		if opts.MembershipCol, err = dense("membership_col", d.MembershipCol, cols, 0); err != nil {
			return base, err
		}
	}
	if len(d.PositionRow) > 0 {
		if opts.PositionRow, err = dense("position_row", d.PositionRow, rows, 2); err != nil {
			return base, err
		}
	}
	if len(d.PositionCol) > 0 {
		if opts.PositionCol, err = dense("position_col", d.PositionCol, cols, 2); err != nil {
			return base, err
		}
	}

	opts.SeedsRow = pick([]int(d.SeedsRow), base.SeedsRow)
	opts.SeedsCol = pick([]int(d.SeedsCol), base.SeedsCol)
	opts.NodeWeightsRow = pick(d.NodeWeightsRow, base.NodeWeightsRow)
	opts.NodeWeightsCol = pick(d.NodeWeightsCol, base.NodeWeightsCol)
	opts.EdgeLabels = pick(d.EdgeLabels, base.EdgeLabels)
	return opts, nil
}

// PositionMatrix returns the node positions of a graph or digraph as an
// n x 2 matrix, or nil when the document has none.
func (d *Document) PositionMatrix() (mat.Matrix, error) {
	if len(d.Positions) == 0 {
		return nil, nil
	}
	m, err := dense("positions", d.Positions, d.NodeCount(), 2)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// dense converts rows to an n x width matrix. A zero width accepts any
// common row length. Empty input yields a nil matrix.
func dense(name string, rows [][]float64, n, width int) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	if err := errors.ValidateLength(name, len(rows), n); err != nil {
		return nil, err
	}
	if width == 0 {
		width = len(rows[0])
		if width == 0 {
			return nil, errors.New(errors.ErrCodeDimensionMismatch, "%s rows must not be empty", name)
		}
	}
	data := make([]float64, 0, n*width)
	for i, r := range rows {
		if len(r) != width {
			return nil, errors.New(errors.ErrCodeDimensionMismatch, "%s row %d has %d values, want %d", name, i, len(r), width)
		}
		data = append(data, r...)
	}
	return mat.NewDense(n, width, data), nil
}

func pick[T any](v, fallback []T) []T {
	if len(v) > 0 {
		return slices.Clone(v)
	}
	return fallback
}

// =============================================================================
// Matrix -> Document
// =============================================================================

// FromMatrix returns a document of the given kind holding the edges of m.
func FromMatrix(kind string, m *matrix.CSR) (*Document, error) {
	if !ValidKinds[kind] {
		return nil, errors.New(errors.ErrCodeInvalidInput, "kind must be one of graph, digraph, bigraph, got %q", kind)
	}
	rows, cols := m.Dims()
	d := &Document{Kind: kind}
	if kind == KindBigraph {
		d.Rows, d.Cols = rows, cols
	} else {
		if rows != cols {
			return nil, errors.New(errors.ErrCodeDimensionMismatch, "%s adjacency must be square, got %dx%d", kind, rows, cols)
		}
		d.Nodes = rows
	}
	for _, e := range m.Entries() {
		w := e.Weight
		d.Edges = append(d.Edges, Edge{Source: e.Row, Target: e.Col, Weight: &w})
	}
	return d, nil
}
