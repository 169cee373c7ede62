package plan

import (
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphsvg/pkg/color"
	"github.com/matzehuels/graphsvg/pkg/errors"
	"github.com/matzehuels/graphsvg/pkg/layout"
	"github.com/matzehuels/graphsvg/pkg/matrix"
)

// ResolveGraph builds the plan of a graph (directed=false) or digraph.
//
// adjacency is a square matrix of non-negative weights; positions is an
// n x 2 matrix of coordinates. Either may be nil, not both. Without
// positions, nodes are placed by a spring layout seeded with opts.Seed.
// Without adjacency, only nodes are drawn; edge labels are still checked.
func ResolveGraph(adjacency, positions mat.Matrix, directed bool, opts Options) (*Plan, error) {
	adj, err := validCSR("adjacency", adjacency)
	if err != nil {
		return nil, err
	}
	hasPositions := !matrix.IsNil(positions)
	if adj == nil && !hasPositions {
		return nil, errors.New(errors.ErrCodeInvalidInput, "either adjacency or positions is required")
	}
	if adj != nil && !adj.IsSquare() {
		r, c := adj.Dims()
		return nil, errors.New(errors.ErrCodeDimensionMismatch, "adjacency must be square, got %dx%d", r, c)
	}
	if err := opts.Style.Validate(); err != nil {
		return nil, err
	}

	n := -1
	if adj != nil {
		n, _ = adj.Dims()
	}
	var points []r2.Vec
	if hasPositions {
		if points, err = readPositions("positions", positions, n); err != nil {
			return nil, err
		}
		n = len(points)
	}

	names, _, err := opts.Names.Resolve("names", n, "")
	if err != nil {
		return nil, err
	}
	seeds, err := seedMask("seeds", opts.Seeds, n)
	if err != nil {
		return nil, err
	}
	order, err := drawOrder(opts.NodeOrder, n)
	if err != nil {
		return nil, err
	}
	if err := validateEdgeLabels(opts.EdgeLabels, n, n); err != nil {
		return nil, err
	}
	palette, err := color.Palette(opts.LabelColors)
	if err != nil {
		return nil, err
	}
	fills, err := nodeFills{
		palette:    palette,
		labels:     opts.Labels,
		scores:     opts.Scores,
		membership: opts.Membership,
		fallback:   opts.NodeColor,
	}.resolve(n)
	if err != nil {
		return nil, err
	}

	hasEdges := adj != nil
	if !hasEdges {
		adj = matrix.Zeros(n, n)
	}
	degrees := adj.RowSums()
	if directed {
		for i, w := range adj.ColSums() {
			degrees[i] += w
		}
	}
	weights, err := nodeWeights("node_weights", opts.NodeWeights, n, degrees)
	if err != nil {
		return nil, err
	}
	radii := nodeRadii(opts.Style, weights)
	strokes := strokeWidths(opts.Style, seeds)

	var edges []Edge
	if hasEdges && opts.DisplayEdges {
		key := undirectedKey
		if directed {
			key = directedKey
		}
		edges = styleEdges(graphEdges(adj, directed), opts.EdgeLabels, key, sameIndex, opts.Style, palette)
	}

	if points == nil {
		points = layout.Spring(adj, layout.SpringOptions{Seed: opts.Seed, Iterations: opts.Iterations})
	}
	pad := padForNames(padding(opts.Style, radii, strokes), opts.Style, opts.NamePosition, names)
	coords, width, height := canvas(points, opts.Style, opts.Height, pad)

	p := &Plan{
		Width:      width,
		Height:     height,
		Scale:      opts.Scale,
		Directed:   directed,
		FontSize:   opts.FontSize,
		NodeStroke: defaultNodeStroke,
		Nodes:      make([]Node, n),
		Edges:      edges,
		Order:      order,
	}
	for i := range p.Nodes {
		node := Node{
			Index:       i,
			X:           coords[i].X,
			Y:           coords[i].Y,
			Radius:      radii[i],
			Fill:        fills[i],
			StrokeWidth: strokes[i],
			Seed:        seeds[i],
			Name:        names[i],
		}
		if node.Name != "" {
			placeName(&node, opts.NamePosition, opts.Style)
		}
		p.Nodes[i] = node
	}
	return p, nil
}

// graphEdges lists the edges of adj without self loops. An undirected graph
// keeps one edge per node pair, with the larger of the two weights.
func graphEdges(adj *matrix.CSR, directed bool) []rawEdge {
	var out []rawEdge
	seen := make(map[edgeKey]int)
	for _, e := range adj.Entries() {
		if e.Row == e.Col {
			continue
		}
		if directed {
			out = append(out, rawEdge{source: e.Row, target: e.Col, weight: e.Weight})
			continue
		}
		k := undirectedKey(e.Row, e.Col)
		if at, ok := seen[k]; ok {
			out[at].weight = max(out[at].weight, e.Weight)
			continue
		}
		seen[k] = len(out)
		out = append(out, rawEdge{source: e.Row, target: e.Col, weight: e.Weight})
	}
	slices.SortStableFunc(out, func(a, b rawEdge) int {
		ka, kb := undirectedKey(a.source, a.target), undirectedKey(b.source, b.target)
		if ka[0] != kb[0] {
			return ka[0] - kb[0]
		}
		return ka[1] - kb[1]
	})
	return out
}

func directedKey(s, t int) edgeKey { return edgeKey{s, t} }

func undirectedKey(s, t int) edgeKey {
	if s > t {
		s, t = t, s
	}
	return edgeKey{s, t}
}

func sameIndex(s, t int) (int, int) { return s, t }
