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

// ResolveBigraph builds the plan of a bipartite graph given by its
// biadjacency matrix (rows x columns).
//
// Row nodes are drawn in a left column and column nodes in a right column,
// unless opts.PositionRow and opts.PositionCol are both given. Row names
// sit left of their node and column names right of theirs.
func ResolveBigraph(biadjacency mat.Matrix, opts BigraphOptions) (*Plan, error) {
	biadj, err := validCSR("biadjacency", biadjacency)
	if err != nil {
		return nil, err
	}
	if biadj == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "biadjacency is required")
	}
	if err := opts.Style.Validate(); err != nil {
		return nil, err
	}
	nRow, nCol := biadj.Dims()
	n := nRow + nCol

	hasRow, hasCol := !matrix.IsNil(opts.PositionRow), !matrix.IsNil(opts.PositionCol)
	if hasRow != hasCol {
		return nil, errors.New(errors.ErrCodeInvalidInput, "position_row and position_col must be given together")
	}
	var points []r2.Vec
	if hasRow {
		rows, err := readPositions("position_row", opts.PositionRow, nRow)
		if err != nil {
			return nil, err
		}
		cols, err := readPositions("position_col", opts.PositionCol, nCol)
		if err != nil {
			return nil, err
		}
		points = append(rows, cols...)
	}

	namesRow, _, err := opts.NamesRow.Resolve("names_row", nRow, "")
	if err != nil {
		return nil, err
	}
	namesCol, _, err := opts.NamesCol.Resolve("names_col", nCol, "")
	if err != nil {
		return nil, err
	}
	seedsRow, err := seedMask("seeds_row", opts.SeedsRow, nRow)
	if err != nil {
		return nil, err
	}
	seedsCol, err := seedMask("seeds_col", opts.SeedsCol, nCol)
	if err != nil {
		return nil, err
	}
	if err := validateEdgeLabels(opts.EdgeLabels, nRow, nCol); err != nil {
		return nil, err
	}
	palette, err := color.Palette(opts.LabelColors)
	if err != nil {
		return nil, err
	}
	fillsRow, err := nodeFills{
		palette:    palette,
		labels:     opts.LabelsRow,
		scores:     opts.ScoresRow,
		membership: opts.MembershipRow,
		fallback:   opts.ColorRow,
		suffix:     "_row",
	}.resolve(nRow)
	if err != nil {
		return nil, err
	}
	fillsCol, err := nodeFills{
		palette:    palette,
		labels:     opts.LabelsCol,
		scores:     opts.ScoresCol,
		membership: opts.MembershipCol,
		fallback:   opts.ColorCol,
		suffix:     "_col",
	}.resolve(nCol)
	if err != nil {
		return nil, err
	}

	weightsRow, err := nodeWeights("node_weights_row", opts.NodeWeightsRow, nRow, biadj.RowSums())
	if err != nil {
		return nil, err
	}
	weightsCol, err := nodeWeights("node_weights_col", opts.NodeWeightsCol, nCol, biadj.ColSums())
	if err != nil {
		return nil, err
	}
	radii := nodeRadii(opts.Style, slices.Concat(weightsRow, weightsCol))
	strokes := strokeWidths(opts.Style, slices.Concat(seedsRow, seedsCol))

	var edges []Edge
	if opts.DisplayEdges {
		raw := make([]rawEdge, 0, biadj.NNZ())
		for _, e := range biadj.Entries() {
			raw = append(raw, rawEdge{source: e.Row, target: e.Col, weight: e.Weight})
		}
		toNodes := func(s, t int) (int, int) { return s, nRow + t }
		edges = styleEdges(raw, opts.EdgeLabels, directedKey, toNodes, opts.Style, palette)
	}

	innerHeight := opts.Height
	if points == nil {
		rowOrder, colOrder := layout.Identity(nRow), layout.Identity(nCol)
		if opts.Reorder {
			rowOrder, colOrder = layout.Reorder(biadj, rowOrder, colOrder)
		}
		rows, cols := layout.Columns(rowOrder, colOrder)
		points = append(rows, cols...)
		if innerHeight == 0 {
			innerHeight = float64(max(nRow, nCol)-1) * rowSpacing(opts.Style, radii)
		}
	}

	pad := padding(opts.Style, radii, strokes)
	pad = padForNames(pad, opts.Style, NameLeft, namesRow)
	pad = padForNames(pad, opts.Style, NameRight, namesCol)
	coords, width, height := canvas(points, opts.Style, innerHeight, pad)

	names := slices.Concat(namesRow, namesCol)
	fills := slices.Concat(fillsRow, fillsCol)
	seeds := slices.Concat(seedsRow, seedsCol)

	p := &Plan{
		Width:      width,
		Height:     height,
		Scale:      opts.Scale,
		Bipartite:  true,
		Rows:       nRow,
		FontSize:   opts.FontSize,
		NodeStroke: defaultNodeStroke,
		Nodes:      make([]Node, n),
		Edges:      edges,
		Order:      layout.Identity(n),
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
			side := NameRight
			if i < nRow {
				side = NameLeft
			}
			placeName(&node, side, opts.Style)
		}
		p.Nodes[i] = node
	}
	return p, nil
}

// rowSpacing is the vertical distance between consecutive nodes of a column.
func rowSpacing(s Style, radii []float64) float64 {
	r := 0.0
	for _, v := range radii {
		r = max(r, v)
	}
	return max(2*r, s.FontSize) + 2*s.MarginText
}
