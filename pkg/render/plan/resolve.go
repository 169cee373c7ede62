package plan

import (
	"math"
	"slices"
	"unicode/utf8"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphsvg/pkg/color"
	"github.com/matzehuels/graphsvg/pkg/errors"
	"github.com/matzehuels/graphsvg/pkg/layout"
	"github.com/matzehuels/graphsvg/pkg/matrix"
)

// charWidth approximates the advance of one character as a fraction of the
// font size.
const charWidth = 0.6

const defaultNodeStroke = "black"

// readPositions converts an n x 2 matrix of coordinates. n < 0 accepts any
// number of rows.
func readPositions(name string, m mat.Matrix, n int) ([]r2.Vec, error) {
	rows, cols := m.Dims()
	if cols != 2 {
		return nil, errors.New(errors.ErrCodeDimensionMismatch, "%s: want 2 columns, got %d", name, cols)
	}
	if n >= 0 {
		if err := errors.ValidateLength(name, rows, n); err != nil {
			return nil, err
		}
	}
	out := make([]r2.Vec, rows)
	for i := range out {
		x, y := m.At(i, 0), m.At(i, 1)
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return nil, errors.New(errors.ErrCodeInvalidAttribute, "%s: position of node %d is not finite", name, i)
		}
		out[i] = r2.Vec{X: x, Y: y}
	}
	return out, nil
}

// seedMask marks the seed nodes.
func seedMask(name string, seeds []int, n int) ([]bool, error) {
	mask := make([]bool, n)
	for _, s := range seeds {
		if err := errors.ValidateIndex(name, s, n); err != nil {
			return nil, err
		}
		mask[s] = true
	}
	return mask, nil
}

// drawOrder validates a permutation of n node indices. An empty order is
// the identity.
func drawOrder(order []int, n int) ([]int, error) {
	if len(order) == 0 {
		return layout.Identity(n), nil
	}
	if err := errors.ValidateLength("node_order", len(order), n); err != nil {
		return nil, err
	}
	seen := make([]bool, n)
	for _, i := range order {
		if err := errors.ValidateIndex("node_order", i, n); err != nil {
			return nil, err
		}
		if seen[i] {
			return nil, errors.New(errors.ErrCodeInvalidIndex, "node_order: index %d repeated", i)
		}
		seen[i] = true
	}
	return slices.Clone(order), nil
}

// nodeWeights returns the explicit weights, validated, or def when absent.
func nodeWeights(name string, weights []float64, n int, def []float64) ([]float64, error) {
	if weights == nil {
		return def, nil
	}
	if err := errors.ValidateLength(name, len(weights), n); err != nil {
		return nil, err
	}
	for i, w := range weights {
		if err := errors.ValidateNonNegative(name, w); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidAttribute, err, "node %d", i)
		}
	}
	return weights, nil
}

// nodeRadii maps weights linearly onto [NodeSizeMin, NodeSizeMax] when
// DisplayNodeWeight is set, and returns NodeSize everywhere otherwise.
func nodeRadii(s Style, weights []float64) []float64 {
	radii := make([]float64, len(weights))
	if !s.DisplayNodeWeight {
		for i := range radii {
			radii[i] = s.NodeSize
		}
		return radii
	}
	wmax := 0.0
	for _, w := range weights {
		wmax = max(wmax, w)
	}
	for i, w := range weights {
		radii[i] = s.NodeSizeMin
		if wmax > 0 {
			radii[i] += (s.NodeSizeMax - s.NodeSizeMin) * w / wmax
		}
	}
	return radii
}

func strokeWidths(s Style, seeds []bool) []float64 {
	out := make([]float64, len(seeds))
	for i, seed := range seeds {
		out[i] = s.NodeWidth
		if seed {
			out[i] = s.NodeWidthMax
		}
	}
	return out
}

// rawEdge is an edge before styling.
type rawEdge struct {
	source, target int
	weight         float64
}

type edgeKey [2]int

// styleEdges assigns widths and colors. Labeled pairs missing from raw are
// appended with the constant edge width; self loops are dropped.
func styleEdges(raw []rawEdge, labels []EdgeLabel, key func(s, t int) edgeKey, node func(s, t int) (int, int), s Style, palette []string) []Edge {
	wmin, wmax := math.Inf(1), math.Inf(-1)
	for _, e := range raw {
		wmin, wmax = min(wmin, e.weight), max(wmax, e.weight)
	}
	scaled := s.DisplayEdgeWeight && wmax > wmin

	edges := make([]Edge, 0, len(raw)+len(labels))
	index := make(map[edgeKey]int, len(raw))
	for _, e := range raw {
		width := s.EdgeWidth
		if scaled {
			width = s.EdgeWidthMin + (s.EdgeWidthMax-s.EdgeWidthMin)*(e.weight-wmin)/(wmax-wmin)
		}
		index[key(e.source, e.target)] = len(edges)
		src, dst := node(e.source, e.target)
		edges = append(edges, Edge{Source: src, Target: dst, Weight: e.weight, Width: width, Color: s.EdgeColor})
	}

	for _, l := range labels {
		src, dst := node(l.Source, l.Target)
		if src == dst {
			continue
		}
		c := color.ForLabel(palette, l.Label)
		if k, ok := index[key(l.Source, l.Target)]; ok {
			edges[k].Color = c
			edges[k].Labeled = true
			continue
		}
		index[key(l.Source, l.Target)] = len(edges)
		edges = append(edges, Edge{Source: src, Target: dst, Width: s.EdgeWidth, Color: c, Labeled: true})
	}
	return edges
}

func validateEdgeLabels(labels []EdgeLabel, nSource, nTarget int) error {
	for _, l := range labels {
		if err := errors.ValidateIndex("edge_labels source", l.Source, nSource); err != nil {
			return err
		}
		if err := errors.ValidateIndex("edge_labels target", l.Target, nTarget); err != nil {
			return err
		}
	}
	return nil
}

func textWidth(s Style, text string) float64 {
	return charWidth * s.FontSize * float64(utf8.RuneCountInString(text))
}

func maxTextWidth(s Style, names []string) float64 {
	w := 0.0
	for _, name := range names {
		w = max(w, textWidth(s, name))
	}
	return w
}

// placeName sets the text position of n for the given side.
func placeName(n *Node, position string, s Style) {
	gap := n.Radius + s.MarginText
	switch position {
	case NameLeft:
		n.NameX, n.NameY, n.NameAnchor = n.X-gap, n.Y+s.FontSize/3, AnchorEnd
	case NameAbove:
		n.NameX, n.NameY, n.NameAnchor = n.X, n.Y-gap, AnchorMiddle
	case NameBelow:
		n.NameX, n.NameY, n.NameAnchor = n.X, n.Y+gap+s.FontSize, AnchorMiddle
	default:
		n.NameX, n.NameY, n.NameAnchor = n.X+gap, n.Y+s.FontSize/3, AnchorStart
	}
}

// padding returns the space around the drawing area: the margin, the
// largest node and its border.
func padding(s Style, radii, strokes []float64) layout.Padding {
	extent := 0.0
	for i := range radii {
		extent = max(extent, radii[i]+strokes[i]/2)
	}
	p := s.Margin + extent
	return layout.Padding{Left: p, Right: p, Top: p, Bottom: p}
}

// padForNames grows pad so that names at position fit on the canvas.
func padForNames(pad layout.Padding, s Style, position string, names []string) layout.Padding {
	w := maxTextWidth(s, names)
	if w == 0 {
		return pad
	}
	switch position {
	case NameLeft:
		pad.Left += s.MarginText + w
	case NameAbove:
		pad.Top += s.MarginText + s.FontSize
	case NameBelow:
		pad.Bottom += s.MarginText + s.FontSize
	default:
		pad.Right += s.MarginText + w
	}
	return pad
}

// canvas fits points into the drawing area and returns canvas coordinates
// and size.
func canvas(points []r2.Vec, s Style, innerHeight float64, pad layout.Padding) ([]r2.Vec, float64, float64) {
	width := s.Width + pad.Left + pad.Right
	height := 0.0
	if innerHeight > 0 {
		height = innerHeight + pad.Top + pad.Bottom
	}
	out, height := layout.Fit(points, width, height, pad)
	return out, width, height
}

func validCSR(name string, m mat.Matrix) (*matrix.CSR, error) {
	c, err := matrix.FromMatrix(m)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", name)
	}
	return c, nil
}
