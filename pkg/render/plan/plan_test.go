package plan

import (
	"reflect"
	"slices"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphsvg/pkg/attr"
	"github.com/matzehuels/graphsvg/pkg/color"
	"github.com/matzehuels/graphsvg/pkg/errors"
	"github.com/matzehuels/graphsvg/pkg/matrix"
)

func bowTie(t *testing.T) *matrix.CSR {
	t.Helper()
	m, err := matrix.FromRows([][]float64{
		{0, 1, 1, 1, 1},
		{1, 0, 1, 0, 0},
		{1, 1, 0, 0, 0},
		{1, 0, 0, 0, 1},
		{1, 0, 0, 1, 0},
	})
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	return m
}

// ring returns an undirected cycle on n nodes.
func ring(t *testing.T, n int) *matrix.CSR {
	t.Helper()
	var entries []matrix.Entry
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		entries = append(entries,
			matrix.Entry{Row: i, Col: j, Weight: 1},
			matrix.Entry{Row: j, Col: i, Weight: 1})
	}
	m, err := matrix.New(n, n, entries)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func arange(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func TestResolveGraph_Defaults(t *testing.T) {
	p, err := ResolveGraph(bowTie(t), nil, false, DefaultOptions())
	if err != nil {
		t.Fatalf("ResolveGraph() error: %v", err)
	}
	if len(p.Nodes) != 5 {
		t.Errorf("nodes = %d, want 5", len(p.Nodes))
	}
	if len(p.Edges) != 6 {
		t.Errorf("edges = %d, want 6", len(p.Edges))
	}
	for _, n := range p.Nodes {
		if n.Fill != "gray" {
			t.Errorf("node %d fill = %q, want gray", n.Index, n.Fill)
		}
		if n.Radius != 7 {
			t.Errorf("node %d radius = %v, want 7", n.Index, n.Radius)
		}
		if n.X < 0 || n.X > p.Width || n.Y < 0 || n.Y > p.Height {
			t.Errorf("node %d at (%v, %v) outside %vx%v canvas", n.Index, n.X, n.Y, p.Width, p.Height)
		}
	}
	if !slices.Equal(p.Order, []int{0, 1, 2, 3, 4}) {
		t.Errorf("order = %v", p.Order)
	}
}

func TestResolveGraph_Idempotent(t *testing.T) {
	opts := DefaultOptions()
	opts.Names = attr.Dense([]string{"a", "b", "c", "d", "e"})
	a, err := ResolveGraph(bowTie(t), nil, false, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := ResolveGraph(bowTie(t), nil, false, opts)
	if !reflect.DeepEqual(a, b) {
		t.Error("ResolveGraph() is not deterministic for a fixed seed")
	}
}

func TestResolveGraph_RequiresInput(t *testing.T) {
	_, err := ResolveGraph(nil, nil, false, DefaultOptions())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}

	var typedNil *mat.Dense
	_, err = ResolveGraph(nil, typedNil, false, DefaultOptions())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("typed nil error = %v, want INVALID_INPUT", err)
	}
}

func TestResolveGraph_PositionsOnly(t *testing.T) {
	pos := mat.NewDense(3, 2, []float64{0, 0, 1, 0, 0, 1})
	opts := DefaultOptions()
	opts.EdgeLabels = []EdgeLabel{{Source: 0, Target: 1, Label: 0}}

	p, err := ResolveGraph(nil, pos, false, opts)
	if err != nil {
		t.Fatalf("ResolveGraph() error: %v", err)
	}
	if len(p.Nodes) != 3 || len(p.Edges) != 0 {
		t.Errorf("nodes = %d edges = %d, want 3 and 0", len(p.Nodes), len(p.Edges))
	}

	opts.EdgeLabels = []EdgeLabel{{Source: 0, Target: 5, Label: 0}}
	_, err = ResolveGraph(nil, pos, false, opts)
	if !errors.Is(err, errors.ErrCodeInvalidIndex) {
		t.Errorf("edge label error = %v, want INVALID_INDEX", err)
	}
}

func TestResolveGraph_FillPrecedence(t *testing.T) {
	membership := mat.NewDense(5, 2, []float64{.5, .5, 0, 0, 1, 0, 0, 1, 0, 1})
	palette := color.DefaultPalette

	tests := []struct {
		name  string
		setup func(*Options)
		check func(t *testing.T, fills []string)
	}{
		{
			name: "labels win",
			setup: func(o *Options) {
				o.Labels = attr.Dense([]int{0, 1, 2, 3, 4})
				o.Scores = attr.Dense(arange(5))
				o.Membership = membership
			},
			check: func(t *testing.T, fills []string) {
				for i, f := range fills {
					if f != palette[i] {
						t.Errorf("fill[%d] = %q, want %q", i, f, palette[i])
					}
				}
			},
		},
		{
			name: "sparse labels fall through to scores",
			setup: func(o *Options) {
				o.Labels = attr.Sparse(map[int]int{0: 1})
				o.Scores = attr.Dense(arange(5))
			},
			check: func(t *testing.T, fills []string) {
				if fills[0] != palette[1] {
					t.Errorf("fill[0] = %q, want %q", fills[0], palette[1])
				}
				if fills[1] != color.Coolwarm(0.25) || fills[4] != color.Coolwarm(1) {
					t.Errorf("score fills = %v", fills[1:])
				}
			},
		},
		{
			name: "sparse scores fall through to node color",
			setup: func(o *Options) {
				o.Scores = attr.Sparse(map[int]float64{0: 0})
			},
			check: func(t *testing.T, fills []string) {
				if fills[0] != color.Coolwarm(0.5) {
					t.Errorf("single score fill = %q, want colormap midpoint", fills[0])
				}
				if fills[1] != "gray" {
					t.Errorf("fill[1] = %q, want gray", fills[1])
				}
			},
		},
		{
			name: "membership blends",
			setup: func(o *Options) {
				o.Membership = membership
			},
			check: func(t *testing.T, fills []string) {
				if fills[1] != "gray" {
					t.Errorf("zero membership row fill = %q, want gray", fills[1])
				}
				if fills[0] == fills[2] || fills[0] == fills[3] {
					t.Errorf("blended fill %q not distinct from %q / %q", fills[0], fills[2], fills[3])
				}
				if fills[3] != fills[4] {
					t.Errorf("equal rows gave %q and %q", fills[3], fills[4])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.setup(&opts)
			p, err := ResolveGraph(bowTie(t), nil, false, opts)
			if err != nil {
				t.Fatalf("ResolveGraph() error: %v", err)
			}
			fills := make([]string, len(p.Nodes))
			for i, n := range p.Nodes {
				fills[i] = n.Fill
			}
			tt.check(t, fills)
		})
	}
}

func TestResolveGraph_LabelColors(t *testing.T) {
	for _, lc := range []attr.Attribute[string]{
		attr.Sparse(map[int]string{0: "red", 1: "blue"}),
		attr.Dense([]string{"red", "blue"}),
	} {
		opts := DefaultOptions()
		opts.Labels = attr.Dense([]int{0, 1, 0, 1, 1})
		opts.LabelColors = lc
		p, err := ResolveGraph(bowTie(t), nil, false, opts)
		if err != nil {
			t.Fatalf("ResolveGraph(%v) error: %v", lc.Kind(), err)
		}
		if p.Nodes[0].Fill != "red" || p.Nodes[1].Fill != "blue" {
			t.Errorf("%v label colors: fills %q %q", lc.Kind(), p.Nodes[0].Fill, p.Nodes[1].Fill)
		}
	}
}

func TestResolveGraph_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Options)
		code  errors.Code
	}{
		{"names length", func(o *Options) { o.Names = attr.Dense([]string{"a"}) }, errors.ErrCodeDimensionMismatch},
		{"labels length", func(o *Options) { o.Labels = attr.Dense([]int{1, 2}) }, errors.ErrCodeDimensionMismatch},
		{"scores length", func(o *Options) { o.Scores = attr.Dense([]float64{1}) }, errors.ErrCodeDimensionMismatch},
		{"weights length", func(o *Options) { o.NodeWeights = []float64{1} }, errors.ErrCodeDimensionMismatch},
		{"node order length", func(o *Options) { o.NodeOrder = []int{0, 1} }, errors.ErrCodeDimensionMismatch},
		{"membership rows", func(o *Options) { o.Membership = mat.NewDense(2, 2, nil) }, errors.ErrCodeDimensionMismatch},
		{"sparse label index", func(o *Options) { o.Labels = attr.Sparse(map[int]int{9: 1}) }, errors.ErrCodeInvalidIndex},
		{"sparse score index", func(o *Options) { o.Scores = attr.Sparse(map[int]float64{-1: 1}) }, errors.ErrCodeInvalidIndex},
		{"seed index", func(o *Options) { o.Seeds = []int{5} }, errors.ErrCodeInvalidIndex},
		{"edge label index", func(o *Options) { o.EdgeLabels = []EdgeLabel{{Source: 3, Target: 10}} }, errors.ErrCodeInvalidIndex},
		{"node order repeat", func(o *Options) { o.NodeOrder = []int{0, 0, 1, 2, 3} }, errors.ErrCodeInvalidIndex},
		{"negative size", func(o *Options) { o.NodeSize = -1 }, errors.ErrCodeInvalidAttribute},
		{"inverted bounds", func(o *Options) { o.EdgeWidthMin, o.EdgeWidthMax = 5, 1 }, errors.ErrCodeInvalidAttribute},
		{"bad node color", func(o *Options) { o.NodeColor = "notacolor" }, errors.ErrCodeInvalidAttribute},
		{"bad edge color", func(o *Options) { o.EdgeColor = "#12" }, errors.ErrCodeInvalidAttribute},
		{"bad name position", func(o *Options) { o.NamePosition = "middle" }, errors.ErrCodeInvalidAttribute},
		{"zero scale", func(o *Options) { o.Scale = 0 }, errors.ErrCodeInvalidAttribute},
		{"negative weight", func(o *Options) { o.NodeWeights = []float64{1, -1, 0, 0, 0} }, errors.ErrCodeInvalidAttribute},
		{"negative membership", func(o *Options) { o.Membership = mat.NewDense(5, 1, []float64{0, -1, 0, 0, 0}) }, errors.ErrCodeInvalidAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.setup(&opts)
			_, err := ResolveGraph(bowTie(t), nil, false, opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestResolveGraph_PositionShape(t *testing.T) {
	_, err := ResolveGraph(bowTie(t), mat.NewDense(4, 2, nil), false, DefaultOptions())
	if !errors.Is(err, errors.ErrCodeDimensionMismatch) {
		t.Errorf("rows error = %v, want DIMENSION_MISMATCH", err)
	}
	_, err = ResolveGraph(bowTie(t), mat.NewDense(5, 3, nil), false, DefaultOptions())
	if !errors.Is(err, errors.ErrCodeDimensionMismatch) {
		t.Errorf("cols error = %v, want DIMENSION_MISMATCH", err)
	}
}

func TestResolveGraph_NodeSizesAndSeeds(t *testing.T) {
	opts := DefaultOptions()
	opts.DisplayNodeWeight = true
	opts.NodeSizeMin, opts.NodeSizeMax = 2, 6
	opts.NodeWeights = arange(5)
	opts.Seeds = []int{0, 1}
	opts.NodeWidth, opts.NodeWidthMax = 2, 5

	p, err := ResolveGraph(bowTie(t), nil, false, opts)
	if err != nil {
		t.Fatal(err)
	}
	if p.Nodes[0].Radius != 2 || p.Nodes[4].Radius != 6 || p.Nodes[2].Radius != 4 {
		t.Errorf("radii = %v %v %v", p.Nodes[0].Radius, p.Nodes[2].Radius, p.Nodes[4].Radius)
	}
	if !p.Nodes[0].Seed || p.Nodes[0].StrokeWidth != 5 || p.Nodes[2].StrokeWidth != 2 {
		t.Errorf("seed strokes = %v %v", p.Nodes[0].StrokeWidth, p.Nodes[2].StrokeWidth)
	}

	// Without explicit weights the degree is used: node 0 has the most edges.
	opts.NodeWeights = nil
	p, _ = ResolveGraph(bowTie(t), nil, false, opts)
	if p.Nodes[0].Radius != 6 {
		t.Errorf("hub radius = %v, want 6", p.Nodes[0].Radius)
	}
}

func TestResolveGraph_EdgeLabels(t *testing.T) {
	opts := DefaultOptions()
	opts.EdgeLabels = []EdgeLabel{
		{Source: 0, Target: 1, Label: 0},
		{Source: 1, Target: 1, Label: 1},
		{Source: 3, Target: 10, Label: 2},
	}
	p, err := ResolveGraph(ring(t, 12), nil, false, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Edges) != 13 {
		t.Fatalf("edges = %d, want 12 ring edges + 1 labeled", len(p.Edges))
	}
	var labeled []Edge
	for _, e := range p.Edges {
		if e.Labeled {
			labeled = append(labeled, e)
		}
	}
	if len(labeled) != 2 {
		t.Fatalf("labeled edges = %v", labeled)
	}
	if labeled[0].Color != color.DefaultPalette[0] {
		t.Errorf("edge (0,1) color = %q", labeled[0].Color)
	}
	if extra := labeled[1]; extra.Source != 3 || extra.Target != 10 || extra.Color != color.DefaultPalette[2] || extra.Width != opts.EdgeWidth {
		t.Errorf("extra edge = %+v", extra)
	}
}

func TestResolveGraph_EdgeWidths(t *testing.T) {
	adj, _ := matrix.FromRows([][]float64{
		{0, 1, 3},
		{0, 0, 2},
		{0, 0, 0},
	})
	opts := DefaultOptions()
	opts.EdgeWidthMin, opts.EdgeWidthMax = 2, 4

	p, err := ResolveGraph(adj, nil, true, opts)
	if err != nil {
		t.Fatal(err)
	}
	widths := map[[2]int]float64{}
	for _, e := range p.Edges {
		widths[[2]int{e.Source, e.Target}] = e.Width
	}
	if widths[[2]int{0, 1}] != 2 || widths[[2]int{0, 2}] != 4 || widths[[2]int{1, 2}] != 3 {
		t.Errorf("widths = %v", widths)
	}

	opts.DisplayEdgeWeight = false
	p, _ = ResolveGraph(adj, nil, true, opts)
	for _, e := range p.Edges {
		if e.Width != opts.EdgeWidth {
			t.Errorf("constant width = %v, want %v", e.Width, opts.EdgeWidth)
		}
	}

	opts.DisplayEdges = false
	p, _ = ResolveGraph(adj, nil, true, opts)
	if len(p.Edges) != 0 {
		t.Errorf("DisplayEdges=false kept %d edges", len(p.Edges))
	}
}

func TestResolveGraph_Disconnected(t *testing.T) {
	adj, _ := matrix.New(6, 6, []matrix.Entry{
		{Row: 0, Col: 1, Weight: 1},
		{Row: 1, Col: 0, Weight: 1},
	})
	p, err := ResolveGraph(adj, nil, false, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Nodes) != 6 {
		t.Errorf("nodes = %d, want 6", len(p.Nodes))
	}
	for _, n := range p.Nodes {
		if n.X < 0 || n.X > p.Width || n.Y < 0 || n.Y > p.Height {
			t.Errorf("isolated node %d at (%v, %v)", n.Index, n.X, n.Y)
		}
	}
}

func TestResolveGraph_NamesAndAutoHeight(t *testing.T) {
	opts := DefaultOptions()
	opts.Names = attr.Dense([]string{"aa", "bb", "<>", "a&b", ""})
	opts.Height = 0
	opts.NamePosition = NameBelow
	p, err := ResolveGraph(bowTie(t), nil, false, opts)
	if err != nil {
		t.Fatal(err)
	}
	if p.Height <= 0 {
		t.Errorf("auto height = %v", p.Height)
	}
	if p.Nodes[4].NameAnchor != "" {
		t.Error("empty name should not be placed")
	}
	if n := p.Nodes[0]; n.NameAnchor != AnchorMiddle || n.NameY <= n.Y {
		t.Errorf("below name at %v anchor %q, node at %v", n.NameY, n.NameAnchor, n.Y)
	}
}

func TestResolveGraph_NodeOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.NodeOrder = []int{4, 3, 2, 1, 0}
	p, err := ResolveGraph(bowTie(t), nil, true, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(p.Order, opts.NodeOrder) {
		t.Errorf("order = %v", p.Order)
	}
	if !p.Directed {
		t.Error("plan should be directed")
	}
}

func TestResolveGraph_EmptyNodeOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.NodeOrder = []int{}
	p, err := ResolveGraph(bowTie(t), nil, false, opts)
	if err != nil {
		t.Fatalf("empty node order error: %v", err)
	}
	if !slices.Equal(p.Order, []int{0, 1, 2, 3, 4}) {
		t.Errorf("order = %v, want identity", p.Order)
	}
}

func TestNodeFills_BlendError(t *testing.T) {
	f := nodeFills{
		palette:    []string{"red", "notacolor"},
		membership: mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
		fallback:   "gray",
	}
	if _, err := f.resolve(2); !errors.Is(err, errors.ErrCodeInvalidAttribute) {
		t.Errorf("resolve() error = %v, want INVALID_ATTRIBUTE", err)
	}
}

func movieActor(t *testing.T) *matrix.CSR {
	t.Helper()
	m, err := matrix.FromRows([][]float64{
		{0, 0, 1, 1, 0},
		{1, 0, 0, 0, 1},
		{0, 1, 0, 1, 0},
		{1, 0, 1, 0, 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestResolveBigraph_Reorder(t *testing.T) {
	opts := DefaultBigraphOptions()
	p, err := ResolveBigraph(movieActor(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Bipartite || p.Rows != 4 || len(p.Nodes) != 9 {
		t.Fatalf("plan: bipartite=%v rows=%d nodes=%d", p.Bipartite, p.Rows, len(p.Nodes))
	}
	if len(p.Edges) != 8 {
		t.Errorf("edges = %d, want 8", len(p.Edges))
	}
	// Rows share the left column, columns the right one.
	for _, n := range p.Nodes[1:4] {
		if n.X != p.Nodes[0].X {
			t.Errorf("row node %d x = %v, want %v", n.Index, n.X, p.Nodes[0].X)
		}
	}
	if p.Nodes[4].X <= p.Nodes[0].X {
		t.Error("column nodes should be right of row nodes")
	}
	seen := map[float64]bool{}
	for _, n := range p.Nodes[:4] {
		seen[n.Y] = true
	}
	if len(seen) != 4 {
		t.Errorf("row slots = %v, want 4 distinct", seen)
	}
}

func TestResolveBigraph_NoReorderKeepsOrder(t *testing.T) {
	opts := DefaultBigraphOptions()
	opts.Reorder = false
	p, err := ResolveBigraph(movieActor(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < 4; i++ {
		if p.Nodes[i].Y <= p.Nodes[i-1].Y {
			t.Errorf("row %d above row %d", i, i-1)
		}
	}
	for i := 5; i < 9; i++ {
		if p.Nodes[i].Y <= p.Nodes[i-1].Y {
			t.Errorf("col %d above col %d", i-4, i-5)
		}
	}
}

func TestResolveBigraph_FullOptions(t *testing.T) {
	opts := DefaultBigraphOptions()
	opts.NamesRow = attr.Dense([]string{"r0", "r1", "r2", "r3"})
	opts.NamesCol = attr.Dense([]string{"c0", "c1", "c2", "c3", "c4"})
	opts.LabelsRow = attr.Dense([]int{0, 1, 2, 3})
	opts.ScoresCol = attr.Dense(arange(5))
	opts.SeedsRow, opts.SeedsCol = []int{0, 1}, []int{1, 2}
	opts.PositionRow = mat.NewDense(4, 2, []float64{0, 0, 0, 1, 0, 2, 0, 3})
	opts.PositionCol = mat.NewDense(5, 2, []float64{1, 0, 1, 1, 1, 2, 1, 3, 1, 4})
	opts.ColorRow, opts.ColorCol = "red", "white"
	opts.DisplayNodeWeight = true
	opts.NodeWeightsRow, opts.NodeWeightsCol = arange(4), arange(5)
	opts.EdgeLabels = []EdgeLabel{{Source: 0, Target: 1, Label: 0}, {Source: 1, Target: 1, Label: 1}, {Source: 3, Target: 4, Label: 2}}
	opts.Width, opts.Height = 200, 200

	p, err := ResolveBigraph(movieActor(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if a := p.Nodes[0].NameAnchor; a != AnchorEnd {
		t.Errorf("row name anchor = %q, want end", a)
	}
	if a := p.Nodes[4].NameAnchor; a != AnchorStart {
		t.Errorf("col name anchor = %q, want start", a)
	}
	if !p.Nodes[5].Seed || !p.Nodes[6].Seed || p.Nodes[4].Seed {
		t.Error("column seeds not applied to the column nodes")
	}
	labeled := 0
	for _, e := range p.Edges {
		if e.Labeled {
			labeled++
			if e.Target < p.Rows {
				t.Errorf("labeled edge target %d is a row node", e.Target)
			}
		}
	}
	if labeled != 3 {
		t.Errorf("labeled edges = %d, want 3", labeled)
	}
}

func TestResolveBigraph_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*BigraphOptions)
		code  errors.Code
	}{
		{"only row positions", func(o *BigraphOptions) { o.PositionRow = mat.NewDense(4, 2, nil) }, errors.ErrCodeInvalidInput},
		{"col positions rows", func(o *BigraphOptions) {
			o.PositionRow = mat.NewDense(4, 2, nil)
			o.PositionCol = mat.NewDense(4, 2, nil)
		}, errors.ErrCodeDimensionMismatch},
		{"names_col length", func(o *BigraphOptions) { o.NamesCol = attr.Dense([]string{"x"}) }, errors.ErrCodeDimensionMismatch},
		{"membership_row rows", func(o *BigraphOptions) { o.MembershipRow = mat.NewDense(3, 2, nil) }, errors.ErrCodeDimensionMismatch},
		{"seeds_col index", func(o *BigraphOptions) { o.SeedsCol = []int{5} }, errors.ErrCodeInvalidIndex},
		{"edge label col", func(o *BigraphOptions) { o.EdgeLabels = []EdgeLabel{{Source: 0, Target: 5}} }, errors.ErrCodeInvalidIndex},
		{"bad color_col", func(o *BigraphOptions) { o.ColorCol = "nope" }, errors.ErrCodeInvalidAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultBigraphOptions()
			tt.setup(&opts)
			_, err := ResolveBigraph(movieActor(t), opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := ResolveBigraph(nil, DefaultBigraphOptions()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil biadjacency error = %v", err)
	}
}

func TestResolveBigraph_Membership(t *testing.T) {
	opts := DefaultBigraphOptions()
	opts.MembershipRow = mat.NewDense(4, 2, []float64{.5, .5, 0, 0, 1, 0, 0, 1})
	opts.MembershipCol = mat.NewDense(5, 2, []float64{.5, .5, 0, 0, 1, 0, 0, 0, 0, 0})
	p, err := ResolveBigraph(movieActor(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if p.Nodes[1].Fill != "gray" || p.Nodes[0].Fill == "gray" {
		t.Errorf("row fills = %q %q", p.Nodes[0].Fill, p.Nodes[1].Fill)
	}
}
