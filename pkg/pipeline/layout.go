package pipeline

import (
	"context"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphsvg/pkg/graph"
	"github.com/matzehuels/graphsvg/pkg/layout"
	"github.com/matzehuels/graphsvg/pkg/matrix"
	"github.com/matzehuels/graphsvg/pkg/observability"
	"github.com/matzehuels/graphsvg/pkg/render/plan"
)

// =============================================================================
// Layout Resolution
// =============================================================================

// Resolve turns a document into a drawing plan. Document attributes are
// layered over the display settings in opts. A spring layout stops early
// with ctx.Err() when ctx is done.
func Resolve(ctx context.Context, doc *graph.Document, opts Options) (*plan.Plan, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, doc.Kind, nodeCount(doc))
	start := time.Now()

	p, err := resolve(ctx, doc, opts)
	hooks.OnLayoutComplete(ctx, doc.Kind, time.Since(start), err)
	return p, err
}

func resolve(ctx context.Context, doc *graph.Document, opts Options) (*plan.Plan, error) {
	if err := validateIterations(opts.Iterations); err != nil {
		return nil, err
	}
	adj, err := doc.Matrix()
	if err != nil {
		return nil, err
	}

	if doc.IsBipartite() {
		bopts, err := doc.BigraphOptions(opts.BigraphOptions())
		if err != nil {
			return nil, err
		}
		return plan.ResolveBigraph(adj, bopts)
	}

	gopts, err := doc.GraphOptions(opts.GraphOptions())
	if err != nil {
		return nil, err
	}
	positions, err := doc.PositionMatrix()
	if err != nil {
		return nil, err
	}
	if matrix.IsNil(positions) {
		if positions, err = springPositions(ctx, adj, gopts); err != nil {
			return nil, err
		}
	}
	return plan.ResolveGraph(adj, positions, doc.IsDirected(), gopts)
}

// springPositions runs the spring layout the resolver would run, under ctx.
func springPositions(ctx context.Context, adj *matrix.CSR, opts plan.Options) (mat.Matrix, error) {
	points, err := layout.SpringContext(ctx, adj, layout.SpringOptions{Seed: opts.Seed, Iterations: opts.Iterations})
	if err != nil || len(points) == 0 {
		return nil, err
	}
	data := make([]float64, 0, 2*len(points))
	for _, p := range points {
		data = append(data, p.X, p.Y)
	}
	return mat.NewDense(len(points), 2, data), nil
}

// nodeCount returns the total number of nodes, counting both sides of a
// bigraph.
func nodeCount(doc *graph.Document) int {
	rows, cols := doc.Shape()
	if doc.IsBipartite() {
		return rows + cols
	}
	return rows
}
