package svg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphsvg/pkg/render/plan"
)

// Graph renders an undirected graph. See [plan.ResolveGraph] for the
// meaning of adjacency and positions.
func Graph(adjacency, positions mat.Matrix, opts plan.Options) (string, error) {
	p, err := plan.ResolveGraph(adjacency, positions, false, opts)
	if err != nil {
		return "", err
	}
	return string(Render(p)), nil
}

// Digraph renders a directed graph with arrow heads.
func Digraph(adjacency, positions mat.Matrix, opts plan.Options) (string, error) {
	p, err := plan.ResolveGraph(adjacency, positions, true, opts)
	if err != nil {
		return "", err
	}
	return string(Render(p)), nil
}

// Bigraph renders a bipartite graph from its biadjacency matrix.
func Bigraph(biadjacency mat.Matrix, opts plan.BigraphOptions) (string, error) {
	p, err := plan.ResolveBigraph(biadjacency, opts)
	if err != nil {
		return "", err
	}
	return string(Render(p)), nil
}
