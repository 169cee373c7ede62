// Package svg draws graphs as SVG images.
//
// [Graph], [Digraph] and [Bigraph] resolve a drawing plan with the
// [plan] package and serialize it with [Render]:
//
//	opts := plan.DefaultOptions()
//	opts.Names = attr.Dense([]string{"a", "b", "c"})
//	image, err := svg.Graph(adjacency, nil, opts)
//
// The document contains, in order, arrow markers (directed graphs only),
// edges as <path> elements, nodes as <circle> elements in the plan's draw
// order and names as <text> elements. Text is XML-escaped.
//
// [plan]: github.com/matzehuels/graphsvg/pkg/render/plan
package svg
