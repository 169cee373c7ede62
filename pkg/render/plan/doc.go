// Package plan resolves graphs and their display attributes into drawing
// plans.
//
// A [Plan] holds everything a sink needs: the canvas size, one [Node] per
// node with its final position, radius, fill, border width and name, and
// one [Edge] per drawn edge with its width and color. Sinks (SVG, DOT, HTML)
// only serialize a plan; they make no styling decisions.
//
// # Resolution
//
// [ResolveGraph] and [ResolveBigraph] validate every input up front and fail
// with a coded error before any output is produced:
//
//   - DIMENSION_MISMATCH when a dense attribute, positions, weights, node
//     order or membership matrix disagrees with the node count
//   - INVALID_INDEX for out of range sparse keys, seeds, node order entries
//     and edge label endpoints
//   - INVALID_ATTRIBUTE for negative sizes, inverted bounds, malformed colors
//     and unknown name positions
//
// Node fills follow a fixed chain: labels, then scores, then membership,
// then the constant color. A node that a rule does not cover (a sparse
// attribute without its index, a zero membership row) falls through to the
// next rule.
//
// # Defaults
//
// Options carry many booleans that default to true, so start from
// [DefaultOptions] or [DefaultBigraphOptions]:
//
//	opts := plan.DefaultOptions()
//	opts.Labels = attr.Dense(labels)
//	p, err := plan.ResolveGraph(adjacency, nil, false, opts)
package plan
