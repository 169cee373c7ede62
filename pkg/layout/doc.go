// Package layout computes node coordinates.
//
// Coordinates are gonum [r2.Vec] values in a mathematical frame (y grows
// upward). [Fit] maps them onto a canvas, where y grows downward.
//
// # Spring Layout
//
// [Spring] places the nodes of an undirected weighted graph with the
// Fruchterman–Reingold force model. Randomness comes only from the seed, so
// the same graph and seed always produce the same coordinates.
//
// # Bipartite Layout
//
// [Columns] places the row nodes of a biadjacency matrix in a left column and
// the column nodes in a right column. [Reorder] permutes both sides with a
// barycentric heuristic and keeps a permutation only when it lowers the
// number of edge crossings reported by [Crossings].
package layout
