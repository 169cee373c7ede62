package layout

// crossingWorkspace holds reusable buffers for [countCrossings]. It is not
// safe for concurrent use.
type crossingWorkspace struct {
	ft  []int // Fenwick tree over target positions
	pos []int // original index -> position in the target permutation
}

func newCrossingWorkspace(maxWidth int) *crossingWorkspace {
	return &crossingWorkspace{
		ft:  make([]int, maxWidth+2),
		pos: make([]int, maxWidth+2),
	}
}

// Crossings counts the edge crossings of a two-layer drawing.
//
// edges[i] lists the lower-layer indices adjacent to upper-layer node i.
// upper and lower are the left-to-right (here: top-to-bottom) orders of the
// two layers, given as permutations of node indices. Edges (u1, v1) and
// (u2, v2) cross when pos(u1) < pos(u2) and pos(v1) > pos(v2).
//
// Runs in O(E log V) by counting inversions with a Fenwick tree.
func Crossings(edges [][]int, upper, lower []int) int {
	return countCrossings(edges, upper, lower, newCrossingWorkspace(len(lower)))
}

func countCrossings(edges [][]int, upper, lower []int, ws *crossingWorkspace) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	for p, idx := range lower {
		ws.pos[idx] = p
	}
	limit := len(lower) + 1
	clear(ws.ft[:limit])

	crossings, total := 0, 0
	for _, u := range upper {
		targets := edges[u]
		// Edges sharing a source never cross each other, so query all of
		// them before inserting any.
		for _, v := range targets {
			p := ws.pos[v]
			lessOrEqual := 0
			for q := p + 1; q > 0; q -= q & (-q) {
				lessOrEqual += ws.ft[q]
			}
			crossings += total - lessOrEqual
		}
		for _, v := range targets {
			p := ws.pos[v]
			total++
			for idx := p + 1; idx < limit; idx += idx & (-idx) {
				ws.ft[idx]++
			}
		}
	}
	return crossings
}
