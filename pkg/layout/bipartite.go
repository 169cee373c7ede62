package layout

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphsvg/pkg/matrix"
)

const maxReorderPasses = 10

// Columns places nRow nodes at x=0 and nCol nodes at x=1, in the given
// orders, from top to bottom. rowOrder and colOrder are permutations; slot k
// of the left column holds node rowOrder[k].
func Columns(rowOrder, colOrder []int) (rows, cols []r2.Vec) {
	rows = make([]r2.Vec, len(rowOrder))
	for k, i := range rowOrder {
		rows[i] = r2.Vec{X: 0, Y: -float64(k)}
	}
	cols = make([]r2.Vec, len(colOrder))
	for k, j := range colOrder {
		cols[j] = r2.Vec{X: 1, Y: -float64(k)}
	}
	return rows, cols
}

// Identity returns the permutation 0, 1, ..., n-1.
func Identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Reorder improves the orders of both sides of a biadjacency matrix.
//
// Each pass sorts the rows by the mean position of their neighbors in the
// current column order, then the columns by the mean position of their
// neighbors in the row order. A new order is kept only when it strictly
// lowers [Crossings]; the search stops at the first pass without gain.
// Nodes without neighbors keep their current slot as sort key, so an
// already optimal drawing is returned unchanged. The result is always a
// permutation of the input orders.
func Reorder(biadj *matrix.CSR, rowOrder, colOrder []int) ([]int, []int) {
	nRow, nCol := biadj.Dims()
	rowEdges := make([][]int, nRow)
	for i := range rowEdges {
		cols, _ := biadj.Row(i)
		rowEdges[i] = cols
	}
	colEdges := make([][]int, nCol)
	for _, e := range biadj.Entries() {
		colEdges[e.Col] = append(colEdges[e.Col], e.Row)
	}

	rows := slices.Clone(rowOrder)
	cols := slices.Clone(colOrder)
	ws := newCrossingWorkspace(max(nRow, nCol))
	best := countCrossings(rowEdges, rows, cols, ws)

	for range maxReorderPasses {
		if best == 0 {
			break
		}
		improved := false

		if cand := barycenterOrder(rows, rowEdges, cols); !slices.Equal(cand, rows) {
			if c := countCrossings(rowEdges, cand, cols, ws); c < best {
				rows, best, improved = cand, c, true
			}
		}
		if cand := barycenterOrder(cols, colEdges, rows); !slices.Equal(cand, cols) {
			if c := countCrossings(rowEdges, rows, cand, ws); c < best {
				cols, best, improved = cand, c, true
			}
		}

		if !improved {
			break
		}
	}
	return rows, cols
}

// barycenterOrder returns order sorted by the mean slot of each node's
// neighbors in other.
func barycenterOrder(order []int, edges [][]int, other []int) []int {
	slot := make([]float64, len(other))
	for k, v := range other {
		slot[v] = float64(k)
	}

	key := make(map[int]float64, len(order))
	for k, u := range order {
		nbrs := edges[u]
		if len(nbrs) == 0 {
			key[u] = float64(k)
			continue
		}
		sum := 0.0
		for _, v := range nbrs {
			sum += slot[v]
		}
		key[u] = sum / float64(len(nbrs))
	}

	out := slices.Clone(order)
	slices.SortStableFunc(out, func(a, b int) int {
		switch {
		case key[a] < key[b]:
			return -1
		case key[a] > key[b]:
			return 1
		}
		return 0
	})
	return out
}
