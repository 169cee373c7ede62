// Package matrix provides the sparse weighted matrix used to describe graphs.
//
// A square [CSR] is an adjacency matrix (entry (i, j) is the weight of the
// edge i -> j); a rectangular one is a biadjacency matrix between a row node
// set and a column node set. Weights are non-negative and zero entries are
// not stored.
//
// [CSR] implements gonum's [mat.Matrix], so it can be handed to any gonum
// routine, and [FromMatrix] accepts any gonum matrix (for example a
// [mat.Dense] or [mat.VecDense]) as input.
package matrix

import (
	"math"
	"reflect"
	"slices"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/graphsvg/pkg/errors"
)

// Entry is a single stored weight.
type Entry struct {
	Row    int     `json:"row"`
	Col    int     `json:"col"`
	Weight float64 `json:"weight"`
}

// CSR is a compressed sparse row matrix of non-negative weights.
// A CSR is immutable after construction and safe for concurrent reads.
type CSR struct {
	rows, cols int
	indptr     []int // len rows+1; row i spans indices[indptr[i]:indptr[i+1]]
	indices    []int // column indices, sorted within each row
	data       []float64
}

var _ mat.Matrix = (*CSR)(nil)

// New builds a rows x cols matrix from entries. Duplicate coordinates are
// summed and zero weights are dropped.
//
// New returns INVALID_INPUT for negative dimensions, INVALID_INDEX for an
// entry outside the matrix and INVALID_ATTRIBUTE for a negative or non-finite
// weight.
func New(rows, cols int, entries []Entry) (*CSR, error) {
	if rows < 0 || cols < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "matrix dimensions must be non-negative, got %dx%d", rows, cols)
	}
	for _, e := range entries {
		if err := errors.ValidateIndex("entry row", e.Row, rows); err != nil {
			return nil, err
		}
		if err := errors.ValidateIndex("entry col", e.Col, cols); err != nil {
			return nil, err
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight < 0 {
			return nil, errors.New(errors.ErrCodeInvalidAttribute, "entry (%d, %d): weight must be finite and non-negative, got %v", e.Row, e.Col, e.Weight)
		}
	}

	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})

	m := &CSR{rows: rows, cols: cols, indptr: make([]int, rows+1)}
	for k := 0; k < len(sorted); {
		e := sorted[k]
		w := 0.0
		for ; k < len(sorted) && sorted[k].Row == e.Row && sorted[k].Col == e.Col; k++ {
			w += sorted[k].Weight
		}
		if w == 0 {
			continue
		}
		m.indices = append(m.indices, e.Col)
		m.data = append(m.data, w)
		m.indptr[e.Row+1]++
	}
	for i := 0; i < rows; i++ {
		m.indptr[i+1] += m.indptr[i]
	}
	return m, nil
}

// Zeros returns an empty rows x cols matrix.
func Zeros(rows, cols int) *CSR {
	return &CSR{rows: rows, cols: cols, indptr: make([]int, rows+1)}
}

// FromRows builds a matrix from dense rows. All rows must have the same length.
func FromRows(rows [][]float64) (*CSR, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	var entries []Entry
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.New(errors.ErrCodeDimensionMismatch, "row %d has %d columns, want %d", i, len(row), cols)
		}
		for j, w := range row {
			if w != 0 {
				entries = append(entries, Entry{Row: i, Col: j, Weight: w})
			}
		}
	}
	return New(len(rows), cols, entries)
}

// FromMatrix converts any gonum matrix. A *CSR is returned as is and a nil
// matrix (including a typed nil pointer) yields nil.
func FromMatrix(m mat.Matrix) (*CSR, error) {
	if IsNil(m) {
		return nil, nil
	}
	if c, ok := m.(*CSR); ok {
		return c, nil
	}
	r, c := m.Dims()
	var entries []Entry
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if w := m.At(i, j); w != 0 {
				entries = append(entries, Entry{Row: i, Col: j, Weight: w})
			}
		}
	}
	return New(r, c, entries)
}

// IsNil reports whether m is nil or a nil pointer wrapped in the interface.
func IsNil(m mat.Matrix) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Dims returns the number of rows and columns.
func (m *CSR) Dims() (r, c int) { return m.rows, m.cols }

// At returns the weight at (i, j), zero when absent.
// It panics with [mat.ErrRowAccess] or [mat.ErrColAccess] when out of range.
func (m *CSR) At(i, j int) float64 {
	if i < 0 || i >= m.rows {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.cols {
		panic(mat.ErrColAccess)
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	k := lo + sort.SearchInts(m.indices[lo:hi], j)
	if k < hi && m.indices[k] == j {
		return m.data[k]
	}
	return 0
}

// T returns the implicit transpose, as required by [mat.Matrix].
func (m *CSR) T() mat.Matrix { return mat.Transpose{Matrix: m} }

// IsSquare reports whether the matrix is an adjacency matrix.
func (m *CSR) IsSquare() bool { return m.rows == m.cols }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.data) }

// Row returns the column indices and weights of row i. The slices alias the
// matrix storage and must not be modified.
func (m *CSR) Row(i int) (cols []int, weights []float64) {
	lo, hi := m.indptr[i], m.indptr[i+1]
	return m.indices[lo:hi], m.data[lo:hi]
}

// Entries returns all stored entries in row-major order.
func (m *CSR) Entries() []Entry {
	out := make([]Entry, 0, len(m.data))
	for i := 0; i < m.rows; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			out = append(out, Entry{Row: i, Col: m.indices[k], Weight: m.data[k]})
		}
	}
	return out
}

// Transpose returns a new matrix with rows and columns swapped.
func (m *CSR) Transpose() *CSR {
	entries := m.Entries()
	for k := range entries {
		entries[k].Row, entries[k].Col = entries[k].Col, entries[k].Row
	}
	t, _ := New(m.cols, m.rows, entries)
	return t
}

// Symmetrize returns m + mᵀ for a square matrix. The result describes the
// undirected graph underlying a directed adjacency.
func (m *CSR) Symmetrize() *CSR {
	entries := m.Entries()
	for _, e := range m.Entries() {
		entries = append(entries, Entry{Row: e.Col, Col: e.Row, Weight: e.Weight})
	}
	s, _ := New(m.rows, m.cols, entries)
	return s
}

// RowSums returns the total weight of each row (out-weight for adjacency).
func (m *CSR) RowSums() []float64 {
	out := make([]float64, m.rows)
	for i := range out {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			out[i] += m.data[k]
		}
	}
	return out
}

// ColSums returns the total weight of each column (in-weight for adjacency).
func (m *CSR) ColSums() []float64 {
	out := make([]float64, m.cols)
	for k, j := range m.indices {
		out[j] += m.data[k]
	}
	return out
}

// Max returns the largest stored weight, or 0 for an empty matrix.
func (m *CSR) Max() float64 {
	best := 0.0
	for _, w := range m.data {
		best = max(best, w)
	}
	return best
}
