// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// CSR is an immutable compressed-sparse-row matrix.
//
// Row i owns data[indptr[i]:indptr[i+1]], with strictly ascending column
// indices. Duplicate triplets are summed on construction.
type CSR struct {
	r, c    int
	indptr  []int
	indices []int
	data    []float64
}

// Triplets accumulates (i, j, v) entries before compression into a CSR.
// Invalid indices are recorded and surfaced by CSR().
type Triplets struct {
	r, c int
	is   []int
	js   []int
	vs   []float64
	err  error
}

// NewTriplets returns an accumulator for a rows×cols matrix.
func NewTriplets(rows, cols int) *Triplets {
	t := &Triplets{r: rows, c: cols}
	if rows < 0 || cols < 0 {
		t.err = fmt.Errorf("%dx%d: %w", rows, cols, ErrBadShape)
	}
	return t
}

// Reserve grows the internal buffers to hold n more entries.
func (t *Triplets) Reserve(n int) {
	if n <= 0 {
		return
	}
	t.is = append(make([]int, 0, len(t.is)+n), t.is...)
	t.js = append(make([]int, 0, len(t.js)+n), t.js...)
	t.vs = append(make([]float64, 0, len(t.vs)+n), t.vs...)
}

// Add appends v at (i, j). Zero values are kept so the sparsity pattern is
// stable across numerically different inputs.
func (t *Triplets) Add(i, j int, v float64) {
	if t.err != nil {
		return
	}
	if i < 0 || i >= t.r || j < 0 || j >= t.c {
		t.err = fmt.Errorf("(%d,%d) in %dx%d: %w", i, j, t.r, t.c, ErrOutOfRange)
		return
	}
	t.is = append(t.is, i)
	t.js = append(t.js, j)
	t.vs = append(t.vs, v)
}

// Len returns the number of accumulated entries.
func (t *Triplets) Len() int { return len(t.vs) }

// CSR compresses the triplets, summing duplicates.
//
// Complexity: O(nnz log nnz).
func (t *Triplets) CSR() (*CSR, error) {
	if t.err != nil {
		return nil, sparseErrorf(opCSR, t.err)
	}

	order := make([]int, len(t.vs))
	for k := range order {
		order[k] = k
	}
	sort.Slice(order, func(a, b int) bool {
		ka, kb := order[a], order[b]
		if t.is[ka] != t.is[kb] {
			return t.is[ka] < t.is[kb]
		}
		return t.js[ka] < t.js[kb]
	})

	m := &CSR{
		r:       t.r,
		c:       t.c,
		indptr:  make([]int, t.r+1),
		indices: make([]int, 0, len(order)),
		data:    make([]float64, 0, len(order)),
	}
	lastI, lastJ := -1, -1
	for _, k := range order {
		i, j, v := t.is[k], t.js[k], t.vs[k]
		if i == lastI && j == lastJ {
			m.data[len(m.data)-1] += v
			continue
		}
		m.indices = append(m.indices, j)
		m.data = append(m.data, v)
		m.indptr[i+1]++
		lastI, lastJ = i, j
	}
	for i := 0; i < t.r; i++ {
		m.indptr[i+1] += m.indptr[i]
	}

	return m, nil
}

// Identity returns the n×n identity.
func Identity(n int) *CSR {
	return Diag(onesVec(n))
}

// Diag returns the square diagonal matrix with d on its diagonal.
func Diag(d []float64) *CSR {
	n := len(d)
	m := &CSR{r: n, c: n, indptr: make([]int, n+1), indices: make([]int, n), data: make([]float64, n)}
	for i := 0; i < n; i++ {
		m.indptr[i+1] = i + 1
		m.indices[i] = i
		m.data[i] = d[i]
	}
	return m
}

// Rows returns the number of rows.
func (m *CSR) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *CSR) Cols() int { return m.c }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.data) }

// At returns the entry at (i, j); unstored entries are zero.
func (m *CSR) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, fmt.Errorf("At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	k := lo + sort.SearchInts(m.indices[lo:hi], j)
	if k < hi && m.indices[k] == j {
		return m.data[k], nil
	}
	return 0, nil
}

// Do calls fn for every stored entry in row-major order.
func (m *CSR) Do(fn func(i, j int, v float64)) {
	for i := 0; i < m.r; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			fn(i, m.indices[k], m.data[k])
		}
	}
}

// Diagonal returns the main diagonal (length min(rows, cols)).
func (m *CSR) Diagonal() []float64 {
	n := m.r
	if m.c < n {
		n = m.c
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i], _ = m.At(i, i)
	}
	return out
}

// IsSymmetric reports whether |a_ij - a_ji| <= eps·max(1, |a_ij|) for all
// stored entries. Non-square matrices are never symmetric.
func (m *CSR) IsSymmetric(eps float64) bool {
	if m.r != m.c {
		return false
	}
	for i := 0; i < m.r; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			j := m.indices[k]
			if j == i {
				continue
			}
			vt, _ := m.At(j, i)
			v := m.data[k]
			if math.Abs(v-vt) > eps*math.Max(1, math.Abs(v)) {
				return false
			}
		}
	}
	return true
}

// ToSymDense copies the upper triangle of m into a gonum SymDense.
// The lower triangle is ignored; use IsSymmetric first when it matters.
func (m *CSR) ToSymDense() (*mat.SymDense, error) {
	if m.r != m.c {
		return nil, fmt.Errorf("ToSymDense: %dx%d: %w", m.r, m.c, ErrNonSquare)
	}
	if m.r == 0 {
		return &mat.SymDense{}, nil
	}
	sym := mat.NewSymDense(m.r, nil)
	m.Do(func(i, j int, v float64) {
		if j >= i {
			sym.SetSym(i, j, v)
		}
	})
	return sym, nil
}

func onesVec(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
