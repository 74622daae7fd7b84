// SPDX-License-Identifier: MIT

package sparse

import "fmt"

// MulVec returns m·x.
//
// Complexity: O(nnz).
func (m *CSR) MulVec(x []float64) ([]float64, error) {
	if len(x) != m.c {
		return nil, sparseErrorf(opMulVec, fmt.Errorf("len(x)=%d, cols=%d: %w", len(x), m.c, ErrDimensionMismatch))
	}
	out := make([]float64, m.r)
	m.mulVecTo(out, x)
	return out, nil
}

// mulVecTo writes m·x into dst without validation.
func (m *CSR) mulVecTo(dst, x []float64) {
	var s float64
	for i := 0; i < m.r; i++ {
		s = 0
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			s += m.data[k] * x[m.indices[k]]
		}
		dst[i] = s
	}
}

// Transpose returns mᵀ.
//
// Complexity: O(nnz + rows + cols).
func (m *CSR) Transpose() *CSR {
	t := &CSR{
		r:       m.c,
		c:       m.r,
		indptr:  make([]int, m.c+1),
		indices: make([]int, len(m.indices)),
		data:    make([]float64, len(m.data)),
	}
	for _, j := range m.indices {
		t.indptr[j+1]++
	}
	for j := 0; j < m.c; j++ {
		t.indptr[j+1] += t.indptr[j]
	}
	next := append([]int(nil), t.indptr[:m.c]...)
	// Rows are visited in ascending order, so each transposed row stays sorted.
	for i := 0; i < m.r; i++ {
		for k := m.indptr[i]; k < m.indptr[i+1]; k++ {
			j := m.indices[k]
			p := next[j]
			t.indices[p] = i
			t.data[p] = m.data[k]
			next[j]++
		}
	}
	return t
}

// Scale returns alpha·m.
func (m *CSR) Scale(alpha float64) *CSR {
	out := m.clone()
	for k := range out.data {
		out.data[k] *= alpha
	}
	return out
}

// ScaleRows returns diag(w)·m.
func (m *CSR) ScaleRows(w []float64) (*CSR, error) {
	if len(w) != m.r {
		return nil, sparseErrorf(opScaleRows, fmt.Errorf("len(w)=%d, rows=%d: %w", len(w), m.r, ErrDimensionMismatch))
	}
	out := m.clone()
	for i := 0; i < out.r; i++ {
		for k := out.indptr[i]; k < out.indptr[i+1]; k++ {
			out.data[k] *= w[i]
		}
	}
	return out, nil
}

// Mul returns a·b using a row-wise dense accumulator.
//
// Complexity: O(Σ_i Σ_{k∈row i of a} nnz(row k of b)).
func Mul(a, b *CSR) (*CSR, error) {
	if a.c != b.r {
		return nil, sparseErrorf(opMul, fmt.Errorf("%dx%d · %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}
	acc := make([]float64, b.c)
	mark := make([]int, b.c)
	for j := range mark {
		mark[j] = -1
	}
	out := &CSR{r: a.r, c: b.c, indptr: make([]int, a.r+1)}
	var cols []int
	for i := 0; i < a.r; i++ {
		cols = cols[:0]
		for ka := a.indptr[i]; ka < a.indptr[i+1]; ka++ {
			k, av := a.indices[ka], a.data[ka]
			for kb := b.indptr[k]; kb < b.indptr[k+1]; kb++ {
				j := b.indices[kb]
				if mark[j] != i {
					mark[j] = i
					acc[j] = 0
					cols = append(cols, j)
				}
				acc[j] += av * b.data[kb]
			}
		}
		sortInts(cols)
		for _, j := range cols {
			out.indices = append(out.indices, j)
			out.data = append(out.data, acc[j])
		}
		out.indptr[i+1] = len(out.indices)
	}
	return out, nil
}

// Add returns alpha·a + beta·b.
func Add(alpha float64, a *CSR, beta float64, b *CSR) (*CSR, error) {
	if a.r != b.r || a.c != b.c {
		return nil, sparseErrorf(opAdd, fmt.Errorf("%dx%d + %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}
	out := &CSR{r: a.r, c: a.c, indptr: make([]int, a.r+1)}
	for i := 0; i < a.r; i++ {
		ka, ea := a.indptr[i], a.indptr[i+1]
		kb, eb := b.indptr[i], b.indptr[i+1]
		for ka < ea || kb < eb {
			switch {
			case kb >= eb || (ka < ea && a.indices[ka] < b.indices[kb]):
				out.indices = append(out.indices, a.indices[ka])
				out.data = append(out.data, alpha*a.data[ka])
				ka++
			case ka >= ea || b.indices[kb] < a.indices[ka]:
				out.indices = append(out.indices, b.indices[kb])
				out.data = append(out.data, beta*b.data[kb])
				kb++
			default:
				out.indices = append(out.indices, a.indices[ka])
				out.data = append(out.data, alpha*a.data[ka]+beta*b.data[kb])
				ka++
				kb++
			}
		}
		out.indptr[i+1] = len(out.indices)
	}
	return out, nil
}

// Gram returns mᵀ·m, which is symmetric positive semi-definite.
func (m *CSR) Gram() *CSR {
	g, _ := Mul(m.Transpose(), m) // shapes always conform
	return g
}

func (m *CSR) clone() *CSR {
	return &CSR{
		r:       m.r,
		c:       m.c,
		indptr:  append([]int(nil), m.indptr...),
		indices: append([]int(nil), m.indices...),
		data:    append([]float64(nil), m.data...),
	}
}

// sortInts is an insertion sort; accumulator rows are short.
func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
