// Copyright 2026 Sonic Labs
// This file is part of Tailgen Tail-Dependent Sampler
//
// Tailgen is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tailgen is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Tailgen. If not, see <http://www.gnu.org/licenses/>.

package copula

// Batch is an immutable, row-major sequence of d-dimensional samples.
// Rows are either uniform-margin copula samples or, after a marginal
// transform, samples of the target distribution.
type Batch struct {
	dim    int
	values []float64
}

// NewBatch creates a batch from rows of equal length. The rows are copied.
func NewBatch(rows [][]float64) (*Batch, error) {
	if len(rows) == 0 {
		return nil, invalidParameter("cannot infer dimension of an empty row set")
	}
	dim := len(rows[0])
	if dim < 1 {
		return nil, invalidParameter("dimension (%v) must be at least one", dim)
	}
	b := newBatch(dim, len(rows))
	for i, row := range rows {
		if len(row) != dim {
			return nil, invalidParameter("row %v has %v coordinates; expected %v", i, len(row), dim)
		}
		b.values = append(b.values, row...)
	}
	return b, nil
}

// newBatch returns an empty batch with room for capacity rows.
func newBatch(dim, capacity int) *Batch {
	return &Batch{dim: dim, values: make([]float64, 0, dim*capacity)}
}

func (b *Batch) add(row []float64) {
	b.values = append(b.values, row...)
}

// Len returns the number of rows.
func (b *Batch) Len() int {
	if b.dim == 0 {
		return 0
	}
	return len(b.values) / b.dim
}

// Dim returns the number of coordinates per row.
func (b *Batch) Dim() int {
	return b.dim
}

// At returns a copy of row i.
func (b *Batch) At(i int) []float64 {
	row := make([]float64, b.dim)
	copy(row, b.row(i))
	return row
}

func (b *Batch) row(i int) []float64 {
	return b.values[i*b.dim : (i+1)*b.dim]
}

// Column returns a copy of coordinate j across all rows.
func (b *Batch) Column(j int) []float64 {
	n := b.Len()
	col := make([]float64, n)
	for i := range n {
		col[i] = b.values[i*b.dim+j]
	}
	return col
}

// Rows returns a copy of all rows.
func (b *Batch) Rows() [][]float64 {
	rows := make([][]float64, b.Len())
	for i := range rows {
		rows[i] = b.At(i)
	}
	return rows
}

// Map returns a new batch where coordinate j of every row is replaced by
// fn(j, value). The receiver is left unchanged.
func (b *Batch) Map(fn func(j int, x float64) float64) *Batch {
	out := &Batch{dim: b.dim, values: make([]float64, len(b.values))}
	for k, x := range b.values {
		out.values[k] = fn(k%b.dim, x)
	}
	return out
}
