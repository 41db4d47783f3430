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

import "math"

// Valid reports whether every coordinate of u is finite and strictly
// inside the open unit interval.
func Valid(u []float64) bool {
	for _, x := range u {
		if math.IsNaN(x) || math.IsInf(x, 0) || x <= 0 || x >= 1 {
			return false
		}
	}
	return true
}

// Select returns the first n valid rows of candidates in their original
// order. If fewer than n rows are valid, ErrInsufficientValidSamples is
// returned and no batch is produced.
func Select(candidates *Batch, n int) (*Batch, error) {
	if n < 0 {
		return nil, invalidParameter("number of samples (%v) must not be negative", n)
	}
	out := newBatch(candidates.Dim(), n)
	if got := fill(out, candidates, n); got < n {
		return nil, insufficient(got, n, "candidate batch of %v rows", candidates.Len())
	}
	return out, nil
}

// fill appends valid rows of src to dst until dst holds n rows and returns
// the resulting length of dst.
func fill(dst, src *Batch, n int) int {
	for i := 0; i < src.Len() && dst.Len() < n; i++ {
		if row := src.row(i); Valid(row) {
			dst.add(row)
		}
	}
	return dst.Len()
}
