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

import (
	"math"
	"math/rand"
)

// Candidates draws m raw rows of the Marshall-Olkin construction of the
// Gumbel copula in dim dimensions. Each row shares a single stable variate V
// across its coordinates and maps independent unit exponentials E_i through
// the inverse Gumbel generator:
//
//	U_i = exp(-(E_i/V)^(1/theta)) = exp(-exp((log E_i - log V)/theta))
//
// The right-hand form is evaluated so that rows whose V exceeds the float64
// range, the joint upper tail for large theta, stay representable.
//
// Rows are returned unfiltered; some may be non-finite or lie on the
// boundary of the unit interval. Use Valid to test them.
func Candidates(rg *rand.Rand, sampler StableSampler, theta float64, dim, m int) *Batch {
	b, _ := candidates(rg, sampler, theta, dim, m)
	return b
}

// candidates draws m rows as Candidates does and additionally reports the
// number of rows whose log stable variate was non-finite.
func candidates(rg *rand.Rand, sampler StableSampler, theta float64, dim, m int) (*Batch, int) {
	b := newBatch(dim, m)
	row := make([]float64, dim)
	degenerate := 0
	for range m {
		logV := sampler.LogSample(rg)
		if isDegenerate(logV) {
			degenerate++
		}
		for i := range dim {
			row[i] = logInverseGenerator(math.Log(rg.ExpFloat64())-logV, theta)
		}
		b.add(row)
	}
	return b, degenerate
}

// logInverseGenerator is the Laplace transform of the stable subordinator,
// psi(t) = exp(-t^(1/theta)), computed from log t.
func logInverseGenerator(logT, theta float64) float64 {
	return math.Exp(-math.Exp(logT / theta))
}

func isDegenerate(logV float64) bool {
	return math.IsNaN(logV) || math.IsInf(logV, 0)
}
