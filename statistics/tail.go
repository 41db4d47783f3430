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

// Package statistics provides diagnostics for tail-dependent samples:
// joint exceedance counts, rank correlation and the closed-form
// dependence measures of the Gumbel copula.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/0xsoniclabs/tailgen/copula"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/combin"
)

// JointExceedances counts the rows of b whose every coordinate j is
// strictly greater than thresholds[j].
func JointExceedances(b *copula.Batch, thresholds []float64) (int, error) {
	if len(thresholds) != b.Dim() {
		return 0, fmt.Errorf("JointExceedances: got %v thresholds for %v coordinates", len(thresholds), b.Dim())
	}
	count := 0
	for i := range b.Len() {
		if exceeds(b.At(i), thresholds) {
			count++
		}
	}
	return count, nil
}

func exceeds(row, thresholds []float64) bool {
	for j, x := range row {
		if !(x > thresholds[j]) {
			return false
		}
	}
	return true
}

// UpperTailRate is the fraction of rows of a uniform-margin batch whose
// coordinates all exceed 1-eps. Under independence in d dimensions its
// expectation is eps^d.
func UpperTailRate(b *copula.Batch, eps float64) float64 {
	if b.Len() == 0 {
		return 0
	}
	thresholds := make([]float64, b.Dim())
	for j := range thresholds {
		thresholds[j] = 1 - eps
	}
	count, _ := JointExceedances(b, thresholds)
	return float64(count) / float64(b.Len())
}

// EmpiricalQuantiles returns the empirical p-quantile of every coordinate.
func EmpiricalQuantiles(b *copula.Batch, p float64) ([]float64, error) {
	if !(p >= 0 && p <= 1) {
		return nil, fmt.Errorf("EmpiricalQuantiles: probability (%v) is not in interval [0,1]", p)
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("EmpiricalQuantiles: batch is empty")
	}
	q := make([]float64, b.Dim())
	for j := range q {
		col := b.Column(j)
		slices.Sort(col)
		q[j] = stat.Quantile(p, stat.Empirical, col, nil)
	}
	return q, nil
}

// Correlation returns Pearson's correlation between coordinates i and j.
func Correlation(b *copula.Batch, i, j int) float64 {
	return stat.Correlation(b.Column(i), b.Column(j), nil)
}

// Kendall returns Kendall's tau between coordinates i and j. Rank
// correlation does not depend on the marginals, so it is the same before
// and after a marginal transform.
func Kendall(b *copula.Batch, i, j int) float64 {
	return stat.Kendall(b.Column(i), b.Column(j), nil)
}

// GumbelTau is Kendall's tau of the Gumbel copula, 1 - 1/theta.
func GumbelTau(theta float64) float64 {
	return 1 - 1/theta
}

// UpperTailCoefficient is the upper tail dependence coefficient of the
// Gumbel copula, 2 - 2^(1/theta). It is zero at theta = 1.
func UpperTailCoefficient(theta float64) float64 {
	return 2 - math.Pow(2, 1/theta)
}

// GumbelJointSurvival is the probability that all dim coordinates of a
// Gumbel copula sample exceed u. By inclusion-exclusion over the diagonal
// C(u,...,u) = u^(k^(1/theta)) of every k-dimensional margin it is
// sum_k (-1)^k binom(dim,k) u^(k^(1/theta)); at theta = 1 this is (1-u)^dim.
func GumbelJointSurvival(theta, u float64, dim int) float64 {
	p := 0.0
	for k := 0; k <= dim; k++ {
		term := float64(combin.Binomial(dim, k)) * math.Pow(u, math.Pow(float64(k), 1/theta))
		if k%2 == 1 {
			term = -term
		}
		p += term
	}
	return p
}

// ThetaFromTau inverts GumbelTau. A non-positive tau cannot be represented
// by the Gumbel family and maps to independence (theta = 1).
func ThetaFromTau(tau float64) (float64, error) {
	if math.IsNaN(tau) || tau >= 1 {
		return 0, fmt.Errorf("ThetaFromTau: tau (%v) must be below one", tau)
	}
	if tau <= 0 {
		return 1, nil
	}
	return 1 / (1 - tau), nil
}
