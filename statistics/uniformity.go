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

package statistics

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// UniformityTest is the outcome of a chi-squared goodness-of-fit test
// against the uniform distribution on [0,1).
type UniformityTest struct {
	Chi2     float64 // observed chi-squared statistic
	Critical float64 // critical value at the significance level
	Bins     []int   // observed frequencies
}

// Passed reports whether uniformity could not be rejected.
func (u UniformityTest) Passed() bool {
	return u.Chi2 <= u.Critical
}

// ChiSquaredUniformity bins values into numBins equal-width cells and
// compares the frequencies with the uniform expectation at significance
// level alpha, using numBins-1 degrees of freedom.
func ChiSquaredUniformity(values []float64, numBins int, alpha float64) (UniformityTest, error) {
	if numBins < 2 {
		return UniformityTest{}, fmt.Errorf("ChiSquaredUniformity: number of bins (%v) must be at least two", numBins)
	}
	if !(alpha > 0 && alpha < 1) {
		return UniformityTest{}, fmt.Errorf("ChiSquaredUniformity: significance level (%v) is not in interval (0,1)", alpha)
	}
	if len(values) == 0 {
		return UniformityTest{}, fmt.Errorf("ChiSquaredUniformity: no values")
	}
	bins := make([]int, numBins)
	for _, v := range values {
		if !(v >= 0 && v < 1) {
			return UniformityTest{}, fmt.Errorf("ChiSquaredUniformity: value (%v) is not in interval [0,1)", v)
		}
		bins[int(v*float64(numBins))]++
	}

	expected := float64(len(values)) / float64(numBins)
	chi2 := 0.0
	for _, c := range bins {
		err := expected - float64(c)
		chi2 += (err * err) / expected
	}
	df := float64(numBins - 1)
	critical := distuv.ChiSquared{K: df, Src: nil}.Quantile(1.0 - alpha)
	return UniformityTest{Chi2: chi2, Critical: critical, Bins: bins}, nil
}
