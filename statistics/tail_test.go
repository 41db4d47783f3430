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
	"math"
	"math/rand"
	"testing"

	"github.com/0xsoniclabs/tailgen/copula"
	"github.com/0xsoniclabs/tailgen/marginal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJointExceedances_CountsRowsAboveAllThresholds(t *testing.T) {
	b, err := copula.NewBatch([][]float64{{1, 1}, {5, 6}, {5, 1}, {10, 10}, {4, 7}})
	require.NoError(t, err)
	count, err := JointExceedances(b, []float64{4, 5})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = JointExceedances(b, []float64{4})
	assert.Error(t, err)
}

func TestUpperTailRate(t *testing.T) {
	b, err := copula.NewBatch([][]float64{{0.99, 0.97}, {0.99, 0.5}, {0.1, 0.2}, {0.96, 0.999}})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, UpperTailRate(b, 0.05), 1e-12)

	empty, err := copula.GenerateSamples(0, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, UpperTailRate(empty, 0.05))
}

func TestEmpiricalQuantiles(t *testing.T) {
	b, err := copula.NewBatch([][]float64{{5, 50}, {1, 10}, {3, 30}, {2, 20}, {4, 40}})
	require.NoError(t, err)
	q, err := EmpiricalQuantiles(b, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 30}, q)

	_, err = EmpiricalQuantiles(b, 1.5)
	assert.Error(t, err)

	empty, err := copula.GenerateSamples(0, 2, 1)
	require.NoError(t, err)
	_, err = EmpiricalQuantiles(empty, 0.5)
	assert.Error(t, err)
}

func TestGumbelMeasures(t *testing.T) {
	assert.Equal(t, 0.0, GumbelTau(1))
	assert.InDelta(t, 0.6, GumbelTau(2.5), 1e-12)
	assert.InDelta(t, 0.0, UpperTailCoefficient(1), 1e-12)
	assert.InDelta(t, 2-math.Sqrt2, UpperTailCoefficient(2), 1e-12)

	theta, err := ThetaFromTau(0.6)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, theta, 1e-12)

	theta, err = ThetaFromTau(-0.1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, theta)

	_, err = ThetaFromTau(1)
	assert.Error(t, err)
	_, err = ThetaFromTau(math.NaN())
	assert.Error(t, err)
}

func TestKendall_RecoversTheta(t *testing.T) {
	for _, theta := range []float64{1.5, 2.5, 4} {
		b, err := copula.GenerateSamples(4000, theta, 42)
		require.NoError(t, err)
		estimate, err := ThetaFromTau(Kendall(b, 0, 1))
		require.NoError(t, err)
		assert.InEpsilon(t, theta, estimate, 0.1, "theta=%v", theta)
	}
}

func TestKendall_InvariantUnderMarginalTransform(t *testing.T) {
	u, err := copula.GenerateSamples(1000, 2, 7)
	require.NoError(t, err)
	pareto, err := marginal.Pareto(1, 1.5)
	require.NoError(t, err)
	exponential, err := marginal.Exponential(3)
	require.NoError(t, err)
	x, err := marginal.Apply(u, pareto.Quantile, exponential.Quantile)
	require.NoError(t, err)
	assert.InDelta(t, Kendall(u, 0, 1), Kendall(x, 0, 1), 1e-12)
	assert.Greater(t, Correlation(u, 0, 1), 0.3)
}

// TestTailDependence_ParetoScenario reproduces the tail-dependence
// illustration: 500 Pareto(1.5) pairs coupled with theta = 2.5 show many
// more joint exceedances of the 90% quantile than independent pairs drawn
// from the same seed.
func TestTailDependence_ParetoScenario(t *testing.T) {
	const (
		n     = 500
		seed  = 42
		alpha = 1.5
	)
	pareto, err := marginal.Pareto(1, alpha)
	require.NoError(t, err)
	threshold := pareto.Quantile(0.9)

	count := func(theta float64) int {
		u, err := copula.GenerateSamples(n, theta, seed)
		require.NoError(t, err)
		x, err := marginal.Apply(u, pareto.Quantile, pareto.Quantile)
		require.NoError(t, err)
		c, err := JointExceedances(x, []float64{threshold, threshold})
		require.NoError(t, err)
		return c
	}
	dependent := count(2.5)
	independent := count(1)
	assert.Greater(t, dependent, independent)
	// expected counts are about 35 and 5
	assert.Greater(t, dependent, 15)
	assert.Less(t, independent, 15)
}

func TestUpperTailRate_IndependenceBaseline(t *testing.T) {
	g, err := copula.New(1, copula.WithDimension(2))
	require.NoError(t, err)
	b, err := g.Sample(rand.New(rand.NewSource(5)), 40000)
	require.NoError(t, err)
	// expectation eps^2 = 0.01 with a standard error of 0.0005
	assert.InDelta(t, 0.01, UpperTailRate(b, 0.1), 0.003)
}

func TestGumbelJointSurvival(t *testing.T) {
	// independence
	assert.InDelta(t, 0.01, GumbelJointSurvival(1, 0.9, 2), 1e-12)
	assert.InDelta(t, 0.001, GumbelJointSurvival(1, 0.9, 3), 1e-12)

	// bivariate closed form 1 - 2u + u^(2^(1/theta))
	u, theta := 0.9, 2.5
	want := 1 - 2*u + math.Pow(u, math.Pow(2, 1/theta))
	assert.InDelta(t, want, GumbelJointSurvival(theta, u, 2), 1e-12)

	// the sampler reproduces the three-dimensional exceedance rate
	g, err := copula.New(theta, copula.WithDimension(3))
	require.NoError(t, err)
	b, err := g.Sample(rand.New(rand.NewSource(11)), 20000)
	require.NoError(t, err)
	assert.InDelta(t, GumbelJointSurvival(theta, u, 3), UpperTailRate(b, 1-u), 0.01)
}
