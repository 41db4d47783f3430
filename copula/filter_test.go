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
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	tests := []struct {
		u     []float64
		valid bool
	}{
		{[]float64{0.5, 0.5}, true},
		{[]float64{1e-300, 1 - 1e-16}, true},
		{[]float64{0, 0.5}, false},
		{[]float64{0.5, 1}, false},
		{[]float64{-0.1, 0.5}, false},
		{[]float64{0.5, 1.2}, false},
		{[]float64{math.NaN(), 0.5}, false},
		{[]float64{0.5, math.Inf(1)}, false},
		{[]float64{math.Inf(-1), 0.5}, false},
		{[]float64{0.1, 0.2, 0.3}, true},
	}
	for _, test := range tests {
		assert.Equal(t, test.valid, Valid(test.u), "u=%v", test.u)
	}
}

func TestSelect_KeepsFirstValidRowsInOrder(t *testing.T) {
	cands, err := NewBatch([][]float64{
		{0.1, 0.2},
		{math.NaN(), 0.5},
		{0.3, 0.4},
		{1, 0.5},
		{0.5, 0.6},
		{0.7, 0.8},
	})
	require.NoError(t, err)

	b, err := Select(cands, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.1, 0.2}, {0.3, 0.4}, {0.5, 0.6}}, b.Rows())
}

func TestSelect_FailsWhenTooFewValidRows(t *testing.T) {
	cands, err := NewBatch([][]float64{
		{0.1, 0.2},
		{0, 0.5},
		{0.3, math.Inf(1)},
	})
	require.NoError(t, err)

	b, err := Select(cands, 2)
	assert.Nil(t, b)
	assert.True(t, errors.Is(err, ErrInsufficientValidSamples))

	_, err = Select(cands, -1)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestCandidates_HasRequestedShape(t *testing.T) {
	s, err := NewStableSampler(0.5)
	require.NoError(t, err)
	b := Candidates(rand.New(rand.NewSource(3)), s, 2, 3, 150)
	assert.Equal(t, 150, b.Len())
	assert.Equal(t, 3, b.Dim())
}

func TestCandidates_DegenerateVariateInvalidatesRow(t *testing.T) {
	for _, logV := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.True(t, isDegenerate(logV))
		u := logInverseGenerator(-logV, 2)
		assert.False(t, Valid([]float64{u}), "log v=%v", logV)
	}
	assert.False(t, isDegenerate(800))
}

func TestLogInverseGenerator(t *testing.T) {
	for _, theta := range []float64{1, 2.5, 10} {
		for _, x := range []float64{1e-3, 0.5, 1, 4} {
			want := math.Exp(-math.Pow(x, 1/theta))
			assert.InDelta(t, want, logInverseGenerator(math.Log(x), theta), 1e-12, "theta=%v, t=%v", theta, x)
		}
	}

	// a stable variate of exp(800) overflows float64 but still maps inside
	// the unit interval for a large theta
	u := logInverseGenerator(-800, 500)
	assert.InDelta(t, math.Exp(-math.Exp(-1.6)), u, 1e-12)
	assert.True(t, Valid([]float64{u}))
}
