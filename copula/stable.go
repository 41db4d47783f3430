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

// boundaryMargin keeps the angular variate away from 0 and pi where the
// sine terms of the transform vanish.
const boundaryMargin = 1e-10

// StableSampler draws positive (totally skewed) stable variates with
// stability index alpha in (0,1] and Laplace transform exp(-s^alpha).
// For the Gumbel copula with parameter theta the index is 1/theta.
type StableSampler struct {
	alpha float64
}

// NewStableSampler creates a sampler for the stability index alpha.
func NewStableSampler(alpha float64) (StableSampler, error) {
	if !(alpha > 0 && alpha <= 1) {
		return StableSampler{}, invalidParameter("stability index (%v) must be in (0,1]", alpha)
	}
	return StableSampler{alpha: alpha}, nil
}

// Alpha returns the stability index.
func (s StableSampler) Alpha() float64 {
	return s.alpha
}

// Sample draws one stable variate using the Chambers-Mallows-Stuck
// transform. An angle W1 uniform on (0,pi) and an exponential W2 are
// consumed for every index, including alpha = 1, so that the number of
// draws taken from rg does not depend on alpha.
//
// For small alpha the variate overflows float64; use LogSample there.
func (s StableSampler) Sample(rg *rand.Rand) float64 {
	return math.Exp(s.LogSample(rg))
}

// LogSample draws the logarithm of one stable variate. It consumes the
// same draws as Sample and stays finite where the variate itself would
// overflow.
func (s StableSampler) LogSample(rg *rand.Rand) float64 {
	w1 := boundaryMargin + rg.Float64()*(math.Pi-2*boundaryMargin)
	w2 := rg.ExpFloat64()
	return s.logTransform(w1, w2)
}

// transform maps the angle w1 and the exponential w2 onto a stable variate.
func (s StableSampler) transform(w1, w2 float64) float64 {
	return math.Exp(s.logTransform(w1, w2))
}

// logTransform is the logarithm of
//
//	V = sin(a*w1)/sin(w1)^(1/a) * (sin((1-a)*w1)/w2)^((1-a)/a)
func (s StableSampler) logTransform(w1, w2 float64) float64 {
	a := s.alpha
	if a == 1 {
		// point mass at one; the subordinator degenerates to independence
		return 0
	}
	return math.Log(math.Sin(a*w1)) -
		math.Log(math.Sin(w1))/a +
		(1-a)/a*(math.Log(math.Sin((1-a)*w1))-math.Log(w2))
}
