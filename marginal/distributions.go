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

package marginal

import (
	"math"

	"github.com/0xsoniclabs/tailgen/copula"
	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat/distuv"
)

func positive(name string, values ...float64) error {
	for _, v := range values {
		if !(v > 0) || math.IsInf(v, 0) {
			return errors.Wrapf(copula.ErrInvalidParameter, "%v: parameter (%v) must be a positive number", name, v)
		}
	}
	return nil
}

func finite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(copula.ErrInvalidParameter, "%v: parameter (%v) must be finite", name, v)
		}
	}
	return nil
}

// Pareto is the type I Pareto distribution with scale xm and shape alpha.
func Pareto(xm, alpha float64) (Distribution, error) {
	if err := positive("pareto", xm, alpha); err != nil {
		return nil, err
	}
	return distuv.Pareto{Xm: xm, Alpha: alpha}, nil
}

// Exponential is the exponential distribution with the given rate.
func Exponential(rate float64) (Distribution, error) {
	if err := positive("exponential", rate); err != nil {
		return nil, err
	}
	return distuv.Exponential{Rate: rate}, nil
}

// Weibull is the Weibull distribution with shape k and scale lambda.
func Weibull(k, lambda float64) (Distribution, error) {
	if err := positive("weibull", k, lambda); err != nil {
		return nil, err
	}
	return distuv.Weibull{K: k, Lambda: lambda}, nil
}

// Normal is the normal distribution with mean mu and deviation sigma.
func Normal(mu, sigma float64) (Distribution, error) {
	if err := finite("normal", mu); err != nil {
		return nil, err
	}
	if err := positive("normal", sigma); err != nil {
		return nil, err
	}
	return distuv.Normal{Mu: mu, Sigma: sigma}, nil
}

// LogNormal is the distribution of exp(X) for X normal with mu and sigma.
func LogNormal(mu, sigma float64) (Distribution, error) {
	if err := finite("lognormal", mu); err != nil {
		return nil, err
	}
	if err := positive("lognormal", sigma); err != nil {
		return nil, err
	}
	return distuv.LogNormal{Mu: mu, Sigma: sigma}, nil
}

// Gumbel is the right-skewed Gumbel distribution with location mu and
// scale beta.
func Gumbel(mu, beta float64) (Distribution, error) {
	if err := finite("gumbel", mu); err != nil {
		return nil, err
	}
	if err := positive("gumbel", beta); err != nil {
		return nil, err
	}
	return distuv.GumbelRight{Mu: mu, Beta: beta}, nil
}

// Uniform is the continuous uniform distribution on [lo, hi].
func Uniform(lo, hi float64) (Distribution, error) {
	if err := finite("uniform", lo, hi); err != nil {
		return nil, err
	}
	if !(lo < hi) {
		return nil, errors.Wrapf(copula.ErrInvalidParameter, "uniform: lower bound (%v) must be below upper bound (%v)", lo, hi)
	}
	return distuv.Uniform{Min: lo, Max: hi}, nil
}

// Lomax is the Pareto distribution shifted to start at zero, with survival
// function (1 + x/scale)^(-alpha).
type Lomax struct {
	Alpha float64
	Scale float64
}

// NewLomax creates a Lomax distribution.
func NewLomax(alpha, scale float64) (Distribution, error) {
	if err := positive("lomax", alpha, scale); err != nil {
		return nil, err
	}
	return Lomax{Alpha: alpha, Scale: scale}, nil
}

// CDF computes the cumulative distribution function at x.
func (l Lomax) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return -math.Expm1(-l.Alpha * math.Log1p(x/l.Scale))
}

// Quantile returns the inverse of the CDF.
func (l Lomax) Quantile(p float64) float64 {
	return l.Scale * math.Expm1(-math.Log1p(-p)/l.Alpha)
}

// HalfNormal is the distribution of |X| for X normal with mean zero and
// deviation Sigma.
type HalfNormal struct {
	Sigma float64
}

// NewHalfNormal creates a half-normal distribution.
func NewHalfNormal(sigma float64) (Distribution, error) {
	if err := positive("halfnormal", sigma); err != nil {
		return nil, err
	}
	return HalfNormal{Sigma: sigma}, nil
}

// CDF computes the cumulative distribution function at x.
func (h HalfNormal) CDF(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return math.Erf(x / (h.Sigma * math.Sqrt2))
}

// Quantile returns the inverse of the CDF.
func (h HalfNormal) Quantile(p float64) float64 {
	return h.Sigma * math.Sqrt2 * math.Erfinv(p)
}
