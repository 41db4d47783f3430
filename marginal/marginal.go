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

// Package marginal imposes target marginal distributions on copula samples
// by inverse transform sampling.
//
// Quantile functions are applied without clamping: uniforms close to zero or
// one map to extreme values of the target distribution, which is exactly the
// tail behaviour a tail-dependent sample is meant to carry.
package marginal

import (
	"github.com/0xsoniclabs/tailgen/copula"
	"github.com/cockroachdb/errors"
)

// Quantile is the inverse cumulative distribution function of a marginal.
// It must accept any u in (0,1).
type Quantile func(u float64) float64

// Distribution is a marginal with a quantile function and its CDF. All
// continuous distributions of gonum's distuv package satisfy it.
type Distribution interface {
	Quantile(p float64) float64
	CDF(x float64) float64
}

// Apply transforms every row of b by applying quantiles[j] to coordinate j.
// The number of quantile functions must match the dimension of b; a single
// function is not broadcast. The input batch is left unchanged.
func Apply(b *copula.Batch, quantiles ...Quantile) (*copula.Batch, error) {
	if b == nil {
		return nil, errors.Wrap(copula.ErrInvalidParameter, "batch is nil")
	}
	if len(quantiles) != b.Dim() {
		return nil, errors.Wrapf(copula.ErrInvalidParameter, "got %v quantile functions for %v coordinates", len(quantiles), b.Dim())
	}
	for j, q := range quantiles {
		if q == nil {
			return nil, errors.Wrapf(copula.ErrInvalidParameter, "quantile function of coordinate %v is nil", j)
		}
	}
	return b.Map(func(j int, u float64) float64 {
		return quantiles[j](u)
	}), nil
}

// Quantiles returns the quantile functions of the given distributions.
func Quantiles(ds ...Distribution) []Quantile {
	qs := make([]Quantile, len(ds))
	for i, d := range ds {
		qs[i] = d.Quantile
	}
	return qs
}

// Broadcast returns d repeated dim times, for batches whose coordinates
// share one marginal.
func Broadcast(d Distribution, dim int) []Distribution {
	ds := make([]Distribution, dim)
	for i := range ds {
		ds[i] = d
	}
	return ds
}

// ProbabilityIntegralTransform maps every coordinate of b back through the
// CDF of its marginal. For samples produced by Apply with the same
// distributions this recovers the uniform copula sample.
func ProbabilityIntegralTransform(b *copula.Batch, ds ...Distribution) (*copula.Batch, error) {
	if b == nil {
		return nil, errors.Wrap(copula.ErrInvalidParameter, "batch is nil")
	}
	if len(ds) != b.Dim() {
		return nil, errors.Wrapf(copula.ErrInvalidParameter, "got %v distributions for %v coordinates", len(ds), b.Dim())
	}
	return b.Map(func(j int, x float64) float64 {
		return ds[j].CDF(x)
	}), nil
}
