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

	"github.com/0xsoniclabs/tailgen/logger"
	"github.com/cockroachdb/errors"
)

const (
	DefaultDimension    = 2   // bivariate samples
	DefaultOversampling = 1.5 // candidates drawn per requested sample
	DefaultMaxRetries   = 10  // extra oversampled batches before giving up
)

// Generator draws samples with uniform margins from the Gumbel copula with
// parameter theta. A Generator is immutable; it may be shared between
// goroutines as long as every goroutine supplies its own random source.
type Generator struct {
	theta        float64
	dim          int
	oversampling float64
	maxRetries   int
	sampler      StableSampler
	log          logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithDimension sets the number of coordinates per sample.
func WithDimension(dim int) Option {
	return func(g *Generator) { g.dim = dim }
}

// WithOversampling sets the ratio of candidates drawn per requested sample.
func WithOversampling(ratio float64) Option {
	return func(g *Generator) { g.oversampling = ratio }
}

// WithMaxRetries sets the number of extra candidate batches drawn when the
// first batch yields too few valid samples.
func WithMaxRetries(retries int) Option {
	return func(g *Generator) { g.maxRetries = retries }
}

// WithLogger enables debug logging of redraws.
func WithLogger(log logger.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// New creates a generator for the Gumbel copula with parameter theta >= 1.
// A theta of one yields independent coordinates.
func New(theta float64, opts ...Option) (*Generator, error) {
	g := &Generator{
		theta:        theta,
		dim:          DefaultDimension,
		oversampling: DefaultOversampling,
		maxRetries:   DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(g)
	}
	if math.IsNaN(theta) || math.IsInf(theta, 0) || theta < 1 {
		return nil, invalidParameter("theta (%v) must be a finite number of at least one", theta)
	}
	if g.dim < 1 {
		return nil, invalidParameter("dimension (%v) must be at least one", g.dim)
	}
	if math.IsNaN(g.oversampling) || math.IsInf(g.oversampling, 0) || g.oversampling < 1 {
		return nil, invalidParameter("oversampling ratio (%v) must be a finite number of at least one", g.oversampling)
	}
	if g.maxRetries < 0 {
		return nil, invalidParameter("number of retries (%v) must not be negative", g.maxRetries)
	}
	sampler, err := NewStableSampler(1 / theta)
	if err != nil {
		return nil, err
	}
	g.sampler = sampler
	return g, nil
}

// Theta returns the copula parameter.
func (g *Generator) Theta() float64 {
	return g.theta
}

// Dim returns the number of coordinates per sample.
func (g *Generator) Dim() int {
	return g.dim
}

// Sample draws exactly n valid samples from rg. Candidates are drawn in
// oversampled batches; invalid candidates are dropped and further batches
// are drawn until n samples are collected or the retry budget is spent.
// The result is deterministic for a given state of rg.
func (g *Generator) Sample(rg *rand.Rand, n int) (*Batch, error) {
	if n < 0 {
		return nil, invalidParameter("number of samples (%v) must not be negative", n)
	}
	out := newBatch(g.dim, n)
	if n == 0 {
		return out, nil
	}
	batchSize := int(math.Ceil(float64(n) * g.oversampling))
	drawn, degenerate := 0, 0
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		cands, bad := candidates(rg, g.sampler, g.theta, g.dim, batchSize)
		drawn += batchSize
		degenerate += bad
		if fill(out, cands, n) == n {
			if attempt > 0 && g.log != nil {
				g.log.Debugf("Collected %v samples after %v extra batches (%v candidates, %v degenerate stable draws)", n, attempt, drawn, degenerate)
			}
			return out, nil
		}
		if g.log != nil {
			g.log.Debugf("Batch %v yielded %v of %v samples; redrawing", attempt, out.Len(), n)
		}
	}
	err := insufficient(out.Len(), n, "%v candidates in %v batches", drawn, g.maxRetries+1)
	if degenerate > 0 {
		err = errors.Mark(errors.WithDetailf(err, "%v stable draws were non-finite", degenerate), ErrNumericalDegeneracy)
	}
	return nil, err
}

// GenerateSamples draws n bivariate samples with uniform margins and Gumbel
// dependence theta, using a random source seeded with seed.
func GenerateSamples(n int, theta float64, seed int64) (*Batch, error) {
	g, err := New(theta)
	if err != nil {
		return nil, err
	}
	return g.Sample(rand.New(rand.NewSource(seed)), n)
}
