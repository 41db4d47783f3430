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

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidParameter is returned for parameters outside their domain
	// (theta < 1, negative sample counts, oversampling below one, ...).
	// Nothing is computed when it is returned.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNumericalDegeneracy marks a non-finite stable variate. Degenerate
	// draws are redrawn by the generator; the error only surfaces as the
	// cause reported alongside ErrInsufficientValidSamples.
	ErrNumericalDegeneracy = errors.New("numerical degeneracy")

	// ErrInsufficientValidSamples is returned when the retry budget is
	// exhausted before the requested number of valid samples was collected.
	ErrInsufficientValidSamples = errors.New("insufficient valid samples")
)

func invalidParameter(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidParameter, format, args...)
}

func insufficient(got, want int, format string, args ...any) error {
	args = append([]any{got, want}, args...)
	return errors.Wrapf(ErrInsufficientValidSamples, "collected %v of %v samples from "+format, args...)
}
