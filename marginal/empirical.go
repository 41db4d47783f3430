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
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"sort"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// DefaultNumPoints is the number of points kept in a compressed empirical CDF.
const DefaultNumPoints = 300

// Empirical is a marginal estimated from observed data. The CDF is a
// piecewise linear function through the points (x_i, F_i) of the sorted
// data, compressed with the Visvalingam-Whyatt algorithm. Outside the
// observed range the CDF is flat, i.e. Quantile never extrapolates beyond
// the smallest and largest observation.
type Empirical struct {
	points [][2]float64 // strictly increasing in both coordinates
}

// NewEmpirical estimates a marginal from data, keeping at most numPoints
// points of the empirical CDF. Data must contain at least two distinct
// finite values.
func NewEmpirical(data []float64, numPoints int) (*Empirical, error) {
	if numPoints < 2 {
		return nil, fmt.Errorf("NewEmpirical: number of points (%v) must be at least two", numPoints)
	}
	sorted := make([]float64, 0, len(data))
	for _, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("NewEmpirical: data contains non-finite value %v", x)
		}
		sorted = append(sorted, x)
	}
	slices.Sort(sorted)

	// plotting positions (i+0.5)/n; ties keep the largest position
	n := float64(len(sorted))
	ls := orb.LineString{}
	for i, x := range sorted {
		p := orb.Point{x, (float64(i) + 0.5) / n}
		if last := len(ls) - 1; last >= 0 && ls[last][0] == x {
			ls[last] = p
			continue
		}
		ls = append(ls, p)
	}
	if len(ls) < 2 {
		return nil, fmt.Errorf("NewEmpirical: data must contain at least two distinct values")
	}

	compressed := simplify.VisvalingamKeep(numPoints).Simplify(ls).(orb.LineString)
	points := make([][2]float64, len(compressed))
	for i := range compressed {
		points[i] = [2]float64(compressed[i])
	}
	if err := checkPoints(points); err != nil {
		return nil, err
	}
	return &Empirical{points: points}, nil
}

// LoadEmpirical estimates a marginal from a text file of whitespace
// separated observations, such as a single column written by the sample
// command.
func LoadEmpirical(path string, numPoints int) (_ *Empirical, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open observations; %w", err)
	}
	defer func(file *os.File) {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}(file)

	var data []float64
	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		x, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid observation in %v; %w", path, err)
		}
		data = append(data, x)
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read observations from %v; %w", path, err)
	}
	return NewEmpirical(data, numPoints)
}

// checkPoints verifies that the piecewise linear function is strictly
// increasing in both coordinates.
func checkPoints(f [][2]float64) error {
	for i := range len(f) - 1 {
		if f[i][0] >= f[i+1][0] || f[i][1] >= f[i+1][1] {
			return fmt.Errorf("empirical CDF points must be strictly monotonically increasing, but point %v (%v,%v) is not smaller than point %v (%v,%v)", i, f[i][0], f[i][1], i+1, f[i+1][0], f[i+1][1])
		}
	}
	return nil
}

// Points returns a copy of the points of the compressed CDF.
func (e *Empirical) Points() [][2]float64 {
	return slices.Clone(e.points)
}

// CDF computes the cumulative probability of x by linear interpolation.
func (e *Empirical) CDF(x float64) float64 {
	f := e.points
	if x < f[0][0] {
		return 0
	}
	last := len(f) - 1
	if x >= f[last][0] {
		return 1
	}
	i := sort.Search(len(f), func(i int) bool { return f[i][0] > x })
	scale := (x - f[i-1][0]) / (f[i][0] - f[i-1][0])
	return f[i-1][1] + scale*(f[i][1]-f[i-1][1])
}

// Quantile computes the inverse of the interpolated CDF. Probabilities
// below the first or above the last point map to the smallest or largest
// observation.
func (e *Empirical) Quantile(p float64) float64 {
	f := e.points
	if p <= f[0][1] {
		return f[0][0]
	}
	last := len(f) - 1
	if p >= f[last][1] {
		return f[last][0]
	}
	i := sort.Search(len(f), func(i int) bool { return f[i][1] >= p })
	scale := (p - f[i-1][1]) / (f[i][1] - f[i-1][1])
	return f[i-1][0] + scale*(f[i][0]-f[i-1][0])
}
