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
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
)

var expressionPattern = regexp.MustCompile(`^\s*([a-zA-Z]+)\s*\(([^()]*)\)\s*$`)

// empiricalName takes a file of observations instead of numeric parameters.
const empiricalName = "empirical"

// constructors maps a marginal name and its number of parameters to a
// constructor.
var constructors = map[string]map[int]func(p []float64) (Distribution, error){
	"pareto": {
		1: func(p []float64) (Distribution, error) { return Pareto(1, p[0]) },
		2: func(p []float64) (Distribution, error) { return Pareto(p[0], p[1]) },
	},
	"lomax": {
		1: func(p []float64) (Distribution, error) { return NewLomax(p[0], 1) },
		2: func(p []float64) (Distribution, error) { return NewLomax(p[0], p[1]) },
	},
	"exponential": {
		1: func(p []float64) (Distribution, error) { return Exponential(p[0]) },
	},
	"weibull": {
		2: func(p []float64) (Distribution, error) { return Weibull(p[0], p[1]) },
	},
	"normal": {
		2: func(p []float64) (Distribution, error) { return Normal(p[0], p[1]) },
	},
	"halfnormal": {
		1: func(p []float64) (Distribution, error) { return NewHalfNormal(p[0]) },
	},
	"lognormal": {
		2: func(p []float64) (Distribution, error) { return LogNormal(p[0], p[1]) },
	},
	"gumbel": {
		2: func(p []float64) (Distribution, error) { return Gumbel(p[0], p[1]) },
	},
	"uniform": {
		0: func(p []float64) (Distribution, error) { return Uniform(0, 1) },
		2: func(p []float64) (Distribution, error) { return Uniform(p[0], p[1]) },
	},
}

// Names returns the sorted names accepted by Parse.
func Names() []string {
	names := append(maps.Keys(constructors), empiricalName)
	sort.Strings(names)
	return names
}

// Parse builds a marginal from an expression of the form name(p1, p2, ...).
// Supported forms:
//
//	pareto(alpha)          pareto(xm, alpha)
//	lomax(alpha)           lomax(alpha, scale)
//	exponential(rate)      weibull(k, lambda)
//	normal(mu, sigma)      halfnormal(sigma)
//	lognormal(mu, sigma)   gumbel(mu, beta)
//	uniform()              uniform(min, max)
//	empirical(file)        empirical(file, points)
//
// The file of an empirical marginal holds whitespace separated observations;
// its path must not contain parentheses or commas.
func Parse(expr string) (Distribution, error) {
	parts := expressionPattern.FindStringSubmatch(expr)
	if parts == nil {
		return nil, fmt.Errorf("invalid marginal expression %q; expected name(p1, p2, ...)", expr)
	}
	name := strings.ToLower(parts[1])
	if name == empiricalName {
		return parseEmpirical(parts[2])
	}
	byArity, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown marginal %q; known marginals are %v", parts[1], Names())
	}

	var params []float64
	if args := strings.TrimSpace(parts[2]); args != "" {
		for _, arg := range strings.Split(args, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid parameter %q of marginal %v; %w", arg, name, err)
			}
			params = append(params, v)
		}
	}
	construct, ok := byArity[len(params)]
	if !ok {
		return nil, fmt.Errorf("marginal %v does not accept %v parameters", name, len(params))
	}
	return construct(params)
}

func parseEmpirical(args string) (Distribution, error) {
	fields := strings.Split(args, ",")
	path := strings.TrimSpace(fields[0])
	if path == "" || len(fields) > 2 {
		return nil, fmt.Errorf("marginal %v expects a file and an optional number of points", empiricalName)
	}
	numPoints := DefaultNumPoints
	if len(fields) == 2 {
		var err error
		if numPoints, err = strconv.Atoi(strings.TrimSpace(fields[1])); err != nil {
			return nil, fmt.Errorf("invalid number of points %q of marginal %v; %w", fields[1], empiricalName, err)
		}
	}
	e, err := LoadEmpirical(path, numPoints)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ParseAll parses one expression per coordinate. A single expression is
// repeated for all dim coordinates.
func ParseAll(exprs []string, dim int) ([]Distribution, error) {
	if len(exprs) == 1 {
		d, err := Parse(exprs[0])
		if err != nil {
			return nil, err
		}
		return Broadcast(d, dim), nil
	}
	if len(exprs) != dim {
		return nil, fmt.Errorf("got %v marginal expressions for %v coordinates", len(exprs), dim)
	}
	ds := make([]Distribution, dim)
	for i, expr := range exprs {
		d, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
