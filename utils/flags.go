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

package utils

import "github.com/urfave/cli/v2"

// sampling
var (
	SamplesFlag = cli.IntFlag{
		Name:  "samples",
		Usage: "number of random vectors to generate",
		Value: 500,
	}
	ThetaFlag = cli.Float64Flag{
		Name:  "theta",
		Usage: "dependence parameter of the Gumbel copula (>= 1, 1 means independence)",
		Value: 2.5,
	}
	RandomSeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed of the random generator, a negative seed is derived from the clock",
		Value: -1,
	}
	DimensionFlag = cli.IntFlag{
		Name:  "dimension",
		Usage: "number of coordinates per vector",
		Value: 2,
	}
	OversamplingFlag = cli.Float64Flag{
		Name:  "oversampling",
		Usage: "candidate batch size as a multiple of the number of requested samples",
		Value: 1.5,
	}
	MaxRetriesFlag = cli.IntFlag{
		Name:  "max-retries",
		Usage: "number of additional candidate batches before giving up",
		Value: 10,
	}
	MarginalFlag = cli.StringSliceFlag{
		Name:  "marginal",
		Usage: "marginal distribution such as pareto(1.5) or empirical(file), one per coordinate or one for all",
	}
	// TailMarginalFlag is MarginalFlag with a heavy-tailed default.
	TailMarginalFlag = cli.StringSliceFlag{
		Name:  "marginal",
		Usage: "marginal distribution such as pareto(1.5) or empirical(file), one per coordinate or one for all",
		Value: cli.NewStringSlice("pareto(1.5)"),
	}
)

// output
var (
	OutputFlag = cli.PathFlag{
		Name:  "output",
		Usage: "text file receiving one vector per line",
	}
	AppendFlag = cli.BoolFlag{
		Name:  "append",
		Usage: "append vectors to the --output file instead of replacing it",
	}
	DbFlag = cli.PathFlag{
		Name:  "db",
		Usage: "sqlite3 file receiving the vectors in table samples",
	}
	QuietFlag = cli.BoolFlag{
		Name:  "quiet",
		Usage: "disable the console summary",
	}
)

// comparison
var (
	TailQuantileFlag = cli.Float64Flag{
		Name:  "tail-quantile",
		Usage: "probability of the empirical quantile used as exceedance threshold",
		Value: 0.9,
	}
	ThresholdFlag = cli.Float64Flag{
		Name:  "threshold",
		Usage: "fixed exceedance threshold applied to every coordinate",
		Value: 10,
	}
)
