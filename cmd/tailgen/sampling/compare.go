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

package sampling

import (
	"fmt"
	"math"
	"time"

	"github.com/0xsoniclabs/tailgen/config"
	"github.com/0xsoniclabs/tailgen/copula"
	"github.com/0xsoniclabs/tailgen/logger"
	"github.com/0xsoniclabs/tailgen/statistics"
	"github.com/0xsoniclabs/tailgen/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v2"
)

// CompareCommand contrasts a tail-dependent sample with an independent one.
var CompareCommand = cli.Command{
	Action:    compareAction,
	Name:      "compare",
	Usage:     "compare joint extremes of Gumbel-dependent and independent vectors",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&utils.SamplesFlag,
		&utils.ThetaFlag,
		&utils.RandomSeedFlag,
		&utils.DimensionFlag,
		&utils.OversamplingFlag,
		&utils.MaxRetriesFlag,
		&utils.TailMarginalFlag,
		&utils.TailQuantileFlag,
		&utils.ThresholdFlag,
		&utils.OutputFlag,
		&utils.QuietFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The compare command draws two batches of --samples vectors from the same
--seed: one coupled by a Gumbel copula with parameter --theta and one with
independent coordinates (theta = 1). Both are transformed to the --marginal
distributions (pareto(1.5) by default). It reports how often all coordinates
jointly exceed their empirical --tail-quantile and the fixed --threshold,
together with Kendall's tau and the theoretical dependence measures. The
--output file receives the report as CSV.`,
}

// side holds the measurements of one batch.
type side struct {
	theta                float64
	quantileExceedances  int
	thresholdExceedances int
	expectedExceedances  float64 // expected quantile exceedances under the model
	kendall              float64 // mean pairwise Kendall tau, NaN if not computed
}

// comparison is the outcome of the compare command.
type comparison struct {
	samples      int
	dimension    int
	seed         int64
	tailQuantile float64
	threshold    float64
	dependent    side
	independent  side
}

func compareAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Compare")
	start := time.Now()

	log.Infof("Compare theta %v with independence on %v samples of dimension %v, seed %v", cfg.Theta, cfg.Samples, cfg.Dimension, cfg.RandomSeed)
	c, err := compare(cfg, log)
	if err != nil {
		return err
	}

	t := c.table()
	printers := utils.NewPrinters().
		AddPrinterToConsole(cfg.Quiet, t.Render).
		AddPrinterToFile(cfg.Output, false, func() string { return t.RenderCSV() + "\n" })
	if err = printers.Print(); err != nil {
		return fmt.Errorf("cannot print comparison; %w", err)
	}
	if err = printers.Close(); err != nil {
		return err
	}

	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Noticef("Comparison finished in %vh %vm %vs", hours, minutes, seconds)
	return nil
}

// compare draws the dependent and the independent batch from the same seed
// and measures their joint exceedances.
func compare(cfg *config.Config, log logger.Logger) (*comparison, error) {
	if cfg.Dimension < 2 {
		return nil, fmt.Errorf("comparison needs at least two coordinates, got %v; %w", cfg.Dimension, copula.ErrInvalidParameter)
	}
	if cfg.Samples < 1 {
		return nil, fmt.Errorf("comparison needs at least one sample; %w", copula.ErrInvalidParameter)
	}
	c := &comparison{
		samples:      cfg.Samples,
		dimension:    cfg.Dimension,
		seed:         cfg.RandomSeed,
		tailQuantile: cfg.TailQuantile,
		threshold:    cfg.Threshold,
	}

	independent := *cfg
	independent.Theta = 1
	for _, s := range []struct {
		cfg *config.Config
		out *side
	}{
		{cfg, &c.dependent},
		{&independent, &c.independent},
	} {
		g, err := s.cfg.NewGenerator(log)
		if err != nil {
			return nil, err
		}
		x, err := draw(s.cfg, g)
		if err != nil {
			return nil, err
		}
		if *s.out, err = measure(s.cfg, x); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func measure(cfg *config.Config, x *copula.Batch) (side, error) {
	s := side{
		theta:               cfg.Theta,
		expectedExceedances: float64(x.Len()) * statistics.GumbelJointSurvival(cfg.Theta, cfg.TailQuantile, x.Dim()),
		kendall:             math.NaN(),
	}
	quantiles, err := statistics.EmpiricalQuantiles(x, cfg.TailQuantile)
	if err != nil {
		return s, err
	}
	if s.quantileExceedances, err = statistics.JointExceedances(x, quantiles); err != nil {
		return s, err
	}
	thresholds := make([]float64, x.Dim())
	for j := range thresholds {
		thresholds[j] = cfg.Threshold
	}
	if s.thresholdExceedances, err = statistics.JointExceedances(x, thresholds); err != nil {
		return s, err
	}
	if x.Len() >= 2 && x.Len() <= maxKendallSamples {
		s.kendall = meanKendall(x)
	}
	return s, nil
}

// meanKendall averages Kendall's tau over all coordinate pairs.
func meanKendall(x *copula.Batch) float64 {
	sum, pairs := 0.0, 0
	for i := 0; i < x.Dim(); i++ {
		for j := i + 1; j < x.Dim(); j++ {
			sum += statistics.Kendall(x, i, j)
			pairs++
		}
	}
	return sum / float64(pairs)
}

func (c *comparison) table() table.Writer {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%v samples of dimension %v, seed %v", countPrinter.Sprintf("%d", c.samples), c.dimension, c.seed))
	t.AppendHeader(table.Row{"", fmt.Sprintf("theta = %v", c.dependent.theta), "independent"})
	t.AppendRows([]table.Row{
		{fmt.Sprintf("joint exceedances of %v quantile", c.tailQuantile), c.dependent.quantileExceedances, c.independent.quantileExceedances},
		{"expected", fmt.Sprintf("%.1f", c.dependent.expectedExceedances), fmt.Sprintf("%.1f", c.independent.expectedExceedances)},
		{fmt.Sprintf("joint exceedances of %v", c.threshold), c.dependent.thresholdExceedances, c.independent.thresholdExceedances},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Kendall tau", formatEstimate(c.dependent.kendall), formatEstimate(c.independent.kendall)},
		{"theta from Kendall tau", thetaEstimate(c.dependent.kendall), thetaEstimate(c.independent.kendall)},
		{"theoretical Kendall tau", fmt.Sprintf("%.4f", statistics.GumbelTau(c.dependent.theta)), fmt.Sprintf("%.4f", statistics.GumbelTau(c.independent.theta))},
		{"upper tail coefficient", fmt.Sprintf("%.4f", statistics.UpperTailCoefficient(c.dependent.theta)), fmt.Sprintf("%.4f", statistics.UpperTailCoefficient(c.independent.theta))},
	})
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	t.SetStyle(style)
	return t
}

func formatEstimate(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}

func thetaEstimate(tau float64) string {
	theta, err := statistics.ThetaFromTau(tau)
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%.4f", theta)
}
