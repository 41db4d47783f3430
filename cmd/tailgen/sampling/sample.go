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
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/0xsoniclabs/tailgen/config"
	"github.com/0xsoniclabs/tailgen/copula"
	"github.com/0xsoniclabs/tailgen/logger"
	"github.com/0xsoniclabs/tailgen/marginal"
	"github.com/0xsoniclabs/tailgen/statistics"
	"github.com/0xsoniclabs/tailgen/utils"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// dbBufferCapacity is the number of rows inserted per sqlite3 transaction.
	dbBufferCapacity = 10_000
	// maxKendallSamples bounds the quadratic Kendall tau in the summary.
	maxKendallSamples = 20_000
)

const (
	createSamplesTable = `CREATE TABLE IF NOT EXISTS samples (
	seed INTEGER NOT NULL,
	theta REAL NOT NULL,
	sample INTEGER NOT NULL,
	coordinate INTEGER NOT NULL,
	value REAL NOT NULL
)`
	insertSample = "INSERT INTO samples (seed, theta, sample, coordinate, value) VALUES (?, ?, ?, ?, ?)"
)

// SampleCommand generates tail-dependent random vectors.
var SampleCommand = cli.Command{
	Action:    sampleAction,
	Name:      "sample",
	Usage:     "generate random vectors with Gumbel tail dependence",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&utils.SamplesFlag,
		&utils.ThetaFlag,
		&utils.RandomSeedFlag,
		&utils.DimensionFlag,
		&utils.OversamplingFlag,
		&utils.MaxRetriesFlag,
		&utils.MarginalFlag,
		&utils.OutputFlag,
		&utils.AppendFlag,
		&utils.DbFlag,
		&utils.QuietFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The sample command draws --samples vectors whose coordinates are coupled by a
Gumbel copula with parameter --theta and transformed to the --marginal
distributions (uniform by default). Vectors are written to the --output text
file, one per line, and to table samples of the --db sqlite3 file. With
--append the vectors are added to an existing --output file. Files ending in
.gz are gzip compressed.`,
}

func sampleAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Sample")
	start := time.Now()

	log.Infof("Draw %v samples of dimension %v with theta %v and seed %v", cfg.Samples, cfg.Dimension, cfg.Theta, cfg.RandomSeed)
	g, err := cfg.NewGenerator(log)
	if err != nil {
		return err
	}
	x, err := draw(cfg, g)
	if err != nil {
		return err
	}

	printers := utils.NewPrinters().
		AddPrinterToConsole(cfg.Quiet, func() string { return summary(cfg, x) }).
		AddPrinterToFile(cfg.Output, cfg.Append, func() string { return formatRows(x) })
	if err = printers.Print(); err != nil {
		return fmt.Errorf("cannot print samples; %w", err)
	}
	if err = printers.Close(); err != nil {
		return err
	}
	if cfg.Db != "" {
		log.Noticef("Write samples to %v", cfg.Db)
		if err = writeDb(cfg, x); err != nil {
			return err
		}
	}

	hours, minutes, seconds := logger.ParseTime(time.Since(start))
	log.Noticef("Generated %v samples in %vh %vm %vs", x.Len(), hours, minutes, seconds)
	return nil
}

// draw samples g with a random source seeded with cfg.RandomSeed and applies
// the configured marginals.
func draw(cfg *config.Config, g *copula.Generator) (*copula.Batch, error) {
	u, err := g.Sample(rand.New(rand.NewSource(cfg.RandomSeed)), cfg.Samples)
	if err != nil {
		return nil, fmt.Errorf("cannot generate samples; %w", err)
	}
	return marginal.Apply(u, marginal.Quantiles(cfg.Marginals...)...)
}

// formatRows renders one vector per line with space-separated coordinates.
func formatRows(b *copula.Batch) string {
	var sb strings.Builder
	for i := range b.Len() {
		for j, x := range b.At(i) {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// countPrinter groups digits of large sample counts.
var countPrinter = message.NewPrinter(language.English)

func summary(cfg *config.Config, x *copula.Batch) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v samples, dimension %v, theta %v, seed %v\n", countPrinter.Sprintf("%d", x.Len()), x.Dim(), cfg.Theta, cfg.RandomSeed)
	fmt.Fprintf(&sb, "marginals: %v\n", strings.Join(cfg.MarginalExprs, " "))
	fmt.Fprintf(&sb, "theoretical Kendall tau %.4f, upper tail coefficient %.4f", statistics.GumbelTau(cfg.Theta), statistics.UpperTailCoefficient(cfg.Theta))
	if x.Dim() >= 2 && x.Len() >= 2 && x.Len() <= maxKendallSamples {
		fmt.Fprintf(&sb, "\nempirical Kendall tau of coordinates 0 and 1: %.4f", statistics.Kendall(x, 0, 1))
	}
	return sb.String()
}

// writeDb inserts the batch into table samples in long format, one row per
// coordinate, buffered into transactions of dbBufferCapacity rows.
func writeDb(cfg *config.Config, x *copula.Batch) (err error) {
	var current int
	p, err := utils.NewPrinterToSqlite3(cfg.Db, createSamplesTable, insertSample, func() [][]any {
		values := x.At(current)
		rows := make([][]any, len(values))
		for j, v := range values {
			rows[j] = []any{cfg.RandomSeed, cfg.Theta, current, j, v}
		}
		return rows
	})
	if err != nil {
		return err
	}
	buffer, flusher := p.Bufferize(dbBufferCapacity)
	defer func() {
		if e := flusher.Close(); e != nil && err == nil {
			err = fmt.Errorf("cannot write samples to %v; %w", cfg.Db, e)
		}
	}()
	for current = range x.Len() {
		if err = buffer.Print(); err != nil {
			return fmt.Errorf("cannot write samples to %v; %w", cfg.Db, err)
		}
	}
	return nil
}
