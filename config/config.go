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

package config

import (
	"fmt"
	"math"
	"time"

	"github.com/0xsoniclabs/tailgen/copula"
	"github.com/0xsoniclabs/tailgen/logger"
	"github.com/0xsoniclabs/tailgen/marginal"
	"github.com/0xsoniclabs/tailgen/utils"
	"github.com/urfave/cli/v2"
)

// defaultMarginal is used when a command gets no --marginal expression.
const defaultMarginal = "uniform()"

// Config represents execution configuration of a tailgen command.
type Config struct {
	AppName     string
	CommandName string

	LogLevel string // level of the logging of the app action

	Samples      int     // number of vectors to generate
	Theta        float64 // dependence parameter of the Gumbel copula
	RandomSeed   int64   // seed of the random generator
	Dimension    int     // number of coordinates per vector
	Oversampling float64 // candidate batch size factor
	MaxRetries   int     // additional candidate batches

	MarginalExprs []string                // marginal expressions as given
	Marginals     []marginal.Distribution // one parsed marginal per coordinate

	Output string // text output file
	Append bool   // keep existing content of the output file
	Db     string // sqlite3 output file
	Quiet  bool   // disable console summary

	TailQuantile float64 // probability of the empirical exceedance threshold
	Threshold    float64 // fixed exceedance threshold
}

// NewConfig creates and validates the configuration of the running command.
// A negative seed is replaced by one derived from the clock.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := createConfigFromFlags(ctx)

	if cfg.RandomSeed < 0 {
		cfg.RandomSeed = time.Now().UnixNano()
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration of %v; %w", cfg.CommandName, err)
	}

	exprs := cfg.MarginalExprs
	if len(exprs) == 0 {
		exprs = []string{defaultMarginal}
	}
	marginals, err := marginal.ParseAll(exprs, cfg.Dimension)
	if err != nil {
		return nil, fmt.Errorf("invalid marginals of %v; %w", cfg.CommandName, err)
	}
	cfg.MarginalExprs = exprs
	cfg.Marginals = marginals
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Samples < 0 {
		return fmt.Errorf("number of samples (%v) must not be negative; %w", cfg.Samples, copula.ErrInvalidParameter)
	}
	if math.IsNaN(cfg.Theta) || math.IsInf(cfg.Theta, 0) || cfg.Theta < 1 {
		return fmt.Errorf("theta (%v) must be a finite number of at least one; %w", cfg.Theta, copula.ErrInvalidParameter)
	}
	if cfg.Dimension < 1 {
		return fmt.Errorf("dimension (%v) must be positive; %w", cfg.Dimension, copula.ErrInvalidParameter)
	}
	if !(cfg.Oversampling >= 1) || math.IsInf(cfg.Oversampling, 0) {
		return fmt.Errorf("oversampling (%v) must be a finite number of at least one; %w", cfg.Oversampling, copula.ErrInvalidParameter)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("number of retries (%v) must not be negative; %w", cfg.MaxRetries, copula.ErrInvalidParameter)
	}
	if !(cfg.TailQuantile > 0 && cfg.TailQuantile < 1) {
		return fmt.Errorf("tail quantile (%v) is not in interval (0,1); %w", cfg.TailQuantile, copula.ErrInvalidParameter)
	}
	return nil
}

// NewGenerator returns the copula generator described by the configuration.
func (cfg *Config) NewGenerator(log logger.Logger) (*copula.Generator, error) {
	return copula.New(cfg.Theta,
		copula.WithDimension(cfg.Dimension),
		copula.WithOversampling(cfg.Oversampling),
		copula.WithMaxRetries(cfg.MaxRetries),
		copula.WithLogger(log),
	)
}

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		LogLevel:      getFlagValue(ctx, logger.LogLevelFlag).(string),
		Samples:       getFlagValue(ctx, utils.SamplesFlag).(int),
		Theta:         getFlagValue(ctx, utils.ThetaFlag).(float64),
		RandomSeed:    getFlagValue(ctx, utils.RandomSeedFlag).(int64),
		Dimension:     getFlagValue(ctx, utils.DimensionFlag).(int),
		Oversampling:  getFlagValue(ctx, utils.OversamplingFlag).(float64),
		MaxRetries:    getFlagValue(ctx, utils.MaxRetriesFlag).(int),
		MarginalExprs: getFlagValue(ctx, utils.MarginalFlag).([]string),
		Output:        getFlagValue(ctx, utils.OutputFlag).(string),
		Append:        getFlagValue(ctx, utils.AppendFlag).(bool),
		Db:            getFlagValue(ctx, utils.DbFlag).(string),
		Quiet:         getFlagValue(ctx, utils.QuietFlag).(bool),
		TailQuantile:  getFlagValue(ctx, utils.TailQuantileFlag).(float64),
		Threshold:     getFlagValue(ctx, utils.ThresholdFlag).(float64),
	}

	return cfg
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	cmdFlags := ctx.Command.Flags
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}

		case cli.Int64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int64(f.Name)
			}

		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}

		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}

		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}

		case cli.BoolFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Bool(f.Name)
			}

		case cli.StringSliceFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.StringSlice(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Int64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	case cli.StringSliceFlag:
		if f.Value == nil {
			return []string{}
		}
		return f.Value.Value()
	}

	return nil
}
