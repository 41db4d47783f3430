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

package main

import (
	"fmt"
	"os"

	"github.com/0xsoniclabs/tailgen/cmd/tailgen/sampling"
	"github.com/urfave/cli/v2"
)

// TailgenApp data structure
var TailgenApp = cli.App{
	Name:      "Tailgen Tail-Dependent Sampler",
	HelpName:  "tailgen",
	Usage:     "generate random vectors whose extremes occur together",
	Copyright: "(c) 2026 Sonic Labs",
	Commands: []*cli.Command{
		&sampling.SampleCommand,
		&sampling.CompareCommand,
	},
	Description: `
Tailgen couples heavy-tailed marginals through a Gumbel copula, so that
large values of one coordinate are likely to come with large values of the
others. The sample command writes such vectors, the compare command shows
their joint exceedances next to an independent sample.`,
}

func main() {
	if err := TailgenApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
