// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"

	"github.com/blinklabs-io/aleoledger/ledger/retarget"
	"github.com/spf13/cobra"
)

type retargetOptions struct {
	prevTarget    uint64
	prevTimestamp int64
	timestamp     int64
	halfLife      uint32
	anchorTime    int64
	inverse       bool
	height        uint32
}

func retargetRun(opts retargetOptions, coinbaseReward bool, w io.Writer) error {
	if coinbaseReward {
		_, err := fmt.Fprintln(
			w,
			retarget.CoinbaseReward(opts.height, opts.prevTimestamp, opts.timestamp),
		)
		return err
	}
	_, err := fmt.Fprintln(
		w,
		retarget.Retarget(
			opts.prevTarget,
			opts.prevTimestamp,
			opts.timestamp,
			opts.halfLife,
			opts.inverse,
			opts.anchorTime,
		),
	)
	return err
}

func retargetCommand() *cobra.Command {
	var opts retargetOptions
	cmd := &cobra.Command{
		Use:   "retarget",
		Short: "Compute the next target, or the coinbase reward with --height",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromCommand(cmd)
			if !cmd.Flags().Changed("half-life") {
				opts.halfLife = cfg.HalfLife
			}
			if !cmd.Flags().Changed("anchor") {
				opts.anchorTime = cfg.AnchorTime
			}
			return retargetRun(opts, cmd.Flags().Changed("height"), cmd.OutOrStdout())
		},
	}
	cmd.Flags().Uint64Var(&opts.prevTarget, "prev-target", 0, "previous target")
	cmd.Flags().Int64Var(&opts.prevTimestamp, "prev-ts", 0, "previous block (or coinbase) timestamp")
	cmd.Flags().Int64Var(&opts.timestamp, "ts", 0, "current block timestamp")
	cmd.Flags().Uint32Var(&opts.halfLife, "half-life", retarget.HalfLife, "half-life in seconds")
	cmd.Flags().Int64Var(&opts.anchorTime, "anchor", retarget.AnchorTime, "anchor block time in seconds")
	cmd.Flags().BoolVar(&opts.inverse, "inverse", false, "move the target against the drift")
	cmd.Flags().Uint32Var(&opts.height, "height", 0, "compute the coinbase reward at this height instead")
	return cmd
}
