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
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/blinklabs-io/aleoledger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// summarizer decodes one entity kind and returns log attributes
// describing it.
type summarizer func(dec *aleoledger.Decoder, data []byte) ([]any, error)

var summarizers = map[string]summarizer{
	"block": func(dec *aleoledger.Decoder, data []byte) ([]any, error) {
		b, err := dec.DecodeBlock(data)
		if err != nil {
			return nil, err
		}
		return []any{
			"height", b.Height(),
			"hash", b.Hash.String(),
			"transactions", len(b.Transactions.Transactions),
			"accepted", b.Transactions.Accepted(),
			"coinbase", b.Coinbase.Valid,
		}, nil
	},
	"transaction": func(dec *aleoledger.Decoder, data []byte) ([]any, error) {
		tx, err := dec.DecodeTransaction(data)
		if err != nil {
			return nil, err
		}
		return []any{
			"id", tx.TransactionID().String(),
			"type", tx.Type().String(),
		}, nil
	},
	"transition": func(dec *aleoledger.Decoder, data []byte) ([]any, error) {
		t, err := dec.DecodeTransition(data)
		if err != nil {
			return nil, err
		}
		return []any{
			"id", t.ID.String(),
			"program", t.ProgramID.String(),
			"function", string(t.FunctionName),
			"inputs", len(t.Inputs),
			"outputs", len(t.Outputs),
		}, nil
	},
	"program": func(dec *aleoledger.Decoder, data []byte) ([]any, error) {
		p, err := dec.DecodeProgram(data)
		if err != nil {
			return nil, err
		}
		return []any{
			"program", p.ID.String(),
			"functions", len(p.Functions()),
			"features", p.FeatureString(),
			"helloWorld", p.IsHelloWorld(),
		}, nil
	},
	"deployment": func(dec *aleoledger.Decoder, data []byte) ([]any, error) {
		d, err := dec.DecodeDeployment(data)
		if err != nil {
			return nil, err
		}
		return []any{
			"program", d.Program.ID.String(),
			"edition", d.Edition,
			"verifyingKeys", len(d.VerifyingKeys),
		}, nil
	},
}

func decodeKinds() []string {
	ret := make([]string, 0, len(summarizers))
	for k := range summarizers {
		ret = append(ret, k)
	}
	slices.Sort(ret)
	return ret
}

type decodeOptions struct {
	kind    string
	hex     bool
	workers int
}

// decodeFiles decodes every path concurrently and logs a summary line per
// file. It fails when any file fails.
func decodeFiles(
	ctx context.Context,
	dec *aleoledger.Decoder,
	logger *slog.Logger,
	paths []string,
	opts decodeOptions,
) error {
	summarize, ok := summarizers[opts.kind]
	if !ok {
		return fmt.Errorf(
			"unknown kind %q (must be one of: %s)",
			opts.kind,
			strings.Join(decodeKinds(), ", "),
		)
	}
	var failed atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.workers, 1))
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := readInput(path, opts.hex)
			if err == nil {
				var attrs []any
				attrs, err = summarize(dec, data)
				if err == nil {
					logger.Info(
						"decoded "+opts.kind,
						append([]any{"file", path, "size", len(data)}, attrs...)...,
					)
					return nil
				}
			}
			failed.Add(1)
			logger.Error(
				"failed to decode "+opts.kind,
				"file", path,
				"error", err,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d files failed to decode", n, len(paths))
	}
	return nil
}

func decodeCommand() *cobra.Command {
	var opts decodeOptions
	cmd := &cobra.Command{
		Use:   "decode FILE...",
		Short: "Decode ledger entities and log a summary of each",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := configFromCommand(cmd)
			logger := commonRun()
			if !cmd.Flags().Changed("workers") {
				opts.workers = cfg.DecodeWorkers
			}
			dec, err := newDecoder(cfg, logger)
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			if err := decodeFiles(cmd.Context(), dec, logger, args, opts); err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
		},
	}
	cmd.Flags().StringVar(
		&opts.kind,
		"kind",
		"block",
		"entity kind: "+strings.Join(decodeKinds(), ", "),
	)
	cmd.Flags().BoolVar(&opts.hex, "hex", false, "input files hold hex text")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent decodes (defaults to decodeWorkers from config)")
	return cmd
}
