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

package aleoledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/blinklabs-io/aleoledger/codec"
	"github.com/blinklabs-io/aleoledger/disasm"
	"github.com/blinklabs-io/aleoledger/ledger"
	"github.com/blinklabs-io/aleoledger/program"
)

var errNilProgram = errors.New("no program to disassemble")

// Decoder decodes top-level ledger entities. It holds no per-call state
// and is safe for concurrent use.
type Decoder struct {
	config       Config
	metrics      *ledger.Metrics
	disassembler *disasm.Disassembler
}

func New(opts ...ConfigOptionFunc) (*Decoder, error) {
	cfg := NewConfig(opts...)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	d := &Decoder{
		config: cfg,
		disassembler: disasm.New(
			disasm.WithIndent(cfg.indent),
			disasm.WithAddressPrefix(cfg.addressPrefix),
		),
	}
	if cfg.promRegistry != nil {
		d.metrics = ledger.NewMetrics(cfg.promRegistry)
	}
	return d, nil
}

func decode[T any](d *Decoder, entity string, data []byte, fn codec.DecodeFunc[T]) (T, error) {
	start := time.Now()
	r := codec.NewReader(data)
	v, err := fn(r)
	if err == nil && !d.config.allowTrailingBytes {
		err = r.Done()
	}
	elapsed := time.Since(start)
	d.metrics.Observe(entity, r.Offset(), elapsed, err)
	if err != nil {
		d.config.logger.Warn(
			"decode failed",
			"component", "decoder",
			"entity", entity,
			"size", len(data),
			"reason", codec.Reason(err),
			"error", err,
		)
		var zero T
		return zero, err
	}
	d.config.logger.Debug(
		"decoded "+entity,
		"component", "decoder",
		"entity", entity,
		"size", r.Offset(),
		"trailing", r.Remaining(),
		"duration", elapsed,
	)
	return v, nil
}

func (d *Decoder) DecodeProgram(data []byte) (*program.Program, error) {
	return decode(d, "Program", data, program.DecodeProgram)
}

func (d *Decoder) DecodeDeployment(data []byte) (ledger.Deployment, error) {
	return decode(d, "Deployment", data, ledger.DecodeDeployment)
}

func (d *Decoder) DecodeTransaction(data []byte) (ledger.Transaction, error) {
	return decode(d, "Transaction", data, ledger.DecodeTransaction)
}

func (d *Decoder) DecodeTransition(data []byte) (ledger.Transition, error) {
	return decode(d, "Transition", data, ledger.DecodeTransition)
}

func (d *Decoder) DecodeBlock(data []byte) (ledger.Block, error) {
	return decode(d, "Block", data, ledger.DecodeBlock)
}

// Disassemble renders p as assembly with the configured indent and
// address prefix.
func (d *Decoder) Disassemble(p *program.Program) (string, error) {
	if p == nil {
		return "", errNilProgram
	}
	text, err := d.disassembler.Program(p)
	if err != nil {
		d.config.logger.Warn(
			"disassembly failed",
			"component", "decoder",
			"program", p.ID.String(),
			"error", err,
		)
		return "", err
	}
	return text, nil
}
