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
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/blinklabs-io/aleoledger"
	"github.com/spf13/cobra"
)

type disasmOptions struct {
	hex        bool
	deployment bool
}

// readInput reads a file of raw bytes, or of hex text when asHex is set.
func readInput(path string, asHex bool) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !asHex {
		return buf, nil
	}
	text := bytes.TrimSpace(buf)
	text = bytes.TrimPrefix(text, []byte("0x"))
	ret := make([]byte, hex.DecodedLen(len(text)))
	if _, err := hex.Decode(ret, text); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ret, nil
}

func disasmRun(dec *aleoledger.Decoder, path string, opts disasmOptions, w io.Writer) error {
	data, err := readInput(path, opts.hex)
	if err != nil {
		return err
	}
	var text string
	if opts.deployment {
		d, err := dec.DecodeDeployment(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		text, err = dec.Disassemble(d.Program)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	} else {
		p, err := dec.DecodeProgram(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		text, err = dec.Disassemble(p)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	_, err = io.WriteString(w, text)
	return err
}

func disasmCommand() *cobra.Command {
	var opts disasmOptions
	cmd := &cobra.Command{
		Use:   "disasm FILE",
		Short: "Disassemble a program or deployment into assembly",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := configFromCommand(cmd)
			logger := commonRun()
			dec, err := newDecoder(cfg, logger)
			if err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
			if err := disasmRun(dec, args[0], opts, cmd.OutOrStdout()); err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
		},
	}
	cmd.Flags().BoolVar(&opts.hex, "hex", false, "input file holds hex text")
	cmd.Flags().BoolVar(&opts.deployment, "deployment", false, "input file holds a deployment")
	return cmd
}
