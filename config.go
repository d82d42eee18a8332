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
	"io"
	"log/slog"

	"github.com/blinklabs-io/aleoledger/disasm"
	"github.com/blinklabs-io/aleoledger/primitive"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	promRegistry       prometheus.Registerer
	logger             *slog.Logger
	addressPrefix      string
	indent             string
	allowTrailingBytes bool
}

func (c *Config) validate() error {
	if c.logger == nil {
		return errors.New("logger must not be nil")
	}
	if c.addressPrefix == "" {
		return errors.New("address prefix must not be empty")
	}
	return nil
}

// ConfigOptionFunc is a type that represents functions that modify the Decoder config
type ConfigOptionFunc func(*Config)

// NewConfig creates a new decoder config with the specified options
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		// Default logger will throw away logs
		// We do this so we don't have to add guards around every log operation
		logger:        slog.New(slog.NewJSONHandler(io.Discard, nil)),
		addressPrefix: primitive.AddressPrefix,
		indent:        disasm.DefaultIndent,
	}
	// Apply options
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger specifies the logger object to use for logging messages
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithPrometheusRegistry specifies a prometheus.Registerer instance to add decode metrics to
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithAllowTrailingBytes specifies whether bytes left over after a top-level
// entity are ignored. The default is to reject them
func WithAllowTrailingBytes(allow bool) ConfigOptionFunc {
	return func(c *Config) {
		c.allowTrailingBytes = allow
	}
}

// WithAddressPrefix specifies the bech32m prefix for addresses in disassembled programs
func WithAddressPrefix(prefix string) ConfigOptionFunc {
	return func(c *Config) {
		c.addressPrefix = prefix
	}
}

// WithIndent specifies the indent unit for disassembled programs
func WithIndent(indent string) ConfigOptionFunc {
	return func(c *Config) {
		c.indent = indent
	}
}
