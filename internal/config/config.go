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

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blinklabs-io/aleoledger/ledger/retarget"
	"github.com/blinklabs-io/aleoledger/primitive"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "aleoledger.config"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

const (
	DefaultIndent        = 2
	DefaultDecodeWorkers = 4
)

// tempConfig accepts settings either at the top level or under a
// config section.
type tempConfig struct {
	Config yaml.Node `yaml:"config,omitempty"`
}

type Config struct {
	AddressPrefix      string `yaml:"addressPrefix"      split_words:"true"`
	Indent             int    `yaml:"indent"`
	DecodeWorkers      int    `yaml:"decodeWorkers"      split_words:"true"`
	AnchorTime         int64  `yaml:"anchorTime"         split_words:"true"`
	HalfLife           uint32 `yaml:"halfLife"           split_words:"true"`
	AllowTrailingBytes bool   `yaml:"allowTrailingBytes" split_words:"true"`
}

// IndentString is the disassembler indent unit.
func (c *Config) IndentString() string {
	return strings.Repeat(" ", c.Indent)
}

func (c *Config) validate() error {
	if c.AddressPrefix == "" {
		return errors.New("addressPrefix must not be empty")
	}
	if c.Indent < 0 {
		return fmt.Errorf("invalid indent: %d", c.Indent)
	}
	if c.DecodeWorkers < 1 {
		return fmt.Errorf("invalid decodeWorkers: %d (must be at least 1)", c.DecodeWorkers)
	}
	if c.HalfLife == 0 {
		return errors.New("halfLife must be positive")
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		AddressPrefix: primitive.AddressPrefix,
		Indent:        DefaultIndent,
		DecodeWorkers: DefaultDecodeWorkers,
		AnchorTime:    retarget.AnchorTime,
		HalfLife:      retarget.HalfLife,
	}
}

var globalConfig = defaultConfig()

func LoadConfig(configFile string) (*Config, error) {
	if configFile == "" {
		// Check for config file in this path: ~/.aleoledger/aleoledger.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".aleoledger", "aleoledger.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}
		if configFile == "" {
			systemPath := "/etc/aleoledger/aleoledger.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		var tempCfg tempConfig
		if err := yaml.Unmarshal(buf, &tempCfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
		if !tempCfg.Config.IsZero() {
			// Overlay the config section onto existing defaults
			if err := tempCfg.Config.Decode(globalConfig); err != nil {
				return nil, fmt.Errorf("error parsing config section: %w", err)
			}
		} else if err := yaml.Unmarshal(buf, globalConfig); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	if err := envconfig.Process("aleoledger", globalConfig); err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}
	if err := globalConfig.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return globalConfig, nil
}
