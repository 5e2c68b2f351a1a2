// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config ties together the configuration of every package and
// reads it from a toml file.
package config

import (
	"bytes"
	"fmt"
	"time"

	"code.vegaprotocol.io/searchmarket/broker"
	"code.vegaprotocol.io/searchmarket/config/encoding"
	"code.vegaprotocol.io/searchmarket/core/collateral"
	"code.vegaprotocol.io/searchmarket/core/ledger"
	"code.vegaprotocol.io/searchmarket/core/markets"
	"code.vegaprotocol.io/searchmarket/core/orders"
	"code.vegaprotocol.io/searchmarket/core/processor"
	"code.vegaprotocol.io/searchmarket/core/token"
	vgfs "code.vegaprotocol.io/searchmarket/libs/fs"
	"code.vegaprotocol.io/searchmarket/logging"
	"code.vegaprotocol.io/searchmarket/metrics"

	"github.com/BurntSushi/toml"
)

// Config ties together all other application configuration types.
type Config struct {
	Logging    logging.Config    `group:"Logging" namespace:"logging"`
	Broker     broker.Config     `group:"Broker" namespace:"broker"`
	Ledger     ledger.Config     `group:"Ledger" namespace:"ledger"`
	Token      token.Config      `group:"Token" namespace:"token"`
	Markets    markets.Config    `group:"Markets" namespace:"markets"`
	Collateral collateral.Config `group:"Collateral" namespace:"collateral"`
	Orders     orders.Config     `group:"Orders" namespace:"orders"`
	Processor  processor.Config  `group:"Processor" namespace:"processor"`
	Metrics    metrics.Config    `group:"Metrics" namespace:"metrics"`

	DeriveCacheSize int               `long:"derive-cache-size" description:"number of derived addresses kept in memory"`
	BlockInterval   encoding.Duration `long:"block-interval" description:"how often the node advances the ledger height"`
}

// NewDefaultConfig returns a set of default configs for all packages, as
// specified at the per package config level.
func NewDefaultConfig() Config {
	return Config{
		Logging:         logging.NewDefaultConfig(),
		Broker:          broker.NewDefaultConfig(),
		Ledger:          ledger.NewDefaultConfig(),
		Token:           token.NewDefaultConfig(),
		Markets:         markets.NewDefaultConfig(),
		Collateral:      collateral.NewDefaultConfig(),
		Orders:          orders.NewDefaultConfig(),
		Processor:       processor.NewDefaultConfig(),
		Metrics:         metrics.NewDefaultConfig(),
		DeriveCacheSize: 4096,
		BlockInterval:   encoding.Duration{Duration: time.Second},
	}
}

// Read loads the configuration at path on top of the defaults, settings
// missing from the file keep their default value.
func Read(path string) (*Config, error) {
	buf, err := vgfs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read configuration file at %s: %w", path, err)
	}
	cfg := NewDefaultConfig()
	if _, err := toml.Decode(string(buf), &cfg); err != nil {
		return nil, fmt.Errorf("couldn't decode configuration file at %s: %w", path, err)
	}
	return &cfg, nil
}

// Write saves cfg at path, replacing any existing file.
func Write(path string, cfg *Config) error {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return fmt.Errorf("couldn't encode configuration: %w", err)
	}
	if err := vgfs.WriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("couldn't write configuration file at %s: %w", path, err)
	}
	return nil
}
