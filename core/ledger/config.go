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

package ledger

import (
	"code.vegaprotocol.io/searchmarket/config/encoding"
	"code.vegaprotocol.io/searchmarket/logging"
)

const namedLogger = "ledger"

// Config represent the configuration of the ledger.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
	// InMemory keeps the accounts in memory, nothing survives a restart.
	InMemory   encoding.Bool `long:"in-memory" choice:"true" choice:"false" description:"keep the ledger in memory"`
	MaxAirdrop uint64        `long:"max-airdrop" description:"largest amount of lamports a single airdrop can credit, 0 disables airdrops"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:      encoding.LogLevel{Level: logging.InfoLevel},
		InMemory:   false,
		MaxAirdrop: 1_000_000_000_000,
	}
}
