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

package markets

import (
	"code.vegaprotocol.io/searchmarket/config/encoding"
	"code.vegaprotocol.io/searchmarket/logging"
)

const namedLogger = "markets"

// Config represents the configuration of the markets engine.
type Config struct {
	Level encoding.LogLevel `long:"log-level"`
	// AllowRedecide lets the authority replace a decision until the market expires.
	AllowRedecide encoding.Bool `long:"allow-redecide" choice:"true" choice:"false" description:"allow the market authority to change its decision before expiry"`
}

// NewDefaultConfig creates an instance of the package specific configuration.
func NewDefaultConfig() Config {
	return Config{
		Level:         encoding.LogLevel{Level: logging.InfoLevel},
		AllowRedecide: true,
	}
}
