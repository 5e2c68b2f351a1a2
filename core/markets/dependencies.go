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
	"code.vegaprotocol.io/searchmarket/core/events"
	"code.vegaprotocol.io/searchmarket/core/types"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/mocks.go -package mocks code.vegaprotocol.io/searchmarket/core/markets Clock,Broker

// Clock returns the current ledger height, deadlines are expressed in it.
type Clock interface {
	Height() uint64
}

// Broker is used to publish market lifecycle events.
type Broker interface {
	Send(event events.Event)
}

// Tokens creates the claim types of a result.
type Tokens interface {
	InitializeMint(mint *types.Account, authority types.Address, decimals uint8) error
}

// Deriver validates the mint authority address.
type Deriver interface {
	Validate(candidate types.Address, seeds types.Seeds, program types.Address) bool
}
