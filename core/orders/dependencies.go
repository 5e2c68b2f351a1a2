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

package orders

import (
	"code.vegaprotocol.io/searchmarket/core/events"
	"code.vegaprotocol.io/searchmarket/core/types"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/mocks.go -package mocks code.vegaprotocol.io/searchmarket/core/orders Clock,Broker

type Clock interface {
	Height() uint64
}

type Broker interface {
	Send(event events.Event)
}

// Tokens holds the claims escrowed by sell orders.
type Tokens interface {
	InitializeAccount(acc, mint *types.Account, owner types.Address) error
	Transfer(src, dst *types.Account, authority types.Signer, amount uint64) error
}

// Native holds the collateral escrowed by buy orders.
type Native interface {
	Transfer(from, to *types.Account, authority types.Signer, amount uint64) error
}

type Deriver interface {
	Validate(candidate types.Address, seeds types.Seeds, program types.Address) bool
}
