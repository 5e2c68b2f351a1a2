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

package processor

import (
	"context"

	"code.vegaprotocol.io/searchmarket/core/types"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/mocks.go -package mocks code.vegaprotocol.io/searchmarket/core/processor Markets,Collateral,Orders

// Markets covers market and result lifecycle instructions.
type Markets interface {
	CreateMarket(ctx context.Context, accounts *types.Accounts, expiresAt uint64, searchString string) error
	CreateResult(ctx context.Context, accounts *types.Accounts, url, name, snippet string, nonce uint8) error
	Decide(ctx context.Context, accounts *types.Accounts) error
}

type Collateral interface {
	Deposit(ctx context.Context, accounts *types.Accounts, amount uint64) error
	Withdraw(ctx context.Context, accounts *types.Accounts, amount uint64) error
}

type Orders interface {
	CreateOrder(ctx context.Context, accounts *types.Accounts, side types.Side, price, quantity uint64, escrowNonce uint8) error
	FillOrder(ctx context.Context, accounts *types.Accounts, buyNonce, sellNonce uint8) error
	CancelOrder(ctx context.Context, accounts *types.Accounts) error
}
