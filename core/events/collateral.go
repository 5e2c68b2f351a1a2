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

package events

import (
	"context"

	"code.vegaprotocol.io/searchmarket/core/types"
)

// Collateral is emitted for deposits and withdrawals. Yes and No are the
// claim amounts minted or burned.
type Collateral struct {
	*Base
	market   types.Address
	result   types.Address
	party    types.Address
	lamports uint64
	yes      uint64
	no       uint64
}

func NewCollateralDeposited(ctx context.Context, market, result, depositor types.Address, amount, lamports uint64) *Collateral {
	return &Collateral{
		Base:     newBase(ctx, CollateralDepositedEvent),
		market:   market,
		result:   result,
		party:    depositor,
		lamports: lamports,
		yes:      amount,
		no:       amount,
	}
}

func NewCollateralWithdrawn(ctx context.Context, market, result, recipient types.Address, yes, no, lamports uint64) *Collateral {
	return &Collateral{
		Base:     newBase(ctx, CollateralWithdrawnEvent),
		market:   market,
		result:   result,
		party:    recipient,
		lamports: lamports,
		yes:      yes,
		no:       no,
	}
}

func (c Collateral) MarketID() types.Address {
	return c.market
}

func (c Collateral) ResultID() types.Address {
	return c.result
}

func (c Collateral) Party() types.Address {
	return c.party
}

func (c Collateral) Lamports() uint64 {
	return c.lamports
}

func (c Collateral) Yes() uint64 {
	return c.yes
}

func (c Collateral) No() uint64 {
	return c.no
}
