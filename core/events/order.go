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

// Order carries a snapshot of an order after creation or cancellation.
type Order struct {
	*Base
	address types.Address
	o       types.Order
}

func NewOrderCreated(ctx context.Context, address types.Address, o *types.Order) *Order {
	return &Order{
		Base:    newBase(ctx, OrderCreatedEvent),
		address: address,
		o:       *o,
	}
}

func NewOrderCancelled(ctx context.Context, address types.Address, o *types.Order) *Order {
	return &Order{
		Base:    newBase(ctx, OrderCancelledEvent),
		address: address,
		o:       *o,
	}
}

func (o Order) OrderID() types.Address {
	return o.address
}

func (o Order) Order() types.Order {
	return o.o
}

func (o Order) MarketID() types.Address {
	return o.o.Market
}

// Fill is emitted when a buy and a sell order crossed. The order
// snapshots hold the remaining quantities.
type Fill struct {
	*Base
	buyID    types.Address
	sellID   types.Address
	buy      types.Order
	sell     types.Order
	price    uint64
	quantity uint64
}

func NewOrderFilled(ctx context.Context, buyID types.Address, buy *types.Order, sellID types.Address, sell *types.Order, price, quantity uint64) *Fill {
	return &Fill{
		Base:     newBase(ctx, OrderFilledEvent),
		buyID:    buyID,
		sellID:   sellID,
		buy:      *buy,
		sell:     *sell,
		price:    price,
		quantity: quantity,
	}
}

func (f Fill) Buy() (types.Address, types.Order) {
	return f.buyID, f.buy
}

func (f Fill) Sell() (types.Address, types.Order) {
	return f.sellID, f.sell
}

func (f Fill) Price() uint64 {
	return f.price
}

func (f Fill) Quantity() uint64 {
	return f.quantity
}

func (f Fill) MarketID() types.Address {
	return f.buy.Market
}
