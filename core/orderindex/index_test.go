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

package orderindex_test

import (
	"context"
	"testing"

	"code.vegaprotocol.io/searchmarket/broker"
	"code.vegaprotocol.io/searchmarket/core/events"
	"code.vegaprotocol.io/searchmarket/core/orderindex"
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	result = types.Address{0x20}
	yes    = types.Address{0x30}
	no     = types.Address{0x31}
	yesID  = orderindex.BookID{Result: result, ClaimType: yes}
)

func order(side types.Side, price, qty, createdAt uint64) *types.Order {
	return &types.Order{
		Result:     result,
		ClaimType:  yes,
		Side:       side,
		LimitPrice: price,
		Quantity:   qty,
		CreatedAt:  createdAt,
	}
}

func ids(entries []orderindex.Entry) []types.Address {
	out := make([]types.Address, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestOrdering(t *testing.T) {
	idx := orderindex.New(logging.NewTestLogger())
	ctx := context.Background()

	idx.Push(
		events.NewOrderCreated(ctx, types.Address{1}, order(types.SideBuy, 400, 1, 1)),
		events.NewOrderCreated(ctx, types.Address{2}, order(types.SideBuy, 500, 1, 2)),
		events.NewOrderCreated(ctx, types.Address{3}, order(types.SideBuy, 500, 1, 1)),
		events.NewOrderCreated(ctx, types.Address{4}, order(types.SideSell, 600, 1, 3)),
		events.NewOrderCreated(ctx, types.Address{5}, order(types.SideSell, 550, 1, 4)),
		events.NewOrderCreated(ctx, types.Address{6}, order(types.SideSell, 550, 1, 2)),
	)

	t.Run("bids by price descending then age", func(t *testing.T) {
		assert.Equal(t, []types.Address{{3}, {2}, {1}}, ids(idx.Bids(yesID)))
	})

	t.Run("asks by price ascending then age", func(t *testing.T) {
		assert.Equal(t, []types.Address{{6}, {5}, {4}}, ids(idx.Asks(yesID)))
	})

	t.Run("books are per claim type", func(t *testing.T) {
		assert.Empty(t, idx.Bids(orderindex.BookID{Result: result, ClaimType: no}))
	})

	t.Run("no crossing while the best bid is below the best ask", func(t *testing.T) {
		_, _, ok := idx.Crossing(yesID)
		assert.False(t, ok)
	})
}

func TestUpdates(t *testing.T) {
	ctx := context.Background()

	t.Run("crossing orders are reported", func(t *testing.T) {
		idx := orderindex.New(logging.NewTestLogger())
		idx.Push(
			events.NewOrderCreated(ctx, types.Address{1}, order(types.SideBuy, 501, 10, 1)),
			events.NewOrderCreated(ctx, types.Address{2}, order(types.SideSell, 499, 4, 1)),
		)
		bid, ask, ok := idx.Crossing(yesID)
		require.True(t, ok)
		assert.Equal(t, types.Address{1}, bid.ID)
		assert.Equal(t, types.Address{2}, ask.ID)
	})

	t.Run("fills update quantities and drop exhausted orders", func(t *testing.T) {
		idx := orderindex.New(logging.NewTestLogger())
		buy := order(types.SideBuy, 501, 10, 1)
		sell := order(types.SideSell, 499, 4, 1)
		idx.Push(
			events.NewOrderCreated(ctx, types.Address{1}, buy),
			events.NewOrderCreated(ctx, types.Address{2}, sell),
		)

		buy.Quantity, sell.Quantity = 6, 0
		idx.Push(events.NewOrderFilled(ctx, types.Address{1}, buy, types.Address{2}, sell, 501, 4))

		e, ok := idx.Get(types.Address{1})
		require.True(t, ok)
		assert.Equal(t, uint64(6), e.Order.Quantity)
		_, ok = idx.Get(types.Address{2})
		assert.False(t, ok)
		assert.Empty(t, idx.Asks(yesID))
		assert.Equal(t, 1, idx.Len())
	})

	t.Run("cancelled orders leave the index", func(t *testing.T) {
		idx := orderindex.New(logging.NewTestLogger())
		o := order(types.SideSell, 499, 4, 1)
		idx.Add(types.Address{2}, *o)
		assert.Equal(t, 1, idx.Len())

		o.Quantity = 0
		idx.Push(events.NewOrderCancelled(ctx, types.Address{2}, o))
		assert.Equal(t, 0, idx.Len())
		assert.Empty(t, idx.Asks(yesID))
	})

	t.Run("other events are ignored", func(t *testing.T) {
		idx := orderindex.New(logging.NewTestLogger())
		idx.Push(events.NewMarketCreated(ctx, types.Address{9}, &types.Market{}))
		assert.Equal(t, 0, idx.Len())
	})
}

func TestSubscribedToBroker(t *testing.T) {
	ctx := context.Background()
	idx := orderindex.New(logging.NewTestLogger())
	b := broker.New(logging.NewTestLogger(), broker.NewDefaultConfig())
	b.Subscribe(idx)

	b.Send(events.NewOrderCreated(ctx, types.Address{1}, order(types.SideBuy, 501, 10, 1)))
	b.Rollback()
	assert.Equal(t, 0, idx.Len())

	b.Send(events.NewOrderCreated(ctx, types.Address{1}, order(types.SideBuy, 501, 10, 1)))
	b.Commit()
	assert.Equal(t, 1, idx.Len())
}
