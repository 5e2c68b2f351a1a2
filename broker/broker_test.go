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

package broker_test

import (
	"context"
	"testing"

	"code.vegaprotocol.io/searchmarket/broker"
	"code.vegaprotocol.io/searchmarket/broker/mocks"
	"code.vegaprotocol.io/searchmarket/core/events"
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/logging"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getBroker(t *testing.T, cfg broker.Config) (*broker.Broker, *mocks.MockSubscriber) {
	t.Helper()
	ctrl := gomock.NewController(t)
	sub := mocks.NewMockSubscriber(ctrl)
	b := broker.New(logging.NewTestLogger(), cfg)
	b.Subscribe(sub)
	return b, sub
}

func TestBroker(t *testing.T) {
	t.Run("events are published on commit", testPublishOnCommit)
	t.Run("events are dropped on rollback", testDropOnRollback)
	t.Run("subscribers only get the types they asked for", testFilterByType)
	t.Run("buffer limit is reported", testBufferLimit)
}

func testPublishOnCommit(t *testing.T) {
	b, sub := getBroker(t, broker.NewDefaultConfig())
	ctx := context.Background()

	evt := events.NewMarketCreated(ctx, types.Address{1}, &types.Market{})
	b.Send(evt)

	sub.EXPECT().Types().Return(nil).Times(1)
	sub.EXPECT().Push(gomock.Any()).Times(1).Do(func(evts ...events.Event) {
		require.Len(t, evts, 1)
		assert.Equal(t, events.MarketCreatedEvent, evts[0].Type())
		assert.Equal(t, uint64(1), evts[0].Sequence())
	})
	b.Commit()
}

func testDropOnRollback(t *testing.T) {
	b, _ := getBroker(t, broker.NewDefaultConfig())
	b.Send(events.NewMarketCreated(context.Background(), types.Address{1}, &types.Market{}))
	b.Rollback()

	// nothing is pushed, the mock would fail on an unexpected call
	b.Commit()
}

func testFilterByType(t *testing.T) {
	b, sub := getBroker(t, broker.NewDefaultConfig())
	ctx := context.Background()

	b.Send(events.NewMarketCreated(ctx, types.Address{1}, &types.Market{}))
	b.Send(events.NewOrderCreated(ctx, types.Address{2}, &types.Order{}))

	sub.EXPECT().Types().Return([]events.Type{events.OrderCreatedEvent}).Times(1)
	sub.EXPECT().Push(gomock.Any()).Times(1).Do(func(evts ...events.Event) {
		require.Len(t, evts, 1)
		assert.Equal(t, events.OrderCreatedEvent, evts[0].Type())
	})
	b.Commit()
}

func testBufferLimit(t *testing.T) {
	cfg := broker.NewDefaultConfig()
	cfg.MaxBuffered = 1
	b, _ := getBroker(t, cfg)
	ctx := context.Background()

	b.Send(events.NewMarketCreated(ctx, types.Address{1}, &types.Market{}))
	require.NoError(t, b.Err())
	b.Send(events.NewMarketCreated(ctx, types.Address{2}, &types.Market{}))
	assert.ErrorIs(t, b.Err(), broker.ErrTooManyEvents)

	b.Rollback()
	assert.NoError(t, b.Err())
}
