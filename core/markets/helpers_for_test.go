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

package markets_test

import (
	"context"
	"testing"

	"code.vegaprotocol.io/searchmarket/core/derive"
	"code.vegaprotocol.io/searchmarket/core/events"
	"code.vegaprotocol.io/searchmarket/core/markets"
	"code.vegaprotocol.io/searchmarket/core/markets/mocks"
	"code.vegaprotocol.io/searchmarket/core/token"
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/logging"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var program = types.Address{0x5e, 0xa4}

type testEngine struct {
	engine *markets.Engine
	tokens *token.Engine
	clock  *mocks.MockClock
	broker *mocks.MockBroker
}

func newEngine(t *testing.T, cfg markets.Config) *testEngine {
	t.Helper()
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	broker := mocks.NewMockBroker(ctrl)
	log := logging.NewTestLogger()
	deriver, err := derive.NewDeriver(32)
	require.NoError(t, err)
	tokens := token.New(log, token.NewDefaultConfig())

	return &testEngine{
		engine: markets.NewEngine(log, cfg, program, deriver, tokens, clock, broker),
		tokens: tokens,
		clock:  clock,
		broker: broker,
	}
}

func expectEvent[T events.Event](t *testing.T, te *testEngine) {
	t.Helper()
	te.broker.EXPECT().Send(gomock.Any()).Do(func(evt events.Event) {
		_, ok := evt.(T)
		assert.True(t, ok, "unexpected event %T", evt)
	}).Times(1)
}

func programAccount(b byte, space int) *types.Account {
	return types.NewAccount(types.Address{b, 0x01}, program, 0, space)
}

func signer(b byte) *types.Account {
	return &types.Account{Address: types.Address{b, 0x02}, Signer: true}
}

func accounts(list ...*types.Account) *types.Accounts {
	return types.NewAccounts(list)
}

// setupMarket creates a market expiring at expiresAt, decided by authority.
func setupMarket(t *testing.T, te *testEngine, authority *types.Account, expiresAt uint64) *types.Account {
	t.Helper()
	market := programAccount(0x10, types.MarketSpace)
	expectEvent[*events.MarketCreated](t, te)
	require.NoError(t, te.engine.CreateMarket(context.Background(), accounts(market, authority), expiresAt, "cyberpunk"))
	return market
}

type resultAccounts struct {
	result, yesMint, noMint, mintAuthority *types.Account
	nonce                                  uint8
}

// setupResult adds a result to market at height.
func setupResult(t *testing.T, te *testEngine, market *types.Account, b byte, height uint64) resultAccounts {
	t.Helper()
	addr, nonce, err := derive.Find(types.MintAuthorityLabel, market.Address, program)
	require.NoError(t, err)
	ra := resultAccounts{
		result:        programAccount(b, types.ResultSpace),
		yesMint:       &types.Account{Address: types.Address{b, 0x03}},
		noMint:        &types.Account{Address: types.Address{b, 0x04}},
		mintAuthority: &types.Account{Address: addr},
		nonce:         nonce,
	}
	te.clock.EXPECT().Height().Return(height).Times(1)
	expectEvent[*events.ResultCreated](t, te)
	require.NoError(t, te.engine.CreateResult(
		context.Background(),
		accounts(ra.result, market, ra.yesMint, ra.noMint, ra.mintAuthority),
		"http://cyberpunk.net", "Cyberpunk website", "A game fated to be legend", nonce,
	))
	return ra
}
