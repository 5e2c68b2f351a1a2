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

package orders_test

import (
	"context"
	"testing"

	"code.vegaprotocol.io/searchmarket/core/derive"
	"code.vegaprotocol.io/searchmarket/core/events"
	"code.vegaprotocol.io/searchmarket/core/native"
	"code.vegaprotocol.io/searchmarket/core/orders"
	"code.vegaprotocol.io/searchmarket/core/orders/mocks"
	"code.vegaprotocol.io/searchmarket/core/token"
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/logging"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var program = types.Address{0x5e, 0xa4}

type testEngine struct {
	engine *orders.Engine
	tokens *token.Engine
	clock  *mocks.MockClock
	broker *mocks.MockBroker

	height uint64
	events []events.Event
}

func newEngine(t *testing.T, cfg orders.Config) *testEngine {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logging.NewTestLogger()
	deriver, err := derive.NewDeriver(32)
	require.NoError(t, err)
	tokens := token.New(log, token.NewDefaultConfig())

	te := &testEngine{
		tokens: tokens,
		clock:  mocks.NewMockClock(ctrl),
		broker: mocks.NewMockBroker(ctrl),
		height: 1,
	}
	te.clock.EXPECT().Height().DoAndReturn(func() uint64 { return te.height }).AnyTimes()
	te.broker.EXPECT().Send(gomock.Any()).Do(func(evt events.Event) {
		te.events = append(te.events, evt)
	}).AnyTimes()
	te.engine = orders.NewEngine(log, cfg, program, deriver, tokens, native.New(log), te.clock, te.broker)
	return te
}

func (te *testEngine) lastEvent(t *testing.T) events.Event {
	t.Helper()
	require.NotEmpty(t, te.events)
	return te.events[len(te.events)-1]
}

// book is a market with one result, a buyer holding collateral and an
// empty Yes account, and a seller holding Yes claims.
type book struct {
	market        *types.Account
	result        *types.Account
	mintAuthority *types.Account
	mintSeeds     types.Seeds
	yesMint       *types.Account
	noMint        *types.Account

	buyer       *types.Account
	buyerClaim  *types.Account
	seller      *types.Account
	sellerClaim *types.Account
	executor    *types.Account
}

const (
	buyerLamports = 1_000_000
	sellerClaims  = 1_000
)

func setupBook(t *testing.T, te *testEngine, expiresAt uint64) *book {
	t.Helper()
	b := &book{
		market:   types.NewAccount(types.Address{0x10}, program, 0, types.MarketSpace),
		result:   types.NewAccount(types.Address{0x20}, program, 0, types.ResultSpace),
		yesMint:  &types.Account{Address: types.Address{0x30}},
		noMint:   &types.Account{Address: types.Address{0x31}},
		buyer:    &types.Account{Address: types.Address{0x40}, Lamports: buyerLamports, Signer: true, Writable: true},
		seller:   &types.Account{Address: types.Address{0x50}, Lamports: 0, Signer: true, Writable: true},
		executor: &types.Account{Address: types.Address{0x60}, Signer: true},
	}
	authority, nonce, err := derive.Find(types.MintAuthorityLabel, b.market.Address, program)
	require.NoError(t, err)
	b.mintAuthority = &types.Account{Address: authority}
	b.mintSeeds = types.Seeds{Label: types.MintAuthorityLabel, Owner: b.market.Address, Nonce: nonce}

	m := &types.Market{Authority: types.Address{0x01}, SearchString: "cyberpunk", ExpiresAt: expiresAt}
	require.NoError(t, m.Write(b.market))
	r := &types.Result{
		Market:             b.market.Address,
		URL:                "http://cyberpunk.net",
		YesClaimType:       b.yesMint.Address,
		NoClaimType:        b.noMint.Address,
		MintAuthorityNonce: nonce,
	}
	require.NoError(t, r.Write(b.result))

	require.NoError(t, te.tokens.InitializeMint(b.yesMint, authority, types.ClaimDecimals))
	require.NoError(t, te.tokens.InitializeMint(b.noMint, authority, types.ClaimDecimals))
	b.buyerClaim = &types.Account{Address: types.Address{0x41}, Writable: true}
	b.sellerClaim = &types.Account{Address: types.Address{0x51}, Writable: true}
	require.NoError(t, te.tokens.InitializeAccount(b.buyerClaim, b.yesMint, b.buyer.Address))
	require.NoError(t, te.tokens.InitializeAccount(b.sellerClaim, b.yesMint, b.seller.Address))
	require.NoError(t, te.tokens.MintTo(b.yesMint, b.sellerClaim,
		types.SignedByProgram(b.mintAuthority, program, b.mintSeeds), sellerClaims))
	return b
}

// resting is an order created on the book together with its escrow.
type resting struct {
	side   types.Side
	order  *types.Account
	escrow *types.Account
	nonce  uint8
}

func (b *book) createAccounts(r *resting) *types.Accounts {
	settlement, receive, claimAuthority := b.buyer, b.buyerClaim, b.buyer
	if r.side == types.SideSell {
		settlement, receive, claimAuthority = b.sellerClaim, b.seller, b.seller
	}
	return types.NewAccounts([]*types.Account{
		r.order, b.market, b.result, settlement, receive, b.yesMint, claimAuthority, r.escrow, b.executor,
	})
}

func newResting(t *testing.T, side types.Side, id byte) *resting {
	t.Helper()
	order := types.NewAccount(types.Address{0x70, id}, program, 0, types.OrderSpace)
	escrow, nonce, err := derive.Find(side.EscrowLabel(), order.Address, program)
	require.NoError(t, err)
	return &resting{
		side:   side,
		order:  order,
		escrow: &types.Account{Address: escrow, Writable: true},
		nonce:  nonce,
	}
}

func createOrder(t *testing.T, te *testEngine, b *book, side types.Side, id byte, price, quantity uint64) *resting {
	t.Helper()
	r := newResting(t, side, id)
	require.NoError(t, te.engine.CreateOrder(context.Background(), b.createAccounts(r), side, price, quantity, r.nonce))
	return r
}

func (b *book) fillAccounts(buy, sell *resting) *types.Accounts {
	return types.NewAccounts([]*types.Account{
		buy.order, b.buyerClaim, sell.order, b.seller, buy.escrow, sell.escrow, b.executor, b.buyer,
	})
}

func (b *book) fill(te *testEngine, buy, sell *resting) error {
	return te.engine.FillOrder(context.Background(), b.fillAccounts(buy, sell), buy.nonce, sell.nonce)
}

func (b *book) cancelAccounts(r *resting, executor *types.Account) *types.Accounts {
	return types.NewAccounts([]*types.Account{
		r.order, b.buyer, b.sellerClaim, r.escrow, executor,
	})
}

func loadOrder(t *testing.T, acc *types.Account) *types.Order {
	t.Helper()
	o, err := types.OrderFromAccount(acc)
	require.NoError(t, err)
	return o
}

func balance(t *testing.T, acc *types.Account) uint64 {
	t.Helper()
	a, err := token.AccountFromAccount(acc)
	require.NoError(t, err)
	return a.Amount
}
