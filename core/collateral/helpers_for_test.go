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

package collateral_test

import (
	"testing"

	"code.vegaprotocol.io/searchmarket/core/collateral"
	"code.vegaprotocol.io/searchmarket/core/collateral/mocks"
	"code.vegaprotocol.io/searchmarket/core/derive"
	"code.vegaprotocol.io/searchmarket/core/native"
	"code.vegaprotocol.io/searchmarket/core/token"
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/logging"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var program = types.Address{0x5e, 0xa4}

type testEngine struct {
	engine *collateral.Engine
	tokens *token.Engine
	clock  *mocks.MockClock
	broker *mocks.MockBroker
}

func newEngine(t *testing.T) *testEngine {
	t.Helper()
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	broker := mocks.NewMockBroker(ctrl)
	log := logging.NewTestLogger()
	deriver, err := derive.NewDeriver(32)
	require.NoError(t, err)
	tokens := token.New(log, token.NewDefaultConfig())

	return &testEngine{
		engine: collateral.NewEngine(log, collateral.NewDefaultConfig(), program, deriver, tokens, native.New(log), clock, broker),
		tokens: tokens,
		clock:  clock,
		broker: broker,
	}
}

// fixture holds a market with a single result and a funded participant
// holding empty Yes and No token accounts.
type fixture struct {
	market        *types.Account
	result        *types.Account
	mintAuthority *types.Account
	yesMint       *types.Account
	noMint        *types.Account
	party         *types.Account
	yesAccount    *types.Account
	noAccount     *types.Account
}

func (f *fixture) depositAccounts() *types.Accounts {
	return types.NewAccounts([]*types.Account{
		f.market, f.result, f.party, f.mintAuthority, f.yesMint, f.yesAccount, f.noMint, f.noAccount,
	})
}

func (f *fixture) withdrawAccounts() *types.Accounts {
	return types.NewAccounts([]*types.Account{
		f.market, f.result, f.party, f.mintAuthority, f.party, f.yesMint, f.yesAccount, f.noMint, f.noAccount,
	})
}

func (f *fixture) decide(t *testing.T, best types.Address) {
	t.Helper()
	m, err := types.MarketFromAccount(f.market)
	require.NoError(t, err)
	m.BestResult = &best
	require.NoError(t, m.Write(f.market))
}

func setup(t *testing.T, te *testEngine, expiresAt, lamports uint64) *fixture {
	t.Helper()
	f := &fixture{
		market:  types.NewAccount(types.Address{0x10}, program, 0, types.MarketSpace),
		result:  types.NewAccount(types.Address{0x20}, program, 0, types.ResultSpace),
		yesMint: &types.Account{Address: types.Address{0x30}},
		noMint:  &types.Account{Address: types.Address{0x31}},
		party:   &types.Account{Address: types.Address{0x40}, Lamports: lamports, Signer: true, Writable: true},
	}
	authority, nonce, err := derive.Find(types.MintAuthorityLabel, f.market.Address, program)
	require.NoError(t, err)
	f.mintAuthority = &types.Account{Address: authority}

	m := &types.Market{Authority: types.Address{0x01}, SearchString: "cyberpunk", ExpiresAt: expiresAt}
	require.NoError(t, m.Write(f.market))
	r := &types.Result{
		Market:             f.market.Address,
		URL:                "http://cyberpunk.net",
		YesClaimType:       f.yesMint.Address,
		NoClaimType:        f.noMint.Address,
		MintAuthorityNonce: nonce,
	}
	require.NoError(t, r.Write(f.result))

	require.NoError(t, te.tokens.InitializeMint(f.yesMint, authority, types.ClaimDecimals))
	require.NoError(t, te.tokens.InitializeMint(f.noMint, authority, types.ClaimDecimals))
	f.yesAccount = &types.Account{Address: types.Address{0x41}}
	f.noAccount = &types.Account{Address: types.Address{0x42}}
	require.NoError(t, te.tokens.InitializeAccount(f.yesAccount, f.yesMint, f.party.Address))
	require.NoError(t, te.tokens.InitializeAccount(f.noAccount, f.noMint, f.party.Address))
	return f
}

func balance(t *testing.T, acc *types.Account) uint64 {
	t.Helper()
	a, err := token.AccountFromAccount(acc)
	require.NoError(t, err)
	return a.Amount
}

func supply(t *testing.T, mint *types.Account) uint64 {
	t.Helper()
	m, err := token.MintFromAccount(mint)
	require.NoError(t, err)
	return m.Supply
}
