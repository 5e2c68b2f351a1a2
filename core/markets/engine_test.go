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

	"code.vegaprotocol.io/searchmarket/core/events"
	"code.vegaprotocol.io/searchmarket/core/markets"
	"code.vegaprotocol.io/searchmarket/core/token"
	"code.vegaprotocol.io/searchmarket/core/types"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMarket(t *testing.T) {
	t.Run("market is written undecided", testCreateMarketSucceeds)
	t.Run("market cannot be created twice", testCreateMarketTwice)
	t.Run("authority must sign", testCreateMarketUnsigned)
	t.Run("market account must belong to the program", testCreateMarketForeignAccount)
	t.Run("missing accounts", testCreateMarketMissingAccounts)
}

func testCreateMarketSucceeds(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	authority := signer(1)
	market := setupMarket(t, te, authority, 2)

	m, err := types.MarketFromAccount(market)
	require.NoError(t, err)
	assert.Equal(t, authority.Address, m.Authority)
	assert.Equal(t, "cyberpunk", m.SearchString)
	assert.Equal(t, uint64(2), m.ExpiresAt)
	assert.False(t, m.IsDecided())
}

func testCreateMarketTwice(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	authority := signer(1)
	market := setupMarket(t, te, authority, 2)

	err := te.engine.CreateMarket(context.Background(), accounts(market, authority), 3, "other")
	assert.ErrorIs(t, err, types.ErrAlreadyInitialized)
}

func testCreateMarketUnsigned(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	authority := signer(1)
	authority.Signer = false
	market := programAccount(0x10, types.MarketSpace)

	err := te.engine.CreateMarket(context.Background(), accounts(market, authority), 2, "cyberpunk")
	assert.ErrorIs(t, err, types.ErrUnauthorized)
	assert.True(t, market.IsEmpty())
}

func testCreateMarketForeignAccount(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	market := types.NewAccount(types.Address{0x10}, types.Address{0x99}, 0, types.MarketSpace)

	err := te.engine.CreateMarket(context.Background(), accounts(market, signer(1)), 2, "cyberpunk")
	assert.ErrorIs(t, err, types.ErrInvalidAccountOwner)
}

func testCreateMarketMissingAccounts(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	err := te.engine.CreateMarket(context.Background(), accounts(programAccount(0x10, types.MarketSpace)), 2, "cyberpunk")
	assert.ErrorIs(t, err, types.ErrNotEnoughAccountKeys)
}

func TestCreateResult(t *testing.T) {
	t.Run("result creates both claim types", testCreateResultSucceeds)
	t.Run("result cannot be created twice", testCreateResultTwice)
	t.Run("url must be well formed", testCreateResultBadURL)
	t.Run("market must not be expired", testCreateResultExpired)
	t.Run("mint authority must derive from the market", testCreateResultWrongMintAuthority)
}

func testCreateResultSucceeds(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	market := setupMarket(t, te, signer(1), 1)
	ra := setupResult(t, te, market, 0x20, 1)

	r, err := types.ResultFromAccount(ra.result)
	require.NoError(t, err)
	assert.Equal(t, market.Address, r.Market)
	assert.Equal(t, "http://cyberpunk.net", r.URL)
	assert.Equal(t, ra.yesMint.Address, r.YesClaimType)
	assert.Equal(t, ra.noMint.Address, r.NoClaimType)
	assert.Equal(t, ra.nonce, r.MintAuthorityNonce)

	for _, mint := range []*types.Account{ra.yesMint, ra.noMint} {
		m, err := token.MintFromAccount(mint)
		require.NoError(t, err)
		assert.Equal(t, ra.mintAuthority.Address, m.Authority)
		assert.Zero(t, m.Supply)
		assert.Equal(t, types.ClaimDecimals, m.Decimals)
	}
}

func testCreateResultTwice(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	market := setupMarket(t, te, signer(1), 1)
	ra := setupResult(t, te, market, 0x20, 1)

	err := te.engine.CreateResult(context.Background(),
		accounts(ra.result, market, ra.yesMint, ra.noMint, ra.mintAuthority),
		"http://cyberpunk.net", "again", "", ra.nonce)
	assert.ErrorIs(t, err, types.ErrAlreadyInitialized)
}

func testCreateResultBadURL(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	market := setupMarket(t, te, signer(1), 1)

	for _, u := range []string{"", "cyberpunk.net", "http://[::1"} {
		result := programAccount(0x20, types.ResultSpace)
		err := te.engine.CreateResult(context.Background(),
			accounts(result, market, &types.Account{Address: types.Address{3}}, &types.Account{Address: types.Address{4}}, &types.Account{Address: types.Address{5}}),
			u, "name", "snippet", 0)
		assert.ErrorIs(t, err, types.ErrMalformedInput, "url %q", u)
		assert.True(t, result.IsEmpty())
	}
}

func testCreateResultExpired(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	market := setupMarket(t, te, signer(1), 1)

	te.clock.EXPECT().Height().Return(uint64(2)).Times(1)
	yes := &types.Account{Address: types.Address{3}}
	err := te.engine.CreateResult(context.Background(),
		accounts(programAccount(0x20, types.ResultSpace), market, yes, &types.Account{Address: types.Address{4}}, &types.Account{Address: types.Address{5}}),
		"http://cyberpunk.net", "name", "snippet", 0)
	assert.ErrorIs(t, err, types.ErrExpired)
	assert.True(t, yes.IsEmpty())
}

func testCreateResultWrongMintAuthority(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	market := setupMarket(t, te, signer(1), 1)

	te.clock.EXPECT().Height().Return(uint64(1)).Times(1)
	err := te.engine.CreateResult(context.Background(),
		accounts(programAccount(0x20, types.ResultSpace), market, &types.Account{Address: types.Address{3}}, &types.Account{Address: types.Address{4}}, signer(9)),
		"http://cyberpunk.net", "name", "snippet", 0)
	assert.ErrorIs(t, err, types.ErrInvalidDerivedAddress)
}

func TestDecide(t *testing.T) {
	t.Run("non authority signer is unauthorized", testDecideNonAuthority)
	t.Run("authority after expiry is rejected", testDecideExpired)
	t.Run("authority before expiry sets the best result", testDecideSucceeds)
	t.Run("result of another market is rejected", testDecideForeignResult)
	t.Run("decision can be replaced when re-deciding is allowed", testRedecideAllowed)
	t.Run("decision is final when re-deciding is disabled", testRedecideDisabled)
}

func testDecideNonAuthority(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	market := setupMarket(t, te, signer(1), 1)
	ra := setupResult(t, te, market, 0x20, 0)

	err := te.engine.Decide(context.Background(), accounts(market, signer(2), ra.result))
	assert.ErrorIs(t, err, types.ErrUnauthorized)

	unsigned := signer(1)
	unsigned.Signer = false
	err = te.engine.Decide(context.Background(), accounts(market, unsigned, ra.result))
	assert.ErrorIs(t, err, types.ErrUnauthorized)
}

func testDecideExpired(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	authority := signer(1)
	market := setupMarket(t, te, authority, 1)
	ra := setupResult(t, te, market, 0x20, 0)

	te.clock.EXPECT().Height().Return(uint64(2)).Times(1)
	err := te.engine.Decide(context.Background(), accounts(market, authority, ra.result))
	assert.ErrorIs(t, err, types.ErrExpired)
}

func testDecideSucceeds(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	authority := signer(1)
	market := setupMarket(t, te, authority, 1)
	ra := setupResult(t, te, market, 0x20, 0)

	te.clock.EXPECT().Height().Return(uint64(1)).Times(1)
	expectEvent[*events.MarketDecided](t, te)
	require.NoError(t, te.engine.Decide(context.Background(), accounts(market, authority, ra.result)))

	m, err := types.MarketFromAccount(market)
	require.NoError(t, err)
	require.True(t, m.IsDecided())
	assert.Equal(t, ra.result.Address, *m.BestResult)
}

func testDecideForeignResult(t *testing.T) {
	te := newEngine(t, markets.NewDefaultConfig())
	authority := signer(1)
	market := setupMarket(t, te, authority, 1)

	other := programAccount(0x11, types.MarketSpace)
	expectEvent[*events.MarketCreated](t, te)
	require.NoError(t, te.engine.CreateMarket(context.Background(), accounts(other, authority), 1, "other"))
	ra := setupResult(t, te, other, 0x20, 0)

	te.clock.EXPECT().Height().Return(uint64(0)).Times(1)
	err := te.engine.Decide(context.Background(), accounts(market, authority, ra.result))
	assert.ErrorIs(t, err, types.ErrCrossReference)
}

func decideTwice(t *testing.T, cfg markets.Config) (*types.Account, resultAccounts, error) {
	t.Helper()
	te := newEngine(t, cfg)
	authority := signer(1)
	market := setupMarket(t, te, authority, 5)
	first := setupResult(t, te, market, 0x20, 0)
	second := setupResult(t, te, market, 0x21, 0)

	te.clock.EXPECT().Height().Return(uint64(1)).Times(2)
	te.broker.EXPECT().Send(gomock.Any()).AnyTimes()
	require.NoError(t, te.engine.Decide(context.Background(), accounts(market, authority, first.result)))
	err := te.engine.Decide(context.Background(), accounts(market, authority, second.result))
	return market, second, err
}

func testRedecideAllowed(t *testing.T) {
	market, second, err := decideTwice(t, markets.NewDefaultConfig())
	require.NoError(t, err)

	m, err := types.MarketFromAccount(market)
	require.NoError(t, err)
	assert.Equal(t, second.result.Address, *m.BestResult)
}

func testRedecideDisabled(t *testing.T) {
	cfg := markets.NewDefaultConfig()
	cfg.AllowRedecide = false
	market, _, err := decideTwice(t, cfg)
	assert.ErrorIs(t, err, types.ErrAlreadyDecided)

	m, err := types.MarketFromAccount(market)
	require.NoError(t, err)
	assert.NotNil(t, m.BestResult)
}
