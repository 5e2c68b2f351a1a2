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
	"code.vegaprotocol.io/searchmarket/core/orders"
	"code.vegaprotocol.io/searchmarket/core/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	t.Run("buy order escrows price times quantity", testCreateBuyOrder)
	t.Run("sell order escrows the claims", testCreateSellOrder)
	t.Run("order cannot be created twice", testCreateOrderTwice)
	t.Run("price and quantity must be positive", testCreateOrderZeroValues)
	t.Run("side must be buy or sell", testCreateOrderNoSide)
	t.Run("market must not be expired", testCreateOrderExpired)
	t.Run("claim mint must belong to the result", testCreateOrderForeignMint)
	t.Run("escrow must derive from the order", testCreateOrderWrongEscrow)
	t.Run("buyer must sign", testCreateBuyOrderUnsigned)
	t.Run("buyer must hold the collateral", testCreateBuyOrderUnfunded)
	t.Run("seller must hold the claims", testCreateSellOrderUnfunded)
	t.Run("collateral must not overflow", testCreateBuyOrderOverflow)
}

func testCreateBuyOrder(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	te.height = 3
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)

	o := loadOrder(t, buy.order)
	assert.Equal(t, types.SideBuy, o.Side)
	assert.Equal(t, uint64(501), o.LimitPrice)
	assert.Equal(t, uint64(100), o.Quantity)
	assert.Equal(t, b.buyer.Address, o.SettlementAccount)
	assert.Equal(t, b.buyerClaim.Address, o.ReceiveAccount)
	assert.Equal(t, b.yesMint.Address, o.ClaimType)
	assert.Equal(t, buy.nonce, o.EscrowNonce)
	assert.Equal(t, uint64(3), o.CreatedAt)
	assert.Equal(t, b.executor.Address, o.ExecutionAuthority)

	assert.Equal(t, uint64(501*100), buy.escrow.Lamports)
	assert.Equal(t, uint64(buyerLamports-501*100), b.buyer.Lamports)

	evt, ok := te.lastEvent(t).(*events.Order)
	require.True(t, ok)
	assert.Equal(t, events.OrderCreatedEvent, evt.Type())
	assert.Equal(t, buy.order.Address, evt.OrderID())
}

func testCreateSellOrder(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	sell := createOrder(t, te, b, types.SideSell, 1, 500, 100)

	o := loadOrder(t, sell.order)
	assert.Equal(t, types.SideSell, o.Side)
	assert.Equal(t, b.sellerClaim.Address, o.SettlementAccount)
	assert.Equal(t, b.seller.Address, o.ReceiveAccount)

	assert.Equal(t, uint64(100), balance(t, sell.escrow))
	assert.Equal(t, uint64(sellerClaims-100), balance(t, b.sellerClaim))
}

func testCreateOrderTwice(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)

	err := te.engine.CreateOrder(context.Background(), b.createAccounts(buy), types.SideBuy, 501, 100, buy.nonce)
	assert.ErrorIs(t, err, types.ErrAlreadyInitialized)
}

func testCreateOrderZeroValues(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)

	cases := []struct {
		name            string
		price, quantity uint64
	}{
		{name: "zero price", price: 0, quantity: 10},
		{name: "zero quantity", price: 10, quantity: 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newResting(t, types.SideBuy, 1)
			err := te.engine.CreateOrder(context.Background(), b.createAccounts(r), types.SideBuy, c.price, c.quantity, r.nonce)
			assert.ErrorIs(t, err, types.ErrMalformedInput)
			assert.True(t, r.order.IsEmpty())
		})
	}
}

func testCreateOrderNoSide(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	r := newResting(t, types.SideBuy, 1)

	err := te.engine.CreateOrder(context.Background(), b.createAccounts(r), types.SideUnspecified, 10, 10, r.nonce)
	assert.ErrorIs(t, err, types.ErrMalformedInput)
}

func testCreateOrderExpired(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 2)
	te.height = 3
	r := newResting(t, types.SideBuy, 1)

	err := te.engine.CreateOrder(context.Background(), b.createAccounts(r), types.SideBuy, 10, 10, r.nonce)
	assert.ErrorIs(t, err, types.ErrExpired)
	assert.Equal(t, uint64(buyerLamports), b.buyer.Lamports)
}

func testCreateOrderForeignMint(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	b.yesMint = &types.Account{Address: types.Address{0x39}}
	r := newResting(t, types.SideBuy, 1)

	err := te.engine.CreateOrder(context.Background(), b.createAccounts(r), types.SideBuy, 10, 10, r.nonce)
	assert.ErrorIs(t, err, types.ErrCrossReference)
}

func testCreateOrderWrongEscrow(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	r := newResting(t, types.SideBuy, 1)
	r.escrow = &types.Account{Address: types.Address{0x77}}

	err := te.engine.CreateOrder(context.Background(), b.createAccounts(r), types.SideBuy, 10, 10, r.nonce)
	assert.ErrorIs(t, err, types.ErrInvalidDerivedAddress)

	// a sell escrow is derived under a different label
	sell := newResting(t, types.SideSell, 1)
	r = newResting(t, types.SideBuy, 1)
	r.escrow, r.nonce = sell.escrow, sell.nonce
	err = te.engine.CreateOrder(context.Background(), b.createAccounts(r), types.SideBuy, 10, 10, r.nonce)
	assert.ErrorIs(t, err, types.ErrInvalidDerivedAddress)
}

func testCreateBuyOrderUnsigned(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	b.buyer.Signer = false
	r := newResting(t, types.SideBuy, 1)

	err := te.engine.CreateOrder(context.Background(), b.createAccounts(r), types.SideBuy, 10, 10, r.nonce)
	assert.ErrorIs(t, err, types.ErrUnauthorized)
	assert.Zero(t, r.escrow.Lamports)
}

func testCreateBuyOrderUnfunded(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	r := newResting(t, types.SideBuy, 1)

	err := te.engine.CreateOrder(context.Background(), b.createAccounts(r), types.SideBuy, buyerLamports, 2, r.nonce)
	assert.ErrorIs(t, err, types.ErrInsufficientFunds)
}

func testCreateSellOrderUnfunded(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	r := newResting(t, types.SideSell, 1)

	err := te.engine.CreateOrder(context.Background(), b.createAccounts(r), types.SideSell, 10, sellerClaims+1, r.nonce)
	assert.ErrorIs(t, err, types.ErrInsufficientFunds)
}

func testCreateBuyOrderOverflow(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	r := newResting(t, types.SideBuy, 1)

	err := te.engine.CreateOrder(context.Background(), b.createAccounts(r), types.SideBuy, 1<<40, 1<<40, r.nonce)
	assert.ErrorIs(t, err, types.ErrArithmeticOverflow)
}

func TestFillOrder(t *testing.T) {
	t.Run("simultaneous orders execute at the buy limit", testFillTieAtBuyPrice)
	t.Run("older sell order sets the price and the buyer is refunded", testFillAtSellPrice)
	t.Run("partial fill keeps the escrow proportional", testFillPartial)
	t.Run("exhausted orders cannot fill again", testFillExhausted)
	t.Run("bid below ask", testFillPriceMismatch)
	t.Run("execution authority must sign", testFillUnauthorized)
	t.Run("escrows must derive from the orders", testFillWrongEscrow)
	t.Run("sides must be opposite", testFillSameSide)
	t.Run("delivery accounts must match the orders", testFillWrongDelivery)
}

func testFillTieAtBuyPrice(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	sell := createOrder(t, te, b, types.SideSell, 1, 500, 100)
	buy := createOrder(t, te, b, types.SideBuy, 2, 501, 100)

	require.NoError(t, b.fill(te, buy, sell))

	assert.Equal(t, uint64(501*100), b.seller.Lamports)
	assert.Equal(t, uint64(100), balance(t, b.buyerClaim))
	assert.Zero(t, buy.escrow.Lamports)
	assert.Zero(t, balance(t, sell.escrow))
	assert.Zero(t, loadOrder(t, buy.order).Quantity)
	assert.Zero(t, loadOrder(t, sell.order).Quantity)
	assert.Equal(t, uint64(buyerLamports-501*100), b.buyer.Lamports)

	evt, ok := te.lastEvent(t).(*events.Fill)
	require.True(t, ok)
	assert.Equal(t, uint64(501), evt.Price())
	assert.Equal(t, uint64(100), evt.Quantity())
}

func testFillAtSellPrice(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	sell := createOrder(t, te, b, types.SideSell, 1, 500, 100)
	te.height = 2
	buy := createOrder(t, te, b, types.SideBuy, 2, 501, 100)

	require.NoError(t, b.fill(te, buy, sell))

	assert.Equal(t, uint64(500*100), b.seller.Lamports)
	assert.Zero(t, buy.escrow.Lamports)
	assert.Equal(t, uint64(buyerLamports-500*100), b.buyer.Lamports)
}

func testFillPartial(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)
	sell := createOrder(t, te, b, types.SideSell, 2, 500, 40)

	require.NoError(t, b.fill(te, buy, sell))

	assert.Equal(t, uint64(60), loadOrder(t, buy.order).Quantity)
	assert.Zero(t, loadOrder(t, sell.order).Quantity)
	assert.Equal(t, uint64(501*60), buy.escrow.Lamports)
	assert.Equal(t, uint64(40), balance(t, b.buyerClaim))

	second := createOrder(t, te, b, types.SideSell, 3, 450, 100)
	te.height = 4
	require.NoError(t, b.fill(te, buy, second))

	assert.Zero(t, loadOrder(t, buy.order).Quantity)
	assert.Equal(t, uint64(40), loadOrder(t, second.order).Quantity)
	assert.Zero(t, buy.escrow.Lamports)
	assert.Equal(t, uint64(40), balance(t, second.escrow))
	assert.Equal(t, uint64(100), balance(t, b.buyerClaim))
}

func testFillExhausted(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)
	sell := createOrder(t, te, b, types.SideSell, 2, 500, 100)
	require.NoError(t, b.fill(te, buy, sell))

	assert.ErrorIs(t, b.fill(te, buy, sell), types.ErrOrderExhausted)
}

func testFillPriceMismatch(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 499, 100)
	sell := createOrder(t, te, b, types.SideSell, 2, 500, 100)

	assert.ErrorIs(t, b.fill(te, buy, sell), types.ErrPriceMismatch)
	assert.Equal(t, uint64(499*100), buy.escrow.Lamports)
}

func testFillUnauthorized(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)
	sell := createOrder(t, te, b, types.SideSell, 2, 500, 100)

	b.executor.Signer = false
	assert.ErrorIs(t, b.fill(te, buy, sell), types.ErrUnauthorized)

	b.executor = &types.Account{Address: types.Address{0x61}, Signer: true}
	assert.ErrorIs(t, b.fill(te, buy, sell), types.ErrUnauthorized)
	assert.Equal(t, uint64(100), loadOrder(t, buy.order).Quantity)
}

func testFillWrongEscrow(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)
	sell := createOrder(t, te, b, types.SideSell, 2, 500, 100)

	for _, nonces := range [][2]uint8{{buy.nonce, sell.nonce + 1}, {buy.nonce - 1, sell.nonce}} {
		err := te.engine.FillOrder(context.Background(), b.fillAccounts(buy, sell), nonces[0], nonces[1])
		assert.ErrorIs(t, err, types.ErrInvalidDerivedAddress)
	}
	assert.Equal(t, uint64(100), loadOrder(t, buy.order).Quantity)
	assert.Equal(t, uint64(100), loadOrder(t, sell.order).Quantity)

	swapped := *buy
	swapped.escrow = sell.escrow
	err := te.engine.FillOrder(context.Background(), b.fillAccounts(&swapped, sell), buy.nonce, sell.nonce)
	assert.ErrorIs(t, err, types.ErrInvalidDerivedAddress)
}

func testFillSameSide(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)
	other := createOrder(t, te, b, types.SideBuy, 2, 500, 100)

	assert.ErrorIs(t, b.fill(te, buy, other), types.ErrMalformedInput)
}

func testFillWrongDelivery(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)
	sell := createOrder(t, te, b, types.SideSell, 2, 500, 100)

	thief := &types.Account{Address: types.Address{0x99}, Writable: true}
	b.seller = thief
	assert.ErrorIs(t, b.fill(te, buy, sell), types.ErrCrossReference)
	assert.Zero(t, thief.Lamports)
}

func TestCancelOrder(t *testing.T) {
	t.Run("cancelling a buy order returns the collateral", testCancelBuyOrder)
	t.Run("cancelling a sell order returns the claims", testCancelSellOrder)
	t.Run("cancelling after a partial fill returns the remainder", testCancelAfterPartialFill)
	t.Run("any signer may cancel by default", testCancelByAnySigner)
	t.Run("execution authority required when configured", testCancelRequiresAuthority)
	t.Run("exhausted orders cannot be cancelled", testCancelExhausted)
	t.Run("funds go back to the funding account", testCancelWrongSettlement)
	t.Run("escrow must derive from the order", testCancelWrongEscrow)
}

func testCancelBuyOrder(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)

	require.NoError(t, te.engine.CancelOrder(context.Background(), b.cancelAccounts(buy, b.executor)))

	assert.Equal(t, uint64(buyerLamports), b.buyer.Lamports)
	assert.Zero(t, buy.escrow.Lamports)
	assert.Zero(t, loadOrder(t, buy.order).Quantity)

	evt, ok := te.lastEvent(t).(*events.Order)
	require.True(t, ok)
	assert.Equal(t, events.OrderCancelledEvent, evt.Type())
}

func testCancelSellOrder(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	sell := createOrder(t, te, b, types.SideSell, 1, 500, 100)

	require.NoError(t, te.engine.CancelOrder(context.Background(), b.cancelAccounts(sell, b.executor)))

	assert.Equal(t, uint64(sellerClaims), balance(t, b.sellerClaim))
	assert.Zero(t, balance(t, sell.escrow))
}

func testCancelAfterPartialFill(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)
	sell := createOrder(t, te, b, types.SideSell, 2, 500, 30)
	require.NoError(t, b.fill(te, buy, sell))

	require.NoError(t, te.engine.CancelOrder(context.Background(), b.cancelAccounts(buy, b.executor)))
	assert.Zero(t, buy.escrow.Lamports)
	assert.Equal(t, uint64(buyerLamports-501*30), b.buyer.Lamports)
}

func testCancelByAnySigner(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)
	stranger := &types.Account{Address: types.Address{0x98}, Signer: true}

	require.NoError(t, te.engine.CancelOrder(context.Background(), b.cancelAccounts(buy, stranger)))
	assert.Equal(t, uint64(buyerLamports), b.buyer.Lamports)
}

func testCancelRequiresAuthority(t *testing.T) {
	cfg := orders.NewDefaultConfig()
	cfg.RequireCancelAuthority = true
	te := newEngine(t, cfg)
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)
	stranger := &types.Account{Address: types.Address{0x98}, Signer: true}

	err := te.engine.CancelOrder(context.Background(), b.cancelAccounts(buy, stranger))
	assert.ErrorIs(t, err, types.ErrUnauthorized)
	assert.Equal(t, uint64(100), loadOrder(t, buy.order).Quantity)

	require.NoError(t, te.engine.CancelOrder(context.Background(), b.cancelAccounts(buy, b.executor)))
}

func testCancelExhausted(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)
	require.NoError(t, te.engine.CancelOrder(context.Background(), b.cancelAccounts(buy, b.executor)))

	err := te.engine.CancelOrder(context.Background(), b.cancelAccounts(buy, b.executor))
	assert.ErrorIs(t, err, types.ErrOrderExhausted)
}

func testCancelWrongSettlement(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)
	b.buyer = &types.Account{Address: types.Address{0x99}, Writable: true}

	err := te.engine.CancelOrder(context.Background(), b.cancelAccounts(buy, b.executor))
	assert.ErrorIs(t, err, types.ErrCrossReference)
	assert.Equal(t, uint64(501*100), buy.escrow.Lamports)
}

func testCancelWrongEscrow(t *testing.T) {
	te := newEngine(t, orders.NewDefaultConfig())
	b := setupBook(t, te, 10)
	buy := createOrder(t, te, b, types.SideBuy, 1, 501, 100)
	other, _, err := derive.Find(types.EscrowLabelCollateral, types.Address{0x71}, program)
	require.NoError(t, err)
	buy.escrow = &types.Account{Address: other, Lamports: 501 * 100}

	err = te.engine.CancelOrder(context.Background(), b.cancelAccounts(buy, b.executor))
	assert.ErrorIs(t, err, types.ErrInvalidDerivedAddress)
}

func TestExecutionPrice(t *testing.T) {
	cases := []struct {
		name      string
		buyAt     uint64
		sellAt    uint64
		wantPrice uint64
	}{
		{name: "buy rested first", buyAt: 1, sellAt: 2, wantPrice: 501},
		{name: "same height", buyAt: 2, sellAt: 2, wantPrice: 501},
		{name: "sell rested first", buyAt: 3, sellAt: 2, wantPrice: 500},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			buy := &types.Order{Side: types.SideBuy, LimitPrice: 501, CreatedAt: c.buyAt}
			sell := &types.Order{Side: types.SideSell, LimitPrice: 500, CreatedAt: c.sellAt}
			assert.Equal(t, c.wantPrice, orders.ExecutionPrice(buy, sell))
		})
	}
}
