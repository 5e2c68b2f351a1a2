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

// Package orders runs the escrow-backed order book. Orders never match on
// their own: a fill names one buy and one sell order explicitly and is
// signed by the execution authority of either.
package orders

import (
	"context"

	"code.vegaprotocol.io/searchmarket/core/auth"
	"code.vegaprotocol.io/searchmarket/core/events"
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/libs/num"
	"code.vegaprotocol.io/searchmarket/logging"

	"github.com/pkg/errors"
)

type Engine struct {
	log *logging.Logger
	cfg Config

	program types.Address
	deriver Deriver
	tokens  Tokens
	native  Native
	clock   Clock
	broker  Broker
}

func NewEngine(log *logging.Logger, cfg Config, program types.Address, deriver Deriver, tokens Tokens, native Native, clock Clock, broker Broker) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Engine{
		log:     log,
		cfg:     cfg,
		program: program,
		deriver: deriver,
		tokens:  tokens,
		native:  native,
		clock:   clock,
		broker:  broker,
	}
}

// ReloadConf updates the internal configuration.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}
	if e.cfg.RequireCancelAuthority != cfg.RequireCancelAuthority {
		e.log.Info("updating cancel authority requirement",
			logging.Bool("required", bool(cfg.RequireCancelAuthority)))
	}
	e.cfg = cfg
}

func (e *Engine) checkEscrow(escrow *types.Account, seeds types.Seeds) error {
	if !e.deriver.Validate(escrow.Address, seeds, e.program) {
		return errors.Wrapf(types.ErrInvalidDerivedAddress, "escrow %s does not derive from %s", escrow.Address, seeds.Label)
	}
	return nil
}

func notional(price, quantity uint64) (uint64, error) {
	v, overflow := num.Product(price, quantity)
	if overflow {
		return 0, errors.Wrapf(types.ErrArithmeticOverflow, "%d at %d", quantity, price)
	}
	return v, nil
}

// CreateOrder rests a limit order and locks its stake in the order escrow:
// price x quantity lamports for a buy, quantity claims for a sell.
// Accounts: [order(w), market, result, settlement(w), receive(w),
// claim_mint, claim_authority(s), escrow(w), execution_authority].
func (e *Engine) CreateOrder(ctx context.Context, accounts *types.Accounts, side types.Side, price, quantity uint64, escrowNonce uint8) error {
	accs, err := accounts.Take(9)
	if err != nil {
		return err
	}
	var (
		orderAcc, marketAcc, resultAcc       = accs[0], accs[1], accs[2]
		settlement, receive                  = accs[3], accs[4]
		claimMint, claimAuthority, escrowAcc = accs[5], accs[6], accs[7]
		executionAuthority                   = accs[8]
	)

	if err := orderAcc.CheckEmpty(); err != nil {
		return err
	}
	if err := orderAcc.CheckOwner(e.program); err != nil {
		return err
	}
	if !side.IsValid() {
		return errors.Wrapf(types.ErrMalformedInput, "invalid side %d", side)
	}
	if price == 0 || quantity == 0 {
		return errors.Wrap(types.ErrMalformedInput, "price and quantity must be positive")
	}

	m, err := types.LoadMarket(marketAcc, e.program)
	if err != nil {
		return err
	}
	r, err := types.LoadResult(resultAcc, e.program)
	if err != nil {
		return err
	}
	if r.Market != marketAcc.Address {
		return errors.Wrapf(types.ErrCrossReference, "result %s belongs to market %s", resultAcc.Address, r.Market)
	}
	height := e.clock.Height()
	if m.HasExpired(height) {
		return errors.Wrapf(types.ErrExpired, "height %d is past %d", height, m.ExpiresAt)
	}
	if !r.ClaimTypeOf(claimMint.Address) {
		return errors.Wrapf(types.ErrCrossReference, "%s is not a claim type of %s", claimMint.Address, resultAcc.Address)
	}

	o := &types.Order{
		Market:             marketAcc.Address,
		Result:             resultAcc.Address,
		Side:               side,
		LimitPrice:         price,
		Quantity:           quantity,
		SettlementAccount:  settlement.Address,
		ReceiveAccount:     receive.Address,
		ClaimType:          claimMint.Address,
		EscrowNonce:        escrowNonce,
		CreatedAt:          height,
		ExecutionAuthority: executionAuthority.Address,
	}
	if err := e.checkEscrow(escrowAcc, o.EscrowSeeds(orderAcc.Address)); err != nil {
		return err
	}

	switch side {
	case types.SideBuy:
		if err := auth.RequireSigner(settlement); err != nil {
			return err
		}
		collateral, err := notional(price, quantity)
		if err != nil {
			return err
		}
		if err := e.native.Transfer(settlement, escrowAcc, types.SignedBy(settlement), collateral); err != nil {
			return errors.Wrap(err, "escrowing collateral")
		}
	case types.SideSell:
		if err := e.tokens.InitializeAccount(escrowAcc, claimMint, escrowAcc.Address); err != nil {
			return errors.Wrap(err, "initializing claim escrow")
		}
		if err := e.tokens.Transfer(settlement, escrowAcc, types.SignedBy(claimAuthority), quantity); err != nil {
			return errors.Wrap(err, "escrowing claims")
		}
	}

	if err := o.Write(orderAcc); err != nil {
		return err
	}
	e.broker.Send(events.NewOrderCreated(ctx, orderAcc.Address, o))
	e.log.Debug("order created",
		logging.Stringer("order", orderAcc.Address),
		logging.String("details", o.String()))
	return nil
}

// ExecutionPrice returns the price a fill between buy and sell executes at:
// the limit of whichever order rested first, the buy winning ties.
func ExecutionPrice(buy, sell *types.Order) uint64 {
	if buy.CreatedAt <= sell.CreatedAt {
		return buy.LimitPrice
	}
	return sell.LimitPrice
}

// FillOrder crosses a buy and a sell order at the execution price for the
// smaller of the two remaining quantities. Collateral goes from the buy
// escrow to the seller, claims from the sell escrow to the buyer, and the
// price improvement of the buyer is refunded so the buy escrow keeps
// backing exactly limit x remaining quantity.
// Accounts: [buy_order(w), buyer_claim(w), sell_order(w),
// seller_settlement(w), buy_escrow(w), sell_escrow(w),
// execution_authority(s), buyer_refund(w)].
func (e *Engine) FillOrder(ctx context.Context, accounts *types.Accounts, buyNonce, sellNonce uint8) error {
	accs, err := accounts.Take(8)
	if err != nil {
		return err
	}
	var (
		buyAcc, buyerClaim        = accs[0], accs[1]
		sellAcc, sellerSettlement = accs[2], accs[3]
		buyEscrow, sellEscrow     = accs[4], accs[5]
		executionAuthority        = accs[6]
		buyerRefund               = accs[7]
	)

	buy, err := types.LoadOrder(buyAcc, e.program)
	if err != nil {
		return err
	}
	sell, err := types.LoadOrder(sellAcc, e.program)
	if err != nil {
		return err
	}
	if buy.Side != types.SideBuy || sell.Side != types.SideSell {
		return errors.Wrapf(types.ErrMalformedInput, "cannot fill a %s order against a %s order", buy.Side, sell.Side)
	}
	if buy.Result != sell.Result || buy.ClaimType != sell.ClaimType {
		return errors.Wrapf(types.ErrCrossReference, "orders %s and %s trade different claims", buyAcc.Address, sellAcc.Address)
	}

	if buyNonce != buy.EscrowNonce || sellNonce != sell.EscrowNonce {
		return errors.Wrapf(types.ErrInvalidDerivedAddress, "escrow nonces %d/%d do not match the orders (%d/%d)",
			buyNonce, sellNonce, buy.EscrowNonce, sell.EscrowNonce)
	}
	buySeeds := buy.EscrowSeeds(buyAcc.Address)
	if err := e.checkEscrow(buyEscrow, buySeeds); err != nil {
		return err
	}
	sellSeeds := sell.EscrowSeeds(sellAcc.Address)
	if err := e.checkEscrow(sellEscrow, sellSeeds); err != nil {
		return err
	}
	if buy.LimitPrice < sell.LimitPrice {
		return errors.Wrapf(types.ErrPriceMismatch, "bid %d is below ask %d", buy.LimitPrice, sell.LimitPrice)
	}
	if err := auth.RequireAuthority(executionAuthority, buy.ExecutionAuthority, sell.ExecutionAuthority); err != nil {
		return err
	}
	if buyerClaim.Address != buy.ReceiveAccount {
		return errors.Wrapf(types.ErrCrossReference, "%s does not receive the fills of %s", buyerClaim.Address, buyAcc.Address)
	}
	if sellerSettlement.Address != sell.ReceiveAccount {
		return errors.Wrapf(types.ErrCrossReference, "%s does not receive the proceeds of %s", sellerSettlement.Address, sellAcc.Address)
	}
	if buyerRefund.Address != buy.SettlementAccount {
		return errors.Wrapf(types.ErrCrossReference, "%s did not fund %s", buyerRefund.Address, buyAcc.Address)
	}

	quantity := num.MinV(buy.Quantity, sell.Quantity)
	if quantity == 0 {
		return errors.Wrap(types.ErrOrderExhausted, "nothing left to fill")
	}
	price := ExecutionPrice(buy, sell)
	proceeds, err := notional(price, quantity)
	if err != nil {
		return err
	}
	refund, err := notional(buy.LimitPrice-price, quantity)
	if err != nil {
		return err
	}

	escrowAuthority := types.SignedByProgram(buyEscrow, e.program, buySeeds)
	if err := e.native.Transfer(buyEscrow, sellerSettlement, escrowAuthority, proceeds); err != nil {
		return errors.Wrap(err, "paying the seller")
	}
	if refund > 0 {
		if err := e.native.Transfer(buyEscrow, buyerRefund, escrowAuthority, refund); err != nil {
			return errors.Wrap(err, "refunding the buyer")
		}
	}
	claimAuthority := types.SignedByProgram(sellEscrow, e.program, sellSeeds)
	if err := e.tokens.Transfer(sellEscrow, buyerClaim, claimAuthority, quantity); err != nil {
		return errors.Wrap(err, "delivering claims")
	}

	buy.Quantity -= quantity
	sell.Quantity -= quantity
	if err := buy.Write(buyAcc); err != nil {
		return err
	}
	if err := sell.Write(sellAcc); err != nil {
		return err
	}

	e.broker.Send(events.NewOrderFilled(ctx, buyAcc.Address, buy, sellAcc.Address, sell, price, quantity))
	e.log.Debug("orders filled",
		logging.Stringer("buy", buyAcc.Address),
		logging.Stringer("sell", sellAcc.Address),
		logging.Uint64("price", price),
		logging.Uint64("quantity", quantity))
	return nil
}

// CancelOrder returns what is left in the escrow to the account which
// funded the order and zeroes the remaining quantity.
// Accounts: [order(w), settlement(w), claim_account(w), escrow(w),
// execution_authority(s)].
func (e *Engine) CancelOrder(ctx context.Context, accounts *types.Accounts) error {
	accs, err := accounts.Take(5)
	if err != nil {
		return err
	}
	var (
		orderAcc, settlement, claimAcc = accs[0], accs[1], accs[2]
		escrowAcc, executionAuthority  = accs[3], accs[4]
	)

	o, err := types.LoadOrder(orderAcc, e.program)
	if err != nil {
		return err
	}
	if e.cfg.RequireCancelAuthority {
		if err := auth.RequireAuthority(executionAuthority, o.ExecutionAuthority); err != nil {
			return err
		}
	}
	if o.IsExhausted() {
		return errors.Wrapf(types.ErrOrderExhausted, "order %s", orderAcc.Address)
	}
	seeds := o.EscrowSeeds(orderAcc.Address)
	if err := e.checkEscrow(escrowAcc, seeds); err != nil {
		return err
	}
	escrowAuthority := types.SignedByProgram(escrowAcc, e.program, seeds)

	switch o.Side {
	case types.SideBuy:
		if settlement.Address != o.SettlementAccount {
			return errors.Wrapf(types.ErrCrossReference, "%s did not fund %s", settlement.Address, orderAcc.Address)
		}
		collateral, err := notional(o.LimitPrice, o.Quantity)
		if err != nil {
			return err
		}
		if err := e.native.Transfer(escrowAcc, settlement, escrowAuthority, collateral); err != nil {
			return errors.Wrap(err, "releasing collateral")
		}
	case types.SideSell:
		if claimAcc.Address != o.SettlementAccount {
			return errors.Wrapf(types.ErrCrossReference, "%s did not fund %s", claimAcc.Address, orderAcc.Address)
		}
		if err := e.tokens.Transfer(escrowAcc, claimAcc, escrowAuthority, o.Quantity); err != nil {
			return errors.Wrap(err, "releasing claims")
		}
	default:
		return errors.Wrapf(types.ErrInvalidRecord, "order %s has no side", orderAcc.Address)
	}

	o.Quantity = 0
	if err := o.Write(orderAcc); err != nil {
		return err
	}
	e.broker.Send(events.NewOrderCancelled(ctx, orderAcc.Address, o))
	e.log.Debug("order cancelled", logging.Stringer("order", orderAcc.Address))
	return nil
}
