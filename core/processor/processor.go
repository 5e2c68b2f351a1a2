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

// Package processor is the entry point of the search market program. It
// decodes instruction data and hands the positional account list to the
// engine owning the command.
package processor

import (
	"context"

	"code.vegaprotocol.io/searchmarket/core/instructions"
	"code.vegaprotocol.io/searchmarket/core/txn"
	"code.vegaprotocol.io/searchmarket/core/types"
	vgcontext "code.vegaprotocol.io/searchmarket/libs/context"
	vgcrypto "code.vegaprotocol.io/searchmarket/libs/crypto"
	"code.vegaprotocol.io/searchmarket/logging"
	"code.vegaprotocol.io/searchmarket/metrics"

	"github.com/pkg/errors"
)

// ProgramID is the address instructions of the search market are sent to.
var ProgramID = types.Address(vgcrypto.Hash([]byte("searchmarket/program")))

// Handler executes one decoded instruction.
type Handler func(ctx context.Context, accounts *types.Accounts, p instructions.Payload) error

type Processor struct {
	log *logging.Logger
	cfg Config

	markets    Markets
	collateral Collateral
	orders     Orders

	handlers map[txn.Command]Handler
}

func New(log *logging.Logger, cfg Config, markets Markets, collateral Collateral, orders Orders) *Processor {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	p := &Processor{
		log:        log,
		cfg:        cfg,
		markets:    markets,
		collateral: collateral,
		orders:     orders,
		handlers:   map[txn.Command]Handler{},
	}

	p.Handle(txn.CreateMarketCommand, p.createMarket).
		Handle(txn.CreateResultCommand, p.createResult).
		Handle(txn.DecideCommand, p.decide).
		Handle(txn.DepositCommand, p.deposit).
		Handle(txn.WithdrawCommand, p.withdraw).
		Handle(txn.CreateOrderCommand, p.createOrder).
		Handle(txn.FillOrderCommand, p.fillOrder).
		Handle(txn.CancelOrderCommand, p.cancelOrder)
	return p
}

// ReloadConf updates the internal configuration.
func (p *Processor) ReloadConf(cfg Config) {
	p.log.Info("reloading configuration")
	if p.log.GetLevel() != cfg.Level.Get() {
		p.log.Info("updating log level",
			logging.String("old", p.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		p.log.SetLevel(cfg.Level.Get())
	}
	p.cfg = cfg
}

// Handle registers fn for cmd, replacing any previous handler.
func (p *Processor) Handle(cmd txn.Command, fn Handler) *Processor {
	p.handlers[cmd] = fn
	return p
}

// Process decodes data and runs the matching handler over accounts. An
// error leaves the accounts in an unspecified state, the host is expected
// to discard them.
func (p *Processor) Process(ctx context.Context, accounts []*types.Account, data []byte) error {
	payload, err := instructions.Unmarshal(data)
	if err != nil {
		metrics.InstructionCounterInc("unknown", "rejected")
		return err
	}
	cmd := payload.Command()
	fn, ok := p.handlers[cmd]
	if !ok {
		metrics.InstructionCounterInc(cmd.String(), "rejected")
		return errors.Wrapf(types.ErrMalformedInput, "no handler for %s", cmd)
	}

	ctx, traceID := vgcontext.TraceIDFromContext(ctx)
	defer metrics.StartInstructionTimer(cmd.String())()
	if err := fn(ctx, types.NewAccounts(accounts), payload); err != nil {
		metrics.InstructionCounterInc(cmd.String(), "rejected")
		p.log.Debug("instruction rejected",
			logging.String("command", cmd.String()),
			logging.String("trace-id", traceID),
			logging.Error(err))
		return err
	}
	metrics.InstructionCounterInc(cmd.String(), "ok")
	p.log.Debug("instruction processed",
		logging.String("command", cmd.String()),
		logging.String("trace-id", traceID))
	return nil
}

func (p *Processor) createMarket(ctx context.Context, accounts *types.Accounts, payload instructions.Payload) error {
	v := payload.(instructions.CreateMarket)
	return p.markets.CreateMarket(ctx, accounts, v.ExpiresAt, v.SearchString)
}

func (p *Processor) createResult(ctx context.Context, accounts *types.Accounts, payload instructions.Payload) error {
	v := payload.(instructions.CreateResult)
	return p.markets.CreateResult(ctx, accounts, v.URL, v.Name, v.Snippet, v.MintAuthorityNonce)
}

func (p *Processor) decide(ctx context.Context, accounts *types.Accounts, _ instructions.Payload) error {
	return p.markets.Decide(ctx, accounts)
}

func (p *Processor) deposit(ctx context.Context, accounts *types.Accounts, payload instructions.Payload) error {
	return p.collateral.Deposit(ctx, accounts, payload.(instructions.Deposit).Amount)
}

func (p *Processor) withdraw(ctx context.Context, accounts *types.Accounts, payload instructions.Payload) error {
	return p.collateral.Withdraw(ctx, accounts, payload.(instructions.Withdraw).Amount)
}

func (p *Processor) createOrder(ctx context.Context, accounts *types.Accounts, payload instructions.Payload) error {
	v := payload.(instructions.CreateOrder)
	return p.orders.CreateOrder(ctx, accounts, v.Side, v.Price, v.Quantity, v.EscrowNonce)
}

func (p *Processor) fillOrder(ctx context.Context, accounts *types.Accounts, payload instructions.Payload) error {
	v := payload.(instructions.FillOrder)
	return p.orders.FillOrder(ctx, accounts, v.BuyEscrowNonce, v.SellEscrowNonce)
}

func (p *Processor) cancelOrder(ctx context.Context, accounts *types.Accounts, _ instructions.Payload) error {
	return p.orders.CancelOrder(ctx, accounts)
}
