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

package markets

import (
	"context"

	"code.vegaprotocol.io/searchmarket/core/auth"
	"code.vegaprotocol.io/searchmarket/core/events"
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/logging"

	"github.com/pkg/errors"
)

// Engine handles the market lifecycle and the result catalog.
type Engine struct {
	log *logging.Logger
	cfg Config

	program types.Address
	deriver Deriver
	tokens  Tokens
	clock   Clock
	broker  Broker
}

func NewEngine(log *logging.Logger, cfg Config, program types.Address, deriver Deriver, tokens Tokens, clock Clock, broker Broker) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Engine{
		log:     log,
		cfg:     cfg,
		program: program,
		deriver: deriver,
		tokens:  tokens,
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
	e.cfg = cfg
}

// CreateMarket writes a new undecided market.
// Accounts: [market(w), authority(s)].
func (e *Engine) CreateMarket(ctx context.Context, accounts *types.Accounts, expiresAt uint64, searchString string) error {
	marketAcc, err := accounts.Next()
	if err != nil {
		return err
	}
	authority, err := accounts.Next()
	if err != nil {
		return err
	}

	if err := marketAcc.CheckEmpty(); err != nil {
		return err
	}
	if err := auth.RequireSigner(authority); err != nil {
		return err
	}
	if err := marketAcc.CheckOwner(e.program); err != nil {
		return err
	}

	m := &types.Market{
		Authority:    authority.Address,
		SearchString: searchString,
		ExpiresAt:    expiresAt,
	}
	if err := m.Write(marketAcc); err != nil {
		return err
	}

	e.broker.Send(events.NewMarketCreated(ctx, marketAcc.Address, m))
	e.log.Debug("market created",
		logging.Stringer("market", marketAcc.Address),
		logging.String("search-string", searchString),
		logging.Uint64("expires-at", expiresAt))
	return nil
}

// Decide designates the winning result of a market.
// Accounts: [market(w), authority(s), result].
func (e *Engine) Decide(ctx context.Context, accounts *types.Accounts) error {
	accs, err := accounts.Take(3)
	if err != nil {
		return err
	}
	marketAcc, authority, resultAcc := accs[0], accs[1], accs[2]

	m, err := types.LoadMarket(marketAcc, e.program)
	if err != nil {
		return err
	}
	if err := auth.RequireAuthority(authority, m.Authority); err != nil {
		return err
	}
	if height := e.clock.Height(); m.HasExpired(height) {
		return errors.Wrapf(types.ErrExpired, "height %d is past %d", height, m.ExpiresAt)
	}
	r, err := types.LoadResult(resultAcc, e.program)
	if err != nil {
		return err
	}
	if r.Market != marketAcc.Address {
		return errors.Wrapf(types.ErrCrossReference, "result %s belongs to market %s", resultAcc.Address, r.Market)
	}

	previous := m.BestResult
	if previous != nil && !e.cfg.AllowRedecide {
		return errors.Wrapf(types.ErrAlreadyDecided, "market %s decided for %s", marketAcc.Address, *previous)
	}

	best := resultAcc.Address
	m.BestResult = &best
	if err := m.Write(marketAcc); err != nil {
		return err
	}

	e.broker.Send(events.NewMarketDecided(ctx, marketAcc.Address, best, previous))
	if previous != nil {
		e.log.Info("market decision replaced",
			logging.Stringer("market", marketAcc.Address),
			logging.Stringer("previous", *previous),
			logging.Stringer("result", best))
	} else {
		e.log.Debug("market decided",
			logging.Stringer("market", marketAcc.Address),
			logging.Stringer("result", best))
	}
	return nil
}
