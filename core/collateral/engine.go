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

// Package collateral locks native collateral against pairs of claims. Every
// deposited token is backed by LamportsPerToken lamports held by the market
// mint authority, and exists once as a Yes and once as a No claim until
// burned.
package collateral

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
	e.cfg = cfg
}

// vault gathers the records and accounts shared by deposits and withdrawals.
type vault struct {
	market        *types.Market
	result        *types.Result
	marketAcc     *types.Account
	resultAcc     *types.Account
	mintAuthority *types.Account
	seeds         types.Seeds
	yesMint       *types.Account
	yesAccount    *types.Account
	noMint        *types.Account
	noAccount     *types.Account
}

func (e *Engine) loadVault(marketAcc, resultAcc, mintAuthority, yesMint, noMint *types.Account) (*vault, error) {
	m, err := types.LoadMarket(marketAcc, e.program)
	if err != nil {
		return nil, err
	}
	r, err := types.LoadResult(resultAcc, e.program)
	if err != nil {
		return nil, err
	}
	if r.Market != marketAcc.Address {
		return nil, errors.Wrapf(types.ErrCrossReference, "result %s belongs to market %s", resultAcc.Address, r.Market)
	}
	seeds := types.Seeds{Label: types.MintAuthorityLabel, Owner: marketAcc.Address, Nonce: r.MintAuthorityNonce}
	if !e.deriver.Validate(mintAuthority.Address, seeds, e.program) {
		return nil, errors.Wrapf(types.ErrInvalidDerivedAddress, "mint authority %s", mintAuthority.Address)
	}
	if yesMint.Address != r.YesClaimType {
		return nil, errors.Wrapf(types.ErrCrossReference, "%s is not the yes claim type of %s", yesMint.Address, resultAcc.Address)
	}
	if noMint.Address != r.NoClaimType {
		return nil, errors.Wrapf(types.ErrCrossReference, "%s is not the no claim type of %s", noMint.Address, resultAcc.Address)
	}
	return &vault{
		market:        m,
		result:        r,
		marketAcc:     marketAcc,
		resultAcc:     resultAcc,
		mintAuthority: mintAuthority,
		seeds:         seeds,
		yesMint:       yesMint,
		noMint:        noMint,
	}, nil
}

func (v *vault) authority(program types.Address) types.Signer {
	return types.SignedByProgram(v.mintAuthority, program, v.seeds)
}

func collateralFor(amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, errors.Wrap(types.ErrMalformedInput, "amount must be positive")
	}
	lamports, overflow := num.Product(amount, types.LamportsPerToken)
	if overflow {
		return 0, errors.Wrapf(types.ErrArithmeticOverflow, "collateral for %d tokens", amount)
	}
	return lamports, nil
}

// Deposit locks amount tokens worth of collateral and mints amount Yes and
// amount No claims.
// Accounts: [market, result, depositor(s,w), mint_authority(w), yes_mint(w),
// yes_account(w), no_mint(w), no_account(w)].
func (e *Engine) Deposit(ctx context.Context, accounts *types.Accounts, amount uint64) error {
	accs, err := accounts.Take(8)
	if err != nil {
		return err
	}
	depositor := accs[2]

	lamports, err := collateralFor(amount)
	if err != nil {
		return err
	}
	v, err := e.loadVault(accs[0], accs[1], accs[3], accs[4], accs[6])
	if err != nil {
		return err
	}
	v.yesAccount, v.noAccount = accs[5], accs[7]
	if height := e.clock.Height(); v.market.HasExpired(height) {
		return errors.Wrapf(types.ErrExpired, "height %d is past %d", height, v.market.ExpiresAt)
	}
	if err := auth.RequireSigner(depositor); err != nil {
		return err
	}

	if err := e.native.Transfer(depositor, v.mintAuthority, types.SignedBy(depositor), lamports); err != nil {
		return err
	}
	if err := e.tokens.MintTo(v.yesMint, v.yesAccount, v.authority(e.program), amount); err != nil {
		return errors.Wrap(err, "minting yes claims")
	}
	if err := e.tokens.MintTo(v.noMint, v.noAccount, v.authority(e.program), amount); err != nil {
		return errors.Wrap(err, "minting no claims")
	}

	e.broker.Send(events.NewCollateralDeposited(ctx, v.marketAcc.Address, v.resultAcc.Address, depositor.Address, amount, lamports))
	e.log.Debug("collateral deposited",
		logging.Stringer("result", v.resultAcc.Address),
		logging.Stringer("depositor", depositor.Address),
		logging.Uint64("amount", amount))
	return nil
}

// Withdraw burns claims and releases the collateral backing them. Before a
// decision both claims are burned, afterwards only the winning side: Yes
// when the market decided for this result, No otherwise.
// Accounts: [market, result, recipient(w), mint_authority(w), token_owner(s),
// yes_mint(w), yes_account(w), no_mint(w), no_account(w)].
func (e *Engine) Withdraw(ctx context.Context, accounts *types.Accounts, amount uint64) error {
	accs, err := accounts.Take(9)
	if err != nil {
		return err
	}
	recipient, owner := accs[2], accs[4]

	lamports, err := collateralFor(amount)
	if err != nil {
		return err
	}
	v, err := e.loadVault(accs[0], accs[1], accs[3], accs[5], accs[7])
	if err != nil {
		return err
	}
	v.yesAccount, v.noAccount = accs[6], accs[8]
	if err := auth.RequireSigner(owner); err != nil {
		return err
	}

	var yes, no uint64
	switch {
	case !v.market.IsDecided():
		yes, no = amount, amount
	case *v.market.BestResult == v.resultAcc.Address:
		yes = amount
	default:
		no = amount
	}

	if yes > 0 {
		if err := e.tokens.Burn(v.yesAccount, v.yesMint, types.SignedBy(owner), yes); err != nil {
			return errors.Wrap(err, "burning yes claims")
		}
	}
	if no > 0 {
		if err := e.tokens.Burn(v.noAccount, v.noMint, types.SignedBy(owner), no); err != nil {
			return errors.Wrap(err, "burning no claims")
		}
	}
	if err := e.native.Transfer(v.mintAuthority, recipient, v.authority(e.program), lamports); err != nil {
		return err
	}

	e.broker.Send(events.NewCollateralWithdrawn(ctx, v.marketAcc.Address, v.resultAcc.Address, recipient.Address, yes, no, lamports))
	e.log.Debug("collateral withdrawn",
		logging.Stringer("result", v.resultAcc.Address),
		logging.Stringer("recipient", recipient.Address),
		logging.Uint64("yes", yes),
		logging.Uint64("no", no))
	return nil
}
