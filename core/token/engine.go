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

// Package token is the fungible token primitive backing claim types. Mints
// and token accounts are ledger accounts owned by ProgramID.
package token

import (
	"code.vegaprotocol.io/searchmarket/core/auth"
	"code.vegaprotocol.io/searchmarket/core/types"
	vgcrypto "code.vegaprotocol.io/searchmarket/libs/crypto"
	"code.vegaprotocol.io/searchmarket/libs/num"
	"code.vegaprotocol.io/searchmarket/logging"

	"github.com/pkg/errors"
)

// ProgramID owns every mint and token account.
var ProgramID = mustAddress(vgcrypto.Hash([]byte("searchmarket/token")))

func mustAddress(b []byte) types.Address {
	a, err := types.AddressFromBytes(b)
	if err != nil {
		panic(err)
	}
	return a
}

func checkOwner(acc *types.Account) error {
	if !acc.OwnedBy(ProgramID) {
		return errors.Wrapf(types.ErrInvalidAccountOwner, "%s is not a token account", acc.Address)
	}
	return nil
}

// Space is the data allocated to mints and token accounts, enough for
// their largest record.
const Space = 128

// assign takes ownership of an empty account, either freshly allocated by
// the host or already handed to the token program.
func assign(acc *types.Account) error {
	if !acc.IsEmpty() {
		return errors.Wrapf(types.ErrAlreadyInitialized, "%s", acc.Address)
	}
	if !acc.OwnedBy(types.NoAddress) && !acc.OwnedBy(ProgramID) {
		return errors.Wrapf(types.ErrInvalidAccountOwner, "%s is owned by %s", acc.Address, acc.Owner)
	}
	// a funded system account is somebody's wallet
	if acc.OwnedBy(types.NoAddress) && acc.Lamports > 0 {
		return errors.Wrapf(types.ErrInvalidAccountOwner, "%s holds lamports", acc.Address)
	}
	acc.Owner = ProgramID
	if len(acc.Data) < Space {
		acc.Data = make([]byte, Space)
	}
	return nil
}

type Engine struct {
	log *logging.Logger
	cfg Config
}

func New(log *logging.Logger, cfg Config) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Engine{
		log: log,
		cfg: cfg,
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

// InitializeMint creates a zero supply mint controlled by authority.
func (e *Engine) InitializeMint(mint *types.Account, authority types.Address, decimals uint8) error {
	if err := assign(mint); err != nil {
		return err
	}
	m := &Mint{Authority: authority, Decimals: decimals}
	if err := m.write(mint); err != nil {
		return err
	}
	e.log.Debug("mint initialized",
		logging.Stringer("mint", mint.Address),
		logging.Stringer("authority", authority))
	return nil
}

// InitializeAccount creates an empty balance of mint held by owner.
func (e *Engine) InitializeAccount(acc, mint *types.Account, owner types.Address) error {
	if _, err := MintFromAccount(mint); err != nil {
		return errors.Wrapf(types.ErrUninitializedAccount, "mint %s: %v", mint.Address, err)
	}
	if err := assign(acc); err != nil {
		return err
	}
	a := &Account{Mint: mint.Address, Owner: owner}
	return a.write(acc)
}

// MintTo creates amount new tokens in dest. The authority must be the mint
// authority.
func (e *Engine) MintTo(mint, dest *types.Account, authority types.Signer, amount uint64) error {
	m, err := MintFromAccount(mint)
	if err != nil {
		return err
	}
	if m.Authority != authority.Address() {
		return errors.Wrapf(types.ErrOwnerMismatch, "%s is not the authority of mint %s", authority.Address(), mint.Address)
	}
	if err := auth.CheckSigner(authority); err != nil {
		return err
	}
	d, err := e.holding(dest, mint.Address)
	if err != nil {
		return err
	}
	supply, overflow := num.Total(m.Supply, amount)
	if overflow {
		return types.ErrArithmeticOverflow
	}
	balance, overflow := num.Total(d.Amount, amount)
	if overflow {
		return types.ErrArithmeticOverflow
	}
	m.Supply, d.Amount = supply, balance
	if err := m.write(mint); err != nil {
		return err
	}
	return d.write(dest)
}

// Burn destroys amount tokens held by acc. The authority must be the
// account owner.
func (e *Engine) Burn(acc, mint *types.Account, authority types.Signer, amount uint64) error {
	m, err := MintFromAccount(mint)
	if err != nil {
		return err
	}
	a, err := e.holding(acc, mint.Address)
	if err != nil {
		return err
	}
	if err := e.checkHolder(a, acc, authority); err != nil {
		return err
	}
	if a.Amount < amount {
		return errors.Wrapf(types.ErrInsufficientFunds, "%s holds %d, burning %d", acc.Address, a.Amount, amount)
	}
	if m.Supply < amount {
		return types.ErrArithmeticOverflow
	}
	a.Amount -= amount
	m.Supply -= amount
	if err := m.write(mint); err != nil {
		return err
	}
	return a.write(acc)
}

// Transfer moves amount tokens between two accounts of the same mint. The
// authority must be the owner of src.
func (e *Engine) Transfer(src, dst *types.Account, authority types.Signer, amount uint64) error {
	from, err := AccountFromAccount(src)
	if err != nil {
		return err
	}
	to, err := e.holding(dst, from.Mint)
	if err != nil {
		return err
	}
	if err := e.checkHolder(from, src, authority); err != nil {
		return err
	}
	if from.Amount < amount {
		return errors.Wrapf(types.ErrInsufficientFunds, "%s holds %d, transferring %d", src.Address, from.Amount, amount)
	}
	if src.Address == dst.Address {
		return nil
	}
	balance, overflow := num.Total(to.Amount, amount)
	if overflow {
		return types.ErrArithmeticOverflow
	}
	from.Amount -= amount
	to.Amount = balance
	if err := from.write(src); err != nil {
		return err
	}
	return to.write(dst)
}

// Balance returns the amount held by a token account.
func (e *Engine) Balance(acc *types.Account) (uint64, error) {
	a, err := AccountFromAccount(acc)
	if err != nil {
		return 0, err
	}
	return a.Amount, nil
}

func (e *Engine) holding(acc *types.Account, mint types.Address) (*Account, error) {
	a, err := AccountFromAccount(acc)
	if err != nil {
		return nil, err
	}
	if a.Mint != mint {
		return nil, errors.Wrapf(types.ErrMintMismatch, "%s holds %s, expected %s", acc.Address, a.Mint, mint)
	}
	return a, nil
}

func (e *Engine) checkHolder(a *Account, acc *types.Account, authority types.Signer) error {
	if a.Owner != authority.Address() {
		return errors.Wrapf(types.ErrOwnerMismatch, "%s is not the owner of %s", authority.Address(), acc.Address)
	}
	return auth.CheckSigner(authority)
}
