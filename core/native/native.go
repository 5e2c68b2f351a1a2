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

// Package native moves the ledger's native currency between accounts.
package native

import (
	"context"

	"code.vegaprotocol.io/searchmarket/core/auth"
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/libs/codec"
	"code.vegaprotocol.io/searchmarket/libs/num"
	"code.vegaprotocol.io/searchmarket/logging"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// ProgramID is the system program, it owns every account nobody claimed.
var ProgramID = types.NoAddress

// Instruction tags of the system program.
const (
	TagTransfer      byte = 0x01
	TagCreateAccount byte = 0x02
)

// MaxAccountSpace bounds the data allocated by CreateAccount.
const MaxAccountSpace = 10 * 1024

var ErrAccountTooLarge = errors.New("account space too large")

type Engine struct {
	log *logging.Logger
}

func New(log *logging.Logger) *Engine {
	return &Engine{
		log: log.Named("native"),
	}
}

// Transfer moves amount lamports from one account to another. The authority
// must be the source account, either signed by the host or derived by the
// presenting program.
func (e *Engine) Transfer(from, to *types.Account, authority types.Signer, amount uint64) error {
	if authority.Address() != from.Address {
		return errors.Wrapf(types.ErrOwnerMismatch, "%s cannot move funds of %s", authority.Address(), from.Address)
	}
	if err := auth.CheckSigner(authority); err != nil {
		return err
	}
	if from.Lamports < amount {
		return errors.Wrapf(types.ErrInsufficientFunds, "%s holds %d lamports, transferring %d", from.Address, from.Lamports, amount)
	}
	if from.Address == to.Address {
		return nil
	}
	balance, overflow := num.Total(to.Lamports, amount)
	if overflow {
		return types.ErrArithmeticOverflow
	}
	from.Lamports -= amount
	to.Lamports = balance
	e.log.Debug("lamports transferred",
		logging.Stringer("from", from.Address),
		logging.Stringer("to", to.Address),
		logging.Uint64("amount", amount))
	return nil
}

// CreateAccount funds a fresh account with lamports, allocates space bytes
// of data and hands it to owner. The new account must sign so nobody can
// claim an address they do not hold the key of.
func (e *Engine) CreateAccount(payer, acc *types.Account, lamports uint64, space uint64, owner types.Address) error {
	if space > MaxAccountSpace {
		return errors.Wrapf(ErrAccountTooLarge, "%d bytes requested, max is %d", space, MaxAccountSpace)
	}
	if !acc.Signer {
		return errors.Wrapf(types.ErrUnauthorized, "%s did not sign its creation", acc.Address)
	}
	if len(acc.Data) > 0 || !acc.OwnedBy(ProgramID) {
		return errors.Wrapf(types.ErrAlreadyInitialized, "%s", acc.Address)
	}
	if err := e.Transfer(payer, acc, types.SignedBy(payer), lamports); err != nil {
		return err
	}
	acc.Data = make([]byte, space)
	acc.Owner = owner
	e.log.Debug("account created",
		logging.Stringer("account", acc.Address),
		logging.Stringer("owner", owner),
		logging.Uint64("space", space))
	return nil
}

// NewTransferInstruction moves lamports between two user accounts.
// Accounts: [from(s,w), to(w)].
func NewTransferInstruction(from, to types.Address, amount uint64) types.Instruction {
	return types.Instruction{
		Program:  ProgramID,
		Accounts: []types.AccountMeta{types.WritableSigner(from), types.Writable(to)},
		Data:     append([]byte{TagTransfer}, codec.NewEncoder().Uint(1, amount).Encode()...),
	}
}

// NewCreateAccountInstruction allocates acc for owner, payer funds it.
// Accounts: [payer(s,w), acc(s,w)].
func NewCreateAccountInstruction(payer, acc types.Address, lamports, space uint64, owner types.Address) types.Instruction {
	return types.Instruction{
		Program:  ProgramID,
		Accounts: []types.AccountMeta{types.WritableSigner(payer), types.WritableSigner(acc)},
		Data: append([]byte{TagCreateAccount}, codec.NewEncoder().
			Uint(1, lamports).
			Uint(2, space).
			Bytes(3, owner.Bytes()).
			Encode()...),
	}
}

// Process executes a system program instruction.
func (e *Engine) Process(_ context.Context, list []*types.Account, data []byte) error {
	if len(data) == 0 {
		return errors.Wrap(types.ErrMalformedInput, "empty system instruction")
	}
	accounts := types.NewAccounts(list)
	switch data[0] {
	case TagTransfer:
		var amount uint64
		err := codec.Decode(data[1:], func(f codec.Field) error {
			if f.Num == 1 {
				amount = f.Varint
				return f.Expect(protowire.VarintType)
			}
			return nil
		})
		if err != nil {
			return errors.Wrap(types.ErrMalformedInput, err.Error())
		}
		accs, err := accounts.Take(2)
		if err != nil {
			return err
		}
		return e.Transfer(accs[0], accs[1], types.SignedBy(accs[0]), amount)
	case TagCreateAccount:
		var (
			lamports, space uint64
			owner           types.Address
		)
		err := codec.Decode(data[1:], func(f codec.Field) (err error) {
			switch f.Num {
			case 1:
				lamports = f.Varint
				err = f.Expect(protowire.VarintType)
			case 2:
				space = f.Varint
				err = f.Expect(protowire.VarintType)
			case 3:
				if err = f.Expect(protowire.BytesType); err == nil {
					owner, err = types.AddressFromBytes(f.Bytes)
				}
			}
			return err
		})
		if err != nil {
			return errors.Wrap(types.ErrMalformedInput, err.Error())
		}
		accs, err := accounts.Take(2)
		if err != nil {
			return err
		}
		return e.CreateAccount(accs[0], accs[1], lamports, space, owner)
	default:
		return errors.Wrapf(types.ErrMalformedInput, "unknown system instruction %#x", data[0])
	}
}
