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

package token

import (
	"context"

	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/libs/codec"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Instruction tags of the token program.
const (
	TagInitializeAccount byte = 0x01
	TagTransfer          byte = 0x02
)

// NewInitializeAccountInstruction opens a token account of mint held by owner.
// Accounts: [account(w), mint].
func NewInitializeAccountInstruction(acc, mint, owner types.Address) types.Instruction {
	return types.Instruction{
		Program:  ProgramID,
		Accounts: []types.AccountMeta{types.Writable(acc), types.ReadOnly(mint)},
		Data:     append([]byte{TagInitializeAccount}, codec.NewEncoder().Bytes(1, owner.Bytes()).Encode()...),
	}
}

// NewTransferInstruction moves amount tokens from src to dst.
// Accounts: [src(w), dst(w), owner(s)].
func NewTransferInstruction(src, dst, owner types.Address, amount uint64) types.Instruction {
	return types.Instruction{
		Program:  ProgramID,
		Accounts: []types.AccountMeta{types.Writable(src), types.Writable(dst), types.ReadOnlySigner(owner)},
		Data:     append([]byte{TagTransfer}, codec.NewEncoder().Uint(1, amount).Encode()...),
	}
}

// Process executes a token program instruction submitted directly to the
// ledger.
func (e *Engine) Process(_ context.Context, list []*types.Account, data []byte) error {
	if len(data) == 0 {
		return errors.Wrap(types.ErrMalformedInput, "empty instruction")
	}
	accounts := types.NewAccounts(list)
	switch data[0] {
	case TagInitializeAccount:
		var owner types.Address
		err := codec.Decode(data[1:], func(f codec.Field) (err error) {
			if f.Num == 1 {
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
		return e.InitializeAccount(accs[0], accs[1], owner)
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
		accs, err := accounts.Take(3)
		if err != nil {
			return err
		}
		return e.Transfer(accs[0], accs[1], types.SignedBy(accs[2]), amount)
	default:
		return errors.Wrapf(types.ErrMalformedInput, "unknown token instruction %#x", data[0])
	}
}
