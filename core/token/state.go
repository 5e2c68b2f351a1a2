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
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/libs/codec"

	"google.golang.org/protobuf/encoding/protowire"
)

// Mint is the state of a claim type.
type Mint struct {
	Authority types.Address
	Supply    uint64
	Decimals  uint8
}

// Account holds a balance of a single mint.
type Account struct {
	Mint   types.Address
	Owner  types.Address
	Amount uint64
}

func (m *Mint) write(acc *types.Account) error {
	return types.WriteRecord(acc, types.AccountTypeMint, codec.NewEncoder().
		Bytes(1, m.Authority.Bytes()).
		Uint(2, m.Supply).
		Uint(3, uint64(m.Decimals)).
		Encode())
}

func (a *Account) write(acc *types.Account) error {
	return types.WriteRecord(acc, types.AccountTypeTokenAccount, codec.NewEncoder().
		Bytes(1, a.Mint.Bytes()).
		Bytes(2, a.Owner.Bytes()).
		Uint(3, a.Amount).
		Encode())
}

// MintFromAccount decodes the mint held by acc.
func MintFromAccount(acc *types.Account) (*Mint, error) {
	if err := checkOwner(acc); err != nil {
		return nil, err
	}
	payload, err := types.ReadRecord(acc.Data, types.AccountTypeMint)
	if err != nil {
		return nil, err
	}
	m := &Mint{}
	err = codec.Decode(payload, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			if err = f.Expect(protowire.BytesType); err == nil {
				m.Authority, err = types.AddressFromBytes(f.Bytes)
			}
		case 2:
			err = f.Expect(protowire.VarintType)
			m.Supply = f.Varint
		case 3:
			err = f.Expect(protowire.VarintType)
			m.Decimals = uint8(f.Varint)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// AccountFromAccount decodes the token account held by acc.
func AccountFromAccount(acc *types.Account) (*Account, error) {
	if err := checkOwner(acc); err != nil {
		return nil, err
	}
	payload, err := types.ReadRecord(acc.Data, types.AccountTypeTokenAccount)
	if err != nil {
		return nil, err
	}
	a := &Account{}
	err = codec.Decode(payload, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			if err = f.Expect(protowire.BytesType); err == nil {
				a.Mint, err = types.AddressFromBytes(f.Bytes)
			}
		case 2:
			if err = f.Expect(protowire.BytesType); err == nil {
				a.Owner, err = types.AddressFromBytes(f.Bytes)
			}
		case 3:
			err = f.Expect(protowire.VarintType)
			a.Amount = f.Varint
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}
