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

// Package instructions encodes the instructions of the search market
// program. The first byte of the data is the command, the rest is a
// protobuf wire encoded payload.
package instructions

import (
	"code.vegaprotocol.io/searchmarket/core/txn"
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/libs/codec"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Payload is the decoded argument set of one instruction.
type Payload interface {
	Command() txn.Command
	encode() *codec.Encoder
}

// Marshal prefixes the encoded payload with its command.
func Marshal(p Payload) []byte {
	return append([]byte{byte(p.Command())}, p.encode().Encode()...)
}

type CreateMarket struct {
	ExpiresAt    uint64
	SearchString string
}

func (CreateMarket) Command() txn.Command { return txn.CreateMarketCommand }

func (p CreateMarket) encode() *codec.Encoder {
	return codec.NewEncoder().Uint(1, p.ExpiresAt).String(2, p.SearchString)
}

type CreateResult struct {
	URL                string
	Name               string
	Snippet            string
	MintAuthorityNonce uint8
}

func (CreateResult) Command() txn.Command { return txn.CreateResultCommand }

func (p CreateResult) encode() *codec.Encoder {
	return codec.NewEncoder().
		String(1, p.URL).
		String(2, p.Name).
		String(3, p.Snippet).
		Uint(4, uint64(p.MintAuthorityNonce))
}

type Deposit struct {
	Amount uint64
}

func (Deposit) Command() txn.Command { return txn.DepositCommand }

func (p Deposit) encode() *codec.Encoder {
	return codec.NewEncoder().Uint(1, p.Amount)
}

type Withdraw struct {
	Amount uint64
}

func (Withdraw) Command() txn.Command { return txn.WithdrawCommand }

func (p Withdraw) encode() *codec.Encoder {
	return codec.NewEncoder().Uint(1, p.Amount)
}

type Decide struct{}

func (Decide) Command() txn.Command { return txn.DecideCommand }

func (Decide) encode() *codec.Encoder {
	return codec.NewEncoder()
}

type CreateOrder struct {
	Side        types.Side
	Price       uint64
	Quantity    uint64
	EscrowNonce uint8
}

func (CreateOrder) Command() txn.Command { return txn.CreateOrderCommand }

func (p CreateOrder) encode() *codec.Encoder {
	return codec.NewEncoder().
		Uint(1, uint64(p.Side)).
		Uint(2, p.Price).
		Uint(3, p.Quantity).
		Uint(4, uint64(p.EscrowNonce))
}

type FillOrder struct {
	BuyEscrowNonce  uint8
	SellEscrowNonce uint8
}

func (FillOrder) Command() txn.Command { return txn.FillOrderCommand }

func (p FillOrder) encode() *codec.Encoder {
	return codec.NewEncoder().
		Uint(1, uint64(p.BuyEscrowNonce)).
		Uint(2, uint64(p.SellEscrowNonce))
}

type CancelOrder struct{}

func (CancelOrder) Command() txn.Command { return txn.CancelOrderCommand }

func (CancelOrder) encode() *codec.Encoder {
	return codec.NewEncoder()
}

// Unmarshal decodes instruction data. Unknown commands, wire type
// mismatches and out of range values fail with ErrMalformedInput.
func Unmarshal(data []byte) (Payload, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(types.ErrMalformedInput, "empty instruction")
	}
	cmd, body := txn.Command(data[0]), data[1:]
	var (
		p   Payload
		err error
	)
	switch cmd {
	case txn.CreateMarketCommand:
		v := CreateMarket{}
		err = codec.Decode(body, func(f codec.Field) (err error) {
			switch f.Num {
			case 1:
				v.ExpiresAt, err = varint(f)
			case 2:
				v.SearchString, err = str(f)
			}
			return err
		})
		p = v
	case txn.CreateResultCommand:
		v := CreateResult{}
		err = codec.Decode(body, func(f codec.Field) (err error) {
			switch f.Num {
			case 1:
				v.URL, err = str(f)
			case 2:
				v.Name, err = str(f)
			case 3:
				v.Snippet, err = str(f)
			case 4:
				v.MintAuthorityNonce, err = nonce(f)
			}
			return err
		})
		p = v
	case txn.DepositCommand:
		v := Deposit{}
		err = codec.Decode(body, func(f codec.Field) (err error) {
			if f.Num == 1 {
				v.Amount, err = varint(f)
			}
			return err
		})
		p = v
	case txn.WithdrawCommand:
		v := Withdraw{}
		err = codec.Decode(body, func(f codec.Field) (err error) {
			if f.Num == 1 {
				v.Amount, err = varint(f)
			}
			return err
		})
		p = v
	case txn.DecideCommand:
		p = Decide{}
	case txn.CreateOrderCommand:
		v := CreateOrder{}
		err = codec.Decode(body, func(f codec.Field) (err error) {
			switch f.Num {
			case 1:
				var side uint64
				side, err = varint(f)
				if err == nil && side > uint64(types.SideSell) {
					err = errors.Errorf("unknown side %d", side)
				}
				v.Side = types.Side(side)
			case 2:
				v.Price, err = varint(f)
			case 3:
				v.Quantity, err = varint(f)
			case 4:
				v.EscrowNonce, err = nonce(f)
			}
			return err
		})
		p = v
	case txn.FillOrderCommand:
		v := FillOrder{}
		err = codec.Decode(body, func(f codec.Field) (err error) {
			switch f.Num {
			case 1:
				v.BuyEscrowNonce, err = nonce(f)
			case 2:
				v.SellEscrowNonce, err = nonce(f)
			}
			return err
		})
		p = v
	case txn.CancelOrderCommand:
		p = CancelOrder{}
	default:
		return nil, errors.Wrapf(types.ErrMalformedInput, "unknown command 0x%02x", byte(cmd))
	}
	if err != nil {
		return nil, errors.Wrapf(types.ErrMalformedInput, "%s: %v", cmd, err)
	}
	return p, nil
}

func varint(f codec.Field) (uint64, error) {
	if err := f.Expect(protowire.VarintType); err != nil {
		return 0, err
	}
	return f.Varint, nil
}

func str(f codec.Field) (string, error) {
	if err := f.Expect(protowire.BytesType); err != nil {
		return "", err
	}
	return string(f.Bytes), nil
}

func nonce(f codec.Field) (uint8, error) {
	v, err := varint(f)
	if err != nil {
		return 0, err
	}
	if v > 255 {
		return 0, errors.Errorf("nonce %d out of range", v)
	}
	return uint8(v), nil
}
