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

package types

import (
	"fmt"

	"code.vegaprotocol.io/searchmarket/libs/codec"
	"code.vegaprotocol.io/searchmarket/libs/num"

	"github.com/pkg/errors"
)

type Side uint8

const (
	SideUnspecified Side = iota
	SideBuy
	SideSell
)

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unspecified"
	}
}

func (s Side) IsValid() bool {
	return s == SideBuy || s == SideSell
}

// EscrowLabel returns the derivation label of the escrow of an order on
// this side.
func (s Side) EscrowLabel() string {
	if s == SideBuy {
		return EscrowLabelCollateral
	}
	return EscrowLabelClaim
}

func (s *Side) UnmarshalFlag(v string) error {
	switch v {
	case "buy":
		*s = SideBuy
	case "sell":
		*s = SideSell
	default:
		return errors.Wrapf(ErrMalformedInput, "unknown side %q", v)
	}
	return nil
}

// Derivation labels.
const (
	MintAuthorityLabel    = "mint_authority"
	EscrowLabelCollateral = "collateral_escrow"
	EscrowLabelClaim      = "claim_escrow"
)

// Order is a resting limit order whose stake is locked in its escrow.
// SettlementAccount funds the order (collateral for a buy, claims for a
// sell) and ReceiveAccount is credited on fills.
type Order struct {
	Market             Address
	Result             Address
	Side               Side
	LimitPrice         uint64
	Quantity           uint64
	SettlementAccount  Address
	ReceiveAccount     Address
	ClaimType          Address
	EscrowNonce        uint8
	CreatedAt          uint64
	ExecutionAuthority Address
}

// EscrowSeeds returns the derivation inputs of the order escrow. The order
// address owns the escrow.
func (o *Order) EscrowSeeds(order Address) Seeds {
	return Seeds{
		Label: o.Side.EscrowLabel(),
		Owner: order,
		Nonce: o.EscrowNonce,
	}
}

// IsExhausted returns true when nothing is left to fill.
func (o *Order) IsExhausted() bool {
	return o.Quantity == 0
}

// ImpliedProbability is the limit price as a share of the collateral
// backing one claim, the odds the order puts on its claim paying out.
func (o *Order) ImpliedProbability() num.Decimal {
	return num.Ratio(o.LimitPrice, LamportsPerToken)
}

func (o *Order) String() string {
	return fmt.Sprintf("%s %d@%d result=%s", o.Side, o.Quantity, o.LimitPrice, o.Result)
}

func (o *Order) Encode() []byte {
	return codec.NewEncoder().
		Bytes(1, o.Market.Bytes()).
		Bytes(2, o.Result.Bytes()).
		Uint(3, uint64(o.Side)).
		Uint(4, o.LimitPrice).
		Uint(5, o.Quantity).
		Bytes(6, o.SettlementAccount.Bytes()).
		Bytes(7, o.ReceiveAccount.Bytes()).
		Bytes(8, o.ClaimType.Bytes()).
		Uint(9, uint64(o.EscrowNonce)).
		Uint(10, o.CreatedAt).
		Bytes(11, o.ExecutionAuthority.Bytes()).
		Encode()
}

// Write stores the order record in acc.
func (o *Order) Write(acc *Account) error {
	return WriteRecord(acc, AccountTypeOrder, o.Encode())
}

// OrderFromAccount decodes the order record held by acc.
func OrderFromAccount(acc *Account) (*Order, error) {
	payload, err := ReadRecord(acc.Data, AccountTypeOrder)
	if err != nil {
		return nil, err
	}
	o := &Order{}
	err = codec.Decode(payload, func(f codec.Field) (err error) {
		var n uint64
		switch f.Num {
		case 1:
			o.Market, err = decodeAddress(f)
		case 2:
			o.Result, err = decodeAddress(f)
		case 3:
			n, err = decodeUint(f)
			o.Side = Side(n)
		case 4:
			o.LimitPrice, err = decodeUint(f)
		case 5:
			o.Quantity, err = decodeUint(f)
		case 6:
			o.SettlementAccount, err = decodeAddress(f)
		case 7:
			o.ReceiveAccount, err = decodeAddress(f)
		case 8:
			o.ClaimType, err = decodeAddress(f)
		case 9:
			n, err = decodeUint(f)
			o.EscrowNonce = uint8(n)
		case 10:
			o.CreatedAt, err = decodeUint(f)
		case 11:
			o.ExecutionAuthority, err = decodeAddress(f)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}
