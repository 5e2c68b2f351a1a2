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
	"encoding/binary"

	"code.vegaprotocol.io/searchmarket/libs/codec"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// LamportsPerToken is the amount of native collateral backing one claim token.
const LamportsPerToken uint64 = 100_000

// ClaimDecimals is the number of decimals of both claim types of a result.
const ClaimDecimals uint8 = 9

// RecordVersion is the version written in the header of every record.
const RecordVersion uint8 = 1

// Default space allocated for program records.
const (
	MarketSpace = 512
	ResultSpace = 1024
	OrderSpace  = 512
)

type AccountType uint8

const (
	AccountTypeUninitialized AccountType = iota
	AccountTypeMarket
	AccountTypeResult
	AccountTypeOrder
	AccountTypeMint
	AccountTypeTokenAccount
)

func (t AccountType) String() string {
	switch t {
	case AccountTypeMarket:
		return "market"
	case AccountTypeResult:
		return "result"
	case AccountTypeOrder:
		return "order"
	case AccountTypeMint:
		return "mint"
	case AccountTypeTokenAccount:
		return "token account"
	default:
		return "uninitialized"
	}
}

// recordHeaderLen is the type byte plus the version byte.
const recordHeaderLen = 2

// WriteRecord frames payload into the account data. An account without any
// data is grown to fit, otherwise the record must fit in the allocated space
// and the remainder is zeroed.
func WriteRecord(acc *Account, typ AccountType, payload []byte) error {
	rec := make([]byte, 0, recordHeaderLen+binary.MaxVarintLen64+len(payload))
	rec = append(rec, byte(typ), RecordVersion)
	rec = protowire.AppendVarint(rec, uint64(len(payload)))
	rec = append(rec, payload...)

	if len(acc.Data) == 0 {
		acc.Data = rec
		return nil
	}
	if len(rec) > len(acc.Data) {
		return errors.Wrapf(ErrAccountDataTooSmall, "record needs %d bytes, account %s has %d", len(rec), acc.Address, len(acc.Data))
	}
	n := copy(acc.Data, rec)
	for i := n; i < len(acc.Data); i++ {
		acc.Data[i] = 0
	}
	return nil
}

// ReadRecord returns the payload of the record held by the account data,
// checking it is of the expected type.
func ReadRecord(data []byte, typ AccountType) ([]byte, error) {
	if len(data) < recordHeaderLen+1 {
		return nil, errors.Wrap(ErrInvalidRecord, "record too short")
	}
	if got := AccountType(data[0]); got != typ {
		return nil, errors.Wrapf(ErrInvalidRecord, "expected %s record, got %s", typ, got)
	}
	if data[1] != RecordVersion {
		return nil, errors.Wrapf(ErrInvalidRecord, "unsupported record version %d", data[1])
	}
	l, n := protowire.ConsumeVarint(data[recordHeaderLen:])
	if n < 0 {
		return nil, errors.Wrap(ErrInvalidRecord, protowire.ParseError(n).Error())
	}
	start := recordHeaderLen + n
	if uint64(len(data)-start) < l {
		return nil, errors.Wrap(ErrInvalidRecord, "truncated payload")
	}
	return data[start : start+int(l)], nil
}

// RecordType returns the type of record held by the account data.
func RecordType(data []byte) AccountType {
	if len(data) == 0 {
		return AccountTypeUninitialized
	}
	return AccountType(data[0])
}

func decodeAddress(f codec.Field) (Address, error) {
	if err := f.Expect(protowire.BytesType); err != nil {
		return NoAddress, err
	}
	return AddressFromBytes(f.Bytes)
}

func decodeString(f codec.Field) (string, error) {
	if err := f.Expect(protowire.BytesType); err != nil {
		return "", err
	}
	return string(f.Bytes), nil
}

func decodeUint(f codec.Field) (uint64, error) {
	if err := f.Expect(protowire.VarintType); err != nil {
		return 0, err
	}
	return f.Varint, nil
}
