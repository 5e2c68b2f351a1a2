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
	"code.vegaprotocol.io/searchmarket/libs/codec"
)

// Result is a candidate answer to a market, with its own pair of claim types.
type Result struct {
	Market             Address
	URL                string
	Name               string
	Snippet            string
	YesClaimType       Address
	NoClaimType        Address
	MintAuthorityNonce uint8
}

// ClaimTypeOf reports whether mint is one of the two claim types of the result.
func (r *Result) ClaimTypeOf(mint Address) bool {
	return mint == r.YesClaimType || mint == r.NoClaimType
}

func (r *Result) Encode() []byte {
	return codec.NewEncoder().
		Bytes(1, r.Market.Bytes()).
		String(2, r.URL).
		String(3, r.Name).
		String(4, r.Snippet).
		Bytes(5, r.YesClaimType.Bytes()).
		Bytes(6, r.NoClaimType.Bytes()).
		Uint(7, uint64(r.MintAuthorityNonce)).
		Encode()
}

// Write stores the result record in acc.
func (r *Result) Write(acc *Account) error {
	return WriteRecord(acc, AccountTypeResult, r.Encode())
}

// ResultFromAccount decodes the result record held by acc.
func ResultFromAccount(acc *Account) (*Result, error) {
	payload, err := ReadRecord(acc.Data, AccountTypeResult)
	if err != nil {
		return nil, err
	}
	r := &Result{}
	err = codec.Decode(payload, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			r.Market, err = decodeAddress(f)
		case 2:
			r.URL, err = decodeString(f)
		case 3:
			r.Name, err = decodeString(f)
		case 4:
			r.Snippet, err = decodeString(f)
		case 5:
			r.YesClaimType, err = decodeAddress(f)
		case 6:
			r.NoClaimType, err = decodeAddress(f)
		case 7:
			var n uint64
			n, err = decodeUint(f)
			r.MintAuthorityNonce = uint8(n)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
