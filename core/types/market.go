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

// Market is the question being bet on. BestResult is nil until the
// authority decides.
type Market struct {
	Authority    Address
	SearchString string
	BestResult   *Address
	ExpiresAt    uint64
}

// IsDecided returns true once a winning result was designated.
func (m *Market) IsDecided() bool {
	return m.BestResult != nil
}

// HasExpired returns true when height is past the market deadline.
func (m *Market) HasExpired(height uint64) bool {
	return height > m.ExpiresAt
}

func (m *Market) Encode() []byte {
	e := codec.NewEncoder().
		Bytes(1, m.Authority.Bytes()).
		String(2, m.SearchString).
		Uint(4, m.ExpiresAt)
	if m.BestResult != nil {
		e.Bytes(3, m.BestResult.Bytes())
	}
	return e.Encode()
}

// Write stores the market record in acc.
func (m *Market) Write(acc *Account) error {
	return WriteRecord(acc, AccountTypeMarket, m.Encode())
}

// MarketFromAccount decodes the market record held by acc.
func MarketFromAccount(acc *Account) (*Market, error) {
	payload, err := ReadRecord(acc.Data, AccountTypeMarket)
	if err != nil {
		return nil, err
	}
	m := &Market{}
	err = codec.Decode(payload, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			m.Authority, err = decodeAddress(f)
		case 2:
			m.SearchString, err = decodeString(f)
		case 3:
			var best Address
			if best, err = decodeAddress(f); err == nil {
				m.BestResult = &best
			}
		case 4:
			m.ExpiresAt, err = decodeUint(f)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}
