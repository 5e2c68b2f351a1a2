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
	"bytes"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const AddressLength = 32

var ErrInvalidAddress = errors.New("invalid address")

// Address identifies an account on the ledger. User addresses are ed25519
// public keys, program addresses are derived and have no private key.
type Address [AddressLength]byte

// NoAddress is the zero address, it also identifies the system program.
var NoAddress = Address{}

func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, errors.Wrapf(ErrInvalidAddress, "expected %d bytes, got %d", AddressLength, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// AddressFromString parses a base58 encoded address.
func AddressFromString(s string) (Address, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Address{}, errors.Wrap(ErrInvalidAddress, err.Error())
	}
	return AddressFromBytes(b)
}

// MustAddressFromString panics if s is not a valid address.
func MustAddressFromString(s string) Address {
	a, err := AddressFromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == NoAddress
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Compare(o Address) int {
	return bytes.Compare(a[:], o[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	v, err := AddressFromString(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// UnmarshalFlag lets addresses be used directly as command line options.
func (a *Address) UnmarshalFlag(s string) error {
	return a.UnmarshalText([]byte(s))
}
