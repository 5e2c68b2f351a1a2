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
)

// Account is the host's view of a single account for the duration of one
// instruction. Signer and Writable are facts established by the host before
// the instruction runs.
type Account struct {
	Address  Address
	Owner    Address
	Lamports uint64
	Data     []byte

	Signer   bool
	Writable bool
}

func NewAccount(addr, owner Address, lamports uint64, space int) *Account {
	return &Account{
		Address:  addr,
		Owner:    owner,
		Lamports: lamports,
		Data:     make([]byte, space),
	}
}

// IsEmpty returns true when the account carries no record.
func (a *Account) IsEmpty() bool {
	for _, b := range a.Data {
		if b != 0 {
			return false
		}
	}
	return true
}

func (a *Account) OwnedBy(program Address) bool {
	return a.Owner == program
}

func (a *Account) Clone() *Account {
	cpy := *a
	cpy.Data = append([]byte(nil), a.Data...)
	return &cpy
}

// Equal compares the persisted state of two accounts, the signer and
// writable flags are ignored.
func (a *Account) Equal(o *Account) bool {
	return a.Address == o.Address &&
		a.Owner == o.Owner &&
		a.Lamports == o.Lamports &&
		bytes.Equal(a.Data, o.Data)
}

// Accounts walks an instruction's account list in positional order.
type Accounts struct {
	list []*Account
	next int
}

func NewAccounts(list []*Account) *Accounts {
	return &Accounts{list: list}
}

// Next returns the next account, or ErrNotEnoughAccountKeys once the list
// is exhausted.
func (a *Accounts) Next() (*Account, error) {
	if a.next >= len(a.list) {
		return nil, ErrNotEnoughAccountKeys
	}
	acc := a.list[a.next]
	a.next++
	return acc, nil
}

// Take returns the next n accounts.
func (a *Accounts) Take(n int) ([]*Account, error) {
	out := make([]*Account, 0, n)
	for i := 0; i < n; i++ {
		acc, err := a.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, nil
}

// Seeds are the inputs of a derived address, the program id excepted.
type Seeds struct {
	Label string
	Owner Address
	Nonce uint8
}

// Signer is the authority presented to a token or native collaborator.
// When Seeds is nil the account must carry a host signature, otherwise the
// collaborator re-derives the account address from the seeds and the
// calling program.
type Signer struct {
	Account *Account
	Program Address
	Seeds   *Seeds
}

// SignedBy wraps an account which is expected to carry a host signature.
func SignedBy(acc *Account) Signer {
	return Signer{Account: acc}
}

// SignedByProgram wraps a derived account the program signs for.
func SignedByProgram(acc *Account, program Address, seeds Seeds) Signer {
	return Signer{Account: acc, Program: program, Seeds: &seeds}
}

func (s Signer) Address() Address {
	if s.Account == nil {
		return NoAddress
	}
	return s.Account.Address
}
