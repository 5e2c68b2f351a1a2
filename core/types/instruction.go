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

// AccountMeta positions an account in an instruction and states the
// facts the transaction claims for it.
type AccountMeta struct {
	Address  Address
	Signer   bool
	Writable bool
}

func Writable(a Address) AccountMeta {
	return AccountMeta{Address: a, Writable: true}
}

func ReadOnly(a Address) AccountMeta {
	return AccountMeta{Address: a}
}

func WritableSigner(a Address) AccountMeta {
	return AccountMeta{Address: a, Signer: true, Writable: true}
}

func ReadOnlySigner(a Address) AccountMeta {
	return AccountMeta{Address: a, Signer: true}
}

// Instruction targets one program with an ordered account list and an
// encoded payload.
type Instruction struct {
	Program  Address
	Accounts []AccountMeta
	Data     []byte
}
