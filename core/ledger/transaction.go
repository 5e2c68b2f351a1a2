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

package ledger

import (
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/libs/codec"
	vgcrypto "code.vegaprotocol.io/searchmarket/libs/crypto"

	uuid "github.com/satori/go.uuid"
)

// Signer is what a transaction needs from a key.
type Signer interface {
	Address() types.Address
	Sign(message []byte) []byte
}

type Signature struct {
	Signer types.Address
	Sig    []byte
}

// Transaction is a list of instructions executed atomically. The nonce
// only serves to tell apart two transactions carrying the same
// instructions.
type Transaction struct {
	Instructions []types.Instruction
	Nonce        uint64
	Signatures   []Signature
}

func NewTransaction(nonce uint64, ixs ...types.Instruction) *Transaction {
	return &Transaction{
		Instructions: ixs,
		Nonce:        nonce,
	}
}

// Message returns the bytes covered by the signatures.
func (t *Transaction) Message() []byte {
	e := codec.NewEncoder().Uint(1, t.Nonce)
	for _, ix := range t.Instructions {
		ie := codec.NewEncoder().Bytes(1, ix.Program.Bytes())
		for _, m := range ix.Accounts {
			ie.Message(2, codec.NewEncoder().
				Bytes(1, m.Address.Bytes()).
				Bool(2, m.Signer).
				Bool(3, m.Writable))
		}
		ie.Bytes(3, ix.Data)
		e.Message(2, ie)
	}
	return e.Encode()
}

// ID is derived from the message, so the same signed content always maps
// to the same id.
func (t *Transaction) ID() string {
	return uuid.NewV5(uuid.NamespaceOID, vgcrypto.HashToHex(t.Message())).String()
}

// Sign appends a signature from every key. Signing changes nothing once
// the message is final, so keys can sign in any order.
func (t *Transaction) Sign(keys ...Signer) *Transaction {
	msg := t.Message()
	for _, k := range keys {
		t.Signatures = append(t.Signatures, Signature{
			Signer: k.Address(),
			Sig:    k.Sign(msg),
		})
	}
	return t
}

// RequiredSigners lists the addresses at least one instruction expects
// to sign, in order of appearance.
func (t *Transaction) RequiredSigners() []types.Address {
	seen := map[types.Address]struct{}{}
	out := []types.Address{}
	for _, ix := range t.Instructions {
		for _, m := range ix.Accounts {
			if _, ok := seen[m.Address]; !m.Signer || ok {
				continue
			}
			seen[m.Address] = struct{}{}
			out = append(out, m.Address)
		}
	}
	return out
}
