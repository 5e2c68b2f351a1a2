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
	"code.vegaprotocol.io/searchmarket/libs/num"

	"github.com/pkg/errors"
)

// workingSet holds the accounts touched by a transaction. An address
// listed twice maps to a single account so aliased positions observe each
// other's changes.
type workingSet struct {
	store    *Store
	accounts map[types.Address]*types.Account
	original map[types.Address]*types.Account
	order    []types.Address
}

func newWorkingSet(store *Store) *workingSet {
	return &workingSet{
		store:    store,
		accounts: map[types.Address]*types.Account{},
		original: map[types.Address]*types.Account{},
	}
}

// load returns the accounts of an instruction with the signer and writable
// facts of this instruction.
func (ws *workingSet) load(metas []types.AccountMeta, signed map[types.Address]bool) ([]*types.Account, error) {
	out := make([]*types.Account, 0, len(metas))
	for _, m := range metas {
		acc, ok := ws.accounts[m.Address]
		if !ok {
			stored, err := ws.store.Account(m.Address)
			if err != nil {
				return nil, err
			}
			ws.original[m.Address] = stored
			acc = stored.Clone()
			ws.accounts[m.Address] = acc
			ws.order = append(ws.order, m.Address)
		}
		acc.Signer, acc.Writable = false, false
		out = append(out, acc)
	}
	for i, m := range metas {
		out[i].Signer = out[i].Signer || (m.Signer && signed[m.Address])
		out[i].Writable = out[i].Writable || m.Writable
	}
	return out, nil
}

// snapshotReadOnly copies the accounts no position of the instruction
// marked writable.
func (ws *workingSet) snapshotReadOnly(accounts []*types.Account) []*types.Account {
	out := []*types.Account{}
	seen := map[types.Address]struct{}{}
	for _, acc := range accounts {
		if _, ok := seen[acc.Address]; ok || acc.Writable {
			continue
		}
		seen[acc.Address] = struct{}{}
		out = append(out, acc.Clone())
	}
	return out
}

// checkConservation verifies the transaction moved lamports between the
// accounts it touched without creating or destroying any.
func (ws *workingSet) checkConservation() error {
	var before, after uint64
	var overflow bool
	for _, addr := range ws.order {
		if before, overflow = num.Total(before, ws.original[addr].Lamports); overflow {
			return types.ErrArithmeticOverflow
		}
		if after, overflow = num.Total(after, ws.accounts[addr].Lamports); overflow {
			return types.ErrArithmeticOverflow
		}
	}
	if before != after {
		return errors.Wrapf(ErrLamportsNotConserved, "%d before, %d after", before, after)
	}
	return nil
}

// changed returns the accounts which differ from their stored version.
func (ws *workingSet) changed() []*types.Account {
	out := []*types.Account{}
	for _, addr := range ws.order {
		if acc := ws.accounts[addr]; !acc.Equal(ws.original[addr]) {
			out = append(out, acc)
		}
	}
	return out
}
