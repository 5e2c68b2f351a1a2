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

package derive

import (
	"code.vegaprotocol.io/searchmarket/core/types"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheKey struct {
	seeds   types.Seeds
	program types.Address
}

type cacheEntry struct {
	addr types.Address
	err  error
}

// Deriver memoises derivations. Handlers re-derive the same escrow and mint
// authority addresses on every instruction touching them.
type Deriver struct {
	cache *lru.Cache[cacheKey, cacheEntry]
}

func NewDeriver(size int) (*Deriver, error) {
	cache, err := lru.New[cacheKey, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Deriver{cache: cache}, nil
}

func (d *Deriver) Create(seeds types.Seeds, program types.Address) (types.Address, error) {
	k := cacheKey{seeds: seeds, program: program}
	if e, ok := d.cache.Get(k); ok {
		return e.addr, e.err
	}
	addr, err := Create(seeds, program)
	d.cache.Add(k, cacheEntry{addr: addr, err: err})
	return addr, err
}

func (d *Deriver) Validate(candidate types.Address, seeds types.Seeds, program types.Address) bool {
	addr, err := d.Create(seeds, program)
	return err == nil && addr == candidate
}

func (d *Deriver) Find(label string, owner, program types.Address) (types.Address, uint8, error) {
	addr, nonce, err := Find(label, owner, program)
	if err == nil {
		d.cache.Add(
			cacheKey{seeds: types.Seeds{Label: label, Owner: owner, Nonce: nonce}, program: program},
			cacheEntry{addr: addr},
		)
	}
	return addr, nonce, err
}

// Len returns the number of cached derivations.
func (d *Deriver) Len() int {
	return d.cache.Len()
}
