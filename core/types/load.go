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
	"github.com/pkg/errors"
)

// CheckOwner fails unless acc is owned by program.
func (a *Account) CheckOwner(program Address) error {
	if a.Owner != program {
		return errors.Wrapf(ErrInvalidAccountOwner, "%s is owned by %s", a.Address, a.Owner)
	}
	return nil
}

// LoadMarket decodes the market held by an account owned by program.
func LoadMarket(acc *Account, program Address) (*Market, error) {
	if err := acc.CheckOwner(program); err != nil {
		return nil, err
	}
	return MarketFromAccount(acc)
}

// LoadResult decodes the result held by an account owned by program.
func LoadResult(acc *Account, program Address) (*Result, error) {
	if err := acc.CheckOwner(program); err != nil {
		return nil, err
	}
	return ResultFromAccount(acc)
}

// LoadOrder decodes the order held by an account owned by program.
func LoadOrder(acc *Account, program Address) (*Order, error) {
	if err := acc.CheckOwner(program); err != nil {
		return nil, err
	}
	return OrderFromAccount(acc)
}

// CheckEmpty fails with ErrAlreadyInitialized when acc holds a record.
func (a *Account) CheckEmpty() error {
	if !a.IsEmpty() {
		return errors.Wrapf(ErrAlreadyInitialized, "%s", a.Address)
	}
	return nil
}
