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

package auth

import (
	"code.vegaprotocol.io/searchmarket/core/derive"
	"code.vegaprotocol.io/searchmarket/core/types"

	"github.com/pkg/errors"
)

// RequireSigner fails unless the host established a signature for acc.
func RequireSigner(acc *types.Account) error {
	if !acc.Signer {
		return errors.Wrapf(types.ErrUnauthorized, "%s did not sign", acc.Address)
	}
	return nil
}

// RequireAuthority fails unless acc signed and is one of the expected
// addresses.
func RequireAuthority(acc *types.Account, expected ...types.Address) error {
	if err := RequireSigner(acc); err != nil {
		return err
	}
	for _, e := range expected {
		if acc.Address == e {
			return nil
		}
	}
	return errors.Wrapf(types.ErrUnauthorized, "%s is not an authority", acc.Address)
}

// CheckSigner verifies the authority presented to a collaborator. Without
// seeds the account needs a host signature, with seeds the account address
// must re-derive under the presenting program.
func CheckSigner(s types.Signer) error {
	if s.Account == nil {
		return errors.Wrap(types.ErrUnauthorized, "no authority presented")
	}
	if s.Seeds == nil {
		return RequireSigner(s.Account)
	}
	if !derive.Validate(s.Account.Address, *s.Seeds, s.Program) {
		return errors.Wrapf(types.ErrInvalidDerivedAddress, "%s does not derive from %s", s.Account.Address, s.Seeds.Label)
	}
	return nil
}
