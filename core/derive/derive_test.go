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

package derive_test

import (
	"testing"

	"code.vegaprotocol.io/searchmarket/core/derive"
	"code.vegaprotocol.io/searchmarket/core/types"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	program = types.Address{0xaa, 0x01}
	owner   = types.Address{0xbb, 0x02}
)

func TestDerivation(t *testing.T) {
	t.Run("find returns an off-curve address which validates", testFindValidates)
	t.Run("derivation is deterministic", testDeterministic)
	t.Run("any seed change yields a different address", testSeedsMatter)
	t.Run("long labels are rejected", testLabelTooLong)
	t.Run("public keys are on the curve", testPublicKeyOnCurve)
}

func testFindValidates(t *testing.T) {
	addr, nonce, err := derive.Find(types.MintAuthorityLabel, owner, program)
	require.NoError(t, err)
	assert.False(t, derive.IsOnCurve(addr))
	assert.True(t, derive.Validate(addr, types.Seeds{Label: types.MintAuthorityLabel, Owner: owner, Nonce: nonce}, program))
}

func testDeterministic(t *testing.T) {
	a1, n1, err := derive.Find(types.EscrowLabelClaim, owner, program)
	require.NoError(t, err)
	a2, n2, err := derive.Find(types.EscrowLabelClaim, owner, program)
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, n1, n2)
}

func testSeedsMatter(t *testing.T) {
	base, nonce, err := derive.Find(types.EscrowLabelCollateral, owner, program)
	require.NoError(t, err)
	seeds := types.Seeds{Label: types.EscrowLabelCollateral, Owner: owner, Nonce: nonce}

	other := seeds
	other.Label = types.EscrowLabelClaim
	assert.False(t, derive.Validate(base, other, program))

	other = seeds
	other.Owner = types.Address{0xcc}
	assert.False(t, derive.Validate(base, other, program))

	other = seeds
	other.Nonce = nonce - 1
	assert.False(t, derive.Validate(base, other, program))

	assert.False(t, derive.Validate(base, seeds, types.Address{0xdd}))
}

func testLabelTooLong(t *testing.T) {
	_, err := derive.Create(types.Seeds{Label: "a label which is way longer than thirty two bytes"}, program)
	assert.ErrorIs(t, err, derive.ErrLabelTooLong)
}

func testPublicKeyOnCurve(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	addr, err := types.AddressFromBytes(pub)
	require.NoError(t, err)
	assert.True(t, derive.IsOnCurve(addr))
}

func TestDeriverCachesDerivations(t *testing.T) {
	d, err := derive.NewDeriver(16)
	require.NoError(t, err)

	addr, nonce, err := d.Find(types.MintAuthorityLabel, owner, program)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Len())

	seeds := types.Seeds{Label: types.MintAuthorityLabel, Owner: owner, Nonce: nonce}
	assert.True(t, d.Validate(addr, seeds, program))
	assert.Equal(t, 1, d.Len())
	assert.False(t, d.Validate(types.Address{0x01}, seeds, program))
}
