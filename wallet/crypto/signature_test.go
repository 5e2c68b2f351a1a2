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

package crypto_test

import (
	"bytes"
	"testing"

	"code.vegaprotocol.io/searchmarket/core/ledger"
	"code.vegaprotocol.io/searchmarket/core/types"
	wcrypto "code.vegaprotocol.io/searchmarket/wallet/crypto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testKey struct {
	pub  []byte
	priv []byte
}

func getTestAlgorithm(t *testing.T) wcrypto.SignatureAlgorithm {
	t.Helper()
	algo, err := wcrypto.NewSignatureAlgorithm(wcrypto.Ed25519)
	require.NoError(t, err)
	assert.Equal(t, wcrypto.Ed25519, algo.Name())
	return algo
}

func keyFromSeed(t *testing.T, algo wcrypto.SignatureAlgorithm, b byte) testKey {
	t.Helper()
	pub, priv, err := algo.KeyFromSeed(bytes.Repeat([]byte{b}, wcrypto.SeedSize))
	require.NoError(t, err)
	return testKey{pub: pub.([]byte), priv: priv.([]byte)}
}

func depositMessage(nonce uint64, payer []byte) []byte {
	addr, _ := types.AddressFromBytes(payer)
	return ledger.NewTransaction(nonce, types.Instruction{
		Program:  types.Address{9},
		Accounts: []types.AccountMeta{types.WritableSigner(addr), types.Writable(types.Address{1})},
		Data:     []byte{0x03, 0x08, 0x32},
	}).Message()
}

func TestNewSignatureAlgorithm(t *testing.T) {
	_, err := wcrypto.NewSignatureAlgorithm("secp256k1")
	assert.ErrorIs(t, err, wcrypto.ErrUnsupportedSignatureAlgorithm)
}

func TestKeyFromSeed(t *testing.T) {
	algo := getTestAlgorithm(t)

	t.Run("same seed gives the same key", func(t *testing.T) {
		assert.Equal(t, keyFromSeed(t, algo, 1), keyFromSeed(t, algo, 1))
		assert.NotEqual(t, keyFromSeed(t, algo, 1).pub, keyFromSeed(t, algo, 2).pub)
	})

	t.Run("seed of the wrong size is rejected", func(t *testing.T) {
		_, _, err := algo.KeyFromSeed(make([]byte, wcrypto.SeedSize-1))
		assert.Error(t, err)
	})

	t.Run("generated keys sign too", func(t *testing.T) {
		pub, priv, err := algo.GenKey()
		require.NoError(t, err)
		msg := depositMessage(1, pub.([]byte))
		assert.True(t, algo.Verify(pub, msg, algo.Sign(priv, msg)))
	})
}

func TestTransactionSignatures(t *testing.T) {
	algo := getTestAlgorithm(t)
	payer := keyFromSeed(t, algo, 1)
	other := keyFromSeed(t, algo, 2)
	msg := depositMessage(7, payer.pub)
	sig := algo.Sign(payer.priv, msg)
	require.NotEmpty(t, sig)

	cases := []struct {
		name    string
		pub     []byte
		message []byte
		sig     []byte
		valid   bool
	}{
		{name: "payer signature", pub: payer.pub, message: msg, sig: sig, valid: true},
		{name: "another nonce", pub: payer.pub, message: depositMessage(8, payer.pub), sig: sig},
		{name: "another signer", pub: other.pub, message: msg, sig: sig},
		{name: "signature of another key", pub: payer.pub, message: msg, sig: algo.Sign(other.priv, msg)},
		{name: "truncated public key", pub: payer.pub[1:], message: msg, sig: sig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, algo.Verify(tc.pub, tc.message, tc.sig))
		})
	}

	t.Run("a truncated private key does not sign", func(t *testing.T) {
		assert.Nil(t, algo.Sign(payer.priv[1:], msg))
	})
}
