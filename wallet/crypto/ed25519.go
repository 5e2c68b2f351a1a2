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

package crypto

import (
	"crypto"
	"errors"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

// SeedSize is the size of the private seed a key file stores.
const SeedSize = ed25519.SeedSize

type ed25519Sig struct{}

func newEd25519() *ed25519Sig {
	return &ed25519Sig{}
}

func (e *ed25519Sig) GenKey() (crypto.PublicKey, crypto.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, nil, err
	}
	return []byte(pub), []byte(priv), nil
}

func (e *ed25519Sig) KeyFromSeed(seed []byte) (crypto.PublicKey, crypto.PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, nil, errors.New("invalid seed length")
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return []byte(priv.Public().(ed25519.PublicKey)), []byte(priv), nil
}

func (e *ed25519Sig) Sign(priv crypto.PrivateKey, buf []byte) []byte {
	privBytes, ok := priv.([]byte)
	if !ok || len(privBytes) != ed25519.PrivateKeySize {
		return nil
	}
	return ed25519.Sign(privBytes, buf)
}

func (e *ed25519Sig) Verify(pub crypto.PublicKey, message, sig []byte) bool {
	pubBytes, ok := pub.([]byte)
	if !ok || len(pubBytes) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(pubBytes, message, sig)
}

func (e *ed25519Sig) Name() string {
	return Ed25519
}
