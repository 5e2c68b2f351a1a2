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
)

const Ed25519 string = "ed25519"

var ErrUnsupportedSignatureAlgorithm = errors.New("unsupported signature algorithm")

// SignatureAlgorithm signs and verifies transaction messages.
type SignatureAlgorithm interface {
	GenKey() (crypto.PublicKey, crypto.PrivateKey, error)
	KeyFromSeed(seed []byte) (crypto.PublicKey, crypto.PrivateKey, error)
	Sign(priv crypto.PrivateKey, buf []byte) []byte
	Verify(pub crypto.PublicKey, message, sig []byte) bool
	Name() string
}

func NewSignatureAlgorithm(algo string) (SignatureAlgorithm, error) {
	if algo == Ed25519 {
		return newEd25519(), nil
	}
	return nil, ErrUnsupportedSignatureAlgorithm
}
