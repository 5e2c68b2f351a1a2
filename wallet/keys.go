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

// Package wallet holds the ed25519 keypairs used to sign ledger
// transactions. A keypair is stored as a small JSON file holding the
// base58 encoded public key and private seed.
package wallet

import (
	"crypto"
	"encoding/json"

	"code.vegaprotocol.io/searchmarket/core/types"
	vgfs "code.vegaprotocol.io/searchmarket/libs/fs"
	vgrand "code.vegaprotocol.io/searchmarket/libs/rand"
	wcrypto "code.vegaprotocol.io/searchmarket/wallet/crypto"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrKeyFileExists  = errors.New("key file already exists")
	ErrInvalidKeyFile = errors.New("invalid key file")
)

var algo, _ = wcrypto.NewSignatureAlgorithm(wcrypto.Ed25519)

type Keypair struct {
	pub  types.Address
	seed []byte
	priv crypto.PrivateKey
}

type keyFile struct {
	Public string `json:"public"`
	Seed   string `json:"seed"`
}

// GenerateKeypair creates a fresh random keypair.
func GenerateKeypair() (*Keypair, error) {
	return KeypairFromSeed(vgrand.RandomBytes(wcrypto.SeedSize))
}

func KeypairFromSeed(seed []byte) (*Keypair, error) {
	pub, priv, err := algo.KeyFromSeed(seed)
	if err != nil {
		return nil, err
	}
	addr, err := types.AddressFromBytes(pub.([]byte))
	if err != nil {
		return nil, err
	}
	return &Keypair{pub: addr, seed: append([]byte(nil), seed...), priv: priv}, nil
}

func (k *Keypair) Address() types.Address {
	return k.pub
}

func (k *Keypair) Sign(message []byte) []byte {
	return algo.Sign(k.priv, message)
}

// Verify checks sig was produced over message by the key behind pub.
func Verify(pub types.Address, message, sig []byte) bool {
	return algo.Verify(pub.Bytes(), message, sig)
}

// Save writes the keypair to path, refusing to overwrite an existing key.
func (k *Keypair) Save(path string) error {
	exists, err := vgfs.FileExists(path)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrap(ErrKeyFileExists, path)
	}
	buf, err := json.Marshal(keyFile{
		Public: k.pub.String(),
		Seed:   base58.Encode(k.seed),
	})
	if err != nil {
		return err
	}
	return vgfs.WriteFile(path, buf)
}

// LoadKeypair reads a keypair written by Save.
func LoadKeypair(path string) (*Keypair, error) {
	buf, err := vgfs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading key file %s", path)
	}
	f := keyFile{}
	if err := json.Unmarshal(buf, &f); err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFile, err.Error())
	}
	seed, err := base58.Decode(f.Seed)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFile, err.Error())
	}
	k, err := KeypairFromSeed(seed)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFile, err.Error())
	}
	if k.pub.String() != f.Public {
		return nil, errors.Wrap(ErrInvalidKeyFile, "public key does not match the seed")
	}
	return k, nil
}
