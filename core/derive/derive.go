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

// Package derive computes keyless program addresses. A derived address is the
// hash of a label, an owning address, a nonce and the program id, and is
// rejected when it decodes to a valid ed25519 point so nobody can hold its
// private key.
package derive

import (
	"code.vegaprotocol.io/searchmarket/core/types"
	vgcrypto "code.vegaprotocol.io/searchmarket/libs/crypto"

	"github.com/oasisprotocol/curve25519-voi/curve"
	"github.com/pkg/errors"
)

const (
	marker = "ProgramDerivedAddress"
	// MaxLabelLen bounds the label part of the seeds.
	MaxLabelLen = 32
)

var (
	ErrOnCurve      = errors.New("derived address is on the curve")
	ErrLabelTooLong = errors.New("derivation label too long")
	ErrNoValidNonce = errors.New("no nonce derives a valid address")
)

// Create derives the address of seeds under program.
func Create(seeds types.Seeds, program types.Address) (types.Address, error) {
	if len(seeds.Label) > MaxLabelLen {
		return types.NoAddress, ErrLabelTooLong
	}
	h := vgcrypto.Hash(
		[]byte(seeds.Label),
		seeds.Owner.Bytes(),
		[]byte{seeds.Nonce},
		program.Bytes(),
		[]byte(marker),
	)
	addr, err := types.AddressFromBytes(h)
	if err != nil {
		return types.NoAddress, err
	}
	if IsOnCurve(addr) {
		return types.NoAddress, ErrOnCurve
	}
	return addr, nil
}

// Find returns the first valid address for label and owner, searching nonces
// from 255 down to 0, along with that nonce.
func Find(label string, owner, program types.Address) (types.Address, uint8, error) {
	for n := 255; n >= 0; n-- {
		seeds := types.Seeds{Label: label, Owner: owner, Nonce: uint8(n)}
		addr, err := Create(seeds, program)
		if err == nil {
			return addr, uint8(n), nil
		}
		if !errors.Is(err, ErrOnCurve) {
			return types.NoAddress, 0, err
		}
	}
	return types.NoAddress, 0, ErrNoValidNonce
}

// Validate recomputes the address of seeds and compares it with candidate.
func Validate(candidate types.Address, seeds types.Seeds, program types.Address) bool {
	addr, err := Create(seeds, program)
	return err == nil && addr == candidate
}

// IsOnCurve reports whether addr decompresses to an ed25519 point.
func IsOnCurve(addr types.Address) bool {
	var (
		c curve.CompressedEdwardsY
		p curve.EdwardsPoint
	)
	copy(c[:], addr[:])
	_, err := p.SetCompressedY(&c)
	return err == nil
}
