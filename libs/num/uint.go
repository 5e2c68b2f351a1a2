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

package num

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// Uint A wrapper for a big unsigned int.
type Uint struct {
	u uint256.Int
}

// NewUint creates a new Uint with the value of the
// uint64 passed as a parameter.
func NewUint(val uint64) *Uint {
	return &Uint{*uint256.NewInt(val)}
}

// UintZero returns a new Uint set to zero.
func UintZero() *Uint {
	return NewUint(0)
}

// Min returns the smallest of the 2 numbers.
func Min(a, b *Uint) *Uint {
	if a.LT(b) {
		return a
	}
	return b
}

// MinV returns the smallest of 2 uint64 values.
func MinV(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

// Add will add x and y then store the result
// into z, z is returned for convenience.
func (z *Uint) Add(x, y *Uint) *Uint {
	z.u.Add(&x.u, &y.u)
	return z
}

// AddOverflow will add x and y then store the result into z.
// True is returned if an overflow occurred.
func (z *Uint) AddOverflow(x, y *Uint) (*Uint, bool) {
	_, ok := z.u.AddOverflow(&x.u, &y.u)
	return z, ok
}

// Sub will subtract y from x then store the result
// into z, z is returned for convenience.
func (z *Uint) Sub(x, y *Uint) *Uint {
	z.u.Sub(&x.u, &y.u)
	return z
}

// SubOverflow will subtract y from x then store the result into z.
// True is returned if an underflow occurred.
func (z *Uint) SubOverflow(x, y *Uint) (*Uint, bool) {
	_, ok := z.u.SubOverflow(&x.u, &y.u)
	return z, ok
}

// Mul will multiply x and y then store the result
// into z, z is returned for convenience.
func (z *Uint) Mul(x, y *Uint) *Uint {
	z.u.Mul(&x.u, &y.u)
	return z
}

// MulOverflow will multiply x and y then store the result into z.
// True is returned if an overflow occurred.
func (z *Uint) MulOverflow(x, y *Uint) (*Uint, bool) {
	_, ok := z.u.MulOverflow(&x.u, &y.u)
	return z, ok
}

func (z Uint) IsUint64() bool {
	return z.u.IsUint64()
}

func (z Uint) Uint64() uint64 {
	return z.u.Uint64()
}

func (z Uint) BigInt() *big.Int {
	return z.u.ToBig()
}

func (z Uint) LT(oth *Uint) bool {
	return z.u.Lt(&oth.u)
}

func (z Uint) GT(oth *Uint) bool {
	return z.u.Gt(&oth.u)
}

func (z Uint) EQ(oth *Uint) bool {
	return z.u.Eq(&oth.u)
}

func (z Uint) IsZero() bool {
	return z.u.IsZero()
}

func (z Uint) Clone() *Uint {
	return &Uint{z.u}
}

func (z Uint) String() string {
	return z.u.ToBig().String()
}

func (z Uint) Format(s fmt.State, ch rune) {
	z.u.ToBig().Format(s, ch)
}

// Product returns x * y as a uint64. The second return value is true when
// the product does not fit in 64 bits.
func Product(x, y uint64) (uint64, bool) {
	p, overflow := UintZero().MulOverflow(NewUint(x), NewUint(y))
	if overflow || !p.IsUint64() {
		return 0, true
	}
	return p.Uint64(), false
}

// Total returns the sum of the given values as a uint64. The second return
// value is true when the sum does not fit in 64 bits.
func Total(vals ...uint64) (uint64, bool) {
	sum := UintZero()
	for _, v := range vals {
		sum.Add(sum, NewUint(v))
	}
	if !sum.IsUint64() {
		return 0, true
	}
	return sum.Uint64(), false
}
