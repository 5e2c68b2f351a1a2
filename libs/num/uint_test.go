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

package num_test

import (
	"math"
	"testing"

	"code.vegaprotocol.io/searchmarket/libs/num"

	"github.com/stretchr/testify/assert"
)

func TestUintClone(t *testing.T) {
	var (
		expect1 uint64 = 42
		expect2 uint64 = 84
		first          = num.NewUint(expect1)
		second         = first.Clone()
	)

	second.Add(second, num.NewUint(42))

	assert.Equal(t, expect1, first.Uint64())
	assert.Equal(t, expect2, second.Uint64())
}

func TestProduct(t *testing.T) {
	t.Run("collateral for a deposit", func(t *testing.T) {
		p, overflow := num.Product(100, 100_000)
		assert.False(t, overflow)
		assert.Equal(t, uint64(10_000_000), p)
	})

	t.Run("overflow is reported", func(t *testing.T) {
		_, overflow := num.Product(math.MaxUint64, 2)
		assert.True(t, overflow)
	})

	t.Run("zero factor", func(t *testing.T) {
		p, overflow := num.Product(math.MaxUint64, 0)
		assert.False(t, overflow)
		assert.Zero(t, p)
	})
}

func TestTotal(t *testing.T) {
	s, overflow := num.Total(1, 2, 3)
	assert.False(t, overflow)
	assert.Equal(t, uint64(6), s)

	_, overflow = num.Total(math.MaxUint64, 1)
	assert.True(t, overflow)
}

func TestSubOverflow(t *testing.T) {
	_, underflow := num.UintZero().SubOverflow(num.NewUint(1), num.NewUint(2))
	assert.True(t, underflow)

	r, underflow := num.UintZero().SubOverflow(num.NewUint(501), num.NewUint(500))
	assert.False(t, underflow)
	assert.Equal(t, uint64(1), r.Uint64())
}

func TestRatio(t *testing.T) {
	assert.Equal(t, "0.005", num.Ratio(500, 100_000).String())
	assert.True(t, num.Ratio(1, 0).IsZero())
}
