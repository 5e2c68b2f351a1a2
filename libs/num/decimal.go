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
	"math/big"

	"github.com/shopspring/decimal"
)

type Decimal = decimal.Decimal

func DecimalZero() Decimal {
	return decimal.Zero
}

func DecimalFromUint64(u uint64) Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)
}

func DecimalFromUint(u *Uint) Decimal {
	return decimal.NewFromBigInt(u.BigInt(), 0)
}

// Ratio returns num / den, or zero when den is zero.
func Ratio(num, den uint64) Decimal {
	if den == 0 {
		return decimal.Zero
	}
	return DecimalFromUint64(num).Div(DecimalFromUint64(den))
}
