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

package rand

import (
	crand "crypto/rand"
	"math/big"
)

const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomStr returns a random alphanumeric string of length n.
func RandomStr(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(chars)))
	for i := range out {
		v, err := crand.Int(crand.Reader, max)
		if err != nil {
			panic(err)
		}
		out[i] = chars[v.Int64()]
	}
	return string(out)
}

func RandomBytes(n int) []byte {
	out := make([]byte, n)
	if _, err := crand.Read(out); err != nil {
		panic(err)
	}
	return out
}
