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

package types

import (
	"github.com/pkg/errors"
)

var (
	// ErrAlreadyInitialized signals an attempt to create a record in a non-empty account.
	ErrAlreadyInitialized = errors.New("account already initialized")
	// ErrUnauthorized signals a missing or wrong signer.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidDerivedAddress signals an escrow or authority address which does not re-derive.
	ErrInvalidDerivedAddress = errors.New("invalid derived address")
	// ErrCrossReference signals records which do not reference each other.
	ErrCrossReference = errors.New("cross reference mismatch")
	// ErrExpired signals an operation past the market deadline.
	ErrExpired = errors.New("market expired")
	// ErrNotYetDecided signals an operation which requires a decided market.
	ErrNotYetDecided = errors.New("market not yet decided")
	// ErrAlreadyDecided signals a second decision when re-deciding is disabled.
	ErrAlreadyDecided = errors.New("market already decided")
	// ErrPriceMismatch signals a buy limit below the sell limit.
	ErrPriceMismatch        = errors.New("buy price below sell price")
	ErrMalformedInput       = errors.New("malformed input")
	ErrInvalidAccountOwner  = errors.New("invalid account owner")
	ErrNotEnoughAccountKeys = errors.New("not enough account keys")
	ErrAccountDataTooSmall  = errors.New("account data too small")
	ErrOrderExhausted       = errors.New("order exhausted")
	ErrArithmeticOverflow   = errors.New("arithmetic overflow")
	ErrInvalidRecord        = errors.New("invalid record")

	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrOwnerMismatch           = errors.New("owner mismatch")
	ErrMintMismatch            = errors.New("mint mismatch")
	ErrUninitializedAccount    = errors.New("uninitialized account")
	ErrReadOnlyAccountModified = errors.New("read-only account modified")
)
