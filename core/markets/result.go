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

package markets

import (
	"context"
	"net/url"

	"code.vegaprotocol.io/searchmarket/core/events"
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/logging"

	"github.com/pkg/errors"
)

// CreateResult registers a candidate answer and creates its two claim types.
// Anyone may add a result to an open market.
// Accounts: [result(w), market, yes_mint(w), no_mint(w), mint_authority].
func (e *Engine) CreateResult(ctx context.Context, accounts *types.Accounts, rawURL, name, snippet string, nonce uint8) error {
	accs, err := accounts.Take(5)
	if err != nil {
		return err
	}
	resultAcc, marketAcc, yesMint, noMint, mintAuthority := accs[0], accs[1], accs[2], accs[3], accs[4]

	if err := resultAcc.CheckEmpty(); err != nil {
		return err
	}
	if err := resultAcc.CheckOwner(e.program); err != nil {
		return err
	}
	m, err := types.LoadMarket(marketAcc, e.program)
	if err != nil {
		return err
	}
	if err := validateURL(rawURL); err != nil {
		return err
	}
	if height := e.clock.Height(); m.HasExpired(height) {
		return errors.Wrapf(types.ErrExpired, "height %d is past %d", height, m.ExpiresAt)
	}
	seeds := types.Seeds{Label: types.MintAuthorityLabel, Owner: marketAcc.Address, Nonce: nonce}
	if !e.deriver.Validate(mintAuthority.Address, seeds, e.program) {
		return errors.Wrapf(types.ErrInvalidDerivedAddress, "mint authority %s", mintAuthority.Address)
	}
	if yesMint.Address == noMint.Address {
		return errors.Wrap(types.ErrMalformedInput, "yes and no claim types must differ")
	}

	if err := e.tokens.InitializeMint(yesMint, mintAuthority.Address, types.ClaimDecimals); err != nil {
		return errors.Wrap(err, "yes claim type")
	}
	if err := e.tokens.InitializeMint(noMint, mintAuthority.Address, types.ClaimDecimals); err != nil {
		return errors.Wrap(err, "no claim type")
	}

	r := &types.Result{
		Market:             marketAcc.Address,
		URL:                rawURL,
		Name:               name,
		Snippet:            snippet,
		YesClaimType:       yesMint.Address,
		NoClaimType:        noMint.Address,
		MintAuthorityNonce: nonce,
	}
	if err := r.Write(resultAcc); err != nil {
		return err
	}

	e.broker.Send(events.NewResultCreated(ctx, resultAcc.Address, r))
	e.log.Debug("result created",
		logging.Stringer("market", marketAcc.Address),
		logging.Stringer("result", resultAcc.Address),
		logging.String("url", rawURL))
	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return errors.Wrap(types.ErrMalformedInput, err.Error())
	}
	if !u.IsAbs() {
		return errors.Wrapf(types.ErrMalformedInput, "url %q is not absolute", raw)
	}
	return nil
}
