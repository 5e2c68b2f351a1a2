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

package main

import (
	"context"
	"fmt"

	"code.vegaprotocol.io/searchmarket/core/instructions"
	"code.vegaprotocol.io/searchmarket/core/types"

	"github.com/jessevdk/go-flags"
)

type ResultCmd struct {
	Create ResultCreateCmd `command:"create" description:"Add a result to a market"`
}

type ResultCreateCmd struct {
	LedgerFlags

	Payer   string        `long:"payer" required:"true" description:"Name of the key paying for the result account"`
	Market  types.Address `long:"market" required:"true" description:"Address of the market"`
	URL     string        `long:"url" required:"true" description:"URL of the result"`
	Name    string        `long:"name" required:"true" description:"Title of the result"`
	Snippet string        `long:"snippet" description:"Short excerpt of the result"`
}

var resultCmd ResultCmd

func (opts *ResultCreateCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	payer, err := s.key(opts.Payer)
	if err != nil {
		return err
	}
	c, err := s.CreateResult(context.Background(), payer, opts.Market, opts.URL, opts.Name, opts.Snippet)
	if err != nil {
		return err
	}
	return s.print(struct {
		Result string `json:"result"`
		Yes    string `json:"yesClaimType"`
		No     string `json:"noClaimType"`
	}{c.Result.String(), c.YesMint.String(), c.NoMint.String()}, func() {
		fmt.Printf("result: %s\nyes:    %s\nno:     %s\n", c.Result, c.YesMint, c.NoMint)
	})
}

func Result(ctx context.Context, parser *flags.Parser) error {
	resultCmd = ResultCmd{}
	_, err := parser.AddCommand("result", "Manage market results", "Add candidate results to a search market", &resultCmd)
	return err
}

type ClaimsCmd struct {
	Open ClaimsOpenCmd `command:"open" description:"Open the yes and no claim accounts of a result"`
}

type ClaimsOpenCmd struct {
	LedgerFlags

	Key    string        `long:"key" required:"true" description:"Name of the key owning the accounts"`
	Result types.Address `long:"result" required:"true" description:"Address of the result"`
}

var claimsCmd ClaimsCmd

func (opts *ClaimsOpenCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	k, err := s.key(opts.Key)
	if err != nil {
		return err
	}
	c, err := s.Claims(opts.Result)
	if err != nil {
		return err
	}
	yes, no, err := s.OpenClaimAccounts(context.Background(), k.Address(), c)
	if err != nil {
		return err
	}
	return s.print(struct {
		Yes string `json:"yes"`
		No  string `json:"no"`
	}{yes.String(), no.String()}, func() {
		fmt.Printf("yes: %s\nno:  %s\n", yes, no)
	})
}

func Claims(ctx context.Context, parser *flags.Parser) error {
	claimsCmd = ClaimsCmd{}
	_, err := parser.AddCommand("claims", "Manage claim accounts", "Open the token accounts holding the claims of a result", &claimsCmd)
	return err
}

// ClaimFlags names the claim accounts of a key on a result.
type ClaimFlags struct {
	Result types.Address `long:"result" required:"true" description:"Address of the result"`
	Yes    types.Address `long:"yes" required:"true" description:"Yes claim account"`
	No     types.Address `long:"no" required:"true" description:"No claim account"`
}

func (f ClaimFlags) claims(s *session) (instructions.Claims, error) {
	return s.Claims(f.Result)
}

type DepositCmd struct {
	LedgerFlags
	ClaimFlags

	Key    string `long:"key" required:"true" description:"Name of the key paying the collateral"`
	Amount uint64 `long:"amount" required:"true" description:"Number of claim pairs to mint"`
}

var depositCmd DepositCmd

func (opts *DepositCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	k, err := s.key(opts.Key)
	if err != nil {
		return err
	}
	c, err := opts.claims(s)
	if err != nil {
		return err
	}
	if err := s.Deposit(context.Background(), k, c, opts.Yes, opts.No, opts.Amount); err != nil {
		return err
	}
	return s.printBalances(opts.ClaimFlags)
}

func Deposit(ctx context.Context, parser *flags.Parser) error {
	depositCmd = DepositCmd{}
	_, err := parser.AddCommand("deposit", "Lock collateral against claims", "Lock collateral and mint as many yes as no claims of a result", &depositCmd)
	return err
}

type WithdrawCmd struct {
	LedgerFlags
	ClaimFlags

	Key       string        `long:"key" required:"true" description:"Name of the key owning the claims"`
	Recipient types.Address `long:"recipient" description:"Account receiving the collateral, the key by default"`
	Amount    uint64        `long:"amount" required:"true" description:"Number of claims to redeem"`
}

var withdrawCmd WithdrawCmd

func (opts *WithdrawCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	k, err := s.key(opts.Key)
	if err != nil {
		return err
	}
	c, err := opts.claims(s)
	if err != nil {
		return err
	}
	recipient := opts.Recipient
	if recipient.IsZero() {
		recipient = k.Address()
	}
	if err := s.Withdraw(context.Background(), k, recipient, c, opts.Yes, opts.No, opts.Amount); err != nil {
		return err
	}
	return s.printBalances(opts.ClaimFlags)
}

func Withdraw(ctx context.Context, parser *flags.Parser) error {
	withdrawCmd = WithdrawCmd{}
	_, err := parser.AddCommand("withdraw", "Redeem claims for collateral", "Burn claims and release the collateral backing them", &withdrawCmd)
	return err
}

func (s *session) printBalances(f ClaimFlags) error {
	yes, err := s.TokenBalance(f.Yes)
	if err != nil {
		return err
	}
	no, err := s.TokenBalance(f.No)
	if err != nil {
		return err
	}
	return s.print(struct {
		Yes uint64 `json:"yes"`
		No  uint64 `json:"no"`
	}{yes, no}, func() {
		fmt.Printf("yes: %d\nno:  %d\n", yes, no)
	})
}
