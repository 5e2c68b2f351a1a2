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

	"code.vegaprotocol.io/searchmarket/cmd/searchmarket/node"
	"code.vegaprotocol.io/searchmarket/core/types"

	"github.com/jessevdk/go-flags"
)

type MarketCmd struct {
	Create MarketCreateCmd `command:"create" description:"Create a market"`
	Decide MarketDecideCmd `command:"decide" description:"Designate the best result of a market"`
	Show   MarketShowCmd   `command:"show" description:"Show a market and its results"`
}

type MarketCreateCmd struct {
	LedgerFlags

	Payer     string `long:"payer" required:"true" description:"Name of the key paying for the market account"`
	Authority string `long:"authority" required:"true" description:"Name of the key deciding the market"`
	ExpiresAt uint64 `long:"expires-at" required:"true" description:"Last height the market can be traded and decided at"`
	Search    string `long:"search" required:"true" description:"The search string the market is about"`
}

type MarketDecideCmd struct {
	LedgerFlags

	Authority string        `long:"authority" required:"true" description:"Name of the key deciding the market"`
	Market    types.Address `long:"market" required:"true" description:"Address of the market"`
	Result    types.Address `long:"result" required:"true" description:"Address of the best result"`
}

type MarketShowCmd struct {
	LedgerFlags

	Market types.Address `long:"market" required:"true" description:"Address of the market"`
}

var marketCmd MarketCmd

func (opts *MarketCreateCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	payer, err := s.key(opts.Payer)
	if err != nil {
		return err
	}
	authority, err := s.key(opts.Authority)
	if err != nil {
		return err
	}
	market, err := s.CreateMarket(context.Background(), payer, authority, opts.ExpiresAt, opts.Search)
	if err != nil {
		return err
	}
	return s.print(struct {
		Market string `json:"market"`
	}{market.String()}, func() {
		fmt.Printf("market: %s\n", market)
	})
}

func (opts *MarketDecideCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	authority, err := s.key(opts.Authority)
	if err != nil {
		return err
	}
	if err := s.Decide(context.Background(), authority, opts.Market, opts.Result); err != nil {
		return err
	}
	return s.print(struct {
		Market string `json:"market"`
		Result string `json:"bestResult"`
	}{opts.Market.String(), opts.Result.String()}, func() {
		fmt.Printf("market %s decided for %s\n", opts.Market, opts.Result)
	})
}

type marketView struct {
	Market       string       `json:"market"`
	Authority    string       `json:"authority"`
	SearchString string       `json:"searchString"`
	ExpiresAt    uint64       `json:"expiresAt"`
	BestResult   string       `json:"bestResult,omitempty"`
	Results      []resultView `json:"results"`
}

type resultView struct {
	Result  string `json:"result"`
	URL     string `json:"url"`
	Name    string `json:"name"`
	Snippet string `json:"snippet,omitempty"`
	Yes     string `json:"yesClaimType"`
	No      string `json:"noClaimType"`
}

func newResultView(e node.ResultEntry) resultView {
	return resultView{
		Result:  e.ID.String(),
		URL:     e.Result.URL,
		Name:    e.Result.Name,
		Snippet: e.Result.Snippet,
		Yes:     e.Result.YesClaimType.String(),
		No:      e.Result.NoClaimType.String(),
	}
}

func (opts *MarketShowCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	m, err := s.Market(opts.Market)
	if err != nil {
		return err
	}
	results, err := s.Results(opts.Market)
	if err != nil {
		return err
	}
	v := marketView{
		Market:       opts.Market.String(),
		Authority:    m.Authority.String(),
		SearchString: m.SearchString,
		ExpiresAt:    m.ExpiresAt,
		Results:      make([]resultView, 0, len(results)),
	}
	if m.IsDecided() {
		v.BestResult = m.BestResult.String()
	}
	for _, r := range results {
		v.Results = append(v.Results, newResultView(r))
	}

	return s.print(v, func() {
		fmt.Printf("market:     %s\nsearch:     %q\nauthority:  %s\nexpires at: %d (height %d)\n",
			v.Market, v.SearchString, v.Authority, v.ExpiresAt, s.Ledger().Height())
		if v.BestResult != "" {
			fmt.Printf("decided:    %s\n", v.BestResult)
		}
		for _, r := range v.Results {
			fmt.Printf("\n  %s\n  %s %s\n  yes %s\n  no  %s\n", r.Result, r.Name, r.URL, r.Yes, r.No)
		}
	})
}

func Market(ctx context.Context, parser *flags.Parser) error {
	marketCmd = MarketCmd{}
	_, err := parser.AddCommand("market", "Manage search markets", "Create, decide and inspect search markets", &marketCmd)
	return err
}
