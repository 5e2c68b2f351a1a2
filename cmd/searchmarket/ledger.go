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

	"code.vegaprotocol.io/searchmarket/core/types"

	"github.com/jessevdk/go-flags"
)

type AirdropCmd struct {
	LedgerFlags

	To     types.Address `long:"to" description:"Address credited"`
	Key    string        `long:"key" description:"Name of the key credited, instead of --to"`
	Amount uint64        `long:"amount" required:"true" description:"Lamports to credit"`
}

var airdropCmd AirdropCmd

func (opts *AirdropCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	to := opts.To
	if opts.Key != "" {
		k, err := s.key(opts.Key)
		if err != nil {
			return err
		}
		to = k.Address()
	}
	if to.IsZero() {
		return fmt.Errorf("one of --to or --key is required")
	}

	acc, err := s.Ledger().Airdrop(to, opts.Amount)
	if err != nil {
		return err
	}
	return s.print(struct {
		Address  string `json:"address"`
		Lamports uint64 `json:"lamports"`
	}{acc.Address.String(), acc.Lamports}, func() {
		fmt.Printf("%s now holds %d lamports\n", acc.Address, acc.Lamports)
	})
}

func Airdrop(ctx context.Context, parser *flags.Parser) error {
	airdropCmd = AirdropCmd{}
	_, err := parser.AddCommand("airdrop", "Credit lamports to an account", "Credit lamports to a system account of the local ledger", &airdropCmd)
	return err
}

type TickCmd struct {
	LedgerFlags

	Blocks uint64 `long:"blocks" default:"1" description:"Number of blocks to advance the height by"`
}

var tickCmd TickCmd

func (opts *TickCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	h, err := s.Ledger().Tick(opts.Blocks)
	if err != nil {
		return err
	}
	return s.print(struct {
		Height uint64 `json:"height"`
	}{h}, func() {
		fmt.Printf("height: %d\n", h)
	})
}

func Tick(ctx context.Context, parser *flags.Parser) error {
	tickCmd = TickCmd{}
	_, err := parser.AddCommand("tick", "Advance the ledger height", "Advance the height market deadlines are checked against, without running a node", &tickCmd)
	return err
}
