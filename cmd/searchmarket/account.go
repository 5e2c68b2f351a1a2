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

	"code.vegaprotocol.io/searchmarket/core/token"
	"code.vegaprotocol.io/searchmarket/core/types"

	"github.com/jessevdk/go-flags"
)

type AccountCmd struct {
	Show AccountShowCmd `command:"show" description:"Show an account and the record it holds"`
}

type AccountShowCmd struct {
	LedgerFlags

	Address types.Address `long:"address" description:"Address of the account"`
	Key     string        `long:"key" description:"Name of a key, instead of --address"`
}

var accountCmd AccountCmd

type accountView struct {
	Address  string      `json:"address"`
	Owner    string      `json:"owner"`
	Lamports uint64      `json:"lamports"`
	Type     string      `json:"type"`
	Record   interface{} `json:"record,omitempty"`
}

func (opts *AccountShowCmd) Execute(_ []string) error {
	s, err := opts.open()
	if err != nil {
		return err
	}
	defer s.Close()

	addr := opts.Address
	if opts.Key != "" {
		k, err := s.key(opts.Key)
		if err != nil {
			return err
		}
		addr = k.Address()
	}
	acc, err := s.Ledger().Account(addr)
	if err != nil {
		return err
	}

	v := accountView{
		Address:  acc.Address.String(),
		Owner:    acc.Owner.String(),
		Lamports: acc.Lamports,
		Type:     types.RecordType(acc.Data).String(),
	}
	v.Record, err = decodeRecord(acc)
	if err != nil {
		return err
	}

	return s.print(v, func() {
		fmt.Printf("address:  %s\nowner:    %s\nlamports: %d\ntype:     %s\n", v.Address, v.Owner, v.Lamports, v.Type)
		if v.Record != nil {
			fmt.Printf("record:   %+v\n", v.Record)
		}
	})
}

func decodeRecord(acc *types.Account) (interface{}, error) {
	switch types.RecordType(acc.Data) {
	case types.AccountTypeMarket:
		return types.MarketFromAccount(acc)
	case types.AccountTypeResult:
		return types.ResultFromAccount(acc)
	case types.AccountTypeOrder:
		return types.OrderFromAccount(acc)
	case types.AccountTypeMint:
		return token.MintFromAccount(acc)
	case types.AccountTypeTokenAccount:
		return token.AccountFromAccount(acc)
	default:
		return nil, nil
	}
}

func Account(ctx context.Context, parser *flags.Parser) error {
	accountCmd = AccountCmd{}
	_, err := parser.AddCommand("account", "Inspect ledger accounts", "Inspect the accounts of the local ledger", &accountCmd)
	return err
}
