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

	"code.vegaprotocol.io/searchmarket/config"
	vgjson "code.vegaprotocol.io/searchmarket/libs/json"
	"code.vegaprotocol.io/searchmarket/paths"

	"github.com/jessevdk/go-flags"
)

type PathsCmd struct {
	List PathsListCmd `command:"list" description:"List the location where the searchmarket files are stored"`
}

type PathsListCmd struct {
	config.HomeFlag
	config.OutputFlag
}

var pathsCmd PathsCmd

func (opts *PathsListCmd) Execute(_ []string) error {
	output, err := opts.GetOutput()
	if err != nil {
		return err
	}
	p := opts.Paths()
	list := struct {
		Config string `json:"config"`
		Ledger string `json:"ledger"`
		Keys   string `json:"keys"`
	}{
		Config: p.ConfigPathFor(paths.NodeConfigFile),
		Ledger: p.StatePathFor(paths.LedgerStateHome),
		Keys:   p.DataPathFor(paths.KeysDataHome),
	}
	if output.IsJSON() {
		return vgjson.Print(list)
	}
	fmt.Printf("config: %s\nledger: %s\nkeys:   %s\n", list.Config, list.Ledger, list.Keys)
	return nil
}

func Paths(ctx context.Context, parser *flags.Parser) error {
	pathsCmd = PathsCmd{}

	var (
		short = "Manages the searchmarket paths"
		long  = `
			The configuration, the ledger and the key files are stored following the
			XDG Base Directory specification, unless a custom location is given with
			the --home flag. In that case they are grouped under the config, state and
			data folders at that location.`
	)

	_, err := parser.AddCommand("paths", short, long, &pathsCmd)
	return err
}
