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
	"os"
	"sort"
	"strings"

	"code.vegaprotocol.io/searchmarket/config"
	vgjson "code.vegaprotocol.io/searchmarket/libs/json"
	"code.vegaprotocol.io/searchmarket/paths"
	"code.vegaprotocol.io/searchmarket/wallet"

	"github.com/jessevdk/go-flags"
)

type KeysCmd struct {
	Generate KeysGenerateCmd `command:"generate" description:"Generate a new key"`
	Show     KeysShowCmd     `command:"show" description:"Show the address of a key"`
	List     KeysListCmd     `command:"list" description:"List the known keys"`
}

type KeysGenerateCmd struct {
	config.HomeFlag
	config.OutputFlag

	Name string `long:"name" required:"true" description:"Name of the key"`
}

type KeysShowCmd struct {
	config.HomeFlag
	config.OutputFlag

	Name string `long:"name" required:"true" description:"Name of the key"`
}

type KeysListCmd struct {
	config.HomeFlag
	config.OutputFlag
}

type keyView struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

var keysCmd KeysCmd

func (opts *KeysGenerateCmd) Execute(_ []string) error {
	output, err := opts.GetOutput()
	if err != nil {
		return err
	}
	p := opts.Paths()
	path, err := p.CreateDataPathFor(paths.KeyFileFor(opts.Name))
	if err != nil {
		return err
	}
	k, err := wallet.GenerateKeypair()
	if err != nil {
		return err
	}
	if err := k.Save(path); err != nil {
		return fmt.Errorf("couldn't save key %q: %w", opts.Name, err)
	}
	return printKey(output, keyView{Name: opts.Name, Address: k.Address().String()})
}

func (opts *KeysShowCmd) Execute(_ []string) error {
	output, err := opts.GetOutput()
	if err != nil {
		return err
	}
	k, err := loadKey(opts.Paths(), opts.Name)
	if err != nil {
		return err
	}
	return printKey(output, keyView{Name: opts.Name, Address: k.Address().String()})
}

func (opts *KeysListCmd) Execute(_ []string) error {
	output, err := opts.GetOutput()
	if err != nil {
		return err
	}
	p := opts.Paths()
	entries, err := os.ReadDir(p.DataPathFor(paths.KeysDataHome))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	views := []keyView{}
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok {
			continue
		}
		k, err := loadKey(p, name)
		if err != nil {
			return err
		}
		views = append(views, keyView{Name: name, Address: k.Address().String()})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	if output.IsJSON() {
		return vgjson.Print(views)
	}
	for _, v := range views {
		if err := printKey(output, v); err != nil {
			return err
		}
	}
	return nil
}

func printKey(output config.Output, v keyView) error {
	if output.IsJSON() {
		return vgjson.Print(v)
	}
	fmt.Printf("%s\t%s\n", v.Name, v.Address)
	return nil
}

func Keys(ctx context.Context, parser *flags.Parser) error {
	keysCmd = KeysCmd{}
	_, err := parser.AddCommand("keys", "Manage signing keys", "Generate and inspect the ed25519 keys signing transactions", &keysCmd)
	return err
}
