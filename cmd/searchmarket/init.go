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

	"code.vegaprotocol.io/searchmarket/config"
	vgfs "code.vegaprotocol.io/searchmarket/libs/fs"
	"code.vegaprotocol.io/searchmarket/logging"
	"code.vegaprotocol.io/searchmarket/paths"

	"github.com/jessevdk/go-flags"
)

type InitCmd struct {
	config.HomeFlag

	Force bool `short:"f" long:"force" description:"Erase existing searchmarket configuration at the specified path"`
}

var initCmd InitCmd

func (opts *InitCmd) Execute(_ []string) error {
	logger := logging.NewLoggerFromConfig(logging.NewDefaultConfig())
	defer logger.AtExit()

	p := opts.Paths()
	cfgPath, err := p.CreateConfigPathFor(paths.NodeConfigFile)
	if err != nil {
		return fmt.Errorf("couldn't create configuration directory: %w", err)
	}

	configExists, err := vgfs.FileExists(cfgPath)
	if err != nil {
		return fmt.Errorf("couldn't verify configuration presence: %w", err)
	}
	if configExists && !opts.Force {
		return fmt.Errorf("configuration already exists at `%s` please remove it first or re-run using -f", cfgPath)
	}
	if configExists && opts.Force {
		if err := os.Remove(cfgPath); err != nil {
			return fmt.Errorf("couldn't remove configuration file: %w", err)
		}
	}

	cfg := config.NewDefaultConfig()
	if err := config.Write(cfgPath, &cfg); err != nil {
		return fmt.Errorf("couldn't save configuration file: %w", err)
	}
	if _, err := p.CreateStateDirFor(paths.LedgerStateHome); err != nil {
		return fmt.Errorf("couldn't initialise the ledger directory: %w", err)
	}
	if _, err := p.CreateDataDirFor(paths.KeysDataHome); err != nil {
		return fmt.Errorf("couldn't initialise the keys directory: %w", err)
	}

	logger.Info("configuration generated successfully", logging.String("path", cfgPath))
	return nil
}

func Init(ctx context.Context, parser *flags.Parser) error {
	initCmd = InitCmd{}

	short := "Initializes a searchmarket home"
	long := "Generate the configuration, the ledger and the key directories of a searchmarket home"

	_, err := parser.AddCommand("init", short, long, &initCmd)
	return err
}
