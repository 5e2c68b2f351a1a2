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
	"fmt"
	"time"

	"code.vegaprotocol.io/searchmarket/cmd/searchmarket/node"
	"code.vegaprotocol.io/searchmarket/config"
	vgjson "code.vegaprotocol.io/searchmarket/libs/json"
	"code.vegaprotocol.io/searchmarket/logging"
	"code.vegaprotocol.io/searchmarket/paths"
	"code.vegaprotocol.io/searchmarket/wallet"

	"github.com/cenkalti/backoff/v4"
)

// LedgerFlags are shared by the commands reading or writing the ledger.
type LedgerFlags struct {
	config.HomeFlag
	config.OutputFlag

	Timeout time.Duration `long:"timeout" default:"10s" description:"How long to wait for a running node to release the ledger"`
}

// session is a node opened for the lifetime of a single command.
type session struct {
	*node.Node

	log    *logging.Logger
	paths  paths.Paths
	output config.Output
}

// open loads the configuration of the home and opens its ledger. Only
// one process can hold the ledger, so opening is retried until Timeout.
func (f LedgerFlags) open() (*session, error) {
	output, err := f.GetOutput()
	if err != nil {
		return nil, err
	}
	p := f.Paths()
	_, cfg, err := config.EnsureNodeConfig(p)
	if err != nil {
		return nil, err
	}
	log := logging.NewLoggerFromConfig(cfg.Logging)

	storePath, err := p.CreateStateDirFor(paths.LedgerStateHome)
	if err != nil {
		return nil, err
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 100 * time.Millisecond
	expBackoff.MaxInterval = time.Second
	expBackoff.MaxElapsedTime = f.Timeout

	var n *node.Node
	err = backoff.Retry(func() (opErr error) {
		n, opErr = node.New(log, *cfg, storePath)
		return opErr
	}, expBackoff)
	if err != nil {
		log.AtExit()
		return nil, fmt.Errorf("couldn't open the ledger at %s: %w", storePath, err)
	}

	return &session{
		Node:   n,
		log:    log,
		paths:  p,
		output: output,
	}, nil
}

func (s *session) Close() {
	if err := s.Node.Close(); err != nil {
		s.log.Error("couldn't close the ledger", logging.Error(err))
	}
	s.log.AtExit()
}

func (s *session) key(name string) (*wallet.Keypair, error) {
	return loadKey(s.paths, name)
}

// print writes v as JSON, or hands over to human otherwise.
func (s *session) print(v interface{}, human func()) error {
	if s.output.IsJSON() {
		return vgjson.Print(v)
	}
	human()
	return nil
}

func loadKey(p paths.Paths, name string) (*wallet.Keypair, error) {
	k, err := wallet.LoadKeypair(p.DataPathFor(paths.KeyFileFor(name)))
	if err != nil {
		return nil, fmt.Errorf("couldn't load key %q: %w", name, err)
	}
	return k, nil
}
