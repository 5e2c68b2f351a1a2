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
	"time"

	"code.vegaprotocol.io/searchmarket/cmd/searchmarket/node"
	"code.vegaprotocol.io/searchmarket/config"
	"code.vegaprotocol.io/searchmarket/logging"
	"code.vegaprotocol.io/searchmarket/metrics"
	"code.vegaprotocol.io/searchmarket/paths"

	"github.com/jessevdk/go-flags"
)

// NodeCmd advances the ledger height at every block interval. The ledger
// is only held while a block is produced so commands can run in between.
type NodeCmd struct {
	config.HomeFlag

	Blocks uint64 `long:"blocks" description:"Stop after producing this many blocks, run until interrupted when 0"`

	ctx context.Context
}

var nodeCmd NodeCmd

type blockProducer struct {
	log       *logging.Logger
	cfg       config.Config
	storePath string
	produced  uint64
}

// produce opens the ledger and advances it by one block. A block is
// skipped when another process holds the ledger.
func (b *blockProducer) produce() {
	n, err := node.New(b.log, b.cfg, b.storePath)
	if err != nil {
		b.log.Debug("ledger busy, skipping block", logging.Error(err))
		return
	}
	defer func() {
		if err := n.Close(); err != nil {
			b.log.Error("couldn't close the ledger", logging.Error(err))
		}
	}()

	h, err := n.Ledger().Tick(1)
	if err != nil {
		b.log.Error("couldn't advance the height", logging.Error(err))
		return
	}
	b.produced++
	b.log.Debug("block produced", logging.Uint64("height", h))
}

func (opts *NodeCmd) Execute(_ []string) error {
	ctx, cancel := context.WithCancel(opts.ctx)
	defer cancel()

	p := opts.Paths()
	cfgPath, cfg, err := config.EnsureNodeConfig(p)
	if err != nil {
		return err
	}
	log := logging.NewLoggerFromConfig(cfg.Logging)
	defer log.AtExit()

	storePath, err := p.CreateStateDirFor(paths.LedgerStateHome)
	if err != nil {
		return err
	}
	watcher, err := config.NewWatcher(ctx, log, cfgPath)
	if err != nil {
		return err
	}
	if err := metrics.Start(log, cfg.Metrics); err != nil {
		return err
	}

	b := &blockProducer{
		log:       log,
		cfg:       *cfg,
		storePath: storePath,
	}
	ticker := time.NewTicker(cfg.BlockInterval.Get())
	defer ticker.Stop()

	watcher.OnConfigUpdate(func(c config.Config) {
		log.SetLevel(c.Logging.Level)
		if c.BlockInterval.Get() != b.cfg.BlockInterval.Get() {
			log.Info("updating block interval",
				logging.String("old", b.cfg.BlockInterval.String()),
				logging.String("new", c.BlockInterval.String()))
			ticker.Reset(c.BlockInterval.Get())
		}
		b.cfg = c
	})

	log.Info("node started",
		logging.String("ledger", storePath),
		logging.String("block-interval", cfg.BlockInterval.String()))

	for {
		select {
		case <-ctx.Done():
			log.Info("node stopped", logging.Uint64("blocks", b.produced))
			return nil
		case <-ticker.C:
			watcher.Apply()
			b.produce()
			if opts.Blocks > 0 && b.produced >= opts.Blocks {
				cancel()
			}
		}
	}
}

func Node(ctx context.Context, parser *flags.Parser) error {
	nodeCmd = NodeCmd{ctx: ctx}

	short := "Runs the searchmarket node"
	long := "Advance the ledger height at every block interval and expose the metrics, reloading the configuration on change"

	_, err := parser.AddCommand("node", short, long, &nodeCmd)
	return err
}
