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

// Package node wires the search market program and its collaborators on
// top of a local ledger.
package node

import (
	"fmt"

	"code.vegaprotocol.io/searchmarket/broker"
	"code.vegaprotocol.io/searchmarket/config"
	"code.vegaprotocol.io/searchmarket/core/collateral"
	"code.vegaprotocol.io/searchmarket/core/derive"
	"code.vegaprotocol.io/searchmarket/core/ledger"
	"code.vegaprotocol.io/searchmarket/core/markets"
	"code.vegaprotocol.io/searchmarket/core/native"
	"code.vegaprotocol.io/searchmarket/core/orderindex"
	"code.vegaprotocol.io/searchmarket/core/orders"
	"code.vegaprotocol.io/searchmarket/core/processor"
	"code.vegaprotocol.io/searchmarket/core/token"
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/logging"
)

type Node struct {
	log *logging.Logger

	store      *ledger.Store
	broker     *broker.Broker
	ledger     *ledger.Ledger
	deriver    *derive.Deriver
	tokens     *token.Engine
	native     *native.Engine
	markets    *markets.Engine
	collateral *collateral.Engine
	orders     *orders.Engine
	processor  *processor.Processor
	index      *orderindex.Index
}

// New opens the ledger stored at storePath, or an in memory one if the
// configuration asks for it, and registers the programs.
func New(log *logging.Logger, cfg config.Config, storePath string) (*Node, error) {
	var (
		store *ledger.Store
		err   error
	)
	if cfg.Ledger.InMemory {
		store, err = ledger.NewMemStore()
	} else {
		store, err = ledger.OpenStore(storePath)
	}
	if err != nil {
		return nil, err
	}

	n := &Node{
		log:   log,
		store: store,
	}
	if err := n.setupEngines(cfg); err != nil {
		_ = store.Close()
		return nil, err
	}
	return n, nil
}

func (n *Node) setupEngines(cfg config.Config) (err error) {
	n.broker = broker.New(n.log, cfg.Broker)
	n.ledger, err = ledger.New(n.log, cfg.Ledger, n.store, n.broker)
	if err != nil {
		return fmt.Errorf("couldn't open the ledger: %w", err)
	}
	n.deriver, err = derive.NewDeriver(cfg.DeriveCacheSize)
	if err != nil {
		return fmt.Errorf("couldn't create the address deriver: %w", err)
	}

	n.tokens = token.New(n.log, cfg.Token)
	n.native = native.New(n.log)
	n.markets = markets.NewEngine(n.log, cfg.Markets, processor.ProgramID, n.deriver, n.tokens, n.ledger, n.broker)
	n.collateral = collateral.NewEngine(n.log, cfg.Collateral, processor.ProgramID, n.deriver, n.tokens, n.native, n.ledger, n.broker)
	n.orders = orders.NewEngine(n.log, cfg.Orders, processor.ProgramID, n.deriver, n.tokens, n.native, n.ledger, n.broker)
	n.processor = processor.New(n.log, cfg.Processor, n.markets, n.collateral, n.orders)

	n.ledger.Register(native.ProgramID, n.native)
	n.ledger.Register(token.ProgramID, n.tokens)
	n.ledger.Register(processor.ProgramID, n.processor)

	n.index = orderindex.New(n.log)
	n.broker.Subscribe(n.index)
	return nil
}

// ReloadConf hands a new configuration to every engine. It must not run
// concurrently with a transaction.
func (n *Node) ReloadConf(cfg config.Config) {
	n.broker.ReloadConf(cfg.Broker)
	n.ledger.ReloadConf(cfg.Ledger)
	n.tokens.ReloadConf(cfg.Token)
	n.markets.ReloadConf(cfg.Markets)
	n.collateral.ReloadConf(cfg.Collateral)
	n.orders.ReloadConf(cfg.Orders)
	n.processor.ReloadConf(cfg.Processor)
}

func (n *Node) Close() error {
	return n.store.Close()
}

func (n *Node) Ledger() *ledger.Ledger {
	return n.ledger
}

func (n *Node) Index() *orderindex.Index {
	return n.index
}

// LoadOrderIndex fills the order index with the open orders stored in the
// ledger, the index only sees events of the running process otherwise.
func (n *Node) LoadOrderIndex() error {
	accounts, err := n.ledger.Accounts(processor.ProgramID)
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		if types.RecordType(acc.Data) != types.AccountTypeOrder {
			continue
		}
		o, err := types.OrderFromAccount(acc)
		if err != nil {
			n.log.Warn("skipping unreadable order",
				logging.Stringer("order", acc.Address),
				logging.Error(err))
			continue
		}
		n.index.Add(acc.Address, *o)
	}
	return nil
}
