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

// Package ledger hosts programs the way a chain would: it stores the
// accounts, verifies signatures, runs the instructions of a transaction
// against a working copy and commits it only when all of them succeed.
package ledger

import (
	"context"
	"sync"
	"sync/atomic"

	"code.vegaprotocol.io/searchmarket/core/types"
	vgcontext "code.vegaprotocol.io/searchmarket/libs/context"
	"code.vegaprotocol.io/searchmarket/libs/num"
	"code.vegaprotocol.io/searchmarket/logging"
	"code.vegaprotocol.io/searchmarket/metrics"
	"code.vegaprotocol.io/searchmarket/wallet"

	"github.com/pkg/errors"
)

var (
	ErrUnknownProgram         = errors.New("unknown program")
	ErrInvalidSignature       = errors.New("invalid signature")
	ErrMissingSignature       = errors.New("missing signature")
	ErrDuplicateTransaction   = errors.New("transaction already processed")
	ErrEmptyTransaction       = errors.New("transaction has no instructions")
	ErrAirdropDisabled        = errors.New("airdrops are disabled")
	ErrAirdropTooLarge        = errors.New("airdrop too large")
	ErrLamportsNotConserved   = errors.New("lamports not conserved")
	ErrAccountOwnedByProgram  = errors.New("cannot airdrop to a program account")
	ErrEventBufferOverflowing = errors.New("event buffer overflowing")
)

// Program executes the instructions addressed to it.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/mocks.go -package mocks code.vegaprotocol.io/searchmarket/core/ledger Program,Broker
type Program interface {
	Process(ctx context.Context, accounts []*types.Account, data []byte) error
}

// Broker receives the events of a transaction, they are published only if
// the transaction commits.
type Broker interface {
	Commit()
	Rollback()
	Err() error
}

type Ledger struct {
	log *logging.Logger
	cfg Config

	store    *Store
	broker   Broker
	programs map[types.Address]Program

	// mu serialises transactions and height changes. The height is read
	// by programs while a transaction holds mu.
	mu     sync.Mutex
	height atomic.Uint64
}

// New opens the ledger on top of store.
func New(log *logging.Logger, cfg Config, store *Store, broker Broker) (*Ledger, error) {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	height, err := store.Height()
	if err != nil {
		return nil, err
	}
	metrics.LedgerHeightSet(height)
	l := &Ledger{
		log:      log,
		cfg:      cfg,
		store:    store,
		broker:   broker,
		programs: map[types.Address]Program{},
	}
	l.height.Store(height)
	return l, nil
}

// ReloadConf updates the internal configuration.
func (l *Ledger) ReloadConf(cfg Config) {
	l.log.Info("reloading configuration")
	if l.log.GetLevel() != cfg.Level.Get() {
		l.log.Info("updating log level",
			logging.String("old", l.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		l.log.SetLevel(cfg.Level.Get())
	}
	l.mu.Lock()
	l.cfg = cfg
	l.mu.Unlock()
}

// Register routes instructions addressed to id to p.
func (l *Ledger) Register(id types.Address, p Program) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.programs[id] = p
	l.log.Debug("program registered", logging.Stringer("program", id))
}

// Height is the clock programs read deadlines and creation times from.
func (l *Ledger) Height() uint64 {
	return l.height.Load()
}

// Tick advances the height by n.
func (l *Ledger) Tick(n uint64) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	current := l.height.Load()
	h, overflow := num.Total(current, n)
	if overflow {
		return current, types.ErrArithmeticOverflow
	}
	if err := l.store.SetHeight(h); err != nil {
		return current, err
	}
	l.height.Store(h)
	metrics.LedgerHeightSet(h)
	l.log.Debug("height advanced", logging.Uint64("height", h))
	return h, nil
}

func (l *Ledger) Account(addr types.Address) (*types.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Account(addr)
}

// Accounts lists the accounts owned by owner.
func (l *Ledger) Accounts(owner types.Address) ([]*types.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Accounts(owner)
}

// Airdrop credits lamports to a system account out of thin air. It is the
// only way lamports enter the ledger.
func (l *Ledger) Airdrop(addr types.Address, amount uint64) (*types.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cfg.MaxAirdrop == 0 {
		return nil, ErrAirdropDisabled
	}
	if amount > l.cfg.MaxAirdrop {
		return nil, errors.Wrapf(ErrAirdropTooLarge, "max is %d", l.cfg.MaxAirdrop)
	}
	acc, err := l.store.Account(addr)
	if err != nil {
		return nil, err
	}
	if !acc.OwnedBy(types.NoAddress) {
		return nil, errors.Wrapf(ErrAccountOwnedByProgram, "%s is owned by %s", addr, acc.Owner)
	}
	balance, overflow := num.Total(acc.Lamports, amount)
	if overflow {
		return nil, types.ErrArithmeticOverflow
	}
	acc.Lamports = balance
	if err := l.store.Commit("", l.height.Load(), []*types.Account{acc}); err != nil {
		return nil, err
	}
	l.log.Info("airdrop",
		logging.Stringer("account", addr),
		logging.Uint64("amount", amount))
	return acc, nil
}

// Submit runs tx and returns its id. Either every instruction succeeds and
// all the changes and events are committed, or nothing is.
func (l *Ledger) Submit(ctx context.Context, tx *Transaction) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := tx.ID()
	if err := l.submit(ctx, id, tx); err != nil {
		l.broker.Rollback()
		metrics.TransactionCounterInc("rejected")
		l.log.Debug("transaction rejected",
			logging.String("tx-id", id),
			logging.Error(err))
		return id, err
	}
	l.broker.Commit()
	metrics.TransactionCounterInc("committed")
	l.log.Debug("transaction committed",
		logging.String("tx-id", id),
		logging.Int("instructions", len(tx.Instructions)))
	return id, nil
}

func (l *Ledger) submit(ctx context.Context, id string, tx *Transaction) error {
	if len(tx.Instructions) == 0 {
		return ErrEmptyTransaction
	}
	seen, err := l.store.HasTransaction(id)
	if err != nil {
		return err
	}
	if seen {
		return errors.Wrapf(ErrDuplicateTransaction, "%s", id)
	}
	signed, err := verify(tx)
	if err != nil {
		return err
	}

	ctx = vgcontext.WithTxID(ctx, id)
	ctx = vgcontext.WithBlockHeight(ctx, l.height.Load())

	ws := newWorkingSet(l.store)
	for i, ix := range tx.Instructions {
		if err := l.execute(ctx, ws, signed, ix); err != nil {
			return errors.Wrapf(err, "instruction %d", i)
		}
	}
	if err := ws.checkConservation(); err != nil {
		return err
	}
	if err := l.broker.Err(); err != nil {
		return errors.Wrap(ErrEventBufferOverflowing, err.Error())
	}
	return l.store.Commit(id, l.height.Load(), ws.changed())
}

func (l *Ledger) execute(ctx context.Context, ws *workingSet, signed map[types.Address]bool, ix types.Instruction) error {
	p, ok := l.programs[ix.Program]
	if !ok {
		return errors.Wrapf(ErrUnknownProgram, "%s", ix.Program)
	}

	accounts, err := ws.load(ix.Accounts, signed)
	if err != nil {
		return err
	}
	readOnly := ws.snapshotReadOnly(accounts)
	if err := p.Process(ctx, accounts, ix.Data); err != nil {
		return err
	}
	for _, before := range readOnly {
		if after := ws.accounts[before.Address]; !after.Equal(before) {
			return errors.Wrapf(types.ErrReadOnlyAccountModified, "%s", before.Address)
		}
	}
	return nil
}

// verify checks every signature and returns the set of addresses which
// signed. Every address an instruction marks as signer must have signed.
func verify(tx *Transaction) (map[types.Address]bool, error) {
	msg := tx.Message()
	signed := map[types.Address]bool{}
	for _, s := range tx.Signatures {
		if !wallet.Verify(s.Signer, msg, s.Sig) {
			return nil, errors.Wrapf(ErrInvalidSignature, "from %s", s.Signer)
		}
		signed[s.Signer] = true
	}
	for _, addr := range tx.RequiredSigners() {
		if !signed[addr] {
			return nil, errors.Wrapf(ErrMissingSignature, "from %s", addr)
		}
	}
	return signed, nil
}
