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

package ledger

import (
	"encoding/binary"
	"fmt"

	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/libs/codec"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	accountPrefix = []byte("a/")
	txPrefix      = []byte("t/")
	heightKey     = []byte("h")
)

// Store persists accounts, the ledger height and the ids of the committed
// transactions.
type Store struct {
	db *leveldb.DB
}

// OpenStore opens the database at path, creating it if needed.
func OpenStore(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{
		Filter:          filter.NewBloomFilter(10),
		BlockCacher:     opt.NoCacher,
		OpenFilesCacher: opt.NoCacher,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open the ledger database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewMemStore returns a store which lives in memory.
func NewMemStore() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not open the in memory ledger database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func accountKey(addr types.Address) []byte {
	return append(append([]byte{}, accountPrefix...), addr.Bytes()...)
}

func txKey(id string) []byte {
	return append(append([]byte{}, txPrefix...), id...)
}

// Account returns the stored account. An address never written is an
// empty account of the system program.
func (s *Store) Account(addr types.Address) (*types.Account, error) {
	b, err := s.db.Get(accountKey(addr), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return &types.Account{Address: addr, Owner: types.NoAddress}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeAccount(addr, b)
}

// Accounts returns every stored account owned by owner.
func (s *Store) Accounts(owner types.Address) ([]*types.Account, error) {
	it := s.db.NewIterator(util.BytesPrefix(accountPrefix), nil)
	defer it.Release()

	out := []*types.Account{}
	for it.Next() {
		addr, err := types.AddressFromBytes(it.Key()[len(accountPrefix):])
		if err != nil {
			return nil, err
		}
		acc, err := decodeAccount(addr, it.Value())
		if err != nil {
			return nil, err
		}
		if acc.OwnedBy(owner) {
			out = append(out, acc)
		}
	}
	return out, it.Error()
}

func (s *Store) Height() (uint64, error) {
	b, err := s.db.Get(heightKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(b) != 8 {
		return 0, errors.New("corrupted ledger height")
	}
	return binary.BigEndian.Uint64(b), nil
}

func (s *Store) SetHeight(h uint64) error {
	return s.db.Put(heightKey, binary.BigEndian.AppendUint64(nil, h), nil)
}

func (s *Store) HasTransaction(id string) (bool, error) {
	return s.db.Has(txKey(id), nil)
}

// Commit writes the accounts and records the transaction in a single
// atomic batch.
func (s *Store) Commit(txID string, height uint64, accounts []*types.Account) error {
	b := new(leveldb.Batch)
	for _, acc := range accounts {
		b.Put(accountKey(acc.Address), encodeAccount(acc))
	}
	if txID != "" {
		b.Put(txKey(txID), binary.BigEndian.AppendUint64(nil, height))
	}
	return s.db.Write(b, &opt.WriteOptions{Sync: true})
}

func encodeAccount(acc *types.Account) []byte {
	return codec.NewEncoder().
		Bytes(1, acc.Owner.Bytes()).
		Uint(2, acc.Lamports).
		Bytes(3, acc.Data).
		Encode()
}

func decodeAccount(addr types.Address, b []byte) (*types.Account, error) {
	acc := &types.Account{Address: addr}
	err := codec.Decode(b, func(f codec.Field) (err error) {
		switch f.Num {
		case 1:
			if err = f.Expect(protowire.BytesType); err == nil {
				acc.Owner, err = types.AddressFromBytes(f.Bytes)
			}
		case 2:
			acc.Lamports = f.Varint
			err = f.Expect(protowire.VarintType)
		case 3:
			if err = f.Expect(protowire.BytesType); err == nil {
				acc.Data = append([]byte(nil), f.Bytes...)
			}
		}
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "corrupted account %s", addr)
	}
	return acc, nil
}
