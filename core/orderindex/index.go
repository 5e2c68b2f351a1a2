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

// Package orderindex keeps a price/time ordered view of the open orders of
// every result, built from committed order events. It never matches
// anything, fills are always requested explicitly.
package orderindex

import (
	"sync"

	"code.vegaprotocol.io/searchmarket/core/events"
	"code.vegaprotocol.io/searchmarket/core/types"
	"code.vegaprotocol.io/searchmarket/logging"
	"code.vegaprotocol.io/searchmarket/metrics"

	"github.com/google/btree"
)

// Entry is an open order and its address.
type Entry struct {
	ID    types.Address
	Order types.Order
}

// BookID identifies the orders trading one claim type of a result.
type BookID struct {
	Result    types.Address
	ClaimType types.Address
}

type book struct {
	bids *btree.BTreeG[*Entry]
	asks *btree.BTreeG[*Entry]
}

// bids sort best first: highest price, then oldest.
func lessBid(a, b *Entry) bool {
	if a.Order.LimitPrice != b.Order.LimitPrice {
		return a.Order.LimitPrice > b.Order.LimitPrice
	}
	if a.Order.CreatedAt != b.Order.CreatedAt {
		return a.Order.CreatedAt < b.Order.CreatedAt
	}
	return a.ID.Compare(b.ID) < 0
}

// asks sort best first: lowest price, then oldest.
func lessAsk(a, b *Entry) bool {
	if a.Order.LimitPrice != b.Order.LimitPrice {
		return a.Order.LimitPrice < b.Order.LimitPrice
	}
	if a.Order.CreatedAt != b.Order.CreatedAt {
		return a.Order.CreatedAt < b.Order.CreatedAt
	}
	return a.ID.Compare(b.ID) < 0
}

func newBook() *book {
	return &book{
		bids: btree.NewG(2, lessBid),
		asks: btree.NewG(2, lessAsk),
	}
}

func (b *book) side(s types.Side) *btree.BTreeG[*Entry] {
	if s == types.SideBuy {
		return b.bids
	}
	return b.asks
}

type Index struct {
	log *logging.Logger

	mu    sync.RWMutex
	books map[BookID]*book
	byID  map[types.Address]*Entry
}

func New(log *logging.Logger) *Index {
	return &Index{
		log:   log.Named("orderindex"),
		books: map[BookID]*book{},
		byID:  map[types.Address]*Entry{},
	}
}

// Types implements the broker subscriber interface.
func (i *Index) Types() []events.Type {
	return []events.Type{
		events.OrderCreatedEvent,
		events.OrderFilledEvent,
		events.OrderCancelledEvent,
	}
}

// Push implements the broker subscriber interface.
func (i *Index) Push(evts ...events.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, e := range evts {
		switch evt := e.(type) {
		case *events.Order:
			i.upsert(evt.OrderID(), evt.Order())
		case *events.Fill:
			id, o := evt.Buy()
			i.upsert(id, o)
			id, o = evt.Sell()
			i.upsert(id, o)
		default:
			i.log.Debug("ignoring event", logging.String("type", e.Type().String()))
		}
	}
}

// Add records an order loaded from the ledger.
func (i *Index) Add(id types.Address, o types.Order) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.upsert(id, o)
}

// upsert replaces the known state of an order, exhausted orders leave the
// index.
func (i *Index) upsert(id types.Address, o types.Order) {
	if !o.Side.IsValid() {
		return
	}
	if old, ok := i.byID[id]; ok {
		i.books[bookID(&old.Order)].side(old.Order.Side).Delete(old)
		delete(i.byID, id)
		metrics.OpenOrdersAdd(-1, old.Order.Side.String())
	}
	if o.IsExhausted() {
		return
	}
	k := bookID(&o)
	b, ok := i.books[k]
	if !ok {
		b = newBook()
		i.books[k] = b
	}
	e := &Entry{ID: id, Order: o}
	b.side(o.Side).ReplaceOrInsert(e)
	i.byID[id] = e
	metrics.OpenOrdersAdd(1, o.Side.String())
}

func bookID(o *types.Order) BookID {
	return BookID{Result: o.Result, ClaimType: o.ClaimType}
}

// Get returns an open order.
func (i *Index) Get(id types.Address) (Entry, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	e, ok := i.byID[id]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Len returns the number of open orders.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}

// Bids returns the open buy orders of a book, best first.
func (i *Index) Bids(id BookID) []Entry {
	return i.list(id, types.SideBuy)
}

// Asks returns the open sell orders of a book, best first.
func (i *Index) Asks(id BookID) []Entry {
	return i.list(id, types.SideSell)
}

func (i *Index) list(id BookID, s types.Side) []Entry {
	i.mu.RLock()
	defer i.mu.RUnlock()
	b, ok := i.books[id]
	if !ok {
		return nil
	}
	tree := b.side(s)
	out := make([]Entry, 0, tree.Len())
	tree.Ascend(func(e *Entry) bool {
		out = append(out, *e)
		return true
	})
	return out
}

// Crossing returns the best bid and ask of a book when the bid limit is
// at or above the ask limit, that is when a fill would succeed.
func (i *Index) Crossing(id BookID) (bid, ask Entry, ok bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	b, found := i.books[id]
	if !found {
		return Entry{}, Entry{}, false
	}
	bestBid, hasBid := b.bids.Min()
	bestAsk, hasAsk := b.asks.Min()
	if !hasBid || !hasAsk || bestBid.Order.LimitPrice < bestAsk.Order.LimitPrice {
		return Entry{}, Entry{}, false
	}
	return *bestBid, *bestAsk, true
}
