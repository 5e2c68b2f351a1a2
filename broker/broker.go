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

package broker

import (
	"sync"

	"code.vegaprotocol.io/searchmarket/core/events"
	"code.vegaprotocol.io/searchmarket/logging"

	"github.com/pkg/errors"
)

var ErrTooManyEvents = errors.New("too many events buffered")

// Subscriber receives committed events of the types it registered for.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/subscriber_mock.go -package mocks code.vegaprotocol.io/searchmarket/broker Subscriber
type Subscriber interface {
	Push(evts ...events.Event)
	Types() []events.Type
}

// Broker buffers the events emitted while a transaction executes. Commit
// publishes them to subscribers, Rollback drops them.
type Broker struct {
	log *logging.Logger
	cfg Config

	mu      sync.Mutex
	pending []events.Event
	seq     uint64
	subs    map[int]Subscriber
	keys    []int
	nextKey int
	err     error
}

func New(log *logging.Logger, cfg Config) *Broker {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())
	return &Broker{
		log:  log,
		cfg:  cfg,
		subs: map[int]Subscriber{},
	}
}

// ReloadConf updates the internal configuration.
func (b *Broker) ReloadConf(cfg Config) {
	b.log.Info("reloading configuration")
	if b.log.GetLevel() != cfg.Level.Get() {
		b.log.Info("updating log level",
			logging.String("old", b.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		b.log.SetLevel(cfg.Level.Get())
	}
	b.mu.Lock()
	b.cfg = cfg
	b.mu.Unlock()
}

// Send buffers the event until the current transaction completes.
func (b *Broker) Send(evt events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cfg.MaxBuffered > 0 && len(b.pending) >= b.cfg.MaxBuffered {
		if b.err == nil {
			b.err = errors.Wrapf(ErrTooManyEvents, "limit is %d", b.cfg.MaxBuffered)
			b.log.Error("dropping event", logging.String("type", evt.Type().String()), logging.Error(b.err))
		}
		return
	}
	b.pending = append(b.pending, evt)
}

// Err returns an error if events had to be dropped since the last commit
// or rollback.
func (b *Broker) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Commit assigns sequence ids to the buffered events and pushes them to
// the interested subscribers.
func (b *Broker) Commit() {
	b.mu.Lock()
	evts := b.pending
	b.pending = nil
	b.err = nil
	for _, e := range evts {
		b.seq++
		e.SetSequenceID(b.seq)
	}
	subs := make([]Subscriber, 0, len(b.keys))
	for _, k := range b.keys {
		subs = append(subs, b.subs[k])
	}
	b.mu.Unlock()

	if len(evts) == 0 {
		return
	}
	for _, s := range subs {
		if batch := filter(s, evts); len(batch) > 0 {
			s.Push(batch...)
		}
	}
	b.log.Debug("events published", logging.Int("count", len(evts)))
}

// Rollback drops the buffered events.
func (b *Broker) Rollback() {
	b.mu.Lock()
	n := len(b.pending)
	b.pending = nil
	b.err = nil
	b.mu.Unlock()
	if n > 0 {
		b.log.Debug("events discarded", logging.Int("count", n))
	}
}

// Subscribe registers s and returns the key used to unsubscribe.
func (b *Broker) Subscribe(s Subscriber) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextKey++
	b.subs[b.nextKey] = s
	b.keys = append(b.keys, b.nextKey)
	return b.nextKey
}

func (b *Broker) Unsubscribe(k int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[k]; !ok {
		return
	}
	delete(b.subs, k)
	for i, key := range b.keys {
		if key == k {
			b.keys = append(b.keys[:i], b.keys[i+1:]...)
			break
		}
	}
}

func filter(s Subscriber, evts []events.Event) []events.Event {
	types := s.Types()
	all := len(types) == 0
	want := map[events.Type]struct{}{}
	for _, t := range types {
		if t == events.All {
			all = true
		}
		want[t] = struct{}{}
	}
	if all {
		return evts
	}
	out := make([]events.Event, 0, len(evts))
	for _, e := range evts {
		if _, ok := want[e.Type()]; ok {
			out = append(out, e)
		}
	}
	return out
}
