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

package events

import (
	"context"

	"code.vegaprotocol.io/searchmarket/core/types"
	vgcontext "code.vegaprotocol.io/searchmarket/libs/context"
)

type Type int

const (
	// All is used by subscribers to receive every event, it has no payload.
	All Type = iota
	MarketCreatedEvent
	ResultCreatedEvent
	MarketDecidedEvent
	CollateralDepositedEvent
	CollateralWithdrawnEvent
	OrderCreatedEvent
	OrderFilledEvent
	OrderCancelledEvent
)

var typeNames = map[Type]string{
	All:                      "ALL",
	MarketCreatedEvent:       "MARKET_CREATED",
	ResultCreatedEvent:       "RESULT_CREATED",
	MarketDecidedEvent:       "MARKET_DECIDED",
	CollateralDepositedEvent: "COLLATERAL_DEPOSITED",
	CollateralWithdrawnEvent: "COLLATERAL_WITHDRAWN",
	OrderCreatedEvent:        "ORDER_CREATED",
	OrderFilledEvent:         "ORDER_FILLED",
	OrderCancelledEvent:      "ORDER_CANCELLED",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Event is what instruction handlers emit. Events are buffered per
// transaction and only published once the transaction committed.
type Event interface {
	Type() Type
	Context() context.Context
	TraceID() string
	TxID() string
	Height() uint64
	Sequence() uint64
	SetSequenceID(s uint64)
}

// Base common denominator all events share.
type Base struct {
	ctx     context.Context
	traceID string
	txID    string
	height  uint64
	seq     uint64
	et      Type
}

func newBase(ctx context.Context, t Type) *Base {
	ctx, tID := vgcontext.TraceIDFromContext(ctx)
	h, _ := vgcontext.BlockHeightFromContext(ctx)
	txID, _ := vgcontext.TxIDFromContext(ctx)
	return &Base{
		ctx:     ctx,
		traceID: tID,
		txID:    txID,
		height:  h,
		et:      t,
	}
}

func (b Base) Type() Type {
	return b.et
}

func (b Base) Context() context.Context {
	return b.ctx
}

func (b Base) TraceID() string {
	return b.traceID
}

func (b Base) TxID() string {
	return b.txID
}

func (b Base) Height() uint64 {
	return b.height
}

func (b Base) Sequence() uint64 {
	return b.seq
}

// SetSequenceID only sets the sequence once.
func (b *Base) SetSequenceID(s uint64) {
	if b.seq != 0 {
		return
	}
	b.seq = s
}

type MarketCreated struct {
	*Base
	address types.Address
	market  types.Market
}

func NewMarketCreated(ctx context.Context, address types.Address, m *types.Market) *MarketCreated {
	return &MarketCreated{
		Base:    newBase(ctx, MarketCreatedEvent),
		address: address,
		market:  *m,
	}
}

func (m MarketCreated) MarketID() types.Address {
	return m.address
}

func (m MarketCreated) Market() types.Market {
	return m.market
}

type MarketDecided struct {
	*Base
	address types.Address
	result  types.Address
	// previous is set when the decision replaced an earlier one.
	previous *types.Address
}

func NewMarketDecided(ctx context.Context, address, result types.Address, previous *types.Address) *MarketDecided {
	return &MarketDecided{
		Base:     newBase(ctx, MarketDecidedEvent),
		address:  address,
		result:   result,
		previous: previous,
	}
}

func (m MarketDecided) MarketID() types.Address {
	return m.address
}

func (m MarketDecided) Result() types.Address {
	return m.result
}

func (m MarketDecided) Previous() (types.Address, bool) {
	if m.previous == nil {
		return types.NoAddress, false
	}
	return *m.previous, true
}

type ResultCreated struct {
	*Base
	address types.Address
	result  types.Result
}

func NewResultCreated(ctx context.Context, address types.Address, r *types.Result) *ResultCreated {
	return &ResultCreated{
		Base:    newBase(ctx, ResultCreatedEvent),
		address: address,
		result:  *r,
	}
}

func (r ResultCreated) MarketID() types.Address {
	return r.result.Market
}

func (r ResultCreated) ResultID() types.Address {
	return r.address
}

func (r ResultCreated) Result() types.Result {
	return r.result
}
