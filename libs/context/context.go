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

package context

import (
	"context"

	uuid "github.com/satori/go.uuid"
)

type key int

const (
	traceIDKey key = iota
	heightKey
	txIDKey
)

// TraceIDFromContext returns the trace id stored in ctx. A fresh id is
// generated and attached when ctx carries none.
func TraceIDFromContext(ctx context.Context) (context.Context, string) {
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		return ctx, v
	}
	id := uuid.NewV4().String()
	return WithTraceID(ctx, id), id
}

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey, id)
}

func WithBlockHeight(ctx context.Context, height uint64) context.Context {
	return context.WithValue(ctx, heightKey, height)
}

func BlockHeightFromContext(ctx context.Context) (uint64, bool) {
	h, ok := ctx.Value(heightKey).(uint64)
	return h, ok
}

func WithTxID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, txIDKey, id)
}

func TxIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(txIDKey).(string)
	return id, ok
}
