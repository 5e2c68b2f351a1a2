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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstruments(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, setupMetrics(reg))

	InstructionCounterInc("Deposit", "ok")
	InstructionCounterInc("Deposit", "ok")
	InstructionCounterInc("Deposit", "rejected")
	assert.Equal(t, 2.0, testutil.ToFloat64(instructionCounter.WithLabelValues("Deposit", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(instructionCounter.WithLabelValues("Deposit", "rejected")))

	LedgerHeightSet(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(ledgerHeight))

	OpenOrdersAdd(3, "buy")
	OpenOrdersAdd(-1, "buy")
	assert.Equal(t, 2.0, testutil.ToFloat64(openOrders.WithLabelValues("buy")))

	StartInstructionTimer("Deposit")()
	assert.Equal(t, 1, testutil.CollectAndCount(instructionTime))
}

func TestAddInstrumentTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := AddInstrument(reg, Counter, "dup_total", Vectors("a"))
	require.NoError(t, err)
	_, err = AddInstrument(reg, Counter, "dup_total", Vectors("a"))
	assert.Error(t, err)

	_, err = AddInstrument(reg, instrument(42), "other")
	assert.ErrorIs(t, err, ErrInstrumentNotSupported)
}

func TestInstrumentTypeMismatch(t *testing.T) {
	m, err := AddInstrument(prometheus.NewRegistry(), Gauge, "g")
	require.NoError(t, err)
	_, err = m.CounterVec()
	assert.ErrorIs(t, err, ErrInstrumentTypeMismatch)
}
