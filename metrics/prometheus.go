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
	"fmt"
	"net/http"
	"time"

	"code.vegaprotocol.io/searchmarket/logging"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Gauge instrument = iota
	Counter
	Histogram
)

const namespace = "searchmarket"

var (
	// ErrInstrumentNotSupported signals the specified instrument is not yet supported.
	ErrInstrumentNotSupported = errors.New("instrument type unsupported")
	// ErrInstrumentTypeMismatch signal the type of the instrument is not expected.
	ErrInstrumentTypeMismatch = errors.New("instrument is not of the expected type")
)

var (
	instructionCounter *prometheus.CounterVec
	instructionTime    *prometheus.HistogramVec
	transactionCounter *prometheus.CounterVec
	ledgerHeight       prometheus.Gauge
	openOrders         *prometheus.GaugeVec
)

type instrument int

type instrumentOpts struct {
	opts    prometheus.Opts
	buckets []float64
	vectors []string
}

type mi struct {
	gaugeV     *prometheus.GaugeVec
	gauge      prometheus.Gauge
	counterV   *prometheus.CounterVec
	counter    prometheus.Counter
	histogramV *prometheus.HistogramVec
	histogram  prometheus.Histogram
}

// InstrumentOption - vararg for instrument options setting.
type InstrumentOption func(o *instrumentOpts)

// Vectors turns the instrument into a vector with the given label names.
func Vectors(labels ...string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.vectors = labels
	}
}

func Help(help string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Help = help
	}
}

func Namespace(ns string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Namespace = ns
	}
}

// Buckets - specific to histogram type.
func Buckets(b []float64) InstrumentOption {
	return func(o *instrumentOpts) {
		o.buckets = b
	}
}

// AddInstrument configures a new instrument and registers it with reg.
func AddInstrument(reg prometheus.Registerer, t instrument, name string, opts ...InstrumentOption) (*mi, error) {
	var col prometheus.Collector
	ret := mi{}
	opt := instrumentOpts{
		opts: prometheus.Opts{
			Name: name,
		},
	}
	for _, o := range opts {
		o(&opt)
	}
	switch t {
	case Gauge:
		o := prometheus.GaugeOpts(opt.opts)
		if len(opt.vectors) == 0 {
			ret.gauge = prometheus.NewGauge(o)
			col = ret.gauge
		} else {
			ret.gaugeV = prometheus.NewGaugeVec(o, opt.vectors)
			col = ret.gaugeV
		}
	case Counter:
		o := prometheus.CounterOpts(opt.opts)
		if len(opt.vectors) == 0 {
			ret.counter = prometheus.NewCounter(o)
			col = ret.counter
		} else {
			ret.counterV = prometheus.NewCounterVec(o, opt.vectors)
			col = ret.counterV
		}
	case Histogram:
		o := prometheus.HistogramOpts{
			Name:      opt.opts.Name,
			Namespace: opt.opts.Namespace,
			Help:      opt.opts.Help,
			Buckets:   opt.buckets,
		}
		if len(opt.vectors) == 0 {
			ret.histogram = prometheus.NewHistogram(o)
			col = ret.histogram
		} else {
			ret.histogramV = prometheus.NewHistogramVec(o, opt.vectors)
			col = ret.histogramV
		}
	default:
		return nil, ErrInstrumentNotSupported
	}
	if err := reg.Register(col); err != nil {
		return nil, err
	}
	return &ret, nil
}

func (m mi) Gauge() (prometheus.Gauge, error) {
	if m.gauge == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.gauge, nil
}

func (m mi) GaugeVec() (*prometheus.GaugeVec, error) {
	if m.gaugeV == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.gaugeV, nil
}

func (m mi) CounterVec() (*prometheus.CounterVec, error) {
	if m.counterV == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.counterV, nil
}

func (m mi) HistogramVec() (*prometheus.HistogramVec, error) {
	if m.histogramV == nil {
		return nil, ErrInstrumentTypeMismatch
	}
	return m.histogramV, nil
}

// Start registers the instruments and serves them over http when enabled.
func Start(log *logging.Logger, conf Config) error {
	if !conf.Enabled {
		return nil
	}
	reg := prometheus.NewRegistry()
	if err := setupMetrics(reg); err != nil {
		return errors.Wrap(err, "could not set up metrics")
	}
	mux := http.NewServeMux()
	mux.Handle(conf.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server stopped", logging.Error(err))
		}
	}()
	return nil
}

func setupMetrics(reg prometheus.Registerer) error {
	h, err := AddInstrument(
		reg,
		Counter,
		"instructions_total",
		Namespace(namespace),
		Vectors("command", "outcome"),
		Help("Number of instructions processed"),
	)
	if err != nil {
		return err
	}
	if instructionCounter, err = h.CounterVec(); err != nil {
		return err
	}

	h, err = AddInstrument(
		reg,
		Histogram,
		"instruction_seconds",
		Namespace(namespace),
		Vectors("command"),
		Buckets(prometheus.ExponentialBuckets(0.00001, 4, 10)),
		Help("Time spent processing an instruction"),
	)
	if err != nil {
		return err
	}
	if instructionTime, err = h.HistogramVec(); err != nil {
		return err
	}

	h, err = AddInstrument(
		reg,
		Counter,
		"transactions_total",
		Namespace(namespace),
		Vectors("outcome"),
		Help("Number of transactions committed or discarded by the ledger"),
	)
	if err != nil {
		return err
	}
	if transactionCounter, err = h.CounterVec(); err != nil {
		return err
	}

	h, err = AddInstrument(
		reg,
		Gauge,
		"ledger_height",
		Namespace(namespace),
		Help("Current height of the ledger clock"),
	)
	if err != nil {
		return err
	}
	if ledgerHeight, err = h.Gauge(); err != nil {
		return err
	}

	h, err = AddInstrument(
		reg,
		Gauge,
		"open_orders",
		Namespace(namespace),
		Vectors("side"),
		Help("Number of orders resting in the order index"),
	)
	if err != nil {
		return err
	}
	openOrders, err = h.GaugeVec()
	return err
}

// InstructionCounterInc counts one instruction with its outcome.
func InstructionCounterInc(command, outcome string) {
	if instructionCounter == nil {
		return
	}
	instructionCounter.WithLabelValues(command, outcome).Inc()
}

// StartInstructionTimer returns a func recording the time elapsed since the
// call for command.
func StartInstructionTimer(command string) func() {
	startTime := time.Now()
	return func() {
		if instructionTime == nil {
			return
		}
		instructionTime.WithLabelValues(command).Observe(time.Since(startTime).Seconds())
	}
}

func TransactionCounterInc(outcome string) {
	if transactionCounter == nil {
		return
	}
	transactionCounter.WithLabelValues(outcome).Inc()
}

func LedgerHeightSet(height uint64) {
	if ledgerHeight == nil {
		return
	}
	ledgerHeight.Set(float64(height))
}

// OpenOrdersAdd moves the open order gauge of a side by n.
func OpenOrdersAdd(n int, side string) {
	if openOrders == nil {
		return
	}
	openOrders.WithLabelValues(side).Add(float64(n))
}
