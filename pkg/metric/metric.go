// Package metric keeps short per-minute histories of expvar counters for the status page.
package metric

import (
	"expvar"
	"strings"
	"sync"
	"time"
)

// HistorySize is one hour of samples plus the baseline the first delta is taken against.
const HistorySize = 61

// TickerFunc is the function signature accepted by AddTickerFunc, will be called once per minute.
type TickerFunc func()

var tickerFuncChan = make(chan TickerFunc)

func init() {
	go metricsTicker(time.Minute)
}

// AddTickerFunc adds a new function callback to the list of metrics TickerFuncs that get
// called each minute.
func AddTickerFunc(f TickerFunc) {
	tickerFuncChan <- f
}

// History records the most recent samples of a source Var.  It is itself an expvar.Var rendering
// the samples as a comma separated string.
type History struct {
	mu      sync.Mutex
	source  expvar.Var
	size    int
	samples []string
}

// NewHistory creates a History keeping up to size samples of source.
func NewHistory(source expvar.Var, size int) *History {
	return &History{source: source, size: size}
}

// Sample appends the current value of the source, dropping the oldest sample when full.
func (h *History) Sample() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = append(h.samples, h.source.String())
	if len(h.samples) > h.size {
		h.samples = h.samples[len(h.samples)-h.size:]
	}
}

// String implements expvar.Var.  The value is a JSON string.
func (h *History) String() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := expvar.String{}
	s.Set(strings.Join(h.samples, ","))
	return s.String()
}

// metricsTicker calls the current list of TickerFuncs once per interval.
func metricsTicker(interval time.Duration) {
	funcs := make([]TickerFunc, 0)
	ticker := time.NewTicker(interval)

	for {
		select {
		case <-ticker.C:
			for _, f := range funcs {
				f()
			}
		case f := <-tickerFuncChan:
			funcs = append(funcs, f)
		}
	}
}
