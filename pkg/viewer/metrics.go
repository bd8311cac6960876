package viewer

import (
	"expvar"

	"github.com/tmviewer/tmviewer/pkg/metric"
)

var (
	// Counters
	expFetchesTotal  = new(expvar.Int)
	expFailuresTotal = new(expvar.Int)
	expListedCurrent = new(expvar.Int)

	// History of the counters, one sample per minute
	expFetchesHist  = metric.NewHistory(expFetchesTotal, metric.HistorySize)
	expFailuresHist = metric.NewHistory(expFailuresTotal, metric.HistorySize)
)

func init() {
	m := expvar.NewMap("viewer")
	m.Set("FetchesTotal", expFetchesTotal)
	m.Set("FetchesHist", expFetchesHist)
	m.Set("FailuresTotal", expFailuresTotal)
	m.Set("FailuresHist", expFailuresHist)
	m.Set("ListedCurrent", expListedCurrent)
	metric.AddTickerFunc(func() {
		expFetchesHist.Sample()
		expFailuresHist.Sample()
	})
}
