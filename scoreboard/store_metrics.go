package scoreboard

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// InstrumentStore wraps all store methods to instrument the underlying calls.
func InstrumentStore(s Store) Store { return &metrics{s} }

var (
	storeCalls = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arcade",
			Subsystem: "scoreboard",
			Name:      "calls",
			Help:      "Calls processed by the scoreboard store.",
		},
		[]string{"method"},
	)
)

func instrument(method string) func() {
	t := prometheus.NewTimer(storeCalls.WithLabelValues(method))
	return func() { t.ObserveDuration() }
}

func init() {
	prometheus.MustRegister(storeCalls)
}

type metrics struct{ s Store }

func (m *metrics) List(ctx context.Context) ([]Entry, error) {
	defer instrument("List")()
	return m.s.List(ctx)
}

func (m *metrics) Save(ctx context.Context, e Entry) ([]Entry, error) {
	defer instrument("Save")()
	return m.s.Save(ctx, e)
}

func (m *metrics) Replace(ctx context.Context, entries []Entry) ([]Entry, error) {
	defer instrument("Replace")()
	return m.s.Replace(ctx, entries)
}
