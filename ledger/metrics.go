// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	fastPath      prometheus.Counter
	provisioned   prometheus.Counter
	converged     prometheus.Counter
	mutations     prometheus.Counter
	failures      *prometheus.CounterVec
	fetchDuration prometheus.Histogram
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		fastPath: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "ensure_found",
			Help:      "number of ensures that found an existing account",
		}),
		provisioned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "provisioned",
			Help:      "number of accounts created by this client",
		}),
		converged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "converged",
			Help:      "number of creates that lost a race and converged on the existing account",
		}),
		mutations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "mutations",
			Help:      "number of balance overwrites applied",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "failures",
			Help:      "number of failed operations",
		}, []string{"op"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ledger",
			Name:      "fetch_duration_seconds",
			Help:      "time spent waiting for the account store to answer a fetch",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.fastPath),
		r.Register(m.provisioned),
		r.Register(m.converged),
		r.Register(m.mutations),
		r.Register(m.failures),
		r.Register(m.fetchDuration),
	)
	return m, errs.Err
}
