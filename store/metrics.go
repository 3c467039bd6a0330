// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	fetched        prometheus.Counter
	created        prometheus.Counter
	modified       prometheus.Counter
	alreadyExists  prometheus.Counter
	rejected       prometheus.Counter
	swapConflicts  prometheus.Counter
	modifyDuration prometheus.Histogram
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		fetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "store",
			Name:      "fetched",
			Help:      "number of ledger accounts fetched",
		}),
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "store",
			Name:      "created",
			Help:      "number of ledger accounts created",
		}),
		modified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "store",
			Name:      "modified",
			Help:      "number of balance overwrites applied",
		}),
		alreadyExists: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "store",
			Name:      "already_exists",
			Help:      "number of creates rejected because the account existed",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "store",
			Name:      "rejected",
			Help:      "number of requests rejected by authorization or validation",
		}),
		swapConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "store",
			Name:      "swap_conflicts",
			Help:      "number of conditional writes retried after a concurrent write",
		}),
		modifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "store",
			Name:      "modify_duration_seconds",
			Help:      "time spent applying a modify",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.fetched),
		r.Register(m.created),
		r.Register(m.modified),
		r.Register(m.alreadyExists),
		r.Register(m.rejected),
		r.Register(m.swapConflicts),
		r.Register(m.modifyDuration),
	)
	return m, errs.Err
}
