// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/store"
)

var errNilRecord = errors.New("store returned no record")

// Repository turns store lookups into a [FetchResult].
type Repository struct {
	store   AccountStore
	tracer  trace.Tracer
	metrics *metrics
}

func newRepository(s AccountStore, tracer trace.Tracer, m *metrics) *Repository {
	return &Repository{
		store:   s,
		tracer:  tracer,
		metrics: m,
	}
}

// Fetch never returns an error. Failures to reach the store are reported as
// [Transient] and must not be read as absence.
func (r *Repository) Fetch(ctx context.Context, addr codec.Address) FetchResult {
	ctx, span := r.tracer.Start(ctx, "Repository.Fetch", oteltrace.WithAttributes(
		attribute.Stringer("address", addr),
	))
	defer span.End()

	start := time.Now()
	l, err := r.store.Fetch(ctx, addr)
	r.metrics.fetchDuration.Observe(time.Since(start).Seconds())
	switch {
	case errors.Is(err, store.ErrNotFound):
		return FetchResult{Status: NotFound}
	case err != nil:
		span.RecordError(err)
		return FetchResult{Status: Transient, Err: err}
	case l == nil:
		return FetchResult{Status: Transient, Err: fmt.Errorf("%w: %s", errNilRecord, addr)}
	default:
		return FetchResult{Status: Found, Account: newAccount(addr, l)}
	}
}
