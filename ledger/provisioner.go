// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ava-labs/pdaledger/actions"
	"github.com/ava-labs/pdaledger/auth"
	"github.com/ava-labs/pdaledger/store"
)

// Provisioner gets or creates the account of an (owner, category) pair.
type Provisioner struct {
	programID ids.ID
	store     AccountStore
	repo      *Repository
	deriver   *deriver
	log       logging.Logger
	tracer    trace.Tracer
	metrics   *metrics
}

// Ensure returns the account of [signer] for [category], creating it if the
// store reports it absent. Calls racing on the same pair all return the one
// account the store accepted.
func (p *Provisioner) Ensure(ctx context.Context, signer auth.Signer, category string) (*Account, error) {
	ctx, span := p.tracer.Start(ctx, "Provisioner.Ensure", oteltrace.WithAttributes(
		attribute.String("category", category),
	))
	defer span.End()

	acct, err := p.ensure(ctx, uuid.New(), signer, category)
	if err != nil {
		span.RecordError(err)
		p.metrics.failures.WithLabelValues("ensure").Inc()
	}
	return acct, err
}

func (p *Provisioner) ensure(ctx context.Context, op uuid.UUID, signer auth.Signer, category string) (*Account, error) {
	owner := signer.PublicKey()
	addr, bump, err := p.deriver.derive(owner, category)
	if err != nil {
		return nil, err
	}

	result := p.repo.Fetch(ctx, addr)
	switch result.Status {
	case Found:
		p.metrics.fastPath.Inc()
		return p.checkCategory(result.Account, category)
	case Transient:
		return nil, fmt.Errorf("%w: fetch %s: %w", ErrProvisioningFailed, addr, result.Err)
	}

	req, err := actions.Sign(p.programID, &actions.CreateLedger{
		Ledger:    addr,
		Authority: owner,
		Bump:      bump,
		Category:  category,
	}, signer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvisioningFailed, err)
	}
	err = p.store.Create(ctx, req)
	switch {
	case err == nil:
		p.metrics.provisioned.Inc()
		p.log.Info("provisioned account",
			zap.Stringer("op", op),
			zap.Stringer("owner", owner),
			zap.String("category", category),
			zap.String("address", addr.Short()),
		)
	case errors.Is(err, store.ErrAlreadyExists):
		p.metrics.converged.Inc()
		p.log.Debug("account created concurrently",
			zap.Stringer("op", op),
			zap.String("address", addr.Short()),
		)
	default:
		return nil, fmt.Errorf("%w: create %s: %w", ErrProvisioningFailed, addr, err)
	}

	result = p.repo.Fetch(ctx, addr)
	switch result.Status {
	case Found:
		return p.checkCategory(result.Account, category)
	case Transient:
		return nil, fmt.Errorf("%w: re-fetch %s: %w", ErrProvisioningFailed, addr, result.Err)
	default:
		return nil, fmt.Errorf("%w: %s missing after create", ErrProvisioningFailed, addr)
	}
}

func (*Provisioner) checkCategory(acct *Account, category string) (*Account, error) {
	if acct.Category != category {
		return nil, fmt.Errorf("%w: %s holds category %q, derived from %q", ErrProvisioningFailed, acct.Address, acct.Category, category)
	}
	return acct, nil
}
