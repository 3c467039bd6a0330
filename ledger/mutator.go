// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
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
)

// Mutator overwrites account balances, provisioning accounts on first use.
type Mutator struct {
	programID   ids.ID
	store       AccountStore
	repo        *Repository
	provisioner *Provisioner
	log         logging.Logger
	tracer      trace.Tracer
	metrics     *metrics
}

// SetBalance overwrites the balance of the account of [signer] for
// [category]. Concurrent calls on one account are last-write-wins.
func (m *Mutator) SetBalance(ctx context.Context, signer auth.Signer, category string, newBalance int64) (*Account, error) {
	if newBalance < 0 {
		return nil, fmt.Errorf("%w: negative balance %d", ErrInvalidArgument, newBalance)
	}
	return m.modify(ctx, "Mutator.SetBalance", signer, category, uint64(newBalance), nil)
}

// CompareAndSetBalance overwrites the balance only if it currently equals
// [expected]. A lost race fails with [ErrMutationFailed] wrapping
// [store.ErrBalanceMismatch].
func (m *Mutator) CompareAndSetBalance(
	ctx context.Context,
	signer auth.Signer,
	category string,
	expected int64,
	newBalance int64,
) (*Account, error) {
	if expected < 0 {
		return nil, fmt.Errorf("%w: negative expected balance %d", ErrInvalidArgument, expected)
	}
	if newBalance < 0 {
		return nil, fmt.Errorf("%w: negative balance %d", ErrInvalidArgument, newBalance)
	}
	e := uint64(expected)
	return m.modify(ctx, "Mutator.CompareAndSetBalance", signer, category, uint64(newBalance), &e)
}

func (m *Mutator) modify(
	ctx context.Context,
	name string,
	signer auth.Signer,
	category string,
	newBalance uint64,
	expected *uint64,
) (*Account, error) {
	ctx, span := m.tracer.Start(ctx, name, oteltrace.WithAttributes(
		attribute.String("category", category),
		attribute.Int64("balance", int64(newBalance)),
	))
	defer span.End()

	acct, err := m.provisioner.Ensure(ctx, signer, category)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	op := uuid.New()
	acct, err = m.apply(ctx, op, signer, acct, newBalance, expected)
	if err != nil {
		span.RecordError(err)
		m.metrics.failures.WithLabelValues("modify").Inc()
		return nil, err
	}
	m.metrics.mutations.Inc()
	m.log.Debug("set balance",
		zap.Stringer("op", op),
		zap.String("address", acct.Address.Short()),
		zap.String("category", category),
		zap.Uint64("balance", acct.Balance),
	)
	return acct, nil
}

func (m *Mutator) apply(
	ctx context.Context,
	op uuid.UUID,
	signer auth.Signer,
	acct *Account,
	newBalance uint64,
	expected *uint64,
) (*Account, error) {
	req, err := actions.Sign(m.programID, &actions.ModifyLedger{
		Ledger:     acct.Address,
		Authority:  signer.PublicKey(),
		NewBalance: newBalance,
		Expected:   expected,
	}, signer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMutationFailed, err)
	}
	if err := m.store.Modify(ctx, req); err != nil {
		m.log.Debug("modify rejected",
			zap.Stringer("op", op),
			zap.String("address", acct.Address.Short()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: modify %s: %w", ErrMutationFailed, acct.Address, err)
	}

	result := m.repo.Fetch(ctx, acct.Address)
	switch result.Status {
	case Found:
		return result.Account, nil
	case Transient:
		return nil, fmt.Errorf("%w: re-fetch %s: %w", ErrMutationFailed, acct.Address, result.Err)
	default:
		return nil, fmt.Errorf("%w: %s missing after modify", ErrMutationFailed, acct.Address)
	}
}
