// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/pdaledger/actions"
	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/derive"
)

const maxSwapAttempts = 8

// Program owns every ledger account created under its id. It verifies the
// owner signature and derivation proof of each request before touching the
// backend.
type Program struct {
	programID ids.ID
	backend   Backend
	log       logging.Logger
	metrics   *metrics
}

func NewProgram(
	programID ids.ID,
	backend Backend,
	log logging.Logger,
	registerer prometheus.Registerer,
) (*Program, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Program{
		programID: programID,
		backend:   backend,
		log:       log,
		metrics:   m,
	}, nil
}

func (p *Program) ProgramID() ids.ID {
	return p.programID
}

// Fetch returns the account stored at [addr] or [ErrNotFound].
func (p *Program) Fetch(ctx context.Context, addr codec.Address) (*Ledger, error) {
	p.metrics.fetched.Inc()
	l, _, err := p.load(ctx, addr)
	return l, err
}

// Create initializes a zero-balance account at the derived address in the
// request. Exactly one create per address ever succeeds; every other attempt
// returns [ErrAlreadyExists].
func (p *Program) Create(ctx context.Context, req *actions.Signed[*actions.CreateLedger]) error {
	if req == nil || req.Action == nil {
		p.metrics.rejected.Inc()
		return fmt.Errorf("%w: missing action", ErrInvalidRequest)
	}
	action := req.Action
	if err := req.Verify(p.programID); err != nil {
		p.metrics.rejected.Inc()
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if err := ValidateCategory(action.Category); err != nil {
		p.metrics.rejected.Inc()
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if err := derive.VerifyLedgerAddress(
		p.programID,
		action.Authority,
		action.Category,
		action.Bump,
		action.Ledger,
	); err != nil {
		p.metrics.rejected.Inc()
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	v, err := MarshalLedger(&Ledger{Category: action.Category})
	if err != nil {
		return err
	}
	if err := p.backend.Insert(ctx, LedgerKey(action.Ledger), v); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			p.metrics.alreadyExists.Inc()
		}
		return err
	}
	p.metrics.created.Inc()
	p.log.Debug("created ledger",
		zap.Stringer("address", action.Ledger),
		zap.Stringer("owner", action.Authority),
		zap.String("category", action.Category),
		zap.Uint8("bump", uint8(action.Bump)),
	)
	return nil
}

// Modify overwrites the balance of an existing account. Only the owner whose
// key, together with the stored category, derives the target address may
// modify it.
func (p *Program) Modify(ctx context.Context, req *actions.Signed[*actions.ModifyLedger]) error {
	if req == nil || req.Action == nil {
		p.metrics.rejected.Inc()
		return fmt.Errorf("%w: missing action", ErrInvalidRequest)
	}
	start := time.Now()
	defer func() {
		p.metrics.modifyDuration.Observe(time.Since(start).Seconds())
	}()

	action := req.Action
	if err := req.Verify(p.programID); err != nil {
		p.metrics.rejected.Inc()
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		current, raw, err := p.load(ctx, action.Ledger)
		if err != nil {
			return err
		}
		if err := p.authorize(action, current); err != nil {
			p.metrics.rejected.Inc()
			return err
		}
		if action.Expected != nil && *action.Expected != current.Balance {
			return fmt.Errorf("%w: expected %d, stored %d", ErrBalanceMismatch, *action.Expected, current.Balance)
		}

		v, err := MarshalLedger(&Ledger{Category: current.Category, Balance: action.NewBalance})
		if err != nil {
			return err
		}
		key := LedgerKey(action.Ledger)
		if action.Expected == nil {
			err = p.backend.Put(ctx, key, v)
		} else {
			err = p.backend.Swap(ctx, key, raw, v)
		}
		if errors.Is(err, ErrConflict) {
			// The stored record changed after it was read. Re-check the
			// expected balance against the new value.
			p.metrics.swapConflicts.Inc()
			continue
		}
		if err != nil {
			return err
		}
		p.metrics.modified.Inc()
		p.log.Debug("modified ledger",
			zap.Stringer("address", action.Ledger),
			zap.Uint64("old", current.Balance),
			zap.Uint64("new", action.NewBalance),
		)
		return nil
	}
	return fmt.Errorf("%w: gave up after %d attempts", ErrConflict, maxSwapAttempts)
}

func (p *Program) authorize(action *actions.ModifyLedger, current *Ledger) error {
	addr, _, err := derive.LedgerAddress(p.programID, action.Authority, current.Category)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if addr != action.Ledger {
		return fmt.Errorf("%w: %s does not own %s", ErrUnauthorized, action.Authority, action.Ledger)
	}
	return nil
}

func (p *Program) load(ctx context.Context, addr codec.Address) (*Ledger, []byte, error) {
	raw, err := p.backend.Get(ctx, LedgerKey(addr))
	if err != nil {
		return nil, nil, err
	}
	l, err := UnmarshalLedger(raw)
	if err != nil {
		return nil, nil, err
	}
	return l, raw, nil
}
