// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger provisions and mutates per-owner, per-category accounts
// stored at derived addresses. Any caller can compute where an account lives
// without asking the store; the store only arbitrates which create wins.
package ledger

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/pdaledger/auth"
	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/consts"
	"github.com/ava-labs/pdaledger/crypto/ed25519"

	ltrace "github.com/ava-labs/pdaledger/trace"
)

const DefaultCacheSize = 1_024

type Config struct {
	Store     AccountStore
	ProgramID ids.ID

	// Optional
	Log        logging.Logger
	Tracer     trace.Tracer
	Registerer prometheus.Registerer
	CacheSize  int
}

// Ledger is the entry point for account operations. It holds no per-account
// state; every method may be called concurrently.
type Ledger struct {
	deriver     *deriver
	repo        *Repository
	provisioner *Provisioner
	mutator     *Mutator
}

func New(cfg Config) (*Ledger, error) {
	if cfg.Store == nil {
		return nil, ErrMissingStore
	}
	if cfg.ProgramID == ids.Empty {
		return nil, ErrMissingProgramID
	}
	if cfg.Log == nil {
		cfg.Log = logging.NoLog{}
	}
	if cfg.Tracer == nil {
		cfg.Tracer = ltrace.Noop(consts.Name)
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.NewRegistry()
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	m, err := newMetrics(cfg.Registerer)
	if err != nil {
		return nil, err
	}

	d := newDeriver(cfg.ProgramID, cfg.CacheSize)
	repo := newRepository(cfg.Store, cfg.Tracer, m)
	provisioner := &Provisioner{
		programID: cfg.ProgramID,
		store:     cfg.Store,
		repo:      repo,
		deriver:   d,
		log:       cfg.Log,
		tracer:    cfg.Tracer,
		metrics:   m,
	}
	return &Ledger{
		deriver:     d,
		repo:        repo,
		provisioner: provisioner,
		mutator: &Mutator{
			programID:   cfg.ProgramID,
			store:       cfg.Store,
			repo:        repo,
			provisioner: provisioner,
			log:         cfg.Log,
			tracer:      cfg.Tracer,
			metrics:     m,
		},
	}, nil
}

// DeriveAddress computes where the account of [owner] for [category] lives.
// It performs no I/O.
func (l *Ledger) DeriveAddress(owner ed25519.PublicKey, category string) (codec.Address, error) {
	addr, _, err := l.deriver.derive(owner, category)
	return addr, err
}

func (l *Ledger) EnsureAccount(ctx context.Context, signer auth.Signer, category string) (*Account, error) {
	return l.provisioner.Ensure(ctx, signer, category)
}

func (l *Ledger) SetBalance(ctx context.Context, signer auth.Signer, category string, newBalance int64) (*Account, error) {
	return l.mutator.SetBalance(ctx, signer, category, newBalance)
}

func (l *Ledger) CompareAndSetBalance(
	ctx context.Context,
	signer auth.Signer,
	category string,
	expected int64,
	newBalance int64,
) (*Account, error) {
	return l.mutator.CompareAndSetBalance(ctx, signer, category, expected, newBalance)
}

// GetAccount looks up an account without creating it. The error is only set
// for invalid input; store failures are reported in the result.
func (l *Ledger) GetAccount(ctx context.Context, owner ed25519.PublicKey, category string) (FetchResult, error) {
	addr, _, err := l.deriver.derive(owner, category)
	if err != nil {
		return FetchResult{}, err
	}
	return l.repo.Fetch(ctx, addr), nil
}
