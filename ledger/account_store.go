// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=mock_account_store.go . AccountStore

package ledger

import (
	"context"

	"github.com/ava-labs/pdaledger/actions"
	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/store"
)

var _ AccountStore = (*store.Program)(nil)

// AccountStore is the backing store accounts live in. Every call may be a
// network round trip.
type AccountStore interface {
	// Fetch returns [store.ErrNotFound] when no account exists at [addr]. Any
	// other error leaves existence unknown.
	Fetch(ctx context.Context, addr codec.Address) (*store.Ledger, error)
	// Create returns [store.ErrAlreadyExists] when the address is taken.
	Create(ctx context.Context, req *actions.Signed[*actions.CreateLedger]) error
	Modify(ctx context.Context, req *actions.Signed[*actions.ModifyLedger]) error
}
