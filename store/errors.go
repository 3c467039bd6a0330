// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import "errors"

var (
	ErrNotFound        = errors.New("ledger account not found")
	ErrAlreadyExists   = errors.New("ledger account already exists")
	ErrBalanceMismatch = errors.New("balance does not match expected")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrInvalidCategory = errors.New("invalid category")
	ErrCorruptRecord   = errors.New("corrupt ledger record")
	ErrConflict        = errors.New("concurrent write conflict")
)
