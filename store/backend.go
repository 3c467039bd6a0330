// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"bytes"
	"context"
	"errors"

	"github.com/ava-labs/avalanchego/database"

	"github.com/ava-labs/pdaledger/lockmap"
)

// Backend persists raw ledger records. Implementations must make Insert and
// Swap atomic with respect to every other write on the same key.
type Backend interface {
	// Get returns [ErrNotFound] if [key] is not present.
	Get(ctx context.Context, key []byte) ([]byte, error)
	// Insert writes [value] only if [key] is absent, otherwise it returns
	// [ErrAlreadyExists].
	Insert(ctx context.Context, key []byte, value []byte) error
	// Put overwrites an existing [key]. It returns [ErrNotFound] if [key] is
	// not present.
	Put(ctx context.Context, key []byte, value []byte) error
	// Swap replaces [old] with [value], returning [ErrConflict] if the stored
	// value is no longer [old].
	Swap(ctx context.Context, key []byte, old []byte, value []byte) error
}

var _ Backend = (*DatabaseBackend)(nil)

// DatabaseBackend stores records in any avalanchego key-value database
// (memdb, pebble). Writes to the same key are serialized so the
// read-then-write sequences behind Insert, Put and Swap cannot interleave.
type DatabaseBackend struct {
	locks *lockmap.Lockmap
	db    database.KeyValueReaderWriter
}

func NewDatabaseBackend(db database.KeyValueReaderWriter) *DatabaseBackend {
	return &DatabaseBackend{
		locks: lockmap.New(16),
		db:    db,
	}
}

func (b *DatabaseBackend) Get(_ context.Context, key []byte) ([]byte, error) {
	v, err := b.db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNotFound
	}
	return v, err
}

func (b *DatabaseBackend) Insert(_ context.Context, key []byte, value []byte) error {
	b.locks.Lock(key)
	defer b.locks.Unlock(key)

	has, err := b.db.Has(key)
	if err != nil {
		return err
	}
	if has {
		return ErrAlreadyExists
	}
	return b.db.Put(key, value)
}

func (b *DatabaseBackend) Put(_ context.Context, key []byte, value []byte) error {
	b.locks.Lock(key)
	defer b.locks.Unlock(key)

	has, err := b.db.Has(key)
	if err != nil {
		return err
	}
	if !has {
		return ErrNotFound
	}
	return b.db.Put(key, value)
}

func (b *DatabaseBackend) Swap(_ context.Context, key []byte, old []byte, value []byte) error {
	b.locks.Lock(key)
	defer b.locks.Unlock(key)

	current, err := b.db.Get(key)
	if errors.Is(err, database.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !bytes.Equal(current, old) {
		return ErrConflict
	}
	return b.db.Put(key, value)
}
