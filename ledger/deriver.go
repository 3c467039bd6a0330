// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"fmt"

	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/crypto/ed25519"
	"github.com/ava-labs/pdaledger/derive"
	"github.com/ava-labs/pdaledger/store"
)

type pair struct {
	owner    ed25519.PublicKey
	category string
}

type derivation struct {
	addr codec.Address
	bump derive.Bump
}

// deriver memoizes ledger address derivation. The cache only saves hashing;
// results are identical with or without it.
type deriver struct {
	programID ids.ID
	cache     *cache.LRU[pair, derivation]
}

func newDeriver(programID ids.ID, size int) *deriver {
	return &deriver{
		programID: programID,
		cache:     &cache.LRU[pair, derivation]{Size: size},
	}
}

func (d *deriver) derive(owner ed25519.PublicKey, category string) (codec.Address, derive.Bump, error) {
	if err := store.ValidateCategory(category); err != nil {
		return codec.EmptyAddress, 0, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	k := pair{owner: owner, category: category}
	if v, ok := d.cache.Get(k); ok {
		return v.addr, v.bump, nil
	}
	addr, bump, err := derive.LedgerAddress(d.programID, owner, category)
	if err != nil {
		return codec.EmptyAddress, 0, err
	}
	d.cache.Put(k, derivation{addr: addr, bump: bump})
	return addr, bump, nil
}
