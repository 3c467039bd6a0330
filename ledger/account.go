// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/store"
)

// Account is a ledger record together with the address it is stored at.
type Account struct {
	Address  codec.Address `json:"address"`
	Category string        `json:"category"`
	Balance  uint64        `json:"balance"`
}

func newAccount(addr codec.Address, l *store.Ledger) *Account {
	return &Account{
		Address:  addr,
		Category: l.Category,
		Balance:  l.Balance,
	}
}

type Status uint8

const (
	// Found means the account exists.
	Found Status = iota
	// NotFound means the store positively reported the account absent.
	NotFound
	// Transient means the store could not answer. It says nothing about
	// whether the account exists.
	Transient
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

// FetchResult is the outcome of looking up an address. [Account] is set only
// when [Status] is [Found] and [Err] only when it is [Transient].
type FetchResult struct {
	Status  Status
	Account *Account
	Err     error
}
