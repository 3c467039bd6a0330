// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import "errors"

var (
	ErrDuplicate      = errors.New("duplicate")
	ErrNoKeys         = errors.New("no available keys")
	ErrUnknownKey     = errors.New("unknown key")
	ErrCorruptKeyring = errors.New("corrupt keyring")
	ErrNoProgramID    = errors.New("no program id stored")
)
