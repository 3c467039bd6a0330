// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	// Name is the service name ledger JSON-RPC methods are registered under.
	Name = "ledger"

	ByteLen  = 1
	IDLen    = 32
	MaxUint8 = ^uint8(0)
)
