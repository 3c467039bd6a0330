// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

const (
	CreateLedgerID uint8 = 0
	ModifyLedgerID uint8 = 1

	// DiscriminatorLen is the length of the instruction tag prefixed to every
	// signed payload.
	DiscriminatorLen = 8
)
