// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package derive

import "errors"

var (
	ErrDerivationExhausted = errors.New("no bump produced an off-curve address")
	ErrOnCurve             = errors.New("derived address is on the ed25519 curve")
	ErrMaxSeedLength       = errors.New("seed exceeds maximum length")
	ErrTooManySeeds        = errors.New("too many seeds")
	ErrAddressMismatch     = errors.New("address does not match derivation")
	ErrNonCanonicalBump    = errors.New("bump is not canonical")
)
