// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import "errors"

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrProvisioningFailed = errors.New("provisioning failed")
	ErrMutationFailed     = errors.New("mutation failed")
	ErrMissingStore       = errors.New("missing account store")
	ErrMissingProgramID   = errors.New("missing program id")
)
