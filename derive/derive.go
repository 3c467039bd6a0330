// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package derive computes account addresses from seeds and a program id.
//
// An address is the SHA-256 of the seeds, a one byte bump, the program id
// and a fixed marker. Only hashes that are not valid ed25519 points are
// accepted, so no private key can ever sign for a derived address: the
// program that owns it proves authority by re-deriving it.
package derive

import (
	"filippo.io/edwards25519"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/consts"
)

const (
	// DerivedAddressID is the type byte of every derived address.
	DerivedAddressID uint8 = 1

	// MaxSeedLen is the maximum length of a single seed.
	MaxSeedLen = 32
	// MaxSeeds is the maximum number of seeds, including the bump.
	MaxSeeds = 16
)

var marker = []byte("ProgramDerivedAddress")

// Bump is the discriminant that pushed a derivation off the curve. It must
// accompany a create request so the store can re-derive the address.
type Bump uint8

// CreateAddress derives the address for exactly [bump].
//
// Returns [ErrOnCurve] if the resulting hash is a valid public key.
func CreateAddress(programID ids.ID, bump Bump, seeds ...[]byte) (codec.Address, error) {
	if err := validateSeeds(seeds); err != nil {
		return codec.EmptyAddress, err
	}
	h := hashSeeds(programID, bump, seeds)
	if isOnCurve(h[:]) {
		return codec.EmptyAddress, ErrOnCurve
	}
	return codec.CreateAddress(DerivedAddressID, h), nil
}

// FindAddress searches bumps from 255 down to 0 and returns the first
// address that is off the curve together with its bump.
func FindAddress(programID ids.ID, seeds ...[]byte) (codec.Address, Bump, error) {
	return findAddress(programID, seeds, isOnCurve)
}

func findAddress(programID ids.ID, seeds [][]byte, onCurve func([]byte) bool) (codec.Address, Bump, error) {
	if err := validateSeeds(seeds); err != nil {
		return codec.EmptyAddress, 0, err
	}
	for b := int(consts.MaxUint8); b >= 0; b-- {
		bump := Bump(b)
		h := hashSeeds(programID, bump, seeds)
		if onCurve(h[:]) {
			continue
		}
		return codec.CreateAddress(DerivedAddressID, h), bump, nil
	}
	return codec.EmptyAddress, 0, ErrDerivationExhausted
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds)+1 > MaxSeeds {
		return ErrTooManySeeds
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return ErrMaxSeedLength
		}
	}
	return nil
}

// [seeds...] + [bump] + [programID] + [marker]
func hashSeeds(programID ids.ID, bump Bump, seeds [][]byte) ids.ID {
	size := consts.ByteLen + consts.IDLen + len(marker)
	for _, seed := range seeds {
		size += len(seed)
	}
	buf := make([]byte, 0, size)
	for _, seed := range seeds {
		buf = append(buf, seed...)
	}
	buf = append(buf, byte(bump))
	buf = append(buf, programID[:]...)
	buf = append(buf, marker...)
	return ids.ID(hashing.ComputeHash256Array(buf))
}

func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
