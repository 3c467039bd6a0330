// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
)

const (
	AddressLen = 33

	checksumLen = 4
	shortLen    = 8
)

// Address represents the 33 byte address of a ledger account: a type byte
// followed by a 32 byte identifier.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	a := make([]byte, AddressLen)
	a[0] = typeID
	copy(a[1:], id[:])
	return Address(a)
}

// TypeID returns the type byte of a.
func (a Address) TypeID() uint8 {
	return a[0]
}

// ID returns the 32 byte identifier carried by a.
func (a Address) ID() ids.ID {
	return ids.ID(a[1:])
}

// StringToAddress parses a checksummed hex address produced by [Address.String].
func StringToAddress(s string) (Address, error) {
	b, err := fromChecksum(s)
	if err != nil {
		return EmptyAddress, err
	}
	if len(b) != AddressLen {
		return EmptyAddress, fmt.Errorf("%w: %d != %d", ErrInvalidSize, len(b), AddressLen)
	}
	return Address(b), nil
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return "0x" + ToHex(withChecksum(a[:]))
}

// Short returns the first characters of the identifier for condensed logs.
func (a Address) Short() string {
	return hex.EncodeToString(a[1:])[:shortLen]
}

// MarshalText returns the checksummed hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a checksummed hex address.
func (a *Address) UnmarshalText(input []byte) error {
	addr, err := StringToAddress(string(input))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

func withChecksum(b []byte) []byte {
	return append(append(make([]byte, 0, len(b)+checksumLen), b...), hashing.Checksum(b, checksumLen)...)
}

func fromChecksum(s string) ([]byte, error) {
	b, err := LoadHex(s, -1)
	if err != nil {
		return nil, err
	}
	if len(b) < checksumLen {
		return nil, ErrBadChecksum
	}
	raw, checksum := b[:len(b)-checksumLen], b[len(b)-checksumLen:]
	if string(hashing.Checksum(raw, checksumLen)) != string(checksum) {
		return nil, ErrBadChecksum
	}
	return raw, nil
}
