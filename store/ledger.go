// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/near/borsh-go"

	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/consts"
	"github.com/ava-labs/pdaledger/derive"
)

// State
// 0x0/ (ledger)
//   -> [address] => discriminator + borsh(ledger)
const ledgerPrefix byte = 0x0

const discriminatorLen = 8

var ledgerDiscriminator = accountDiscriminator("Ledger")

// Ledger is the record stored at a derived address.
type Ledger struct {
	Category string `json:"category"`
	Balance  uint64 `json:"balance"`
}

// [ledgerPrefix] + [address]
func LedgerKey(addr codec.Address) []byte {
	k := make([]byte, consts.ByteLen+codec.AddressLen)
	k[0] = ledgerPrefix
	copy(k[1:], addr[:])
	return k
}

// ValidateCategory enforces the category rules: non-empty UTF-8 that fits in
// a single derivation seed.
func ValidateCategory(category string) error {
	switch {
	case len(category) == 0:
		return fmt.Errorf("%w: empty", ErrInvalidCategory)
	case len(category) > derive.MaxSeedLen:
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidCategory, len(category), derive.MaxSeedLen)
	case !utf8.ValidString(category):
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidCategory)
	default:
		return nil
	}
}

// MarshalLedger encodes [l] behind the account discriminator.
func MarshalLedger(l *Ledger) ([]byte, error) {
	payload, err := borsh.Serialize(*l)
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, discriminatorLen+len(payload))
	b = append(b, ledgerDiscriminator[:]...)
	return append(b, payload...), nil
}

// UnmarshalLedger decodes a record written by [MarshalLedger].
func UnmarshalLedger(b []byte) (*Ledger, error) {
	if len(b) < discriminatorLen || !bytes.Equal(b[:discriminatorLen], ledgerDiscriminator[:]) {
		return nil, fmt.Errorf("%w: bad discriminator", ErrCorruptRecord)
	}
	var l Ledger
	if err := borsh.Deserialize(&l, b[discriminatorLen:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}
	return &l, nil
}

func accountDiscriminator(name string) [discriminatorLen]byte {
	var d [discriminatorLen]byte
	copy(d[:], hashing.ComputeHash256([]byte("account:"+name)))
	return d
}
