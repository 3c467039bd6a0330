// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package derive

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/consts"
	"github.com/ava-labs/pdaledger/crypto/ed25519"
)

// Separator sits between the owner and the category in ledger seeds.
var Separator = []byte("_")

// LedgerSeeds returns [owner] + ["_"] + [category].
func LedgerSeeds(owner ed25519.PublicKey, category string) [][]byte {
	return [][]byte{owner[:], Separator, []byte(category)}
}

// LedgerAddress finds the address of the ledger account held by [owner] for
// [category] under [programID].
func LedgerAddress(programID ids.ID, owner ed25519.PublicKey, category string) (codec.Address, Bump, error) {
	return FindAddress(programID, LedgerSeeds(owner, category)...)
}

// VerifyLedgerAddress checks that [addr] is what [owner], [category] and
// [bump] derive to and that [bump] is the canonical one, i.e. every higher
// bump lands on the curve. Accepting any other bump would allow a second
// account for the same pair.
func VerifyLedgerAddress(
	programID ids.ID,
	owner ed25519.PublicKey,
	category string,
	bump Bump,
	addr codec.Address,
) error {
	seeds := LedgerSeeds(owner, category)
	derived, err := CreateAddress(programID, bump, seeds...)
	if err != nil {
		return err
	}
	if derived != addr {
		return fmt.Errorf("%w: expected %s, got %s", ErrAddressMismatch, derived, addr)
	}
	for b := int(bump) + 1; b <= int(consts.MaxUint8); b++ {
		if _, err := CreateAddress(programID, Bump(b), seeds...); err == nil {
			return fmt.Errorf("%w: %d < %d", ErrNonCanonicalBump, bump, b)
		}
	}
	return nil
}
