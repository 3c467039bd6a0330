// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/near/borsh-go"

	"github.com/ava-labs/pdaledger/auth"
	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/consts"
	"github.com/ava-labs/pdaledger/crypto/ed25519"
	"github.com/ava-labs/pdaledger/derive"
)

var (
	_ Action = (*CreateLedger)(nil)
	_ Action = (*ModifyLedger)(nil)

	createLedgerDiscriminator = discriminator("create_ledger")
	modifyLedgerDiscriminator = discriminator("modify_ledger")
)

// Action is a request a store executes on behalf of its owner.
type Action interface {
	GetTypeID() uint8
	Discriminator() [DiscriminatorLen]byte
	// Owner is the identity that must sign the action.
	Owner() ed25519.PublicKey
	// Address is the ledger account the action targets.
	Address() codec.Address
}

type CreateLedger struct {
	// Ledger is the derived address the account is created at.
	Ledger codec.Address `json:"ledger"`

	// Authority owns the new account and pays for it.
	Authority ed25519.PublicKey `json:"authority"`

	// Bump is the derivation proof for [Ledger].
	Bump derive.Bump `json:"bump"`

	Category string `json:"category"`
}

func (*CreateLedger) GetTypeID() uint8 {
	return CreateLedgerID
}

func (*CreateLedger) Discriminator() [DiscriminatorLen]byte {
	return createLedgerDiscriminator
}

func (c *CreateLedger) Owner() ed25519.PublicKey {
	return c.Authority
}

func (c *CreateLedger) Address() codec.Address {
	return c.Ledger
}

type ModifyLedger struct {
	Ledger    codec.Address     `json:"ledger"`
	Authority ed25519.PublicKey `json:"authority"`

	// NewBalance overwrites the stored balance.
	NewBalance uint64 `json:"newBalance"`

	// Expected, when set, makes the overwrite conditional on the stored
	// balance being equal to it.
	Expected *uint64 `json:"expected,omitempty"`
}

func (*ModifyLedger) GetTypeID() uint8 {
	return ModifyLedgerID
}

func (*ModifyLedger) Discriminator() [DiscriminatorLen]byte {
	return modifyLedgerDiscriminator
}

func (m *ModifyLedger) Owner() ed25519.PublicKey {
	return m.Authority
}

func (m *ModifyLedger) Address() codec.Address {
	return m.Ledger
}

// Signed pairs an action with its owner's signature.
type Signed[T Action] struct {
	Action    T                 `json:"action"`
	Signature ed25519.Signature `json:"signature"`
}

// Sign authorizes [action] for the program [programID].
func Sign[T Action](programID ids.ID, action T, signer auth.Signer) (*Signed[T], error) {
	if signer.PublicKey() != action.Owner() {
		return nil, fmt.Errorf("%w: signer %s does not own action", ErrWrongSigner, signer.PublicKey())
	}
	digest, err := Digest(programID, action)
	if err != nil {
		return nil, err
	}
	return &Signed[T]{
		Action:    action,
		Signature: signer.Sign(digest),
	}, nil
}

// Verify checks the signature of the action owner over the digest for
// [programID].
func (s *Signed[T]) Verify(programID ids.ID) error {
	digest, err := Digest(programID, s.Action)
	if err != nil {
		return err
	}
	return auth.Verify(digest, s.Action.Owner(), s.Signature)
}

// Digest returns the bytes an owner signs:
// [discriminator] + [programID] + borsh([action]).
func Digest(programID ids.ID, action Action) ([]byte, error) {
	payload, err := borsh.Serialize(action)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshal, err)
	}
	d := action.Discriminator()
	msg := make([]byte, 0, DiscriminatorLen+consts.IDLen+len(payload))
	msg = append(msg, d[:]...)
	msg = append(msg, programID[:]...)
	return append(msg, payload...), nil
}

func discriminator(name string) [DiscriminatorLen]byte {
	var d [DiscriminatorLen]byte
	copy(d[:], hashing.ComputeHash256([]byte("global:"+name)))
	return d
}
