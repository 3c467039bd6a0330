// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/pdaledger/crypto/ed25519"
)

// Signer is the capability used to authorize ledger requests. The public key
// is the owner identity requests are issued for.
type Signer interface {
	PublicKey() ed25519.PublicKey
	Sign(msg []byte) ed25519.Signature
}

var _ Signer = (*ED25519Factory)(nil)

type ED25519Factory struct {
	priv ed25519.PrivateKey
}

func NewED25519Factory(priv ed25519.PrivateKey) *ED25519Factory {
	return &ED25519Factory{priv}
}

func (d *ED25519Factory) Sign(msg []byte) ed25519.Signature {
	return ed25519.Sign(msg, d.priv)
}

func (d *ED25519Factory) PublicKey() ed25519.PublicKey {
	return d.priv.PublicKey()
}

// Verify returns [ErrInvalidSignature] unless [sig] is [signer]'s signature
// of [msg].
func Verify(msg []byte, signer ed25519.PublicKey, sig ed25519.Signature) error {
	if !ed25519.Verify(msg, signer, sig) {
		return ErrInvalidSignature
	}
	return nil
}
