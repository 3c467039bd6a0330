// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/pdaledger/crypto/ed25519"
)

const (
	defaultPrefix = 0x0
	keyPrefix     = 0x1

	defaultKeyKey  = "key"
	endpointKey    = "endpoint"
	keyIndexKey    = "keys"
	programIDKey   = "programID"
	defaultBaseURI = "http://127.0.0.1:9650"
)

func (h *Handler) StoreDefault(key string, value []byte) error {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], []byte(key))
	return h.db.Put(k, value)
}

// GetDefault returns nil when [key] was never stored.
func (h *Handler) GetDefault(key string) ([]byte, error) {
	k := make([]byte, 1+len(key))
	k[0] = defaultPrefix
	copy(k[1:], []byte(key))
	v, err := h.db.Get(k)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func privateKeyKey(pk ed25519.PublicKey) []byte {
	k := make([]byte, 1+ed25519.PublicKeyLen)
	k[0] = keyPrefix
	copy(k[1:], pk[:])
	return k
}

// StoreKey saves [privateKey] and appends its public key to the keyring
// index.
func (h *Handler) StoreKey(privateKey ed25519.PrivateKey) error {
	publicKey := privateKey.PublicKey()
	k := privateKeyKey(publicKey)
	has, err := h.db.Has(k)
	if err != nil {
		return err
	}
	if has {
		return ErrDuplicate
	}
	if err := h.db.Put(k, privateKey[:]); err != nil {
		return err
	}
	index, err := h.GetDefault(keyIndexKey)
	if err != nil {
		return err
	}
	return h.StoreDefault(keyIndexKey, append(index, publicKey[:]...))
}

func (h *Handler) GetKey(publicKey ed25519.PublicKey) (ed25519.PrivateKey, error) {
	v, err := h.db.Get(privateKeyKey(publicKey))
	if errors.Is(err, database.ErrNotFound) {
		return ed25519.EmptyPrivateKey, fmt.Errorf("%w: %s", ErrUnknownKey, publicKey)
	}
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	if len(v) != ed25519.PrivateKeyLen {
		return ed25519.EmptyPrivateKey, ErrCorruptKeyring
	}
	return ed25519.PrivateKey(v), nil
}

// GetKeys returns the stored keys in the order they were added.
func (h *Handler) GetKeys() ([]ed25519.PrivateKey, error) {
	index, err := h.GetDefault(keyIndexKey)
	if err != nil {
		return nil, err
	}
	if len(index)%ed25519.PublicKeyLen != 0 {
		return nil, ErrCorruptKeyring
	}
	privateKeys := make([]ed25519.PrivateKey, 0, len(index)/ed25519.PublicKeyLen)
	for i := 0; i < len(index); i += ed25519.PublicKeyLen {
		priv, err := h.GetKey(ed25519.PublicKey(index[i : i+ed25519.PublicKeyLen]))
		if err != nil {
			return nil, err
		}
		privateKeys = append(privateKeys, priv)
	}
	return privateKeys, nil
}

func (h *Handler) StoreDefaultKey(pk ed25519.PublicKey) error {
	return h.StoreDefault(defaultKeyKey, pk[:])
}

func (h *Handler) GetDefaultKey() (ed25519.PrivateKey, error) {
	v, err := h.GetDefault(defaultKeyKey)
	if err != nil {
		return ed25519.EmptyPrivateKey, err
	}
	if len(v) == 0 {
		return ed25519.EmptyPrivateKey, ErrNoKeys
	}
	if len(v) != ed25519.PublicKeyLen {
		return ed25519.EmptyPrivateKey, ErrCorruptKeyring
	}
	return h.GetKey(ed25519.PublicKey(v))
}

// StoreEndpoint also forgets the program id of the previous endpoint.
func (h *Handler) StoreEndpoint(uri string) error {
	if err := h.StoreDefault(programIDKey, nil); err != nil {
		return err
	}
	return h.StoreDefault(endpointKey, []byte(uri))
}

// GetEndpoint returns the stored endpoint, or the local default when none was
// set.
func (h *Handler) GetEndpoint() (string, error) {
	v, err := h.GetDefault(endpointKey)
	if err != nil {
		return "", err
	}
	if len(v) == 0 {
		return defaultBaseURI, nil
	}
	return string(v), nil
}

func (h *Handler) StoreProgramID(programID ids.ID) error {
	return h.StoreDefault(programIDKey, programID[:])
}

// GetProgramID returns the program id recorded the last time the endpoint was
// reached, or the one stored explicitly.
func (h *Handler) GetProgramID() (ids.ID, error) {
	v, err := h.GetDefault(programIDKey)
	if err != nil {
		return ids.Empty, err
	}
	if len(v) == 0 {
		return ids.Empty, ErrNoProgramID
	}
	return ids.ToID(v)
}
