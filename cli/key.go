// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"github.com/ava-labs/pdaledger/cli/prompt"
	"github.com/ava-labs/pdaledger/crypto/ed25519"
	"github.com/ava-labs/pdaledger/utils"
)

// GenerateKey creates a new key and makes it the default.
func (h *Handler) GenerateKey() (ed25519.PublicKey, error) {
	priv, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return ed25519.EmptyPublicKey, err
	}
	return h.addKey(priv)
}

// ImportKey loads the raw private key stored at [path] and makes it the
// default.
func (h *Handler) ImportKey(path string) (ed25519.PublicKey, error) {
	priv, err := ed25519.LoadKey(path)
	if err != nil {
		return ed25519.EmptyPublicKey, err
	}
	return h.addKey(priv)
}

func (h *Handler) addKey(priv ed25519.PrivateKey) (ed25519.PublicKey, error) {
	if err := h.StoreKey(priv); err != nil {
		return ed25519.EmptyPublicKey, err
	}
	publicKey := priv.PublicKey()
	if err := h.StoreDefaultKey(publicKey); err != nil {
		return ed25519.EmptyPublicKey, err
	}
	utils.Outf("{{green}}stored key:{{/}} %s\n", publicKey)
	return publicKey, nil
}

// ExportKey writes the default private key to [path].
func (h *Handler) ExportKey(path string) error {
	priv, err := h.GetDefaultKey()
	if err != nil {
		return err
	}
	if err := priv.Save(path); err != nil {
		return err
	}
	utils.Outf("{{green}}exported key:{{/}} %s {{green}}to{{/}} %s\n", priv.PublicKey(), path)
	return nil
}

// SetKey lists the stored keys and prompts for the new default.
func (h *Handler) SetKey() error {
	keys, err := h.GetKeys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		utils.Outf("{{red}}no stored keys{{/}}\n")
		return nil
	}
	utils.Outf("{{cyan}}stored keys:{{/}} %d\n", len(keys))
	for i, key := range keys {
		utils.Outf("%d) {{cyan}}owner:{{/}} %s\n", i, key.PublicKey())
	}

	keyIndex, err := prompt.Choice("set default key", len(keys))
	if err != nil {
		return err
	}
	return h.StoreDefaultKey(keys[keyIndex].PublicKey())
}

func (h *Handler) ShowKey() error {
	priv, err := h.GetDefaultKey()
	if err != nil {
		return err
	}
	utils.Outf("{{cyan}}owner:{{/}} %s\n", priv.PublicKey())
	return nil
}
