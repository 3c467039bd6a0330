// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/pdaledger/auth"
	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/crypto/ed25519"
	"github.com/ava-labs/pdaledger/derive"
	"github.com/ava-labs/pdaledger/ledger"
	"github.com/ava-labs/pdaledger/rpc"
	"github.com/ava-labs/pdaledger/utils"
)

// Ledger connects to the stored endpoint once and records its program id so
// later derivations need no connection.
func (h *Handler) Ledger(ctx context.Context) (*ledger.Ledger, error) {
	if h.ledger != nil {
		return h.ledger, nil
	}
	uri, err := h.GetEndpoint()
	if err != nil {
		return nil, err
	}
	l, programID, err := Connect(ctx, uri, h.registry)
	if err != nil {
		return nil, err
	}
	if err := h.StoreProgramID(programID); err != nil {
		return nil, err
	}
	h.ledger = l
	return l, nil
}

// Connect returns a ledger backed by the store served at [uri] together with
// the store's program id. Ledger metrics are registered with [registerer].
func Connect(ctx context.Context, uri string, registerer prometheus.Registerer) (*ledger.Ledger, ids.ID, error) {
	cli := rpc.NewJSONRPCClient(uri)
	programID, err := cli.ProgramID(ctx)
	if err != nil {
		return nil, ids.Empty, err
	}
	l, err := ledger.New(ledger.Config{
		Store:      cli,
		ProgramID:  programID,
		Registerer: registerer,
	})
	return l, programID, err
}

func (h *Handler) signer() (auth.Signer, error) {
	priv, err := h.GetDefaultKey()
	if err != nil {
		return nil, err
	}
	return auth.NewED25519Factory(priv), nil
}

// DeriveAddress prints the address of the account of [owner] for [category]
// without contacting the store. The default key is used when [owner] is nil
// and the stored program id when [programID] is empty.
func (h *Handler) DeriveAddress(programID ids.ID, owner *ed25519.PublicKey, category string) (codec.Address, error) {
	if programID == ids.Empty {
		stored, err := h.GetProgramID()
		if err != nil {
			return codec.EmptyAddress, err
		}
		programID = stored
	}
	if owner == nil {
		s, err := h.signer()
		if err != nil {
			return codec.EmptyAddress, err
		}
		pk := s.PublicKey()
		owner = &pk
	}
	addr, _, err := derive.LedgerAddress(programID, *owner, category)
	if err != nil {
		return codec.EmptyAddress, err
	}
	utils.Outf("{{cyan}}owner:{{/}} %s {{cyan}}category:{{/}} %s\n", *owner, category)
	utils.Outf("{{cyan}}address:{{/}} %s\n", addr)
	return addr, nil
}

func (h *Handler) EnsureAccount(ctx context.Context, category string) error {
	s, err := h.signer()
	if err != nil {
		return err
	}
	l, err := h.Ledger(ctx)
	if err != nil {
		return err
	}
	account, err := l.EnsureAccount(ctx, s, category)
	if err != nil {
		return err
	}
	printAccount(account)
	return nil
}

func (h *Handler) GetAccount(ctx context.Context, owner *ed25519.PublicKey, category string) error {
	if owner == nil {
		s, err := h.signer()
		if err != nil {
			return err
		}
		pk := s.PublicKey()
		owner = &pk
	}
	l, err := h.Ledger(ctx)
	if err != nil {
		return err
	}
	result, err := l.GetAccount(ctx, *owner, category)
	if err != nil {
		return err
	}
	switch result.Status {
	case ledger.Found:
		printAccount(result.Account)
	case ledger.NotFound:
		utils.Outf("{{yellow}}no account for{{/}} %s {{yellow}}in{{/}} %s\n", *owner, category)
	default:
		return result.Err
	}
	return nil
}

func (h *Handler) SetBalance(ctx context.Context, category string, balance int64) error {
	s, err := h.signer()
	if err != nil {
		return err
	}
	l, err := h.Ledger(ctx)
	if err != nil {
		return err
	}
	account, err := l.SetBalance(ctx, s, category, balance)
	if err != nil {
		return err
	}
	printAccount(account)
	return nil
}

func (h *Handler) CompareAndSetBalance(ctx context.Context, category string, expected int64, balance int64) error {
	s, err := h.signer()
	if err != nil {
		return err
	}
	l, err := h.Ledger(ctx)
	if err != nil {
		return err
	}
	account, err := l.CompareAndSetBalance(ctx, s, category, expected, balance)
	if err != nil {
		return err
	}
	printAccount(account)
	return nil
}

func printAccount(account *ledger.Account) {
	utils.Outf(
		"{{cyan}}address:{{/}} %s {{cyan}}category:{{/}} %s {{cyan}}balance:{{/}} %d\n",
		account.Address.Short(),
		account.Category,
		account.Balance,
	)
}
