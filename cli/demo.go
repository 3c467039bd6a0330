// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"

	"github.com/ava-labs/pdaledger/auth"
	"github.com/ava-labs/pdaledger/crypto/ed25519"
	"github.com/ava-labs/pdaledger/ledger"
	"github.com/ava-labs/pdaledger/utils"
)

// DemoStep is one balance overwrite of the demo run.
type DemoStep struct {
	Owner    int
	Category string
	Balance  int64
}

// DemoSteps are run in order by [RunDemo] with two owners.
var DemoSteps = []DemoStep{
	{Owner: 0, Category: "red", Balance: 2},
	{Owner: 0, Category: "red", Balance: 4},
	{Owner: 0, Category: "blue", Balance: 3},
	{Owner: 1, Category: "red", Balance: 3},
	{Owner: 1, Category: "green", Balance: 5},
}

// RunDemo sets balances for two freshly generated owners and returns the
// account after every step.
func RunDemo(ctx context.Context, l *ledger.Ledger) ([]*ledger.Account, error) {
	signers := make([]auth.Signer, 2)
	for i := range signers {
		priv, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return nil, err
		}
		signers[i] = auth.NewED25519Factory(priv)
		utils.Outf("{{yellow}}owner %d:{{/}} %s\n", i, signers[i].PublicKey())
	}

	accounts := make([]*ledger.Account, 0, len(DemoSteps))
	for _, step := range DemoSteps {
		account, err := l.SetBalance(ctx, signers[step.Owner], step.Category, step.Balance)
		if err != nil {
			return nil, err
		}
		utils.Outf("{{yellow}}owner %d{{/}} ", step.Owner)
		printAccount(account)
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (h *Handler) Demo(ctx context.Context) error {
	l, err := h.Ledger(ctx)
	if err != nil {
		return err
	}
	_, err = RunDemo(ctx, l)
	return err
}
