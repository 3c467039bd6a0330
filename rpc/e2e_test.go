// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/pdaledger/auth"
	"github.com/ava-labs/pdaledger/crypto/ed25519"
	"github.com/ava-labs/pdaledger/ledger"
	"github.com/ava-labs/pdaledger/rpc"
	"github.com/ava-labs/pdaledger/store"
	"github.com/ava-labs/pdaledger/trace"

	ginkgo "github.com/onsi/ginkgo/v2"
)

func TestE2e(t *testing.T) {
	ginkgo.RunSpecs(t, "ledger over json-rpc e2e test suites")
}

var (
	srv *httptest.Server
	l   *ledger.Ledger
)

var _ = ginkgo.BeforeSuite(func() {
	require := require.New(ginkgo.GinkgoT())

	p, err := store.NewProgram(
		ids.GenerateTestID(),
		store.NewDatabaseBackend(memdb.New()),
		logging.NoLog{},
		prometheus.NewRegistry(),
	)
	require.NoError(err)
	handler, err := rpc.NewJSONRPCHandler(rpc.NewJSONRPCServer(p, logging.NoLog{}, trace.Noop(rpc.Name)))
	require.NoError(err)
	mux := http.NewServeMux()
	mux.Handle(rpc.JSONRPCEndpoint, handler)
	srv = httptest.NewServer(mux)

	cli := rpc.NewJSONRPCClient(srv.URL)
	programID, err := cli.ProgramID(context.Background())
	require.NoError(err)
	l, err = ledger.New(ledger.Config{Store: cli, ProgramID: programID})
	require.NoError(err)
})

var _ = ginkgo.AfterSuite(func() {
	srv.Close()
})

func newSigner() auth.Signer {
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(ginkgo.GinkgoT(), err)
	return auth.NewED25519Factory(priv)
}

var _ = ginkgo.Describe("[Ledger]", func() {
	ginkgo.It("runs the two owner scenario", func() {
		require := require.New(ginkgo.GinkgoT())
		ctx := context.Background()
		a, b := newSigner(), newSigner()

		steps := []struct {
			signer   auth.Signer
			category string
			balance  int64
		}{
			{signer: a, category: "red", balance: 2},
			{signer: a, category: "red", balance: 4},
			{signer: a, category: "blue", balance: 3},
			{signer: b, category: "red", balance: 3},
			{signer: b, category: "green", balance: 5},
		}
		for _, step := range steps {
			acct, err := l.SetBalance(ctx, step.signer, step.category, step.balance)
			require.NoError(err)
			require.Equal(step.category, acct.Category)
			require.Equal(uint64(step.balance), acct.Balance)
		}

		aRed, err := l.DeriveAddress(a.PublicKey(), "red")
		require.NoError(err)
		bRed, err := l.DeriveAddress(b.PublicKey(), "red")
		require.NoError(err)
		require.NotEqual(aRed, bRed)

		result, err := l.GetAccount(ctx, a.PublicKey(), "red")
		require.NoError(err)
		require.Equal(ledger.Found, result.Status)
		require.Equal(uint64(4), result.Account.Balance)
	})

	ginkgo.It("converges concurrent ensures", func() {
		require := require.New(ginkgo.GinkgoT())
		ctx := context.Background()
		signer := newSigner()

		const callers = 8
		var (
			g        errgroup.Group
			accounts = make([]*ledger.Account, callers)
		)
		for i := 0; i < callers; i++ {
			i := i
			g.Go(func() error {
				acct, err := l.EnsureAccount(ctx, signer, "violet")
				accounts[i] = acct
				return err
			})
		}
		require.NoError(g.Wait())
		for _, acct := range accounts {
			require.Equal(accounts[0], acct)
		}
	})

	ginkgo.It("rejects a stale compare-and-set", func() {
		require := require.New(ginkgo.GinkgoT())
		ctx := context.Background()
		signer := newSigner()

		_, err := l.SetBalance(ctx, signer, "amber", 1)
		require.NoError(err)
		_, err = l.CompareAndSetBalance(ctx, signer, "amber", 0, 2)
		require.ErrorIs(err, ledger.ErrMutationFailed)
		require.ErrorIs(err, store.ErrBalanceMismatch)

		acct, err := l.CompareAndSetBalance(ctx, signer, "amber", 1, 2)
		require.NoError(err)
		require.Equal(uint64(2), acct.Balance)
	})

	ginkgo.It("reports a missing account without creating it", func() {
		require := require.New(ginkgo.GinkgoT())

		result, err := l.GetAccount(context.Background(), newSigner().PublicKey(), "teal")
		require.NoError(err)
		require.Equal(ledger.NotFound, result.Status)
	})
})
