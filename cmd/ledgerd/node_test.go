// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/pdaledger/auth"
	"github.com/ava-labs/pdaledger/config"
	"github.com/ava-labs/pdaledger/crypto/ed25519"
	"github.com/ava-labs/pdaledger/ledger"
	"github.com/ava-labs/pdaledger/rpc"
)

func startNode(t *testing.T, cfg *config.Config) string {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	n, err := newNode(context.Background(), cfg, logging.NoLog{}, listener)
	require.NoError(err)

	var g errgroup.Group
	g.Go(n.serve)
	t.Cleanup(func() {
		require.NoError(n.shutdown())
		require.NoError(g.Wait())
	})
	return "http://" + listener.Addr().String()
}

func TestNodeServesLedger(t *testing.T) {
	for _, backend := range []string{config.MemoryBackend, config.PebbleBackend} {
		t.Run(backend, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()

			cfg, err := config.New(nil)
			require.NoError(err)
			cfg.Store.Backend = backend
			cfg.Store.DataDir = t.TempDir()
			uri := startNode(t, cfg)

			cli := rpc.NewJSONRPCClient(uri)
			ok, err := cli.Ping(ctx)
			require.NoError(err)
			require.True(ok)
			programID, err := cli.ProgramID(ctx)
			require.NoError(err)
			require.Equal(config.DefaultProgramID, programID)

			l, err := ledger.New(ledger.Config{Store: cli, ProgramID: programID})
			require.NoError(err)
			priv, err := ed25519.GeneratePrivateKey()
			require.NoError(err)
			signer := auth.NewED25519Factory(priv)

			account, err := l.SetBalance(ctx, signer, "red", 500)
			require.NoError(err)
			require.Equal(uint64(500), account.Balance)

			result, err := l.GetAccount(ctx, signer.PublicKey(), "red")
			require.NoError(err)
			require.Equal(ledger.Found, result.Status)
			require.Equal(uint64(500), result.Account.Balance)
		})
	}
}

func TestNodeServesMetrics(t *testing.T) {
	require := require.New(t)

	cfg, err := config.New(nil)
	require.NoError(err)
	uri := startNode(t, cfg)

	resp, err := http.Get(uri + "/" + metricsEndpoint)
	require.NoError(err)
	defer resp.Body.Close()
	require.Equal(http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(err)
	require.Contains(string(body), "store_created")
}

func TestNewNodeRejectsUnreachableRedis(t *testing.T) {
	require := require.New(t)

	cfg, err := config.New([]byte(`{"store": {"backend": "redis", "redisURL": "redis://127.0.0.1:1/0"}}`))
	require.NoError(err)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	defer listener.Close()

	_, err = newNode(context.Background(), cfg, logging.NoLog{}, listener)
	require.ErrorContains(err, "unable to connect to redis")
}
