// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newRedisBackend(t *testing.T) *RedisBackend {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	client, err := NewRedisClient(ctx, url)
	require.NoError(t, err)

	b := NewRedisBackend(client)
	t.Cleanup(func() {
		_ = b.Close()
	})
	return b
}

func TestRedisBackend(t *testing.T) {
	testBackend(t, newRedisBackend(t))
}

func TestRedisBackendConcurrentInsert(t *testing.T) {
	testConcurrentInsert(t, newRedisBackend(t))
}

func TestRedisProgram(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	p, err := NewProgram(ids.GenerateTestID(), newRedisBackend(t), logging.NoLog{}, prometheus.NewRegistry())
	require.NoError(err)
	signer := newSigner(t)

	create := signCreate(t, p, signer, "red")
	require.NoError(p.Create(ctx, create))
	require.ErrorIs(p.Create(ctx, create), ErrAlreadyExists)

	l, err := p.Fetch(ctx, create.Action.Ledger)
	require.NoError(err)
	require.Equal(&Ledger{Category: "red"}, l)
}
