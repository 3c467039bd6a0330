// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ava-labs/pdaledger/config"
	"github.com/ava-labs/pdaledger/rpc"
	"github.com/ava-labs/pdaledger/server"
	"github.com/ava-labs/pdaledger/storage"
	"github.com/ava-labs/pdaledger/store"

	ltrace "github.com/ava-labs/pdaledger/trace"
)

const metricsEndpoint = "metrics"

// node owns every long-lived component of the daemon.
type node struct {
	log      logging.Logger
	tracer   trace.Tracer
	gatherer metrics.MultiGatherer
	program  *store.Program
	server   server.Server

	closers []func() error
}

func newNode(ctx context.Context, cfg *config.Config, log logging.Logger, listener net.Listener) (*node, error) {
	n := &node{
		log:      log,
		gatherer: metrics.NewPrefixGatherer(),
	}
	if err := n.init(ctx, cfg, listener); err != nil {
		_ = n.close()
		return nil, err
	}
	return n, nil
}

func (n *node) init(ctx context.Context, cfg *config.Config, listener net.Listener) error {
	programID, err := cfg.GetProgramID()
	if err != nil {
		return err
	}

	n.tracer, err = ltrace.New(&cfg.Trace)
	if err != nil {
		return fmt.Errorf("unable to create tracer: %w", err)
	}
	n.closers = append(n.closers, n.tracer.Close)

	backend, err := n.newBackend(ctx, cfg.Store)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	n.program, err = store.NewProgram(programID, backend, n.log, registry)
	if err != nil {
		return err
	}
	if err := n.gatherer.Register("store", registry); err != nil {
		return err
	}

	rpcHandler, err := rpc.NewJSONRPCHandler(rpc.NewJSONRPCServer(n.program, n.log, n.tracer))
	if err != nil {
		return err
	}
	n.server = server.New(
		"",
		n.log,
		listener,
		cfg.GetHTTPConfig(),
		cfg.Server.AllowedOrigins,
		cfg.Server.AllowedHosts,
		cfg.Server.ShutdownTimeout.Duration(),
	)
	errs := wrappers.Errs{}
	errs.Add(
		n.server.AddRoute(rpcHandler, rpc.JSONRPCEndpoint[1:], ""),
		n.server.AddRoute(promhttp.HandlerFor(n.gatherer, promhttp.HandlerOpts{}), metricsEndpoint, ""),
	)
	if errs.Errored() {
		return errs.Err
	}

	n.log.Info("node initialized",
		zap.Stringer("programID", programID),
		zap.String("backend", cfg.Store.Backend),
		zap.Stringer("address", listener.Addr()),
	)
	return nil
}

func (n *node) newBackend(ctx context.Context, cfg config.StoreConfig) (store.Backend, error) {
	switch cfg.Backend {
	case config.MemoryBackend:
		return store.NewDatabaseBackend(memdb.New()), nil
	case config.PebbleBackend:
		db, err := storage.New(cfg.Pebble, cfg.DataDir, storage.LedgerDB, n.gatherer)
		if err != nil {
			return nil, fmt.Errorf("unable to open pebble: %w", err)
		}
		n.closers = append(n.closers, db.Close)
		return store.NewDatabaseBackend(db), nil
	case config.RedisBackend:
		client, err := store.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to redis: %w", err)
		}
		backend := store.NewRedisBackend(client)
		n.closers = append(n.closers, backend.Close)
		return backend, nil
	default:
		return nil, fmt.Errorf("%w: unknown store backend %q", config.ErrInvalidConfig, cfg.Backend)
	}
}

// serve blocks until the server stops. A server stopped by [shutdown]
// returns nil.
func (n *node) serve() error {
	n.log.Info("serving requests")
	err := n.server.Dispatch()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (n *node) shutdown() error {
	var errs wrappers.Errs
	if n.server != nil {
		errs.Add(n.server.Shutdown())
	}
	errs.Add(n.close())
	return errs.Err
}

// close releases components in reverse order of creation.
func (n *node) close() error {
	var errs wrappers.Errs
	for i := len(n.closers) - 1; i >= 0; i-- {
		errs.Add(n.closers[i]())
	}
	n.closers = nil
	return errs.Err
}
