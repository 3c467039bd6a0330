// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"fmt"

	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/pdaledger/ledger"
	"github.com/ava-labs/pdaledger/pebble"
)

// Handler holds the local state of the command line client: stored keys, the
// default key, the endpoint of the store and its program id.
type Handler struct {
	db *pebble.Database

	// Client-side ledger metrics, see [Handler.PrintMetrics].
	registry *prometheus.Registry
	ledger   *ledger.Ledger
}

func New(dbPath string) (*Handler, error) {
	cfg := pebble.NewDefaultConfig()
	cfg.CacheSize = 8 * units.MiB
	db, _, err := pebble.New(dbPath, cfg)
	if err != nil {
		return nil, err
	}
	return &Handler{
		db:       db,
		registry: prometheus.NewRegistry(),
	}, nil
}

func (h *Handler) CloseDatabase() error {
	if h.db == nil {
		return nil
	}
	if err := h.db.Close(); err != nil {
		return fmt.Errorf("unable to close database: %w", err)
	}
	// Allow DB to be closed multiple times
	h.db = nil
	return nil
}
