// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "ledgerd" serves a ledger store over JSON-RPC.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/akamensky/argparse"
	"go.uber.org/zap"

	"github.com/ava-labs/pdaledger/config"
	"github.com/ava-labs/pdaledger/utils"
)

type flags struct {
	configPath *string
	listen     *string
	backend    *string
	logLevel   *string
}

func newFlags(parser *argparse.Parser) *flags {
	return &flags{
		configPath: parser.String("c", "config", &argparse.Options{Help: "path to a json or yaml config file"}),
		listen:     parser.String("l", "listen", &argparse.Options{Help: "address to serve on"}),
		backend:    parser.Selector("b", "backend", []string{config.MemoryBackend, config.PebbleBackend, config.RedisBackend}, &argparse.Options{Help: "store backend"}),
		logLevel:   parser.String("", "log-level", &argparse.Options{Help: "log level written to file"}),
	}
}

// apply overrides [cfg] with every flag that was set.
func (f *flags) apply(cfg *config.Config) error {
	if len(*f.listen) > 0 {
		cfg.Server.ListenAddress = *f.listen
	}
	if len(*f.backend) > 0 {
		cfg.Store.Backend = *f.backend
	}
	if len(*f.logLevel) > 0 {
		cfg.Log.Level = *f.logLevel
	}
	return cfg.Verify()
}

func main() {
	parser := argparse.NewParser("ledgerd", "Serves derived-address ledger accounts over JSON-RPC")
	f := newFlags(parser)
	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(1)
	}

	if err := run(f); err != nil {
		utils.Outf("{{red}}ledgerd exited with error:{{/}} %v\n", err)
		os.Exit(1)
	}
}

func run(f *flags) error {
	cfg, err := config.Load(*f.configPath)
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}
	if err := f.apply(cfg); err != nil {
		return err
	}

	logConfig, err := cfg.GetLogConfig()
	if err != nil {
		return err
	}
	logFactory := newLogFactory(logConfig)
	defer logFactory.Close()
	log, err := logFactory.Make("ledgerd")
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	listener, err := net.Listen("tcp", cfg.Server.ListenAddress)
	if err != nil {
		return err
	}
	n, err := newNode(ctx, cfg, log, listener)
	if err != nil {
		_ = listener.Close()
		return err
	}

	errc := make(chan error, 1)
	go func() {
		errc <- n.serve()
	}()

	select {
	case err = <-errc:
		log.Error("server stopped", zap.Error(err))
	case <-ctx.Done():
		log.Info("received shutdown signal")
	}
	if shutdownErr := n.shutdown(); shutdownErr != nil {
		log.Warn("unclean shutdown", zap.Error(shutdownErr))
	}
	return err
}
