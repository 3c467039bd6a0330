// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/pdaledger/cli"
)

const (
	requestTimeout = 30 * time.Second
	databaseFolder = ".ledger-cli"
)

var (
	handler *cli.Handler

	dbPath      string
	showMetrics bool

	rootCmd = &cobra.Command{
		Use:        "ledger-cli",
		Short:      "Derived-address ledger CLI",
		SuggestFor: []string{"ledger-cli", "ledgercli"},
		PersistentPreRunE: func(*cobra.Command, []string) error {
			h, err := cli.New(dbPath)
			if err != nil {
				return fmt.Errorf("unable to open %s: %w", dbPath, err)
			}
			handler = h
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if !showMetrics {
				return nil
			}
			return handler.PrintMetrics()
		},
	}
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	cobra.EnablePrefixMatching = true
	rootCmd.PersistentFlags().StringVar(
		&dbPath,
		"database",
		filepath.Join(homeDir, databaseFolder),
		"path to the local key database",
	)
	rootCmd.PersistentFlags().BoolVar(
		&showMetrics,
		"metrics",
		false,
		"print client ledger metrics after the command",
	)
	rootCmd.AddCommand(
		keyCmd,
		endpointCmd,
		addressCmd,
		accountCmd,
		demoCmd,
	)
}

func Execute() error {
	defer func() {
		if handler != nil {
			_ = handler.CloseDatabase()
		}
	}()
	return rootCmd.Execute()
}
