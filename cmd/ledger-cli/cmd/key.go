// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use: "key",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var genKeyCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a key and make it the default",
	RunE: func(*cobra.Command, []string) error {
		_, err := handler.GenerateKey()
		return err
	},
}

var importKeyCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Import a raw private key and make it the default",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		_, err := handler.ImportKey(args[0])
		return err
	},
}

var exportKeyCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write the default private key to a file",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		return handler.ExportKey(args[0])
	},
}

var setKeyCmd = &cobra.Command{
	Use:   "set",
	Short: "Choose the default key",
	RunE: func(*cobra.Command, []string) error {
		return handler.SetKey()
	},
}

var showKeyCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the owner of the default key",
	RunE: func(*cobra.Command, []string) error {
		return handler.ShowKey()
	},
}

func init() {
	keyCmd.AddCommand(
		genKeyCmd,
		importKeyCmd,
		exportKeyCmd,
		setKeyCmd,
		showKeyCmd,
	)
}
