// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/cobra"

	"github.com/ava-labs/pdaledger/crypto/ed25519"
)

var addressCmd = &cobra.Command{
	Use: "address",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var deriveAddressCmd = &cobra.Command{
	Use:   "derive [category]",
	Short: "Print the address of an account without touching the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := ownerFlag(cmd)
		if err != nil {
			return err
		}
		category, err := categoryArg(args)
		if err != nil {
			return err
		}
		programID, err := programIDFlag(cmd)
		if err != nil {
			return err
		}
		_, err = handler.DeriveAddress(programID, owner, category)
		return err
	},
}

// ownerFlag returns nil when no owner was given so the default key is used.
func ownerFlag(cmd *cobra.Command) (*ed25519.PublicKey, error) {
	raw, err := cmd.Flags().GetString("owner")
	if err != nil || len(raw) == 0 {
		return nil, err
	}
	owner, err := ed25519.ParsePublicKey(raw)
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

// programIDFlag returns ids.Empty when no program id was given so the one
// recorded at the last connection is used.
func programIDFlag(cmd *cobra.Command) (ids.ID, error) {
	raw, err := cmd.Flags().GetString("program-id")
	if err != nil || len(raw) == 0 {
		return ids.Empty, err
	}
	return ids.FromString(raw)
}

func init() {
	deriveAddressCmd.Flags().String("owner", "", "owner of the account (defaults to the default key)")
	deriveAddressCmd.Flags().String("program-id", "", "program the address is derived under (defaults to the endpoint's)")
	addressCmd.AddCommand(deriveAddressCmd)
}
