// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ava-labs/pdaledger/cli/prompt"
	"github.com/ava-labs/pdaledger/derive"
)

var accountCmd = &cobra.Command{
	Use: "account",
	RunE: func(*cobra.Command, []string) error {
		return ErrMissingSubcommand
	},
}

var ensureAccountCmd = &cobra.Command{
	Use:   "ensure [category]",
	Short: "Create the account of the default key if it does not exist",
	RunE: func(_ *cobra.Command, args []string) error {
		category, err := categoryArg(args)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return handler.EnsureAccount(ctx, category)
	},
}

var getAccountCmd = &cobra.Command{
	Use:   "get [category]",
	Short: "Look up an account without creating it",
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := ownerFlag(cmd)
		if err != nil {
			return err
		}
		category, err := categoryArg(args)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return handler.GetAccount(ctx, owner, category)
	},
}

var setBalanceCmd = &cobra.Command{
	Use:   "set-balance [category] [balance]",
	Short: "Overwrite the balance of an account, creating it first if needed",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 2 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		category, err := categoryArg(args)
		if err != nil {
			return err
		}
		balance, err := balanceArg(args, 1, "balance")
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return handler.SetBalance(ctx, category, balance)
	},
}

var casBalanceCmd = &cobra.Command{
	Use:   "cas [category] [expected] [balance]",
	Short: "Overwrite the balance only if it still equals the expected balance",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) > 3 {
			return ErrInvalidArgs
		}
		return nil
	},
	RunE: func(_ *cobra.Command, args []string) error {
		category, err := categoryArg(args)
		if err != nil {
			return err
		}
		expected, err := balanceArg(args, 1, "expected balance")
		if err != nil {
			return err
		}
		balance, err := balanceArg(args, 2, "balance")
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return handler.CompareAndSetBalance(ctx, category, expected, balance)
	},
}

// categoryArg reads the first argument, prompting when it is missing.
func categoryArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return prompt.String("category", derive.MaxSeedLen)
}

// balanceArg reads argument [i], prompting when it is missing.
func balanceArg(args []string, i int, label string) (int64, error) {
	if len(args) > i {
		return strconv.ParseInt(args[i], 10, 64)
	}
	return prompt.Balance(label)
}

func init() {
	getAccountCmd.Flags().String("owner", "", "owner of the account (defaults to the default key)")
	accountCmd.AddCommand(
		ensureAccountCmd,
		getAccountCmd,
		setBalanceCmd,
		casBalanceCmd,
	)
}
