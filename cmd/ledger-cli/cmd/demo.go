// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ava-labs/pdaledger/cli/prompt"
	"github.com/ava-labs/pdaledger/utils"
)

var skipConfirm bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Set balances for two fresh owners against the store",
	RunE: func(*cobra.Command, []string) error {
		uri, err := handler.GetEndpoint()
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}endpoint:{{/}} %s\n", uri)
		if !skipConfirm {
			cont, err := prompt.Continue()
			if !cont || err != nil {
				return err
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return handler.Demo(ctx)
	},
}

func init() {
	demoCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "skip confirmation")
}
