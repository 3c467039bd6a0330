// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/ava-labs/pdaledger/rpc"
	"github.com/ava-labs/pdaledger/utils"
)

var endpointCmd = &cobra.Command{
	Use:   "endpoint",
	Short: "Print the store endpoint",
	RunE: func(*cobra.Command, []string) error {
		uri, err := handler.GetEndpoint()
		if err != nil {
			return err
		}
		utils.Outf("{{cyan}}endpoint:{{/}} %s\n", uri)
		return nil
	},
}

var setEndpointCmd = &cobra.Command{
	Use:   "set [uri]",
	Short: "Set the store endpoint",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return ErrInvalidArgs
		}
		_, err := url.ParseRequestURI(args[0])
		return err
	},
	RunE: func(_ *cobra.Command, args []string) error {
		return handler.StoreEndpoint(args[0])
	},
}

var pingEndpointCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the store endpoint is reachable",
	RunE: func(*cobra.Command, []string) error {
		uri, err := handler.GetEndpoint()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		cli := rpc.NewJSONRPCClient(uri)
		if _, err := cli.Ping(ctx); err != nil {
			return err
		}
		programID, err := cli.ProgramID(ctx)
		if err != nil {
			return err
		}
		if err := handler.StoreProgramID(programID); err != nil {
			return err
		}
		utils.Outf("{{green}}ping succeeded{{/}} {{cyan}}programID:{{/}} %s\n", programID)
		return nil
	},
}

func init() {
	endpointCmd.AddCommand(
		setEndpointCmd,
		pingEndpointCmd,
	)
}
