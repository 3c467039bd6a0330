// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// "ledger-cli" implements the ledger client operation interface.
package main

import (
	"os"

	"github.com/ava-labs/pdaledger/cmd/ledger-cli/cmd"
	"github.com/ava-labs/pdaledger/utils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.Outf("{{red}}ledger-cli exited with error:{{/}} %+v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
