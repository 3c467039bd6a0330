// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

// LedgerDB is the namespace of the database holding ledger accounts.
const LedgerDB = "ledgerdb"
