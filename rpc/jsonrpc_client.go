// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"
	"sync"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/pdaledger/actions"
	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/ledger"
	"github.com/ava-labs/pdaledger/requester"
	"github.com/ava-labs/pdaledger/store"
)

var _ ledger.AccountStore = (*JSONRPCClient)(nil)

// JSONRPCClient talks to a remote store. Store errors come back as the
// sentinels of the store package.
type JSONRPCClient struct {
	requester *requester.EndpointRequester

	l         sync.Mutex
	programID ids.ID
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	req := requester.New(uri, Name)
	return &JSONRPCClient{requester: req}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

// ProgramID returns the id of the remote program. It is fetched once.
func (cli *JSONRPCClient) ProgramID(ctx context.Context) (ids.ID, error) {
	cli.l.Lock()
	defer cli.l.Unlock()

	if cli.programID != ids.Empty {
		return cli.programID, nil
	}
	resp := new(ProgramIDReply)
	if err := cli.requester.SendRequest(ctx, "programID", nil, resp); err != nil {
		return ids.Empty, err
	}
	cli.programID = resp.ProgramID
	return resp.ProgramID, nil
}

func (cli *JSONRPCClient) Fetch(ctx context.Context, addr codec.Address) (*store.Ledger, error) {
	resp := new(FetchReply)
	err := cli.requester.SendRequest(
		ctx,
		"fetch",
		&FetchArgs{Address: addr},
		resp,
	)
	if err != nil {
		return nil, fromJSONError(err)
	}
	return &resp.Ledger, nil
}

func (cli *JSONRPCClient) Create(ctx context.Context, req *actions.Signed[*actions.CreateLedger]) error {
	err := cli.requester.SendRequest(
		ctx,
		"create",
		&CreateArgs{Request: req},
		new(SubmitReply),
	)
	return fromJSONError(err)
}

func (cli *JSONRPCClient) Modify(ctx context.Context, req *actions.Signed[*actions.ModifyLedger]) error {
	err := cli.requester.SendRequest(
		ctx,
		"modify",
		&ModifyArgs{Request: req},
		new(SubmitReply),
	)
	return fromJSONError(err)
}
