// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/ava-labs/pdaledger/actions"
	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/ledger"
	"github.com/ava-labs/pdaledger/server"
	"github.com/ava-labs/pdaledger/store"
)

// Store is the program a [JSONRPCServer] exposes.
type Store interface {
	ledger.AccountStore
	ProgramID() ids.ID
}

type JSONRPCServer struct {
	store  Store
	log    logging.Logger
	tracer trace.Tracer
}

func NewJSONRPCServer(s Store, log logging.Logger, tracer trace.Tracer) *JSONRPCServer {
	return &JSONRPCServer{
		store:  s,
		log:    log,
		tracer: tracer,
	}
}

// NewJSONRPCHandler serves [s] under the [Name] service.
func NewJSONRPCHandler(s *JSONRPCServer) (http.Handler, error) {
	return server.NewHandler(s, Name)
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.log.Info("ping")
	reply.Success = true
	return nil
}

type ProgramIDReply struct {
	ProgramID ids.ID `json:"programId"`
}

func (j *JSONRPCServer) ProgramID(_ *http.Request, _ *struct{}, reply *ProgramIDReply) error {
	reply.ProgramID = j.store.ProgramID()
	return nil
}

type FetchArgs struct {
	Address codec.Address `json:"address"`
}

type FetchReply struct {
	Ledger store.Ledger `json:"ledger"`
}

func (j *JSONRPCServer) Fetch(req *http.Request, args *FetchArgs, reply *FetchReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Fetch", oteltrace.WithAttributes(
		attribute.Stringer("address", args.Address),
	))
	defer span.End()

	l, err := j.store.Fetch(ctx, args.Address)
	if err != nil {
		return toJSONError(err)
	}
	reply.Ledger = *l
	return nil
}

type CreateArgs struct {
	Request *actions.Signed[*actions.CreateLedger] `json:"request"`
}

type SubmitReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Create(req *http.Request, args *CreateArgs, reply *SubmitReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Create")
	defer span.End()

	if args.Request == nil || args.Request.Action == nil {
		return toJSONError(store.ErrInvalidRequest)
	}
	if err := j.store.Create(ctx, args.Request); err != nil {
		j.log.Debug("create rejected",
			zap.Stringer("address", args.Request.Action.Ledger),
			zap.Error(err),
		)
		return toJSONError(err)
	}
	reply.Success = true
	return nil
}

type ModifyArgs struct {
	Request *actions.Signed[*actions.ModifyLedger] `json:"request"`
}

func (j *JSONRPCServer) Modify(req *http.Request, args *ModifyArgs, reply *SubmitReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.Modify")
	defer span.End()

	if args.Request == nil || args.Request.Action == nil {
		return toJSONError(store.ErrInvalidRequest)
	}
	if err := j.store.Modify(ctx, args.Request); err != nil {
		j.log.Debug("modify rejected",
			zap.Stringer("address", args.Request.Action.Ledger),
			zap.Error(err),
		)
		return toJSONError(err)
	}
	reply.Success = true
	return nil
}
