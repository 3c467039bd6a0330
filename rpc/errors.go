// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"errors"
	"fmt"

	"github.com/gorilla/rpc/v2/json2"

	"github.com/ava-labs/pdaledger/store"
)

var ErrMissingRequest = errors.New("missing request")

const (
	CodeUnauthorized    json2.ErrorCode = -32003
	CodeNotFound        json2.ErrorCode = -32004
	CodeAlreadyExists   json2.ErrorCode = -32009
	CodeBalanceMismatch json2.ErrorCode = -32010
	CodeConflict        json2.ErrorCode = -32011
	CodeInvalidRequest  json2.ErrorCode = json2.E_BAD_PARAMS
)

// errorCodes is checked in order; the first sentinel an error wraps decides
// its code.
var errorCodes = []struct {
	err  error
	code json2.ErrorCode
}{
	{err: store.ErrNotFound, code: CodeNotFound},
	{err: store.ErrAlreadyExists, code: CodeAlreadyExists},
	{err: store.ErrBalanceMismatch, code: CodeBalanceMismatch},
	{err: store.ErrUnauthorized, code: CodeUnauthorized},
	{err: store.ErrInvalidRequest, code: CodeInvalidRequest},
	{err: store.ErrConflict, code: CodeConflict},
}

// toJSONError gives store errors a code clients can map back to the same
// sentinel. Other errors are reported as generic server errors.
func toJSONError(err error) error {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return &json2.Error{
				Code:    c.code,
				Message: err.Error(),
			}
		}
	}
	return err
}

// fromJSONError reverses [toJSONError] so callers can use errors.Is across
// the network.
func fromJSONError(err error) error {
	if err == nil {
		return nil
	}
	var jerr *json2.Error
	if !errors.As(err, &jerr) {
		return err
	}
	for _, c := range errorCodes {
		if jerr.Code == c.code {
			return fmt.Errorf("%w: %s", c.err, jerr.Message)
		}
	}
	return err
}
