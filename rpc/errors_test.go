// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/pdaledger/store"
)

func TestErrorCodes(t *testing.T) {
	for _, c := range errorCodes {
		t.Run(c.err.Error(), func(t *testing.T) {
			require := require.New(t)

			jerr := toJSONError(fmt.Errorf("%w: detail", c.err))
			var target *json2.Error
			require.ErrorAs(jerr, &target)
			require.Equal(c.code, target.Code)

			// The client sees the codec error wrapped by the transport.
			wrapped := fmt.Errorf("failed to decode client response: %w", jerr)
			require.ErrorIs(fromJSONError(wrapped), c.err)
		})
	}
}

func TestErrorCodesUnknown(t *testing.T) {
	require := require.New(t)

	err := errors.New("disk on fire")
	require.Equal(err, toJSONError(err))
	require.Equal(err, fromJSONError(err))
	require.NoError(fromJSONError(nil))

	unknown := &json2.Error{Code: json2.E_SERVER, Message: "boom"}
	require.Equal(error(unknown), fromJSONError(unknown))
}

func TestErrorCodesInvalidCategory(t *testing.T) {
	// Validation failures are wrapped in ErrInvalidRequest by the program.
	err := fmt.Errorf("%w: %w", store.ErrInvalidRequest, store.ErrInvalidCategory)
	var target *json2.Error
	require.ErrorAs(t, toJSONError(err), &target)
	require.Equal(t, CodeInvalidRequest, target.Code)
}
