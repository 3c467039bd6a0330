// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"encoding/json"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/pdaledger/auth"
	"github.com/ava-labs/pdaledger/crypto/ed25519"
	"github.com/ava-labs/pdaledger/derive"
)

func newSigner(t *testing.T) auth.Signer {
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	return auth.NewED25519Factory(priv)
}

func newCreate(t *testing.T, programID ids.ID, signer auth.Signer, category string) *CreateLedger {
	addr, bump, err := derive.LedgerAddress(programID, signer.PublicKey(), category)
	require.NoError(t, err)
	return &CreateLedger{
		Ledger:    addr,
		Authority: signer.PublicKey(),
		Bump:      bump,
		Category:  category,
	}
}

func TestSignVerify(t *testing.T) {
	require := require.New(t)
	programID := ids.GenerateTestID()
	signer := newSigner(t)

	signed, err := Sign(programID, newCreate(t, programID, signer, "red"), signer)
	require.NoError(err)
	require.NoError(signed.Verify(programID))

	// Signatures are bound to the program.
	require.ErrorIs(signed.Verify(ids.GenerateTestID()), auth.ErrInvalidSignature)

	// Tampering with the payload invalidates the signature.
	signed.Action.Category = "blue"
	require.ErrorIs(signed.Verify(programID), auth.ErrInvalidSignature)
}

func TestSignWrongSigner(t *testing.T) {
	require := require.New(t)
	programID := ids.GenerateTestID()
	owner := newSigner(t)

	_, err := Sign(programID, newCreate(t, programID, owner, "red"), newSigner(t))
	require.ErrorIs(err, ErrWrongSigner)
}

func TestModifyExpectedIsSigned(t *testing.T) {
	require := require.New(t)
	programID := ids.GenerateTestID()
	signer := newSigner(t)
	addr, _, err := derive.LedgerAddress(programID, signer.PublicKey(), "red")
	require.NoError(err)

	expected := uint64(2)
	signed, err := Sign(programID, &ModifyLedger{
		Ledger:     addr,
		Authority:  signer.PublicKey(),
		NewBalance: 4,
		Expected:   &expected,
	}, signer)
	require.NoError(err)
	require.NoError(signed.Verify(programID))

	signed.Action.Expected = nil
	require.ErrorIs(signed.Verify(programID), auth.ErrInvalidSignature)
}

func TestDigestDiscriminators(t *testing.T) {
	require := require.New(t)
	programID := ids.GenerateTestID()
	signer := newSigner(t)
	create := newCreate(t, programID, signer, "red")

	first, err := Digest(programID, create)
	require.NoError(err)
	second, err := Digest(programID, create)
	require.NoError(err)
	require.Equal(first, second)
	require.Equal(createLedgerDiscriminator[:], first[:DiscriminatorLen])
	require.NotEqual(createLedgerDiscriminator, modifyLedgerDiscriminator)
}

func TestSignedJSON(t *testing.T) {
	require := require.New(t)
	programID := ids.GenerateTestID()
	signer := newSigner(t)

	signed, err := Sign(programID, newCreate(t, programID, signer, "green"), signer)
	require.NoError(err)

	b, err := json.Marshal(signed)
	require.NoError(err)
	var parsed Signed[*CreateLedger]
	require.NoError(json.Unmarshal(b, &parsed))
	require.Equal(signed, &parsed)
	require.NoError(parsed.Verify(programID))
}
