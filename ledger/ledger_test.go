// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/pdaledger/actions"
	"github.com/ava-labs/pdaledger/auth"
	"github.com/ava-labs/pdaledger/codec"
	"github.com/ava-labs/pdaledger/crypto/ed25519"
	"github.com/ava-labs/pdaledger/derive"
	"github.com/ava-labs/pdaledger/store"
)

var errConnectionReset = errors.New("connection reset by peer")

func newSigner(t *testing.T) auth.Signer {
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	return auth.NewED25519Factory(priv)
}

// countingStore records how many creates the backing program accepted.
type countingStore struct {
	*store.Program
	created atomic.Int64
}

func (c *countingStore) Create(ctx context.Context, req *actions.Signed[*actions.CreateLedger]) error {
	err := c.Program.Create(ctx, req)
	if err == nil {
		c.created.Inc()
	}
	return err
}

// interruptedStore fails the first fetch that follows an accepted create, as
// if the caller's context ended while the create was in flight.
type interruptedStore struct {
	*countingStore
	interrupted atomic.Bool
}

func (i *interruptedStore) Fetch(ctx context.Context, addr codec.Address) (*store.Ledger, error) {
	if i.created.Load() > 0 && i.interrupted.CompareAndSwap(false, true) {
		return nil, context.Canceled
	}
	return i.countingStore.Fetch(ctx, addr)
}

func newTestLedger(t *testing.T) (*Ledger, *countingStore) {
	require := require.New(t)
	p, err := store.NewProgram(
		ids.GenerateTestID(),
		store.NewDatabaseBackend(memdb.New()),
		logging.NoLog{},
		prometheus.NewRegistry(),
	)
	require.NoError(err)
	s := &countingStore{Program: p}
	l, err := New(Config{Store: s, ProgramID: p.ProgramID()})
	require.NoError(err)
	return l, s
}

func newMockLedger(t *testing.T) (*Ledger, *MockAccountStore, ids.ID) {
	ctrl := gomock.NewController(t)
	s := NewMockAccountStore(ctrl)
	programID := ids.GenerateTestID()
	l, err := New(Config{Store: s, ProgramID: programID})
	require.NoError(t, err)
	return l, s, programID
}

func TestNewMissingStore(t *testing.T) {
	_, err := New(Config{ProgramID: ids.GenerateTestID()})
	require.ErrorIs(t, err, ErrMissingStore)
}

func TestNewMissingProgramID(t *testing.T) {
	_, err := New(Config{Store: NewMockAccountStore(gomock.NewController(t))})
	require.ErrorIs(t, err, ErrMissingProgramID)
}

func TestEnsureConvergesAfterInterruptedCreate(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	_, counting := newTestLedger(t)
	s := &interruptedStore{countingStore: counting}
	l, err := New(Config{Store: s, ProgramID: counting.ProgramID()})
	require.NoError(err)
	signer := newSigner(t)

	// The create lands but its confirmation is lost.
	_, err = l.SetBalance(ctx, signer, "red", 3)
	require.ErrorIs(err, ErrProvisioningFailed)
	require.ErrorIs(err, context.Canceled)
	require.Equal(int64(1), counting.created.Load())

	acct, err := l.SetBalance(ctx, signer, "red", 3)
	require.NoError(err)
	require.Equal("red", acct.Category)
	require.Equal(uint64(3), acct.Balance)
	require.Equal(int64(1), counting.created.Load())
}

func TestDeriveAddress(t *testing.T) {
	require := require.New(t)
	l, _ := newTestLedger(t)
	a, b := newSigner(t).PublicKey(), newSigner(t).PublicKey()

	red, err := l.DeriveAddress(a, "red")
	require.NoError(err)
	again, err := l.DeriveAddress(a, "red")
	require.NoError(err)
	require.Equal(red, again)

	// Independent of the cache.
	uncached, _, err := derive.LedgerAddress(l.deriver.programID, a, "red")
	require.NoError(err)
	require.Equal(red, uncached)

	blue, err := l.DeriveAddress(a, "blue")
	require.NoError(err)
	require.NotEqual(red, blue)

	otherOwner, err := l.DeriveAddress(b, "red")
	require.NoError(err)
	require.NotEqual(red, otherOwner)
}

func TestDeriveAddressInvalidCategory(t *testing.T) {
	l, _ := newTestLedger(t)
	owner := newSigner(t).PublicKey()
	for _, category := range []string{"", strings.Repeat("x", derive.MaxSeedLen+1), "\xff"} {
		_, err := l.DeriveAddress(owner, category)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestEnsureAccountIdempotent(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l, s := newTestLedger(t)
	signer := newSigner(t)

	first, err := l.EnsureAccount(ctx, signer, "red")
	require.NoError(err)
	second, err := l.EnsureAccount(ctx, signer, "red")
	require.NoError(err)
	require.Equal(first, second)
	require.Equal("red", first.Category)
	require.Zero(first.Balance)
	require.Equal(int64(1), s.created.Load())

	addr, err := l.DeriveAddress(signer.PublicKey(), "red")
	require.NoError(err)
	require.Equal(addr, first.Address)
}

func TestEnsureAccountConcurrent(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l, s := newTestLedger(t)
	signer := newSigner(t)

	const callers = 16
	var (
		g        errgroup.Group
		accounts = make([]*Account, callers)
	)
	for i := 0; i < callers; i++ {
		i := i
		g.Go(func() error {
			acct, err := l.EnsureAccount(ctx, signer, "red")
			accounts[i] = acct
			return err
		})
	}
	require.NoError(g.Wait())
	require.Equal(int64(1), s.created.Load())
	for _, acct := range accounts {
		require.Equal(accounts[0].Address, acct.Address)
		require.Equal("red", acct.Category)
	}
}

func TestSetBalance(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l, s := newTestLedger(t)
	signer := newSigner(t)

	// The first mutation provisions the account.
	acct, err := l.SetBalance(ctx, signer, "red", 7)
	require.NoError(err)
	require.Equal("red", acct.Category)
	require.Equal(uint64(7), acct.Balance)
	require.Equal(int64(1), s.created.Load())

	result, err := l.GetAccount(ctx, signer.PublicKey(), "red")
	require.NoError(err)
	require.Equal(Found, result.Status)
	require.Equal(uint64(7), result.Account.Balance)

	// Overwrite, not increment.
	acct, err = l.SetBalance(ctx, signer, "red", 2)
	require.NoError(err)
	require.Equal(uint64(2), acct.Balance)
	require.Equal(int64(1), s.created.Load())
}

func TestSetBalanceNegative(t *testing.T) {
	require := require.New(t)
	// No expectations: any store call fails the test.
	l, _, _ := newMockLedger(t)

	_, err := l.SetBalance(context.Background(), newSigner(t), "red", -1)
	require.ErrorIs(err, ErrInvalidArgument)

	_, err = l.CompareAndSetBalance(context.Background(), newSigner(t), "red", -1, 1)
	require.ErrorIs(err, ErrInvalidArgument)
}

func TestEnsureInvalidCategory(t *testing.T) {
	l, _, _ := newMockLedger(t)

	_, err := l.EnsureAccount(context.Background(), newSigner(t), "")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestEnsureTransientFetch(t *testing.T) {
	require := require.New(t)
	l, s, _ := newMockLedger(t)
	signer := newSigner(t)

	// Create must not be attempted while existence is unknown.
	s.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, errConnectionReset)

	_, err := l.EnsureAccount(context.Background(), signer, "red")
	require.ErrorIs(err, ErrProvisioningFailed)
	require.ErrorIs(err, errConnectionReset)
}

func TestEnsureAlreadyExists(t *testing.T) {
	require := require.New(t)
	l, s, _ := newMockLedger(t)
	signer := newSigner(t)
	addr, err := l.DeriveAddress(signer.PublicKey(), "red")
	require.NoError(err)

	gomock.InOrder(
		s.EXPECT().Fetch(gomock.Any(), addr).Return(nil, store.ErrNotFound),
		s.EXPECT().Create(gomock.Any(), gomock.Any()).Return(store.ErrAlreadyExists),
		s.EXPECT().Fetch(gomock.Any(), addr).Return(&store.Ledger{Category: "red", Balance: 9}, nil),
	)

	acct, err := l.EnsureAccount(context.Background(), signer, "red")
	require.NoError(err)
	require.Equal(&Account{Address: addr, Category: "red", Balance: 9}, acct)
}

func TestEnsureCreateRequest(t *testing.T) {
	require := require.New(t)
	l, s, programID := newMockLedger(t)
	signer := newSigner(t)
	addr, err := l.DeriveAddress(signer.PublicKey(), "red")
	require.NoError(err)

	gomock.InOrder(
		s.EXPECT().Fetch(gomock.Any(), addr).Return(nil, store.ErrNotFound),
		s.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req *actions.Signed[*actions.CreateLedger]) error {
				require.NoError(req.Verify(programID))
				require.Equal(addr, req.Action.Ledger)
				require.Equal(signer.PublicKey(), req.Action.Authority)
				require.Equal("red", req.Action.Category)
				return derive.VerifyLedgerAddress(programID, signer.PublicKey(), "red", req.Action.Bump, addr)
			},
		),
		s.EXPECT().Fetch(gomock.Any(), addr).Return(&store.Ledger{Category: "red"}, nil),
	)

	_, err = l.EnsureAccount(context.Background(), signer, "red")
	require.NoError(err)
}

func TestEnsureCreateFailed(t *testing.T) {
	require := require.New(t)
	l, s, _ := newMockLedger(t)

	gomock.InOrder(
		s.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, store.ErrNotFound),
		s.EXPECT().Create(gomock.Any(), gomock.Any()).Return(store.ErrUnauthorized),
	)

	_, err := l.EnsureAccount(context.Background(), newSigner(t), "red")
	require.ErrorIs(err, ErrProvisioningFailed)
	require.ErrorIs(err, store.ErrUnauthorized)
}

func TestEnsureMissingAfterCreate(t *testing.T) {
	require := require.New(t)
	l, s, _ := newMockLedger(t)

	gomock.InOrder(
		s.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, store.ErrNotFound),
		s.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil),
		s.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, store.ErrNotFound),
	)

	_, err := l.EnsureAccount(context.Background(), newSigner(t), "red")
	require.ErrorIs(err, ErrProvisioningFailed)
}

func TestEnsureCategoryMismatch(t *testing.T) {
	l, s, _ := newMockLedger(t)

	s.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(&store.Ledger{Category: "blue"}, nil)

	_, err := l.EnsureAccount(context.Background(), newSigner(t), "red")
	require.ErrorIs(t, err, ErrProvisioningFailed)
}

func TestSetBalanceModifyFailed(t *testing.T) {
	require := require.New(t)
	l, s, _ := newMockLedger(t)

	gomock.InOrder(
		s.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(&store.Ledger{Category: "red"}, nil),
		s.EXPECT().Modify(gomock.Any(), gomock.Any()).Return(errConnectionReset),
	)

	_, err := l.SetBalance(context.Background(), newSigner(t), "red", 4)
	require.ErrorIs(err, ErrMutationFailed)
	require.ErrorIs(err, errConnectionReset)
}

func TestSetBalanceProvisioningFailed(t *testing.T) {
	require := require.New(t)
	l, s, _ := newMockLedger(t)

	s.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, errConnectionReset)

	_, err := l.SetBalance(context.Background(), newSigner(t), "red", 4)
	require.ErrorIs(err, ErrProvisioningFailed)
	require.NotErrorIs(err, ErrMutationFailed)
}

func TestCompareAndSetBalance(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l, _ := newTestLedger(t)
	signer := newSigner(t)

	_, err := l.SetBalance(ctx, signer, "red", 5)
	require.NoError(err)

	_, err = l.CompareAndSetBalance(ctx, signer, "red", 4, 10)
	require.ErrorIs(err, ErrMutationFailed)
	require.ErrorIs(err, store.ErrBalanceMismatch)

	acct, err := l.CompareAndSetBalance(ctx, signer, "red", 5, 10)
	require.NoError(err)
	require.Equal(uint64(10), acct.Balance)
}

func TestGetAccount(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	l, s, _ := newMockLedger(t)
	owner := newSigner(t).PublicKey()

	s.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, store.ErrNotFound)
	result, err := l.GetAccount(ctx, owner, "red")
	require.NoError(err)
	require.Equal(NotFound, result.Status)
	require.Nil(result.Account)

	s.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, errConnectionReset)
	result, err = l.GetAccount(ctx, owner, "red")
	require.NoError(err)
	require.Equal(Transient, result.Status)
	require.ErrorIs(result.Err, errConnectionReset)

	s.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, nil)
	result, err = l.GetAccount(ctx, owner, "red")
	require.NoError(err)
	require.Equal(Transient, result.Status)
}

func TestScenario(t *testing.T) {
	ctx := context.Background()
	l, s := newTestLedger(t)
	a, b := newSigner(t), newSigner(t)

	steps := []struct {
		signer   auth.Signer
		category string
		balance  int64
	}{
		{signer: a, category: "red", balance: 2},
		{signer: a, category: "red", balance: 4},
		{signer: a, category: "blue", balance: 3},
		{signer: b, category: "red", balance: 3},
		{signer: b, category: "green", balance: 5},
	}
	addrs := map[codec.Address]struct{}{}
	for _, step := range steps {
		acct, err := l.SetBalance(ctx, step.signer, step.category, step.balance)
		require.NoError(t, err)
		require.Equal(t, step.category, acct.Category)
		require.Equal(t, uint64(step.balance), acct.Balance)
		addrs[acct.Address] = struct{}{}
	}
	// A/red, A/blue, B/red, B/green
	require.Len(t, addrs, 4)
	require.Equal(t, int64(4), s.created.Load())
}

func TestStatusString(t *testing.T) {
	require := require.New(t)
	require.Equal("found", Found.String())
	require.Equal("not found", NotFound.String())
	require.Equal("transient", Transient.String())
	require.Equal("unknown", Status(9).String())
}
