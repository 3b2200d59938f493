package bank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankd/bankd/internal/core/history"
)

func newTransferBank(t *testing.T) *Bank {
	t.Helper()
	b := New()
	require.NoError(t, b.CreateUser("alice"))
	require.NoError(t, b.CreateUser("bob"))
	return b
}

func TestSendHappyPath(t *testing.T) {
	b := newTransferBank(t)
	ctx := context.Background()
	_, err := b.Deposit(ctx, "alice", "USD", amt("100"))
	require.NoError(t, err)

	fromBal, toBal, err := b.Send(ctx, "alice", "bob", "USD", amt("25"))
	require.NoError(t, err)
	assert.Equal(t, "75.00", fromBal)
	assert.Equal(t, "25.00", toBal)

	bal, err := b.GetBalance(ctx, "alice", "USD")
	require.NoError(t, err)
	assert.Equal(t, "75.00", bal)
	bal, err = b.GetBalance(ctx, "bob", "USD")
	require.NoError(t, err)
	assert.Equal(t, "25.00", bal)
}

// The sum of both balances is unchanged by a successful transfer.
func TestSendConservesTotal(t *testing.T) {
	b := newTransferBank(t)
	ctx := context.Background()
	_, err := b.Deposit(ctx, "alice", "USD", amt("10.123"))
	require.NoError(t, err)

	for _, amount := range []string{"0.001", "2.5", "7", "0.25"} {
		_, _, err := b.Send(ctx, "alice", "bob", "USD", amt(amount))
		require.NoError(t, err)
	}

	b.mu.RLock()
	total := b.members["alice"].accounts.Balance("USD").
		Add(b.members["bob"].accounts.Balance("USD"))
	b.mu.RUnlock()
	assert.Equal(t, "10.123", total.String())
}

func TestSendSameUser(t *testing.T) {
	b := newTransferBank(t)
	ctx := context.Background()
	_, err := b.Deposit(ctx, "alice", "USD", amt("100"))
	require.NoError(t, err)

	_, _, err = b.Send(ctx, "alice", "alice", "USD", amt("10"))
	assert.ErrorIs(t, err, ErrSameUser)

	// No side effects.
	bal, err := b.GetBalance(ctx, "alice", "USD")
	require.NoError(t, err)
	assert.Equal(t, "100.00", bal)
}

func TestSendUnknownParties(t *testing.T) {
	b := newTransferBank(t)
	ctx := context.Background()

	_, _, err := b.Send(ctx, "ghost", "bob", "USD", amt("1"))
	assert.ErrorIs(t, err, ErrSenderNotFound)

	_, _, err = b.Send(ctx, "alice", "ghost", "USD", amt("1"))
	assert.ErrorIs(t, err, ErrReceiverNotFound)
}

func TestSendInsufficientFunds(t *testing.T) {
	b := newTransferBank(t)
	ctx := context.Background()
	_, err := b.Deposit(ctx, "alice", "USD", amt("5"))
	require.NoError(t, err)

	_, _, err = b.Send(ctx, "alice", "bob", "USD", amt("5.01"))
	assert.ErrorIs(t, err, ErrNotEnoughMoney)

	bal, err := b.GetBalance(ctx, "alice", "USD")
	require.NoError(t, err)
	assert.Equal(t, "5.00", bal)
	bal, err = b.GetBalance(ctx, "bob", "USD")
	require.NoError(t, err)
	assert.Equal(t, "0.00", bal)
}

func TestSendSenderGateSaturated(t *testing.T) {
	b := newTransferBank(t)
	ctx := context.Background()
	_, err := b.Deposit(ctx, "alice", "USD", amt("100"))
	require.NoError(t, err)

	release := occupyGate(t, b, "alice", int(b.InflightLimit()))
	defer release()

	_, _, err = b.Send(ctx, "alice", "bob", "USD", amt("10"))
	assert.ErrorIs(t, err, ErrTooManyRequestsSender)

	// Receiver untouched.
	bal, err := b.GetBalance(ctx, "bob", "USD")
	require.NoError(t, err)
	assert.Equal(t, "0.00", bal)
}

// A refused deposit leg re-credits the sender before the error surfaces.
func TestSendReceiverGateSaturatedCompensates(t *testing.T) {
	b := newTransferBank(t)
	ctx := context.Background()
	_, err := b.Deposit(ctx, "alice", "USD", amt("100"))
	require.NoError(t, err)

	release := occupyGate(t, b, "bob", int(b.InflightLimit()))

	_, _, err = b.Send(ctx, "alice", "bob", "USD", amt("30"))
	assert.ErrorIs(t, err, ErrTooManyRequestsReceiver)

	// The withdraw leg was compensated.
	bal, err := b.GetBalance(ctx, "alice", "USD")
	require.NoError(t, err)
	assert.Equal(t, "100.00", bal)

	release()

	bal, err = b.GetBalance(ctx, "bob", "USD")
	require.NoError(t, err)
	assert.Equal(t, "0.00", bal)
}

// A transfer admitted with an already-expired caller context still runs
// both legs to completion. Abandoning it between the debit and the
// credit would either destroy the amount or, compensated blindly, mint
// it: sender re-credited while the receiver's deposit also lands.
func TestSendExpiredContextConservesTotal(t *testing.T) {
	b := newTransferBank(t)
	_, err := b.Deposit(context.Background(), "alice", "USD", amt("100"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fromBal, toBal, err := b.Send(ctx, "alice", "bob", "USD", amt("25"))
	require.NoError(t, err)
	assert.Equal(t, "75.00", fromBal)
	assert.Equal(t, "25.00", toBal)

	b.mu.RLock()
	total := b.members["alice"].accounts.Balance("USD").
		Add(b.members["bob"].accounts.Balance("USD"))
	b.mu.RUnlock()
	assert.Equal(t, "100", total.String())
}

func TestSendRecordsSingleTransferEntry(t *testing.T) {
	j, err := history.NewJournal(16, 16)
	require.NoError(t, err)
	b := New(WithJournal(j))
	require.NoError(t, b.CreateUser("alice"))
	require.NoError(t, b.CreateUser("bob"))
	ctx := context.Background()

	_, err = b.Deposit(ctx, "alice", "USD", amt("100"))
	require.NoError(t, err)
	_, _, err = b.Send(ctx, "alice", "bob", "USD", amt("25"))
	require.NoError(t, err)

	fromSide, err := b.Recent("alice", 0)
	require.NoError(t, err)
	require.Len(t, fromSide, 2) // deposit + transfer
	assert.Equal(t, history.KindTransfer, fromSide[0].Kind)
	assert.Equal(t, "bob", fromSide[0].Counterparty)

	toSide, err := b.Recent("bob", 0)
	require.NoError(t, err)
	require.Len(t, toSide, 1)
	assert.Equal(t, fromSide[0].ID, toSide[0].ID)
}
