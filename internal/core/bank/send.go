package bank

import (
	"context"
	"errors"

	"github.com/bankd/bankd/internal/core/account"
	"github.com/bankd/bankd/internal/core/gate"
	"github.com/bankd/bankd/internal/core/history"
	"github.com/bankd/bankd/internal/core/money"
)

// Send moves amount from one user to another as a withdraw leg on the
// sender followed by a deposit leg on the receiver, each through its
// owner's gatekeeper. The two legs are not atomic with respect to other
// operations: between them, concurrently admitted operations may observe
// the sender already debited.
//
// Both parties are resolved before the withdraw leg, so the receiver
// cannot vanish between the legs (there is no delete-user). If the
// receiver's gatekeeper refuses the deposit leg, the amount is
// re-credited to the sender through the sender's gatekeeper. That
// compensating deposit is issued once and never retried: if the sender's
// gate happens to be saturated at that instant the sender stays
// transiently debited, and the receiver-leg error is returned either
// way. Retrying here would turn the non-blocking gatekeeper into a
// hidden queue.
//
// ctx does not abandon a transfer in progress. The legs wait on their
// own completion rather than on ctx: abandoning the composition between
// a committed debit and its matching credit would leave an outcome the
// compensation step cannot reconcile, either destroying the amount or
// crediting it twice. Admission stays non-blocking, so the waits are
// only ever for the in-memory operations themselves.
func (b *Bank) Send(ctx context.Context, from, to, currency string, amount money.Money) (fromBalance, toBalance string, err error) {
	if !amount.IsPositive() {
		return "", "", ErrInvalidAmount
	}
	if from == to {
		return "", "", ErrSameUser
	}

	sender, err := b.resolve(from)
	if err != nil {
		return "", "", ErrSenderNotFound
	}
	receiver, err := b.resolve(to)
	if err != nil {
		return "", "", ErrReceiverNotFound
	}

	err = sender.gate.Execute(context.Background(), func() error {
		bal, werr := sender.accounts.Withdraw(currency, amount)
		if werr != nil {
			return werr
		}
		fromBalance = bal.Display()
		return nil
	})
	switch {
	case errors.Is(err, gate.ErrBusy):
		return "", "", ErrTooManyRequestsSender
	case errors.Is(err, account.ErrInsufficientFunds):
		return "", "", ErrNotEnoughMoney
	case err != nil:
		return "", "", err
	}

	err = receiver.gate.Execute(context.Background(), func() error {
		toBalance = receiver.accounts.Deposit(currency, amount).Display()
		return nil
	})
	if err != nil {
		// Every error here means the deposit did not commit, so the
		// compensating re-credit cannot double-pay.
		b.compensate(sender, currency, amount)
		if errors.Is(err, gate.ErrBusy) {
			return "", "", ErrTooManyRequestsReceiver
		}
		return "", "", err
	}

	b.record(history.Entry{
		Kind:         history.KindTransfer,
		User:         from,
		Counterparty: to,
		Currency:     currency,
		Amount:       amount.String(),
	})
	return fromBalance, toBalance, nil
}

// compensate re-credits the sender after a failed deposit leg. A refusal
// by the sender's gatekeeper is deliberately swallowed; see Send.
func (b *Bank) compensate(sender *member, currency string, amount money.Money) {
	_ = sender.gate.Execute(context.Background(), func() error {
		sender.accounts.Deposit(currency, amount)
		return nil
	})
}
