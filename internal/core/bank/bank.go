// Package bank ties the per-user components together: a process-wide
// registry mapping usernames to their (account store, gatekeeper) pair,
// the factory that provisions that pair atomically, and the five
// user-facing operations.
package bank

import (
	"context"
	"errors"
	"sync"

	"github.com/bankd/bankd/internal/core/account"
	"github.com/bankd/bankd/internal/core/gate"
	"github.com/bankd/bankd/internal/core/history"
	"github.com/bankd/bankd/internal/core/money"
)

// member pairs one user's components. An entry is only published to the
// registry once both exist, so readers never observe a half-created
// user.
type member struct {
	accounts *account.Store
	gate     *gate.Gate
}

// Bank is the process-wide user registry plus operation front end.
// Every operation resolves its user here and runs through that user's
// gatekeeper; distinct users never contend with each other. Lookups are
// frequent and creations rare, hence the read-write lock.
type Bank struct {
	mu      sync.RWMutex
	members map[string]*member

	limit   int64
	journal *history.Journal
}

// Option configures a Bank.
type Option func(*Bank)

// WithInflightLimit caps the number of concurrently admitted operations
// per user. The default is gate.DefaultLimit.
func WithInflightLimit(n int64) Option {
	return func(b *Bank) { b.limit = n }
}

// WithJournal records successful operations into j.
func WithJournal(j *history.Journal) Option {
	return func(b *Bank) { b.journal = j }
}

// New returns an empty bank.
func New(opts ...Option) *Bank {
	b := &Bank{
		members: make(map[string]*member),
		limit:   gate.DefaultLimit,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateUser provisions the account store and gatekeeper for user.
// Among any number of concurrent calls for the same name exactly one
// succeeds; the rest see ErrUserExists. The components are built before
// the registry is touched, so a published entry is always complete and a
// losing candidate's components are simply dropped.
func (b *Bank) CreateUser(user string) error {
	m := &member{
		accounts: account.NewStore(),
		gate:     gate.New(b.limit),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.members[user]; ok {
		return ErrUserExists
	}
	b.members[user] = m
	return nil
}

// HasUser reports whether user is registered.
func (b *Bank) HasUser(user string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.members[user]
	return ok
}

// UserCount returns the number of registered users.
func (b *Bank) UserCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.members)
}

// InflightLimit returns the per-user concurrency cap.
func (b *Bank) InflightLimit() int64 {
	return b.limit
}

func (b *Bank) resolve(user string) (*member, error) {
	b.mu.RLock()
	m := b.members[user]
	b.mu.RUnlock()
	if m == nil {
		return nil, ErrUserNotFound
	}
	return m, nil
}

// GetBalance reports the displayed balance for user in currency, "0.00"
// when the currency has never been touched. The read runs through the
// user's gatekeeper like any other operation.
func (b *Bank) GetBalance(ctx context.Context, user, currency string) (string, error) {
	m, err := b.resolve(user)
	if err != nil {
		return "", err
	}

	var out string
	err = m.gate.Execute(ctx, func() error {
		out = m.accounts.Balance(currency).Display()
		return nil
	})
	if err != nil {
		return "", translateGate(err)
	}
	return out, nil
}

// Deposit credits amount to the user's currency balance and returns the
// new displayed balance.
func (b *Bank) Deposit(ctx context.Context, user, currency string, amount money.Money) (string, error) {
	if !amount.IsPositive() {
		return "", ErrInvalidAmount
	}
	m, err := b.resolve(user)
	if err != nil {
		return "", err
	}

	var out string
	err = m.gate.Execute(ctx, func() error {
		out = m.accounts.Deposit(currency, amount).Display()
		return nil
	})
	if err != nil {
		return "", translateGate(err)
	}

	b.record(history.Entry{
		Kind:     history.KindDeposit,
		User:     user,
		Currency: currency,
		Amount:   amount.String(),
	})
	return out, nil
}

// Withdraw debits amount from the user's currency balance and returns
// the new displayed balance. The covered-balance check and the debit are
// one atomic step inside the account store.
func (b *Bank) Withdraw(ctx context.Context, user, currency string, amount money.Money) (string, error) {
	if !amount.IsPositive() {
		return "", ErrInvalidAmount
	}
	m, err := b.resolve(user)
	if err != nil {
		return "", err
	}

	var out string
	err = m.gate.Execute(ctx, func() error {
		bal, werr := m.accounts.Withdraw(currency, amount)
		if werr != nil {
			return werr
		}
		out = bal.Display()
		return nil
	})
	if err != nil {
		if errors.Is(err, account.ErrInsufficientFunds) {
			return "", ErrNotEnoughMoney
		}
		return "", translateGate(err)
	}

	b.record(history.Entry{
		Kind:     history.KindWithdraw,
		User:     user,
		Currency: currency,
		Amount:   amount.String(),
	})
	return out, nil
}

// Recent returns the user's recent journal entries, newest first. It
// fails for unknown users and returns nil when no journal is attached.
func (b *Bank) Recent(user string, limit int) ([]history.Entry, error) {
	if !b.HasUser(user) {
		return nil, ErrUserNotFound
	}
	if b.journal == nil {
		return nil, nil
	}
	return b.journal.Recent(user, limit), nil
}

func (b *Bank) record(e history.Entry) {
	if b.journal == nil {
		return
	}
	b.journal.Record(e)
}

// translateGate maps a gatekeeper refusal to the bank's error kind and
// passes everything else (context errors, panics) through unchanged.
func translateGate(err error) error {
	if errors.Is(err, gate.ErrBusy) {
		return ErrTooManyRequests
	}
	return err
}
