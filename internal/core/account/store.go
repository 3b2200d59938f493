// Package account holds one user's balances. A Store serializes its
// mutations; the per-user gatekeeper may drive it from any number of
// admitted goroutines at once.
package account

import (
	"errors"
	"sync"

	"github.com/bankd/bankd/internal/core/money"
)

// ErrInsufficientFunds is returned when a withdrawal exceeds the stored
// balance. A currency that has never been deposited reads as zero and
// fails the same way.
var ErrInsufficientFunds = errors.New("account: insufficient funds")

// Store maps currency to balance for a single user. Currencies are
// compared bytewise, so "USD" and "usd" are independent balances.
type Store struct {
	mu       sync.Mutex
	balances map[string]money.Money
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{balances: make(map[string]money.Money)}
}

// Balance returns the current balance for currency, zero if absent.
func (s *Store) Balance(currency string) money.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[currency]
}

// Deposit adds amount to the currency balance and returns the new
// balance.
func (s *Store) Deposit(currency string, amount money.Money) money.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.balances[currency].Add(amount)
	s.balances[currency] = next
	return next
}

// Withdraw debits amount if the balance covers it and returns the new
// balance. The check and the debit happen under one lock, so concurrent
// withdrawals can never overdraw. On ErrInsufficientFunds the balance is
// unchanged.
func (s *Store) Withdraw(currency string, amount money.Money) (money.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.balances[currency]
	if !current.GTE(amount) {
		return money.Money{}, ErrInsufficientFunds
	}
	next := current.Sub(amount)
	s.balances[currency] = next
	return next, nil
}

// Currencies returns the currencies this store has ever held, in no
// particular order.
func (s *Store) Currencies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.balances))
	for c := range s.balances {
		out = append(out, c)
	}
	return out
}
