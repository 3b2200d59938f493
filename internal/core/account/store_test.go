package account

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankd/bankd/internal/core/money"
)

func TestBalanceAbsentCurrency(t *testing.T) {
	s := NewStore()
	assert.Equal(t, "0.00", s.Balance("USD").Display())
}

func TestDepositAccumulates(t *testing.T) {
	s := NewStore()

	bal := s.Deposit("USD", money.MustFromString("0.01"))
	assert.Equal(t, "0.01", bal.Display())

	bal = s.Deposit("USD", money.MustFromString("0.01"))
	assert.Equal(t, "0.02", bal.Display())

	assert.Equal(t, "0.02", s.Balance("USD").Display())
}

func TestWithdrawExact(t *testing.T) {
	s := NewStore()
	s.Deposit("USD", money.MustFromString("100"))

	bal, err := s.Withdraw("USD", money.MustFromString("100"))
	require.NoError(t, err)
	assert.Equal(t, "0.00", bal.Display())
	assert.Equal(t, "0.00", s.Balance("USD").Display())
}

func TestWithdrawInsufficientLeavesStateUnchanged(t *testing.T) {
	s := NewStore()
	s.Deposit("USD", money.MustFromString("100"))

	_, err := s.Withdraw("USD", money.MustFromString("100.01"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, "100.00", s.Balance("USD").Display())
}

func TestWithdrawFromUntouchedCurrency(t *testing.T) {
	s := NewStore()
	_, err := s.Withdraw("EUR", money.MustFromString("1"))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestCurrenciesAreCaseSensitive(t *testing.T) {
	s := NewStore()
	s.Deposit("USD", money.MustFromString("50"))

	assert.Equal(t, "50.00", s.Balance("USD").Display())
	assert.Equal(t, "0.00", s.Balance("usd").Display())

	s.Deposit("usd", money.MustFromString("7"))
	assert.Equal(t, "50.00", s.Balance("USD").Display())
	assert.Equal(t, "7.00", s.Balance("usd").Display())
}

func TestConcurrentDepositsAreExact(t *testing.T) {
	s := NewStore()
	const workers = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Deposit("USD", money.MustFromString("0.01"))
		}()
	}
	wg.Wait()

	assert.Equal(t, "0.50", s.Balance("USD").Display())
}

func TestConcurrentWithdrawalsNeverOverdraw(t *testing.T) {
	s := NewStore()
	s.Deposit("USD", money.MustFromString("100"))

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Withdraw("USD", money.MustFromString("10"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInsufficientFunds)
		}
	}

	// 100 covers exactly ten withdrawals of 10.
	assert.Equal(t, 10, succeeded)
	assert.Equal(t, "0.00", s.Balance("USD").Display())
}

func TestCurrencies(t *testing.T) {
	s := NewStore()
	s.Deposit("USD", money.MustFromString("1"))
	s.Deposit("EUR", money.MustFromString("1"))
	assert.ElementsMatch(t, []string{"USD", "EUR"}, s.Currencies())
}
