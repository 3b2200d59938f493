package bank

import "errors"

// Error kinds surfaced by Bank operations. They are values, never
// panics, and the RPC layer translates each into its external name
// exactly once.
var (
	ErrInvalidAmount   = errors.New("bank: amount must be a positive decimal")
	ErrUserExists      = errors.New("bank: user already exists")
	ErrUserNotFound    = errors.New("bank: user does not exist")
	ErrNotEnoughMoney  = errors.New("bank: not enough money")
	ErrTooManyRequests = errors.New("bank: too many requests to user")
	ErrSameUser        = errors.New("bank: sender and receiver are the same user")

	// Transfer legs refine the generic kinds to the side that failed.
	ErrSenderNotFound          = errors.New("bank: sender does not exist")
	ErrReceiverNotFound        = errors.New("bank: receiver does not exist")
	ErrTooManyRequestsSender   = errors.New("bank: too many requests to sender")
	ErrTooManyRequestsReceiver = errors.New("bank: too many requests to receiver")
)
