package rpc_types

import (
	"errors"

	"github.com/bankd/bankd/internal/core/bank"
)

// RpcError is the external form of an error: a stable error string, a
// numeric code and an optional human message. It is serialized inside
// the result object of an error response.
type RpcError struct {
	Code        int    `json:"error_code"`
	ErrorString string `json:"error"`
	Message     string `json:"error_message,omitempty"`
}

func (e *RpcError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.ErrorString
}

// Error codes. The JSON-RPC range is kept for transport-level failures;
// banking errors get their own block.
const (
	RpcMETHOD_NOT_FOUND = -32601
	RpcINVALID_PARAMS   = -32602
	RpcINTERNAL         = -32603
	RpcPARSE_ERROR      = -32700

	RpcSLOW_DOWN = 7

	RpcWRONG_ARGUMENTS               = 20
	RpcUSER_ALREADY_EXISTS           = 21
	RpcUSER_DOES_NOT_EXIST           = 22
	RpcNOT_ENOUGH_MONEY              = 23
	RpcTOO_MANY_REQUESTS_TO_USER     = 24
	RpcSENDER_DOES_NOT_EXIST         = 25
	RpcRECEIVER_DOES_NOT_EXIST       = 26
	RpcTOO_MANY_REQUESTS_TO_SENDER   = 27
	RpcTOO_MANY_REQUESTS_TO_RECEIVER = 28
)

func NewRpcError(code int, errorString, message string) *RpcError {
	return &RpcError{Code: code, ErrorString: errorString, Message: message}
}

func RpcErrorMethodNotFound(method string) *RpcError {
	return NewRpcError(RpcMETHOD_NOT_FOUND, "unknownCmd", "Unknown method: "+method)
}

func RpcErrorInternal(message string) *RpcError {
	return NewRpcError(RpcINTERNAL, "internal", message)
}

func RpcErrorSlowDown(message string) *RpcError {
	return NewRpcError(RpcSLOW_DOWN, "slowDown", message)
}

func RpcErrorWrongArguments(message string) *RpcError {
	return NewRpcError(RpcWRONG_ARGUMENTS, "wrong_arguments", message)
}

// RpcErrorMissingField is the wrong_arguments variant for an absent
// required parameter.
func RpcErrorMissingField(field string) *RpcError {
	return RpcErrorWrongArguments("Missing field '" + field + "'.")
}

// RpcErrorInvalidField is the wrong_arguments variant for a parameter of
// the wrong type or value.
func RpcErrorInvalidField(field string) *RpcError {
	return RpcErrorWrongArguments("Invalid field '" + field + "'.")
}

// FromBankError translates a core bank error into its external form.
// Every bank error crosses the API boundary through this single point;
// anything unrecognized is reported as internal rather than leaking an
// unmapped kind.
func FromBankError(err error) *RpcError {
	switch {
	case errors.Is(err, bank.ErrInvalidAmount), errors.Is(err, bank.ErrSameUser):
		return RpcErrorWrongArguments(err.Error())
	case errors.Is(err, bank.ErrUserExists):
		return NewRpcError(RpcUSER_ALREADY_EXISTS, "user_already_exists", "User already exists.")
	case errors.Is(err, bank.ErrUserNotFound):
		return NewRpcError(RpcUSER_DOES_NOT_EXIST, "user_does_not_exist", "User does not exist.")
	case errors.Is(err, bank.ErrNotEnoughMoney):
		return NewRpcError(RpcNOT_ENOUGH_MONEY, "not_enough_money", "Not enough money.")
	case errors.Is(err, bank.ErrTooManyRequests):
		return NewRpcError(RpcTOO_MANY_REQUESTS_TO_USER, "too_many_requests_to_user", "Too many requests to user.")
	case errors.Is(err, bank.ErrSenderNotFound):
		return NewRpcError(RpcSENDER_DOES_NOT_EXIST, "sender_does_not_exist", "Sender does not exist.")
	case errors.Is(err, bank.ErrReceiverNotFound):
		return NewRpcError(RpcRECEIVER_DOES_NOT_EXIST, "receiver_does_not_exist", "Receiver does not exist.")
	case errors.Is(err, bank.ErrTooManyRequestsSender):
		return NewRpcError(RpcTOO_MANY_REQUESTS_TO_SENDER, "too_many_requests_to_sender", "Too many requests to sender.")
	case errors.Is(err, bank.ErrTooManyRequestsReceiver):
		return NewRpcError(RpcTOO_MANY_REQUESTS_TO_RECEIVER, "too_many_requests_to_receiver", "Too many requests to receiver.")
	default:
		return RpcErrorInternal(err.Error())
	}
}
