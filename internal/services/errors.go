package services

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrStatementNotFound  = errors.New("statement not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidOperation   = errors.New("invalid operation type")
	ErrSelfTransfer       = errors.New("cannot transfer to the same account")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// LedgerError carries the kind of failure and the id it concerns.
// errors.Is matches on the kind.
type LedgerError struct {
	Err error
	ID  string
}

func (e *LedgerError) Error() string {
	if e.ID == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.ID)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

func newError(kind error, id string) error {
	return &LedgerError{Err: kind, ID: id}
}
