// Package store defines the collaborator contracts the ledger core
// depends on: a directory of users and an append-only statement store.
package store

import (
	"context"
	"errors"

	"statement-ledger/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateID       = errors.New("id already in use")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type UserDirectory interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// StatementStore persists statements. Implementations assign ID and
// timestamps on append, never modify a stored statement, and refuse a
// debit that would leave its owner with a negative balance
// (ErrInsufficientFunds), checked atomically with the write.
type StatementStore interface {
	Append(ctx context.Context, statement *models.Statement) (*models.Statement, error)
	// AppendTransfer writes both legs of a transfer or neither.
	AppendTransfer(ctx context.Context, debit, credit *models.Statement) (*models.Statement, *models.Statement, error)
	// ListByUser returns the statements owned by userID in insertion order.
	ListByUser(ctx context.Context, userID string) ([]*models.Statement, error)
	// GetBalance folds the user's statements. A non-empty senderID narrows
	// the fold to the user's transfer legs sent by senderID.
	GetBalance(ctx context.Context, userID, senderID string) (decimal.Decimal, error)
	FindByID(ctx context.Context, id string) (*models.Statement, error)
}

// InSenderScope reports whether s is counted by GetBalance for userID
// narrowed to senderID: the user's own transfer legs sent by senderID.
// With senderID == userID that is everything the user sent out.
func InSenderScope(s *models.Statement, userID, senderID string) bool {
	return s.UserID == userID && s.Type == models.OperationTransfer && s.SenderID == senderID
}
