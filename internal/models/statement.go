package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OperationType is the kind of movement a statement records. It is the
// only place the set of kinds is defined.
type OperationType string

const (
	OperationDeposit  OperationType = "deposit"
	OperationWithdraw OperationType = "withdraw"
	OperationTransfer OperationType = "transfer"
)

func (t OperationType) Valid() bool {
	switch t {
	case OperationDeposit, OperationWithdraw, OperationTransfer:
		return true
	}
	return false
}

// AmountScale is the number of decimal places an amount may carry. The
// statements table stores amounts as DECIMAL(20,2).
const AmountScale = 2

var maxAmount = decimal.New(1, 18)

// ValidAmount reports whether amount is positive, has at most AmountScale
// decimal places and fits the stored column.
func ValidAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() &&
		amount.Equal(amount.Truncate(AmountScale)) &&
		amount.LessThan(maxAmount)
}

// ParseOperationType accepts the plural "transfers" used in route paths.
func ParseOperationType(s string) (OperationType, error) {
	if s == "transfers" {
		return OperationTransfer, nil
	}
	t := OperationType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown operation type %q", s)
	}
	return t, nil
}

// Statement is an immutable ledger entry. SenderID is set only on
// transfer legs and names the user the money came from.
type Statement struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	SenderID    string          `json:"sender_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        OperationType   `json:"type"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsDebit reports whether the statement takes money out of its owner's
// balance: a withdrawal, or the outbound leg of a transfer.
func (s *Statement) IsDebit() bool {
	switch s.Type {
	case OperationWithdraw:
		return true
	case OperationTransfer:
		return s.SenderID == s.UserID
	}
	return false
}

// Signed returns the amount with the sign it contributes to the owner's
// balance.
func (s *Statement) Signed() decimal.Decimal {
	if s.IsDebit() {
		return s.Amount.Neg()
	}
	return s.Amount
}

type CreateStatementRequest struct {
	UserID      string          `json:"user_id"`
	Type        OperationType   `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	SenderID    string          `json:"sender_id,omitempty"`
}

type TransferRequest struct {
	SenderID    string          `json:"sender_id"`
	ReceiverID  string          `json:"receiver_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Transfer pairs the two legs written for one transfer.
type Transfer struct {
	Debit  *Statement `json:"debit"`
	Credit *Statement `json:"credit"`
}

// StatementBody is the request payload of the statement routes; the
// owner comes from the authenticated session.
type StatementBody struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ReceiverID  string          `json:"receiver_id,omitempty"`
}
