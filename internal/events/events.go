// Package events describes what the ledger announces after a write has
// been committed.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TopicStatementCreated  = "statement.created"
	TopicTransferCompleted = "transfer.completed"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

type StatementCreated struct {
	StatementID string          `json:"statement_id"`
	UserID      string          `json:"user_id"`
	SenderID    string          `json:"sender_id,omitempty"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

type TransferCompleted struct {
	DebitStatementID  string          `json:"debit_statement_id"`
	CreditStatementID string          `json:"credit_statement_id"`
	SenderID          string          `json:"sender_id"`
	ReceiverID        string          `json:"receiver_id"`
	Amount            decimal.Decimal `json:"amount"`
	OccurredAt        time.Time       `json:"occurred_at"`
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, topic string, event any) error { return nil }

func (Noop) Close() error { return nil }
