// Package mysql implements the store contracts on MySQL. Statements carry
// an AUTO_INCREMENT seq column that defines insertion order.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"statement-ledger/internal/models"
	"statement-ledger/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	statementColumns = "id, user_id, sender_id, amount, type, description, created_at, updated_at"

	signedAmount = "CASE WHEN type = 'withdraw' OR (type = 'transfer' AND sender_id = user_id) THEN -amount ELSE amount END"

	balanceQuery       = "SELECT COALESCE(SUM(" + signedAmount + "), 0) FROM statements WHERE user_id = ?"
	senderBalanceQuery = balanceQuery + " AND type = 'transfer' AND sender_id = ?"
)

type StatementStore struct {
	db *sql.DB
}

func NewStatementStore(db *sql.DB) *StatementStore {
	return &StatementStore{db: db}
}

func (p *StatementStore) Append(ctx context.Context, statement *models.Statement) (*models.Statement, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stored, err := p.insertInTx(ctx, tx, statement)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit statement: %w", err)
	}
	return stored, nil
}

func (p *StatementStore) AppendTransfer(ctx context.Context, debit, credit *models.Statement) (*models.Statement, *models.Statement, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	out, err := p.insertInTx(ctx, tx, debit)
	if err != nil {
		return nil, nil, err
	}
	in, err := p.insertInTx(ctx, tx, credit)
	if err != nil {
		return nil, nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transfer: %w", err)
	}
	return out, in, nil
}

func (p *StatementStore) ListByUser(ctx context.Context, userID string) ([]*models.Statement, error) {
	rows, err := p.db.QueryContext(ctx,
		"SELECT "+statementColumns+" FROM statements WHERE user_id = ? ORDER BY seq",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	statements := make([]*models.Statement, 0)
	for rows.Next() {
		s, err := scanStatement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning statement: %w", err)
		}
		statements = append(statements, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return statements, nil
}

func (p *StatementStore) GetBalance(ctx context.Context, userID, senderID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	var err error
	if senderID == "" {
		err = p.db.QueryRowContext(ctx, balanceQuery, userID).Scan(&balance)
	} else {
		err = p.db.QueryRowContext(ctx, senderBalanceQuery, userID, senderID).Scan(&balance)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("database error: %w", err)
	}
	return balance, nil
}

func (p *StatementStore) FindByID(ctx context.Context, id string) (*models.Statement, error) {
	row := p.db.QueryRowContext(ctx, "SELECT "+statementColumns+" FROM statements WHERE id = ?", id)
	s, err := scanStatement(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return s, nil
}

// insertInTx writes one statement. For a debit it first locks the owner's
// user row so concurrent debits of the same user serialize on the
// database, then re-checks the balance inside the transaction.
func (p *StatementStore) insertInTx(ctx context.Context, tx *sql.Tx, statement *models.Statement) (*models.Statement, error) {
	if statement.IsDebit() {
		var locked string
		err := tx.QueryRowContext(ctx, "SELECT id FROM users WHERE id = ? FOR UPDATE", statement.UserID).Scan(&locked)
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to lock user: %w", err)
		}

		var balance decimal.Decimal
		if err := tx.QueryRowContext(ctx, balanceQuery, statement.UserID).Scan(&balance); err != nil {
			return nil, fmt.Errorf("failed to fetch balance: %w", err)
		}
		if balance.LessThan(statement.Amount) {
			return nil, store.ErrInsufficientFunds
		}
	}

	stored := *statement
	stored.ID = uuid.NewString()
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	_, err := tx.ExecContext(ctx,
		"INSERT INTO statements ("+statementColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		stored.ID, stored.UserID, nullString(stored.SenderID), stored.Amount, string(stored.Type),
		stored.Description, stored.CreatedAt, stored.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert statement: %w", err)
	}
	return &stored, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStatement(row rowScanner) (*models.Statement, error) {
	var s models.Statement
	var senderID sql.NullString
	var opType string
	err := row.Scan(&s.ID, &s.UserID, &senderID, &s.Amount, &opType, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Type = models.OperationType(opType)
	if senderID.Valid {
		s.SenderID = senderID.String
	}
	return &s, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ store.StatementStore = (*StatementStore)(nil)
